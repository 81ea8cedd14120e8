package domain

import "time"

const EventOpportunityWon = "opportunity.won"

type OutboxStatus string

const (
	OutboxStatusPending   OutboxStatus = "pending"
	OutboxStatusDelivered OutboxStatus = "delivered"
	OutboxStatusDead      OutboxStatus = "dead"
)

// OutboxEntry é um evento pendente de entrega para o endpoint de automação
type OutboxEntry struct {
	ID            string       `json:"id"`
	EventType     string       `json:"event_type"`
	Payload       []byte       `json:"payload"`
	Status        OutboxStatus `json:"status"`
	Attempts      int          `json:"attempts"`
	NextAttemptAt time.Time    `json:"next_attempt_at"`
	LastError     *string      `json:"last_error,omitempty"`
	CreatedAt     time.Time    `json:"created_at"`
	DeliveredAt   *time.Time   `json:"delivered_at,omitempty"`
}

// OpportunityWonEvent é o corpo enviado à automação quando um negócio é ganho
type OpportunityWonEvent struct {
	Event       string       `json:"event"`
	Opportunity *Opportunity `json:"opportunity"`
	From        StageID      `json:"from"`
	UserID      string       `json:"user_id"`
	OccurredAt  time.Time    `json:"occurred_at"`
}
