package domain

// StageColumn é uma raia do board com seus cards e subtotal
type StageColumn struct {
	Stage         Stage          `json:"stage"`
	Opportunities []*Opportunity `json:"opportunities"`
	Count         int            `json:"count"`
	Total         float64        `json:"total"`
}

// Board é a visão agrupada por etapa das oportunidades carregadas
type Board struct {
	Columns    []StageColumn  `json:"columns"`
	GrandTotal float64        `json:"grand_total"`
	Unassigned []*Opportunity `json:"unassigned,omitempty"`
	Dragging   *string        `json:"dragging,omitempty"`
}

// DropResult descreve o efeito de soltar um card numa etapa
type DropResult struct {
	OpportunityID string  `json:"opportunity_id"`
	From          StageID `json:"from"`
	To            StageID `json:"to"`
	Moved         bool    `json:"moved"`
	PointsAwarded int     `json:"points_awarded"`
	WebhookQueued bool    `json:"webhook_queued"`
}

type MoveRequest struct {
	Status StageID `json:"status"`
}
