package domain

import "time"

const ActionPipelineMove = "pipeline_move"

// PointAward é um lançamento de pontos de gamificação
type PointAward struct {
	ID        int64     `json:"id"`
	UserID    string    `json:"user_id"`
	Points    int       `json:"points"`
	Action    string    `json:"action"`
	Details   string    `json:"details"`
	CreatedAt time.Time `json:"created_at"`
}

type UserPoints struct {
	UserID string `json:"user_id"`
	Total  int    `json:"total"`
}
