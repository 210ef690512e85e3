package models

import (
	"time"

	"github.com/uptrace/bun"
)

// PointsTransaction is an append-only ledger entry. Positive points are an
// earn, negative points are a spend. Rows are never updated or deleted.
type PointsTransaction struct {
	bun.BaseModel `bun:"table:points_transaction"`
	TransactionID string         `bun:"transaction_id,pk" json:"transaction_id"`
	UserID        string         `bun:"user_id" json:"user_id"`
	EventType     string         `bun:"event_type" json:"event_type"`
	Points        int64          `bun:"points" json:"points"`
	Metadata      map[string]any `bun:"metadata,type:jsonb" json:"metadata"`
	CreatedAt     time.Time      `bun:"created_at,default:current_timestamp" json:"created_at"`
}

// AwardResult is the outcome of a points award. Warnings carry non-fatal
// follow-up failures (ladder or leaderboard recompute) that must not roll
// back the already-committed award.
type AwardResult struct {
	NewEarnedTotal int64    `json:"new_earned_total"`
	Warnings       []string `json:"warnings,omitempty"`
}
