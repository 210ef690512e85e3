package models

import (
	"time"

	"github.com/uptrace/bun"
)

type Reward struct {
	bun.BaseModel `bun:"table:reward"`
	RewardID      string    `bun:"reward_id,pk" json:"reward_id"`
	Name          string    `bun:"name" json:"name"`
	Description   string    `bun:"description" json:"description"`
	CostInPoints  int64     `bun:"cost_in_points" json:"cost_in_points"`
	Available     bool      `bun:"available" json:"available"`
	CreatedAt     time.Time `bun:"created_at,default:current_timestamp" json:"created_at"`
	UpdatedAt     time.Time `bun:"updated_at" json:"updated_at"`
}

type RedemptionStatus string

const (
	RedemptionProcessing RedemptionStatus = "PROCESSING"
	RedemptionCompleted  RedemptionStatus = "COMPLETED"
	RedemptionCancelled  RedemptionStatus = "CANCELLED"
)

func (s RedemptionStatus) Terminal() bool {
	return s == RedemptionCompleted || s == RedemptionCancelled
}

type RewardRedemption struct {
	bun.BaseModel `bun:"table:reward_redemption"`
	RedemptionID  string           `bun:"redemption_id,pk" json:"redemption_id"`
	UserID        string           `bun:"user_id" json:"user_id"`
	RewardID      string           `bun:"reward_id" json:"reward_id"`
	PointsSpent   int64            `bun:"points_spent" json:"points_spent"`
	Status        RedemptionStatus `bun:"status" json:"status"`
	CreatedAt     time.Time        `bun:"created_at,default:current_timestamp" json:"created_at"`
	UpdatedAt     time.Time        `bun:"updated_at" json:"updated_at"`
}

// RedemptionResult is what a redeem attempt reports back to the caller.
// Failure outcomes carry the user's current balance so clients can render
// how far short they are.
type RedemptionResult struct {
	Success              bool      `json:"success"`
	Message              string    `json:"message"`
	RedemptionID         string    `json:"redemption_id,omitempty"`
	UpdatedPointsBalance int64     `json:"updated_points_balance"`
	Timestamp            time.Time `json:"timestamp"`
}
