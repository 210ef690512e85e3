package models

import (
	"time"

	"github.com/uptrace/bun"
)

type LadderLevel struct {
	bun.BaseModel  `bun:"table:ladder_level"`
	Level          int64     `bun:"level,pk" json:"level"`
	Label          string    `bun:"label" json:"label"`
	PointsRequired int64     `bun:"points_required" json:"points_required"`
	CreatedAt      time.Time `bun:"created_at,default:current_timestamp" json:"created_at"`
}

// UserLadderStatus is a per-user cache of the ladder position, recomputed on
// every points change. LevelNumber references LadderLevel by id only.
type UserLadderStatus struct {
	bun.BaseModel     `bun:"table:user_ladder_status"`
	UserID            string    `bun:"user_id,pk" json:"user_id"`
	LevelNumber       int64     `bun:"level_number" json:"level_number"`
	EarnedPoints      int64     `bun:"earned_points" json:"earned_points"`
	PointsToNextLevel int64     `bun:"points_to_next_level" json:"points_to_next_level"`
	UpdatedAt         time.Time `bun:"updated_at" json:"updated_at"`
}

// LadderStatus is the read view returned to callers.
type LadderStatus struct {
	CurrentLevel      int64  `json:"current_level"`
	LevelLabel        string `json:"level_label"`
	EarnedPoints      int64  `json:"earned_points"`
	PointsToNextLevel int64  `json:"points_to_next_level"`
}
