package models

import (
	"time"

	"github.com/uptrace/bun"
)

// LeaderboardEntry is a denormalized per-user snapshot. Rank is only
// authoritative after a full CalculateRanks pass; per-user syncs refresh the
// other fields without touching the global ordering.
type LeaderboardEntry struct {
	bun.BaseModel `bun:"table:leaderboard"`
	UserID        string    `bun:"user_id,pk" json:"user_id"`
	Username      string    `bun:"username" json:"username"`
	Department    string    `bun:"department" json:"department"`
	EarnedPoints  int64     `bun:"earned_points" json:"earned_points"`
	LevelNumber   int64     `bun:"level_number" json:"level_number"`
	Rank          int64     `bun:"rank" json:"rank"`
	UpdatedAt     time.Time `bun:"updated_at" json:"updated_at"`
}

// LeaderboardItem is the compact view kept in the redis mirror.
type LeaderboardItem struct {
	UserID string `json:"user_id"`
	Points int64  `json:"points"`
	Rank   int64  `json:"rank"`
}

type LeaderboardPage struct {
	Entries []LeaderboardEntry `json:"entries"`
	Page    int                `json:"page"`
	Size    int                `json:"size"`
	Total   int64              `json:"total"`
}
