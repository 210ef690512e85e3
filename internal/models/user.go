package models

import (
	"time"

	"github.com/uptrace/bun"
)

type User struct {
	bun.BaseModel   `bun:"table:app_user"`
	ID              string    `bun:"id,pk" json:"id"`
	Username        string    `bun:"username" json:"username"`
	Email           string    `bun:"email" json:"email"`
	Department      string    `bun:"department" json:"department"`
	Role            string    `bun:"role" json:"role"`
	EarnedPoints    int64     `bun:"earned_points" json:"earned_points"`
	AvailablePoints int64     `bun:"available_points" json:"available_points"`
	CreatedAt       time.Time `bun:"created_at,default:current_timestamp" json:"created_at"`
	UpdatedAt       time.Time `bun:"updated_at" json:"updated_at"`
}
