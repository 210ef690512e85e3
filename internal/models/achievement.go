package models

import (
	"errors"
	"time"

	"github.com/uptrace/bun"
)

type CriteriaType string

const (
	CriteriaPointsThreshold     CriteriaType = "POINTS_THRESHOLD"
	CriteriaTaskCompletionCount CriteriaType = "TASK_COMPLETION_COUNT"
	CriteriaLevelReached        CriteriaType = "LEVEL_REACHED"
	CriteriaEventMatch          CriteriaType = "EVENT_MATCH"
)

// Criteria is the structured predicate attached to an achievement. The Type
// discriminator decides which parameters are meaningful; it is decoded from
// jsonb once when the achievement loads, not re-parsed per evaluation.
type Criteria struct {
	Type          CriteriaType `json:"type"`
	EventType     string       `json:"event_type,omitempty"`
	Threshold     int64        `json:"threshold,omitempty"`
	TaskCount     int64        `json:"task_count,omitempty"`
	RequiredLevel int64        `json:"required_level,omitempty"`
}

var ErrUnknownCriteriaType = errors.New("unknown criteria type")

func (c *Criteria) Validate() error {
	switch c.Type {
	case CriteriaPointsThreshold, CriteriaTaskCompletionCount, CriteriaLevelReached, CriteriaEventMatch:
		return nil
	}
	return ErrUnknownCriteriaType
}

type Achievement struct {
	bun.BaseModel `bun:"table:achievement"`
	AchievementID string    `bun:"achievement_id,pk" json:"achievement_id"`
	Name          string    `bun:"name,unique" json:"name"`
	Description   string    `bun:"description" json:"description"`
	Criteria      *Criteria `bun:"criteria,type:jsonb" json:"criteria"`
	CreatedAt     time.Time `bun:"created_at,default:current_timestamp" json:"created_at"`
}

// UserAchievement links a user to an earned achievement. At most one row per
// (user, achievement) pair; awarding again is a no-op.
type UserAchievement struct {
	bun.BaseModel `bun:"table:user_achievement"`
	UserID        string         `bun:"user_id,pk" json:"user_id"`
	AchievementID string         `bun:"achievement_id,pk" json:"achievement_id"`
	EarnedAt      time.Time      `bun:"earned_at,default:current_timestamp" json:"earned_at"`
	Metadata      map[string]any `bun:"metadata,type:jsonb" json:"metadata"`
}
