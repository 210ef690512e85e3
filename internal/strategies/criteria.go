package strategies

import "gamify/internal/models"

// CriteriaInput is the user snapshot a criteria predicate evaluates against.
// The caller gathers it once per event so every achievement sees the same
// numbers.
type CriteriaInput struct {
	EventType      string
	EarnedPoints   int64
	CurrentLevel   int64
	CompletedTasks int64
}

type criteriaFunc func(c *models.Criteria, in CriteriaInput) bool

var criteriaRegistry = map[models.CriteriaType]criteriaFunc{
	models.CriteriaPointsThreshold: func(c *models.Criteria, in CriteriaInput) bool {
		return in.EarnedPoints >= c.Threshold
	},
	models.CriteriaTaskCompletionCount: func(c *models.Criteria, in CriteriaInput) bool {
		return in.EventType == EVENT_TASK_COMPLETED && in.CompletedTasks >= c.TaskCount
	},
	models.CriteriaLevelReached: func(c *models.Criteria, in CriteriaInput) bool {
		return in.EventType == EVENT_LEVEL_UP && in.CurrentLevel >= c.RequiredLevel
	},
	models.CriteriaEventMatch: func(c *models.Criteria, in CriteriaInput) bool {
		return c.EventType != "" && c.EventType == in.EventType
	},
}

// The event names criteria dispatch on. Services emit the same strings.
const (
	EVENT_TASK_COMPLETED = "TASK_COMPLETED"
	EVENT_LEVEL_UP       = "LEVEL_UP"
)

// EvaluateCriteria reports whether the user snapshot satisfies c. Unknown
// criteria types never match.
func EvaluateCriteria(c *models.Criteria, in CriteriaInput) bool {
	if c == nil {
		return false
	}
	fn, ok := criteriaRegistry[c.Type]
	if !ok {
		return false
	}
	return fn(c, in)
}
