package strategies

import (
	"testing"

	"gamify/internal/models"

	"github.com/stretchr/testify/assert"
)

func TestEvaluateCriteriaPointsThreshold(t *testing.T) {
	c := &models.Criteria{Type: models.CriteriaPointsThreshold, Threshold: 100}

	assert.True(t, EvaluateCriteria(c, CriteriaInput{EarnedPoints: 100}))
	assert.True(t, EvaluateCriteria(c, CriteriaInput{EarnedPoints: 250}))
	assert.False(t, EvaluateCriteria(c, CriteriaInput{EarnedPoints: 99}))
}

func TestEvaluateCriteriaTaskCompletionCount(t *testing.T) {
	c := &models.Criteria{Type: models.CriteriaTaskCompletionCount, TaskCount: 3}

	assert.True(t, EvaluateCriteria(c, CriteriaInput{EventType: EVENT_TASK_COMPLETED, CompletedTasks: 3}))
	assert.False(t, EvaluateCriteria(c, CriteriaInput{EventType: EVENT_TASK_COMPLETED, CompletedTasks: 2}))
	// only a completion event can satisfy the count
	assert.False(t, EvaluateCriteria(c, CriteriaInput{EventType: "POINTS_EARNED", CompletedTasks: 5}))
}

func TestEvaluateCriteriaLevelReached(t *testing.T) {
	c := &models.Criteria{Type: models.CriteriaLevelReached, RequiredLevel: 3}

	assert.True(t, EvaluateCriteria(c, CriteriaInput{EventType: EVENT_LEVEL_UP, CurrentLevel: 3}))
	assert.True(t, EvaluateCriteria(c, CriteriaInput{EventType: EVENT_LEVEL_UP, CurrentLevel: 4}))
	assert.False(t, EvaluateCriteria(c, CriteriaInput{EventType: EVENT_LEVEL_UP, CurrentLevel: 2}))
	assert.False(t, EvaluateCriteria(c, CriteriaInput{EventType: "POINTS_EARNED", CurrentLevel: 5}))
}

func TestEvaluateCriteriaEventMatch(t *testing.T) {
	c := &models.Criteria{Type: models.CriteriaEventMatch, EventType: "REWARD_REDEMPTION"}

	assert.True(t, EvaluateCriteria(c, CriteriaInput{EventType: "REWARD_REDEMPTION"}))
	assert.False(t, EvaluateCriteria(c, CriteriaInput{EventType: "POINTS_EARNED"}))

	// a match-all criteria with no event type never fires
	empty := &models.Criteria{Type: models.CriteriaEventMatch}
	assert.False(t, EvaluateCriteria(empty, CriteriaInput{EventType: ""}))
}

func TestEvaluateCriteriaUnknownOrNil(t *testing.T) {
	assert.False(t, EvaluateCriteria(nil, CriteriaInput{EarnedPoints: 1000}))
	assert.False(t, EvaluateCriteria(&models.Criteria{Type: "FULL_MOON"}, CriteriaInput{EarnedPoints: 1000}))
}
