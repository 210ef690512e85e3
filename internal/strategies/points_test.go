package strategies

import (
	"testing"

	"gamify/internal/models"

	"github.com/stretchr/testify/assert"
)

func TestPriorityPoints(t *testing.T) {
	cases := []struct {
		priority models.TaskPriority
		want     int64
	}{
		{models.PriorityLow, 10},
		{models.PriorityMedium, 20},
		{models.PriorityHigh, 30},
		{models.PriorityCritical, 50},
		{"", 15},
		{"WHENEVER", 15},
	}

	strategy := NewPriorityPoints()
	for _, tc := range cases {
		got := strategy.CalculatePoints(&models.TaskEvent{Priority: tc.priority})
		assert.Equal(t, tc.want, got, string(tc.priority))
	}
}

func TestFlatPoints(t *testing.T) {
	strategy := NewFlatPoints(7)
	assert.Equal(t, int64(7), strategy.CalculatePoints(&models.TaskEvent{Priority: models.PriorityCritical}))
	assert.Equal(t, int64(7), strategy.CalculatePoints(&models.TaskEvent{}))
}
