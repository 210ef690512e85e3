// Package strategies holds the pluggable pieces of the points engine: how a
// task maps to points and how achievement criteria evaluate.
package strategies

import "gamify/internal/models"

const (
	POINTS_PRIORITY_LOW      = 10
	POINTS_PRIORITY_MEDIUM   = 20
	POINTS_PRIORITY_HIGH     = 30
	POINTS_PRIORITY_CRITICAL = 50
	POINTS_PRIORITY_DEFAULT  = 15
)

// PriorityPoints awards by task priority. Unknown or missing priorities get
// the default award.
type PriorityPoints struct{}

func NewPriorityPoints() *PriorityPoints {
	return &PriorityPoints{}
}

func (PriorityPoints) CalculatePoints(event *models.TaskEvent) int64 {
	switch event.Priority {
	case models.PriorityLow:
		return POINTS_PRIORITY_LOW
	case models.PriorityMedium:
		return POINTS_PRIORITY_MEDIUM
	case models.PriorityHigh:
		return POINTS_PRIORITY_HIGH
	case models.PriorityCritical:
		return POINTS_PRIORITY_CRITICAL
	}
	return POINTS_PRIORITY_DEFAULT
}

// FlatPoints awards the same amount for every task regardless of priority.
type FlatPoints struct {
	Amount int64
}

func NewFlatPoints(amount int64) *FlatPoints {
	return &FlatPoints{Amount: amount}
}

func (s FlatPoints) CalculatePoints(event *models.TaskEvent) int64 {
	return s.Amount
}
