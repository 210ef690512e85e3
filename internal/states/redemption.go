// Package states models the redemption lifecycle. A redemption starts in
// PROCESSING and moves exactly once to COMPLETED or CANCELLED.
package states

import (
	"errors"
	"fmt"

	"gamify/internal/models"
)

var ErrAlreadyFinalized = errors.New("redemption already finalized")

type State interface {
	Status() models.RedemptionStatus
	// Transition returns the next state or rejects the move.
	Transition(to models.RedemptionStatus) (State, error)
}

// ForStatus returns the state machine positioned at status.
func ForStatus(status models.RedemptionStatus) (State, error) {
	switch status {
	case models.RedemptionProcessing:
		return processingState{}, nil
	case models.RedemptionCompleted:
		return completedState{}, nil
	case models.RedemptionCancelled:
		return cancelledState{}, nil
	}
	return nil, fmt.Errorf("unknown redemption status %q", status)
}

type processingState struct{}

func (processingState) Status() models.RedemptionStatus { return models.RedemptionProcessing }

func (processingState) Transition(to models.RedemptionStatus) (State, error) {
	switch to {
	case models.RedemptionCompleted:
		return completedState{}, nil
	case models.RedemptionCancelled:
		return cancelledState{}, nil
	case models.RedemptionProcessing:
		return nil, fmt.Errorf("redemption is already processing")
	}
	return nil, fmt.Errorf("unknown redemption status %q", to)
}

type completedState struct{}

func (completedState) Status() models.RedemptionStatus { return models.RedemptionCompleted }

func (completedState) Transition(to models.RedemptionStatus) (State, error) {
	return nil, ErrAlreadyFinalized
}

type cancelledState struct{}

func (cancelledState) Status() models.RedemptionStatus { return models.RedemptionCancelled }

func (cancelledState) Transition(to models.RedemptionStatus) (State, error) {
	return nil, ErrAlreadyFinalized
}
