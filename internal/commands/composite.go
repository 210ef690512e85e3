package commands

import (
	"context"
	"fmt"

	"gamify/internal/models"
)

// Composite runs a batch of commands in order. Execution stops at the first
// infrastructure error; per-command warnings accumulate on the combined
// result.
type Composite struct {
	commands []Command
}

func NewComposite(commands ...Command) *Composite {
	return &Composite{commands: commands}
}

func (c *Composite) Add(cmd Command) {
	c.commands = append(c.commands, cmd)
}

func (c *Composite) Execute(ctx context.Context) (*models.TaskEventResult, error) {
	combined := &models.TaskEventResult{}
	for i, cmd := range c.commands {
		result, err := cmd.Execute(ctx)
		if err != nil {
			return combined, fmt.Errorf("command %d: %w", i, err)
		}
		combined.Event = result.Event
		combined.PointsAwarded += result.PointsAwarded
		combined.Warnings = append(combined.Warnings, result.Warnings...)
	}
	return combined, nil
}
