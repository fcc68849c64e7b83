// Package blockers predicts obstacles for a stated task and focus window.
package blockers

import (
	"context"
	"fmt"
	"log/slog"

	"neuranote.app/assistant/common/llm"
	"neuranote.app/assistant/common/logger"
	"neuranote.app/assistant/internal/model"
)

const identifyTemplate = `You are a productivity AI assistant. A user is about to focus on a task.

Task: {{.task}}
Planned focus time: {{.focus_time}}

Predict the most likely blockers (distractions, obstacles, failure modes) for
this task within that focus window, and pair each blocker with one concrete,
actionable solution.`

type identifyResponse struct {
	PotentialBlockers []blockerItem `json:"potential_blockers" jsonschema_description:"Predicted blockers, each paired with a solution"`
}

type blockerItem struct {
	Blocker  string `json:"blocker" jsonschema_description:"The predicted obstacle"`
	Solution string `json:"solution" jsonschema_description:"A concrete way to avoid or resolve it"`
}

var identifySchema = llm.GenerateSchema[identifyResponse]()

// Identifier runs the blocker-prediction flow.
type Identifier struct {
	llm llm.Client
}

func NewIdentifier(client llm.Client) *Identifier {
	return &Identifier{llm: client}
}

// Identify returns predicted blocker/solution pairs for the task. Generation
// failure is fatal here; callers decide how to render it.
func (i *Identifier) Identify(ctx context.Context, task, focusTime string) ([]model.Blocker, error) {
	ctx = logger.WithLogFields(ctx, logger.LogFields{Component: "assistant.blockers"})

	var resp identifyResponse
	err := i.llm.Generate(ctx, llm.Request{
		Template:   identifyTemplate,
		Vars:       map[string]any{"task": task, "focus_time": focusTime},
		SchemaName: "potential_blockers",
		Schema:     identifySchema,
	}, &resp)
	if err != nil {
		return nil, fmt.Errorf("identifying blockers for %q: %w", task, err)
	}

	blockers := make([]model.Blocker, len(resp.PotentialBlockers))
	for idx, b := range resp.PotentialBlockers {
		blockers[idx] = model.Blocker{Blocker: b.Blocker, Solution: b.Solution}
	}

	slog.InfoContext(ctx, "blockers identified", "task", logger.Truncate(task, 80), "count", len(blockers))
	return blockers, nil
}
