// Package planner implements the legacy planning flows: the focus assistant,
// learning path generation, and timetable validation. These predate the
// assistant surface and keep their original request and response shapes.
package planner

import (
	"context"
	"fmt"
	"log/slog"

	"neuranote.app/assistant/common/llm"
	"neuranote.app/assistant/common/logger"
)

const focusTemplate = `You are a productivity AI assistant helping a user prepare a focused work session.

Task type: {{.task_type}}
Description: {{.description}}

Predict the distractions most likely to derail this kind of work, suggest a
concrete workflow for the session, and recommend motivation techniques and
tools that fit the task.`

// FocusAdvice is the focus assistant's full answer for one session.
type FocusAdvice struct {
	PredictedDistractions []string `json:"predicted_distractions" jsonschema_description:"Distractions most likely to interrupt this task"`
	SuggestedWorkflow     string   `json:"suggested_workflow" jsonschema_description:"A step-by-step workflow for the session"`
	MotivationTips        []string `json:"motivation_tips" jsonschema_description:"Techniques to stay motivated during the session"`
	RecommendedTools      []string `json:"recommended_tools" jsonschema_description:"Apps or tools that support this kind of work"`
}

var focusSchema = llm.GenerateSchema[FocusAdvice]()

// FocusAssistant runs the focus-session advice flow.
type FocusAssistant struct {
	llm llm.Client
}

func NewFocusAssistant(client llm.Client) *FocusAssistant {
	return &FocusAssistant{llm: client}
}

func (f *FocusAssistant) Advise(ctx context.Context, taskType, description string) (*FocusAdvice, error) {
	ctx = logger.WithLogFields(ctx, logger.LogFields{Component: "planner.focus"})
	if description == "" {
		description = "No further details provided."
	}

	var advice FocusAdvice
	err := f.llm.Generate(ctx, llm.Request{
		Template:   focusTemplate,
		Vars:       map[string]any{"task_type": taskType, "description": description},
		SchemaName: "focus_advice",
		Schema:     focusSchema,
	}, &advice)
	if err != nil {
		return nil, fmt.Errorf("advising on %q session: %w", taskType, err)
	}

	slog.InfoContext(ctx, "focus advice generated",
		"task_type", taskType, "distractions", len(advice.PredictedDistractions))
	return &advice, nil
}
