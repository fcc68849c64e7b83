package planner

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"

	"neuranote.app/assistant/common/logger"
	"neuranote.app/assistant/internal/intent"
	"neuranote.app/assistant/internal/model"
)

// IntentGate screens serialized requests before they are accepted.
type IntentGate interface {
	Check(ctx context.Context, text string) error
}

// TimetableRequest is the legacy timetable payload.
type TimetableRequest struct {
	TimeSlots   []model.TimeSlot `json:"time_slots"`
	Preferences map[string]any   `json:"preferences,omitempty"`
	Constraints map[string]any   `json:"constraints,omitempty"`
}

// Timetable is the validated schedule plus the formats it can be exported to.
type Timetable struct {
	Timetable     []model.TimeSlot `json:"timetable"`
	ExportOptions []string         `json:"export_options"`
}

var exportOptions = []string{"pdf", "text"}

// TimetableBuilder validates timetable requests. The flow has never involved
// a model call: the slots are screened and echoed back as the schedule.
type TimetableBuilder struct {
	gate IntentGate
}

func NewTimetableBuilder(gate IntentGate) *TimetableBuilder {
	return &TimetableBuilder{gate: gate}
}

// Build screens the serialized request through the intent gate, then returns
// the slots unchanged. A flagged request surfaces as *intent.Rejection.
func (t *TimetableBuilder) Build(ctx context.Context, req TimetableRequest) (*Timetable, error) {
	ctx = logger.WithLogFields(ctx, logger.LogFields{Component: "planner.timetable"})

	if t.gate != nil {
		serialized, err := json.Marshal(req)
		if err != nil {
			return nil, fmt.Errorf("serializing timetable request: %w", err)
		}
		if err := t.gate.Check(ctx, string(serialized)); err != nil {
			var rejection *intent.Rejection
			if errors.As(err, &rejection) {
				slog.WarnContext(ctx, "timetable request rejected",
					"label", rejection.Label, "score", rejection.Score)
			}
			return nil, err
		}
	}

	slog.InfoContext(ctx, "timetable accepted", "slots", len(req.TimeSlots))
	return &Timetable{Timetable: req.TimeSlots, ExportOptions: exportOptions}, nil
}
