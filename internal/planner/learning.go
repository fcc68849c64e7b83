package planner

import (
	"context"
	"fmt"
	"log/slog"
	"strconv"
	"strings"

	"neuranote.app/assistant/common/llm"
	"neuranote.app/assistant/common/logger"
	"neuranote.app/assistant/internal/model"
)

const learningTemplate = `You are a learning path planner.

Topic: {{.topic}}
Total duration: {{.duration_days}} days
Current level: {{.level}}
Daily availability (minutes): {{.availability}}

Recommend concrete learning resources (courses, videos, exercises) for this
topic and level, and lay out a day-by-day study schedule that fits the stated
availability. Schedule keys are "day_1" through "day_{{.duration_days}}".`

type learningResponse struct {
	Resources     []resourceItem    `json:"resources" jsonschema_description:"Recommended learning resources"`
	StudySchedule map[string]string `json:"study_schedule" jsonschema_description:"Map of day_N to that day's plan"`
}

type resourceItem struct {
	Title string `json:"title" jsonschema_description:"Resource title"`
	URL   string `json:"url" jsonschema_description:"Where to find the resource"`
	Type  string `json:"type" jsonschema:"enum=course,enum=video,enum=exercise" jsonschema_description:"Kind of resource"`
	Free  bool   `json:"free" jsonschema_description:"Whether the resource is free"`
}

var learningSchema = llm.GenerateSchema[learningResponse]()

// LearningPath is a generated study plan over a fixed number of days.
type LearningPath struct {
	Resources     []model.LearningResource `json:"resources"`
	StudySchedule map[string]string        `json:"study_schedule"`
}

// PathPlanner runs the learning path flow.
type PathPlanner struct {
	llm llm.Client
}

func NewPathPlanner(client llm.Client) *PathPlanner {
	return &PathPlanner{llm: client}
}

func (p *PathPlanner) Plan(ctx context.Context, topic string, durationDays int, level string, availabilityPerDay []int) (*LearningPath, error) {
	ctx = logger.WithLogFields(ctx, logger.LogFields{
		Component: "planner.learning",
		Topic:     logger.Ptr(topic),
	})

	availability := "not specified"
	if len(availabilityPerDay) > 0 {
		minutes := make([]string, len(availabilityPerDay))
		for i, m := range availabilityPerDay {
			minutes[i] = strconv.Itoa(m)
		}
		availability = strings.Join(minutes, ", ")
	}

	var resp learningResponse
	err := p.llm.Generate(ctx, llm.Request{
		Template: learningTemplate,
		Vars: map[string]any{
			"topic":         topic,
			"duration_days": durationDays,
			"level":         level,
			"availability":  availability,
		},
		SchemaName: "learning_path",
		Schema:     learningSchema,
	}, &resp)
	if err != nil {
		return nil, fmt.Errorf("planning learning path for %q: %w", topic, err)
	}

	resources := make([]model.LearningResource, len(resp.Resources))
	for i, r := range resp.Resources {
		resources[i] = model.LearningResource{Title: r.Title, URL: r.URL, Type: r.Type, Free: r.Free}
	}

	slog.InfoContext(ctx, "learning path generated",
		"topic", logger.Truncate(topic, 80), "resources", len(resources), "days", durationDays)
	return &LearningPath{Resources: resources, StudySchedule: resp.StudySchedule}, nil
}
