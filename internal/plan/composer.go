// Package plan composes full study plans: one structured generation call for
// the plan core, one collection run for the reference links, then assembly.
package plan

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"neuranote.app/assistant/common"
	"neuranote.app/assistant/common/llm"
	"neuranote.app/assistant/common/logger"
	"neuranote.app/assistant/internal/model"
)

// planIDSuffix is appended to the slugified topic to form the plan identifier.
const planIDSuffix = "-study-plan"

const coreTemplate = `You are an expert learning coach. A student wants to study the topic "{{.topic}}".

Produce the core of a study plan:
1. A clear title for the plan.
2. A list of practical study tips.
3. A recommended learning approach (one short paragraph).
4. A piece of general advice for staying on track.
5. At least five study materials spanning at least two different types
   (e.g. book, video, course, article, practice), each with a title and,
   where known, an author.`

type coreResponse struct {
	Title            string         `json:"title" jsonschema_description:"Title of the study plan"`
	Tips             []string       `json:"tips" jsonschema_description:"Practical study tips"`
	LearningApproach string         `json:"learning_approach" jsonschema_description:"Recommended learning approach"`
	Advice           string         `json:"advice" jsonschema_description:"General advice for staying on track"`
	Materials        []coreMaterial `json:"materials" jsonschema_description:"At least five materials spanning at least two types"`
}

type coreMaterial struct {
	Type   string `json:"type" jsonschema:"enum=book,enum=video,enum=course,enum=article,enum=practice" jsonschema_description:"Kind of material"`
	Title  string `json:"title" jsonschema_description:"Material title"`
	Author string `json:"author" jsonschema_description:"Author or creator, empty when unknown"`
}

var coreSchema = llm.GenerateSchema[coreResponse]()

// LinkCollector supplies the annotated reference links for a topic. Its
// output is never empty, though it may degrade to a single fallback entry.
type LinkCollector interface {
	Collect(ctx context.Context, topic string) []model.ReferenceLink
}

// Composer builds study plans for single topics.
type Composer struct {
	llm  llm.Client
	refs LinkCollector
}

func NewComposer(client llm.Client, refs LinkCollector) *Composer {
	return &Composer{llm: client, refs: refs}
}

// Compose generates the plan core, collects reference links, and assembles
// the result. A failed core generation is fatal: there is no partial plan
// without core content.
func (c *Composer) Compose(ctx context.Context, topic string) (*model.StudyPlan, error) {
	ctx = logger.WithLogFields(ctx, logger.LogFields{
		Topic:     logger.Ptr(topic),
		Component: "assistant.plan",
	})

	start := time.Now()

	var core coreResponse
	err := c.llm.Generate(ctx, llm.Request{
		Template:   coreTemplate,
		Vars:       map[string]any{"topic": topic},
		SchemaName: "study_plan_core",
		Schema:     coreSchema,
	}, &core)
	if err != nil {
		return nil, fmt.Errorf("generating plan core for %q: %w", topic, err)
	}

	links := c.refs.Collect(ctx, topic)

	materials := make([]model.Material, len(core.Materials))
	for i, m := range core.Materials {
		materials[i] = model.Material{Type: m.Type, Title: m.Title}
		if m.Author != "" {
			author := m.Author
			materials[i].Author = &author
		}
	}

	plan := &model.StudyPlan{
		ID:               PlanID(topic),
		TopicTitle:       core.Title,
		TopicTips:        core.Tips,
		LearningApproach: core.LearningApproach,
		Advice:           core.Advice,
		Materials:        materials,
		ReferenceLinks:   links,
		// Single-topic requests always produce the first (and only) entry.
		OrderIndex: 1,
	}

	slog.InfoContext(ctx, "study plan composed",
		"plan_id", plan.ID,
		"materials", len(plan.Materials),
		"reference_links", len(plan.ReferenceLinks),
		"latency_ms", time.Since(start).Milliseconds())

	return plan, nil
}

// PlanID derives the deterministic plan identifier from the topic.
func PlanID(topic string) string {
	return common.Slugify(topic, "study-topic") + planIDSuffix
}
