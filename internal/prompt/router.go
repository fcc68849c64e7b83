package prompt

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"neuranote.app/assistant/common/logger"
	"neuranote.app/assistant/internal/model"
)

// PlanComposer builds a full study plan for a topic.
type PlanComposer interface {
	Compose(ctx context.Context, topic string) (*model.StudyPlan, error)
}

// BlockerIdentifier surfaces likely blockers for a task and focus window.
type BlockerIdentifier interface {
	Identify(ctx context.Context, task, focusTime string) ([]model.Blocker, error)
}

const (
	noBlockersText  = "No blockers identified for this task."
	noPlanText      = "No study plan could be generated for this topic."
	noLinksText     = "No reference links found for this topic."
	unexpectedError = "An unexpected error occurred while processing your request."
)

// Router classifies a raw prompt and dispatches it to the matching flow,
// rendering the structured result back into display text. Respond never
// returns an error: failures surface as human-readable text so the generate
// endpoint always answers.
type Router struct {
	classifier Classifier
	plans      PlanComposer
	blockers   BlockerIdentifier
}

func NewRouter(classifier Classifier, plans PlanComposer, blockers BlockerIdentifier) *Router {
	if classifier == nil {
		classifier = KeywordClassifier{}
	}
	return &Router{classifier: classifier, plans: plans, blockers: blockers}
}

func (r *Router) Respond(ctx context.Context, prompt string) string {
	c := r.classifier.Classify(prompt)

	switch c.Kind {
	case KindBlocker:
		ctx = logger.WithLogFields(ctx, logger.LogFields{Component: "prompt_router", Topic: logger.Ptr(c.Task)})
		blockers, err := r.blockers.Identify(ctx, c.Task, c.FocusTime)
		if err != nil {
			slog.ErrorContext(ctx, "blocker identification failed", "error", err)
			return "Error: " + err.Error()
		}
		return renderBlockers(blockers)
	case KindStudyTopic:
		ctx = logger.WithLogFields(ctx, logger.LogFields{Component: "prompt_router", Topic: logger.Ptr(c.Topic)})
		plan, err := r.plans.Compose(ctx, c.Topic)
		if err != nil {
			slog.ErrorContext(ctx, "study plan composition failed", "error", err)
			return "Error: " + err.Error()
		}
		return renderPlan(plan)
	default:
		return unexpectedError
	}
}

func renderBlockers(blockers []model.Blocker) string {
	if len(blockers) == 0 {
		return noBlockersText
	}
	var b strings.Builder
	b.WriteString("Potential blockers:\n")
	for i, blocker := range blockers {
		fmt.Fprintf(&b, "%d. %s\n   Solution: %s\n", i+1, blocker.Blocker, blocker.Solution)
	}
	return strings.TrimRight(b.String(), "\n")
}

func renderPlan(plan *model.StudyPlan) string {
	if plan == nil {
		return noPlanText
	}
	var b strings.Builder
	fmt.Fprintf(&b, "Study plan: %s\n\n", plan.TopicTitle)
	if plan.LearningApproach != "" {
		fmt.Fprintf(&b, "Learning approach: %s\n\n", plan.LearningApproach)
	}
	if len(plan.TopicTips) > 0 {
		b.WriteString("Tips:\n")
		for _, tip := range plan.TopicTips {
			fmt.Fprintf(&b, "- %s\n", tip)
		}
		b.WriteString("\n")
	}
	if plan.Advice != "" {
		fmt.Fprintf(&b, "Advice: %s\n\n", plan.Advice)
	}
	if len(plan.Materials) > 0 {
		b.WriteString("Materials:\n")
		for _, m := range plan.Materials {
			author := "N/A"
			if m.Author != nil && *m.Author != "" {
				author = *m.Author
			}
			fmt.Fprintf(&b, "- %s (%s) by %s\n", m.Title, m.Type, author)
		}
		b.WriteString("\n")
	}
	if len(plan.ReferenceLinks) > 0 {
		b.WriteString("Reference links:\n")
		for _, ref := range plan.ReferenceLinks {
			fmt.Fprintf(&b, "- %s: %s\n", ref.Link, ref.Explanation)
		}
	} else {
		// The collector guarantees at least a fallback link, but a plan
		// arriving without any still renders a readable message.
		b.WriteString(noLinksText)
	}
	return strings.TrimRight(b.String(), "\n")
}
