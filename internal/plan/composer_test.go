package plan_test

import (
	"context"
	"encoding/json"
	"errors"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"neuranote.app/assistant/common/llm"
	"neuranote.app/assistant/internal/model"
	"neuranote.app/assistant/internal/plan"
)

type mockLLM struct {
	generateFn func(ctx context.Context, req llm.Request, result any) error
}

func (m *mockLLM) Generate(ctx context.Context, req llm.Request, result any) error {
	return m.generateFn(ctx, req, result)
}

func (m *mockLLM) Model() string { return "mock-model" }

type mockCollector struct {
	links  []model.ReferenceLink
	topics []string
}

func (m *mockCollector) Collect(_ context.Context, topic string) []model.ReferenceLink {
	m.topics = append(m.topics, topic)
	return m.links
}

func fillCore(result any) error {
	payload, _ := json.Marshal(map[string]any{
		"title":             "Mastering Chess",
		"tips":              []string{"Practice daily", "Review your games"},
		"learning_approach": "Alternate study and play.",
		"advice":            "Consistency beats intensity.",
		"materials": []map[string]any{
			{"type": "book", "title": "My System", "author": "Aron Nimzowitsch"},
			{"type": "video", "title": "Opening Principles", "author": ""},
			{"type": "course", "title": "Endgame Fundamentals", "author": "Jesus de la Villa"},
			{"type": "practice", "title": "Daily Tactics", "author": ""},
			{"type": "article", "title": "How to Analyze", "author": ""},
		},
	})
	return json.Unmarshal(payload, result)
}

var _ = Describe("Composer", func() {
	var (
		generator *mockLLM
		collector *mockCollector
		composer  *plan.Composer
		ctx       context.Context
	)

	BeforeEach(func() {
		generator = &mockLLM{generateFn: func(_ context.Context, _ llm.Request, result any) error {
			return fillCore(result)
		}}
		collector = &mockCollector{links: []model.ReferenceLink{
			{Link: "https://example.com/chess", Explanation: "A chess resource."},
		}}
		composer = plan.NewComposer(generator, collector)
		ctx = context.Background()
	})

	It("assembles the plan from the generated core and collected links", func() {
		p, err := composer.Compose(ctx, "chess")

		Expect(err).NotTo(HaveOccurred())
		Expect(p.TopicTitle).To(Equal("Mastering Chess"))
		Expect(p.TopicTips).To(HaveLen(2))
		Expect(p.LearningApproach).To(Equal("Alternate study and play."))
		Expect(p.Advice).To(Equal("Consistency beats intensity."))
		Expect(p.Materials).To(HaveLen(5))
		Expect(p.ReferenceLinks).To(Equal(collector.links))
	})

	It("derives the identifier deterministically from the topic", func() {
		p, err := composer.Compose(ctx, "Graph Theory")

		Expect(err).NotTo(HaveOccurred())
		Expect(p.ID).To(Equal("graph-theory-study-plan"))
	})

	It("fixes the ordering index at one", func() {
		p, err := composer.Compose(ctx, "chess")

		Expect(err).NotTo(HaveOccurred())
		Expect(p.OrderIndex).To(Equal(1))
	})

	It("collects links for the same topic as the core call", func() {
		_, err := composer.Compose(ctx, "chess")

		Expect(err).NotTo(HaveOccurred())
		Expect(collector.topics).To(Equal([]string{"chess"}))
	})

	It("propagates a failed core generation without composing a partial plan", func() {
		genErr := &llm.GenerationError{Stage: llm.StageRequest, Err: errors.New("unreachable")}
		generator.generateFn = func(_ context.Context, _ llm.Request, _ any) error {
			return genErr
		}

		p, err := composer.Compose(ctx, "chess")

		Expect(p).To(BeNil())
		var target *llm.GenerationError
		Expect(errors.As(err, &target)).To(BeTrue())
		Expect(collector.topics).To(BeEmpty())
	})

	It("omits the author pointer when the generated author is empty", func() {
		p, err := composer.Compose(ctx, "chess")

		Expect(err).NotTo(HaveOccurred())
		Expect(p.Materials[0].Author).NotTo(BeNil())
		Expect(*p.Materials[0].Author).To(Equal("Aron Nimzowitsch"))
		Expect(p.Materials[1].Author).To(BeNil())
	})
})

var _ = Describe("PlanID", func() {
	It("lowercases, hyphenates, and suffixes the topic", func() {
		Expect(plan.PlanID("Linear Algebra")).To(Equal("linear-algebra-study-plan"))
	})

	It("falls back to a generic stem for unusable topics", func() {
		Expect(plan.PlanID("@#$")).To(Equal("study-topic-study-plan"))
	})
})
