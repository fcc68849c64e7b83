package prompt_test

import (
	"context"
	"errors"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"neuranote.app/assistant/common/logger"
	"neuranote.app/assistant/internal/model"
	"neuranote.app/assistant/internal/prompt"
)

var _ = Describe("KeywordClassifier", func() {
	var classifier prompt.KeywordClassifier

	It("routes prompts mentioning blockers to the blocker flow", func() {
		c := classifier.Classify("What blockers might I hit while refactoring?")
		Expect(c.Kind).To(Equal(prompt.KindBlocker))
	})

	It("routes prompts pairing task with focus to the blocker flow", func() {
		c := classifier.Classify("My task needs two hours of focus")
		Expect(c.Kind).To(Equal(prompt.KindBlocker))
	})

	It("extracts task and focus time from the task marker", func() {
		c := classifier.Classify("I have a task: write report for 2 hours")
		Expect(c.Kind).To(Equal(prompt.KindBlocker))
		Expect(c.Task).To(Equal("write report"))
		Expect(c.FocusTime).To(Equal("2 hours"))
	})

	It("falls back to placeholder parameters when extraction finds nothing", func() {
		c := classifier.Classify("any blockers ahead?")
		Expect(c.Task).To(Equal("my current task"))
		Expect(c.FocusTime).To(Equal("an unspecified duration"))
	})

	It("extracts only the task when no duration follows", func() {
		c := classifier.Classify("task: fix the login bug")
		Expect(c.Task).To(Equal("fix the login bug"))
		Expect(c.FocusTime).To(Equal("an unspecified duration"))
	})

	It("treats everything else as a study topic using the whole prompt", func() {
		c := classifier.Classify("  graph theory  ")
		Expect(c.Kind).To(Equal(prompt.KindStudyTopic))
		Expect(c.Topic).To(Equal("graph theory"))
	})
})

var _ = Describe("Router", func() {
	var (
		composer   *mockComposer
		identifier *mockIdentifier
		router     *prompt.Router
		ctx        context.Context
	)

	BeforeEach(func() {
		composer = &mockComposer{}
		identifier = &mockIdentifier{}
		router = prompt.NewRouter(nil, composer, identifier)
		ctx = context.Background()
	})

	Describe("blocker prompts", func() {
		It("renders identified blockers as a numbered list with solutions", func() {
			identifier.IdentifyFunc = func(ctx context.Context, task, focusTime string) ([]model.Blocker, error) {
				return []model.Blocker{
					{Blocker: "Notification noise", Solution: "Silence the phone"},
					{Blocker: "Unclear scope", Solution: "Write the outline first"},
				}, nil
			}

			text := router.Respond(ctx, "I have a task: write report for 2 hours")

			Expect(text).To(ContainSubstring("1. Notification noise"))
			Expect(text).To(ContainSubstring("Solution: Silence the phone"))
			Expect(text).To(ContainSubstring("2. Unclear scope"))
			Expect(identifier.tasks).To(Equal([]string{"write report"}))
			Expect(identifier.focusTimes).To(Equal([]string{"2 hours"}))
		})

		It("reports when no blockers were identified", func() {
			text := router.Respond(ctx, "any blockers today?")
			Expect(text).To(Equal("No blockers identified for this task."))
		})

		It("renders identification failures as error text", func() {
			identifier.IdentifyFunc = func(ctx context.Context, task, focusTime string) ([]model.Blocker, error) {
				return nil, errors.New("model unavailable")
			}

			text := router.Respond(ctx, "any blockers today?")
			Expect(text).To(Equal("Error: model unavailable"))
		})

		It("never invokes the plan composer", func() {
			router.Respond(ctx, "any blockers today?")
			Expect(composer.calls).To(BeEmpty())
		})
	})

	Describe("study topic prompts", func() {
		It("renders the composed plan with materials and reference links", func() {
			composer.ComposeFunc = func(ctx context.Context, topic string) (*model.StudyPlan, error) {
				return &model.StudyPlan{
					ID:               "graph-theory-study-plan",
					TopicTitle:       "Graph Theory",
					TopicTips:        []string{"Draw the graphs by hand"},
					LearningApproach: "Alternate theory with exercises",
					Advice:           "Start with small graphs",
					Materials: []model.Material{
						{Type: "book", Title: "Introduction to Graph Theory", Author: logger.Ptr("West")},
						{Type: "video", Title: "Graph algorithms crash course"},
					},
					ReferenceLinks: []model.ReferenceLink{
						{Link: "https://example.com/graphs", Explanation: "A walkthrough of core concepts."},
					},
				}, nil
			}

			text := router.Respond(ctx, "graph theory")

			Expect(text).To(ContainSubstring("Study plan: Graph Theory"))
			Expect(text).To(ContainSubstring("Learning approach: Alternate theory with exercises"))
			Expect(text).To(ContainSubstring("- Draw the graphs by hand"))
			Expect(text).To(ContainSubstring("Advice: Start with small graphs"))
			Expect(text).To(ContainSubstring("- Introduction to Graph Theory (book) by West"))
			Expect(text).To(ContainSubstring("- Graph algorithms crash course (video) by N/A"))
			Expect(text).To(ContainSubstring("- https://example.com/graphs: A walkthrough of core concepts."))
			Expect(composer.calls).To(Equal([]string{"graph theory"}))
		})

		It("renders a fixed message when the plan carries no reference links", func() {
			composer.ComposeFunc = func(ctx context.Context, topic string) (*model.StudyPlan, error) {
				return &model.StudyPlan{
					TopicTitle: "Graph Theory",
					Advice:     "Start with small graphs",
				}, nil
			}

			text := router.Respond(ctx, "graph theory")

			Expect(text).To(ContainSubstring("No reference links found for this topic."))
		})

		It("renders composition failures as error text", func() {
			composer.ComposeFunc = func(ctx context.Context, topic string) (*model.StudyPlan, error) {
				return nil, errors.New("generation failed")
			}

			text := router.Respond(ctx, "graph theory")
			Expect(text).To(Equal("Error: generation failed"))
		})

		It("never invokes the blocker identifier", func() {
			router.Respond(ctx, "graph theory")
			Expect(identifier.tasks).To(BeEmpty())
		})
	})
})
