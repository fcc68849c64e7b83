package llm_test

import (
	"errors"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"neuranote.app/assistant/common/llm"
)

var _ = Describe("Render", func() {
	It("substitutes named values into the template", func() {
		out, err := llm.Render("Explain {{.title}} at {{.link}}.", map[string]any{
			"title": "Chess Basics",
			"link":  "https://example.com/chess",
		})
		Expect(err).NotTo(HaveOccurred())
		Expect(out).To(Equal("Explain Chess Basics at https://example.com/chess."))
	})

	It("fails when a placeholder has no value", func() {
		_, err := llm.Render("Explain {{.title}}.", map[string]any{})
		Expect(err).To(HaveOccurred())
	})

	It("fails on a malformed template", func() {
		_, err := llm.Render("Explain {{.title", nil)
		Expect(err).To(HaveOccurred())
	})
})

var _ = Describe("GenerationError", func() {
	It("carries the failing stage and wraps the cause", func() {
		cause := errors.New("connection refused")
		genErr := &llm.GenerationError{Stage: llm.StageRequest, Err: cause}

		Expect(genErr.Error()).To(ContainSubstring("request"))
		Expect(errors.Unwrap(genErr)).To(Equal(cause))

		var target *llm.GenerationError
		Expect(errors.As(error(genErr), &target)).To(BeTrue())
	})
})

var _ = Describe("GenerateSchema", func() {
	type exampleResponse struct {
		Explanation string `json:"explanation"`
	}

	It("reflects a non-nil schema from a response struct", func() {
		Expect(llm.GenerateSchema[exampleResponse]()).NotTo(BeNil())
	})
})

var _ = Describe("New", func() {
	It("rejects a missing API key", func() {
		_, err := llm.New(llm.Config{})
		Expect(err).To(HaveOccurred())
	})

	It("defaults the model when unset", func() {
		c, err := llm.New(llm.Config{APIKey: "test-key"})
		Expect(err).NotTo(HaveOccurred())
		Expect(c.Model()).To(Equal("gpt-4o-mini"))
	})
})
