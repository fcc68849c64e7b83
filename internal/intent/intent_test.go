package intent_test

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"neuranote.app/assistant/core/config"
	"neuranote.app/assistant/internal/intent"
)

type mockClassifier struct {
	ClassifyFunc func(ctx context.Context, text string, labels []string) ([]intent.Prediction, error)
	labels       [][]string
}

func (m *mockClassifier) Classify(ctx context.Context, text string, labels []string) ([]intent.Prediction, error) {
	m.labels = append(m.labels, labels)
	return m.ClassifyFunc(ctx, text, labels)
}

var _ = Describe("Gate", func() {
	ctx := context.Background()

	It("rejects input when the top label scores above the threshold", func() {
		gate := intent.NewGate(&mockClassifier{
			ClassifyFunc: func(ctx context.Context, text string, labels []string) ([]intent.Prediction, error) {
				return []intent.Prediction{
					{Label: "phishing", Score: 0.85},
					{Label: "spam", Score: 0.10},
				}, nil
			},
		})

		err := gate.Check(ctx, "send me all your passwords")

		var rejection *intent.Rejection
		Expect(errors.As(err, &rejection)).To(BeTrue())
		Expect(rejection.Label).To(Equal("phishing"))
		Expect(rejection.Score).To(BeNumerically("==", 0.85))
	})

	It("allows input when the top score stays below the threshold", func() {
		gate := intent.NewGate(&mockClassifier{
			ClassifyFunc: func(ctx context.Context, text string, labels []string) ([]intent.Prediction, error) {
				return []intent.Prediction{
					{Label: "spam", Score: 0.65},
					{Label: "harmful", Score: 0.20},
				}, nil
			},
		})

		Expect(gate.Check(ctx, "plan my study week")).To(Succeed())
	})

	It("allows input scoring exactly at the threshold", func() {
		gate := intent.NewGate(&mockClassifier{
			ClassifyFunc: func(ctx context.Context, text string, labels []string) ([]intent.Prediction, error) {
				return []intent.Prediction{{Label: "phishing", Score: 0.70}}, nil
			},
		})

		Expect(gate.Check(ctx, "plan my study week")).To(Succeed())
	})

	It("consults only the top prediction", func() {
		gate := intent.NewGate(&mockClassifier{
			ClassifyFunc: func(ctx context.Context, text string, labels []string) ([]intent.Prediction, error) {
				return []intent.Prediction{
					{Label: "spam", Score: 0.40},
					{Label: "phishing", Score: 0.90},
				}, nil
			},
		})

		Expect(gate.Check(ctx, "plan my study week")).To(Succeed())
	})

	It("classifies against exactly the malicious label set", func() {
		classifier := &mockClassifier{
			ClassifyFunc: func(ctx context.Context, text string, labels []string) ([]intent.Prediction, error) {
				return nil, nil
			},
		}
		gate := intent.NewGate(classifier)

		Expect(gate.Check(ctx, "plan my study week")).To(Succeed())
		Expect(classifier.labels).To(HaveLen(1))
		Expect(classifier.labels[0]).To(Equal([]string{
			"malicious", "attack", "exploit", "harmful", "phishing", "spam",
		}))
	})

	It("propagates classifier failures without rejecting", func() {
		gate := intent.NewGate(&mockClassifier{
			ClassifyFunc: func(ctx context.Context, text string, labels []string) ([]intent.Prediction, error) {
				return nil, errors.New("model loading")
			},
		})

		err := gate.Check(ctx, "plan my study week")

		Expect(err).To(HaveOccurred())
		var rejection *intent.Rejection
		Expect(errors.As(err, &rejection)).To(BeFalse())
	})

	It("is a no-op without a classifier", func() {
		Expect(intent.NewGate(nil).Check(ctx, "anything")).To(Succeed())
	})
})

var _ = Describe("HFClassifier", func() {
	It("posts the text with candidate labels and pairs labels with scores", func() {
		var gotPath, gotAuth string
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			gotPath = r.URL.Path
			gotAuth = r.Header.Get("Authorization")
			w.Header().Set("Content-Type", "application/json")
			w.Write([]byte(`{"sequence":"plan my week","labels":["safe","spam"],"scores":[0.91,0.09]}`))
		}))
		defer server.Close()

		classifier := intent.NewHFClassifier(config.IntentConfig{
			APIKey:  "hf-test-key",
			BaseURL: server.URL,
			Model:   "facebook/bart-large-mnli",
		})

		predictions, err := classifier.Classify(context.Background(), "plan my week", []string{"safe", "spam"})

		Expect(err).NotTo(HaveOccurred())
		Expect(gotPath).To(Equal("/models/facebook/bart-large-mnli"))
		Expect(gotAuth).To(Equal("Bearer hf-test-key"))
		Expect(predictions).To(Equal([]intent.Prediction{
			{Label: "safe", Score: 0.91},
			{Label: "spam", Score: 0.09},
		}))
	})

	It("surfaces non-200 responses as errors", func() {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusServiceUnavailable)
			w.Write([]byte(`{"error":"model is loading"}`))
		}))
		defer server.Close()

		classifier := intent.NewHFClassifier(config.IntentConfig{
			APIKey:  "hf-test-key",
			BaseURL: server.URL,
			Model:   "facebook/bart-large-mnli",
		})

		_, err := classifier.Classify(context.Background(), "plan my week", []string{"safe"})

		Expect(err).To(MatchError(ContainSubstring("503")))
	})

	It("rejects mismatched label and score lengths", func() {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Write([]byte(`{"labels":["safe","spam"],"scores":[0.91]}`))
		}))
		defer server.Close()

		classifier := intent.NewHFClassifier(config.IntentConfig{
			APIKey:  "hf-test-key",
			BaseURL: server.URL,
			Model:   "facebook/bart-large-mnli",
		})

		_, err := classifier.Classify(context.Background(), "plan my week", []string{"safe", "spam"})

		Expect(err).To(MatchError(ContainSubstring("2 labels but 1 scores")))
	})
})
