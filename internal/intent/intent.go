// Package intent screens free-text input for malicious intent before it is
// accepted by the planning endpoints. Classification runs against a hosted
// zero-shot model, so the gate degrades to a no-op when no API key is set.
package intent

import (
	"context"
	"fmt"
)

// Prediction is one candidate label with its classifier confidence.
type Prediction struct {
	Label string
	Score float64
}

// Classifier scores a text against a set of candidate labels.
type Classifier interface {
	Classify(ctx context.Context, text string, labels []string) ([]Prediction, error)
}

// Rejection is returned when input scores above the malicious threshold.
// Handlers map it to a client error rather than a server fault.
type Rejection struct {
	Label string
	Score float64
}

func (r *Rejection) Error() string {
	return fmt.Sprintf("request rejected: input classified as %q with score %.2f", r.Label, r.Score)
}

// scoreThreshold mirrors the cutoff the planning service has always used:
// a request is rejected only when the top score strictly exceeds it.
const scoreThreshold = 0.7

// candidateLabels is exactly the malicious label set. Adding benign labels
// would change the zero-shot score normalization and shift which requests
// cross the threshold.
var candidateLabels = []string{
	"malicious", "attack", "exploit", "harmful", "phishing", "spam",
}

var maliciousLabels = map[string]bool{
	"malicious": true,
	"attack":    true,
	"exploit":   true,
	"harmful":   true,
	"phishing":  true,
	"spam":      true,
}

// Gate runs the malicious-intent check. A nil classifier disables the gate.
type Gate struct {
	classifier Classifier
}

func NewGate(classifier Classifier) *Gate {
	return &Gate{classifier: classifier}
}

// Check classifies text and returns a *Rejection when the top label is
// malicious with a score strictly above the threshold. The inference API
// returns predictions sorted by score, so only the first one is consulted.
// Classifier failures propagate as errors so callers can distinguish an
// outage from a rejection.
func (g *Gate) Check(ctx context.Context, text string) error {
	if g == nil || g.classifier == nil {
		return nil
	}

	predictions, err := g.classifier.Classify(ctx, text, candidateLabels)
	if err != nil {
		return fmt.Errorf("intent classification: %w", err)
	}
	if len(predictions) == 0 {
		return nil
	}

	if top := predictions[0]; maliciousLabels[top.Label] && top.Score > scoreThreshold {
		return &Rejection{Label: top.Label, Score: top.Score}
	}
	return nil
}
