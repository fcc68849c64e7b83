package intent

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"neuranote.app/assistant/core/config"
)

const defaultInferenceBaseURL = "https://api-inference.huggingface.co"

// HFClassifier calls the Hugging Face inference API's zero-shot pipeline.
type HFClassifier struct {
	apiKey  string
	baseURL string
	model   string
	client  *http.Client
}

func NewHFClassifier(cfg config.IntentConfig) *HFClassifier {
	baseURL := cfg.BaseURL
	if baseURL == "" {
		baseURL = defaultInferenceBaseURL
	}
	return &HFClassifier{
		apiKey:  cfg.APIKey,
		baseURL: baseURL,
		model:   cfg.Model,
		client:  &http.Client{Timeout: 30 * time.Second},
	}
}

// NewHFClassifierWithClient is intended for tests.
func NewHFClassifierWithClient(cfg config.IntentConfig, client *http.Client) *HFClassifier {
	c := NewHFClassifier(cfg)
	c.client = client
	return c
}

type zeroShotRequest struct {
	Inputs     string             `json:"inputs"`
	Parameters zeroShotParameters `json:"parameters"`
}

type zeroShotParameters struct {
	CandidateLabels []string `json:"candidate_labels"`
}

type zeroShotResponse struct {
	Labels []string  `json:"labels"`
	Scores []float64 `json:"scores"`
}

func (c *HFClassifier) Classify(ctx context.Context, text string, labels []string) ([]Prediction, error) {
	body, err := json.Marshal(zeroShotRequest{
		Inputs:     text,
		Parameters: zeroShotParameters{CandidateLabels: labels},
	})
	if err != nil {
		return nil, fmt.Errorf("encoding zero-shot request: %w", err)
	}

	url := fmt.Sprintf("%s/models/%s", c.baseURL, c.model)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("building zero-shot request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+c.apiKey)
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("calling inference API: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		raw, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		return nil, fmt.Errorf("inference API returned %d: %s", resp.StatusCode, raw)
	}

	var parsed zeroShotResponse
	if err := json.NewDecoder(resp.Body).Decode(&parsed); err != nil {
		return nil, fmt.Errorf("decoding zero-shot response: %w", err)
	}
	if len(parsed.Labels) != len(parsed.Scores) {
		return nil, fmt.Errorf("inference API returned %d labels but %d scores", len(parsed.Labels), len(parsed.Scores))
	}

	predictions := make([]Prediction, len(parsed.Labels))
	for i, label := range parsed.Labels {
		predictions[i] = Prediction{Label: label, Score: parsed.Scores[i]}
	}
	return predictions, nil
}
