// Package llm is the structured generation client: it renders an instruction
// template, sends it to the chat-completion provider with a strict JSON-schema
// response format, and decodes the output into the caller's struct.
package llm

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"text/template"
	"time"

	"github.com/invopop/jsonschema"
	"github.com/openai/openai-go"
	"github.com/openai/openai-go/option"
)

type Client interface {
	Generate(ctx context.Context, req Request, result any) error
	Model() string
}

// Request is one structured generation call: an instruction template with
// named placeholders, a mapping supplying values for every placeholder, and
// the target schema the provider output must conform to.
type Request struct {
	Template    string
	Vars        map[string]any
	SchemaName  string
	Schema      any
	MaxTokens   int
	Temperature *float64 // nil = model default, explicit 0 = deterministic
}

type Config struct {
	APIKey    string
	BaseURL   string
	Model     string
	MaxTokens int
}

type client struct {
	openai    openai.Client
	model     string
	maxTokens int
}

func New(cfg Config) (Client, error) {
	if cfg.APIKey == "" {
		return nil, fmt.Errorf("API key is required")
	}

	opts := []option.RequestOption{
		option.WithAPIKey(cfg.APIKey),
	}
	if cfg.BaseURL != "" {
		opts = append(opts, option.WithBaseURL(cfg.BaseURL))
	}

	model := cfg.Model
	if model == "" {
		model = "gpt-4o-mini"
	}
	maxTokens := cfg.MaxTokens
	if maxTokens == 0 {
		maxTokens = 4096
	}

	return &client{
		openai:    openai.NewClient(opts...),
		model:     model,
		maxTokens: maxTokens,
	}, nil
}

func (c *client) Generate(ctx context.Context, req Request, result any) error {
	prompt, err := Render(req.Template, req.Vars)
	if err != nil {
		return genErr(StageRender, err)
	}

	maxTokens := req.MaxTokens
	if maxTokens == 0 {
		maxTokens = c.maxTokens
	}

	schemaParam := openai.ResponseFormatJSONSchemaJSONSchemaParam{
		Name:        req.SchemaName,
		Description: openai.String("Structured response schema"),
		Schema:      req.Schema,
		Strict:      openai.Bool(true),
	}

	params := openai.ChatCompletionNewParams{
		Model:     c.model,
		Messages:  []openai.ChatCompletionMessageParamUnion{openai.UserMessage(prompt)},
		MaxTokens: openai.Int(int64(maxTokens)),
		ResponseFormat: openai.ChatCompletionNewParamsResponseFormatUnion{
			OfJSONSchema: &openai.ResponseFormatJSONSchemaParam{
				JSONSchema: schemaParam,
			},
		},
	}
	if req.Temperature != nil {
		params.Temperature = openai.Float(*req.Temperature)
	}

	start := time.Now()
	resp, err := c.openai.Chat.Completions.New(ctx, params)
	if err != nil {
		return genErr(StageRequest, err)
	}

	slog.DebugContext(ctx, "generation completed",
		"model", c.model,
		"schema", req.SchemaName,
		"duration_ms", time.Since(start).Milliseconds(),
		"prompt_tokens", resp.Usage.PromptTokens,
		"completion_tokens", resp.Usage.CompletionTokens)

	if len(resp.Choices) == 0 {
		return genErr(StageDecode, fmt.Errorf("no choices in response"))
	}

	content := resp.Choices[0].Message.Content
	if err := json.Unmarshal([]byte(content), result); err != nil {
		return genErr(StageDecode, fmt.Errorf("unmarshal response: %w", err))
	}

	return nil
}

func (c *client) Model() string {
	return c.model
}

// Render substitutes the named values into the instruction template.
func Render(tmpl string, vars map[string]any) (string, error) {
	t, err := template.New("instruction").Option("missingkey=error").Parse(tmpl)
	if err != nil {
		return "", fmt.Errorf("parsing template: %w", err)
	}
	var buf bytes.Buffer
	if err := t.Execute(&buf, vars); err != nil {
		return "", fmt.Errorf("rendering template: %w", err)
	}
	return buf.String(), nil
}

// GenerateSchema reflects a strict JSON schema from a response struct type.
func GenerateSchema[T any]() any {
	reflector := jsonschema.Reflector{
		AllowAdditionalProperties: false,
		DoNotReference:            true,
	}
	var v T
	return reflector.Reflect(v)
}

// Temp returns a pointer to a temperature value for Request.Temperature.
func Temp(t float64) *float64 {
	return &t
}
