package gemini

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"google.golang.org/genai"

	"github.com/yanqian/agristack/pkg/metrics"
)

const (
	defaultModel   = "gemini-flash-latest"
	defaultTimeout = 60 * time.Second
)

// GenerateRequest is a single-shot generation call with an optional system instruction.
type GenerateRequest struct {
	Model             string
	SystemInstruction string
	Prompt            string
	Temperature       float32
	GoogleSearch      bool
}

// GenerateResponse carries the model's raw text plus call metadata.
type GenerateResponse struct {
	Text          string
	FinishReason  string
	GroundingURIs []string
	Usage         metrics.TokenUsage
}

// Client wraps the official genai client for the Gemini API backend.
type Client struct {
	cli     *genai.Client
	timeout time.Duration
}

// NewClient constructs a Gemini client.
func NewClient(ctx context.Context, apiKey string, timeout time.Duration) (*Client, error) {
	if strings.TrimSpace(apiKey) == "" {
		return nil, errors.New("gemini api key cannot be empty")
	}
	cli, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  apiKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("create genai client: %w", err)
	}
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	return &Client{cli: cli, timeout: timeout}, nil
}

// GenerateContent performs one GenerateContent call bounded by the client timeout.
// Empty model output is not an error here; callers decide what to do with it.
func (c *Client) GenerateContent(ctx context.Context, req GenerateRequest) (GenerateResponse, error) {
	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	model := strings.TrimSpace(req.Model)
	if model == "" {
		model = defaultModel
	}
	resp, err := c.cli.Models.GenerateContent(ctx, model,
		[]*genai.Content{genai.NewContentFromText(req.Prompt, genai.RoleUser)},
		buildConfig(req),
	)
	if err != nil {
		return GenerateResponse{}, fmt.Errorf("generate content: %w", err)
	}
	return toResponse(resp), nil
}

func buildConfig(req GenerateRequest) *genai.GenerateContentConfig {
	cfg := &genai.GenerateContentConfig{
		Temperature: genai.Ptr(req.Temperature),
	}
	if instruction := strings.TrimSpace(req.SystemInstruction); instruction != "" {
		cfg.SystemInstruction = &genai.Content{Parts: []*genai.Part{{Text: instruction}}}
	}
	if req.GoogleSearch {
		cfg.Tools = []*genai.Tool{{GoogleSearch: &genai.GoogleSearch{}}}
	}
	return cfg
}

func toResponse(resp *genai.GenerateContentResponse) GenerateResponse {
	out := GenerateResponse{Text: responseText(resp)}
	if resp == nil {
		return out
	}
	if len(resp.Candidates) > 0 && resp.Candidates[0] != nil {
		cand := resp.Candidates[0]
		out.FinishReason = string(cand.FinishReason)
		out.GroundingURIs = groundingURIs(cand)
	}
	if u := resp.UsageMetadata; u != nil {
		out.Usage = metrics.TokenUsage{
			PromptTokens:     int(u.PromptTokenCount),
			CompletionTokens: int(u.CandidatesTokenCount),
			ToolTokens:       int(u.ToolUsePromptTokenCount),
			TotalTokens:      int(u.TotalTokenCount),
		}
	}
	return out
}

// responseText joins the text parts of the first candidate, skipping thought summaries.
func responseText(resp *genai.GenerateContentResponse) string {
	if resp == nil || len(resp.Candidates) == 0 {
		return ""
	}
	cand := resp.Candidates[0]
	if cand == nil || cand.Content == nil {
		return ""
	}
	var b strings.Builder
	for _, part := range cand.Content.Parts {
		if part == nil || part.Thought || part.Text == "" {
			continue
		}
		b.WriteString(part.Text)
	}
	return strings.TrimSpace(b.String())
}

func groundingURIs(cand *genai.Candidate) []string {
	if cand.GroundingMetadata == nil {
		return nil
	}
	var uris []string
	for _, chunk := range cand.GroundingMetadata.GroundingChunks {
		if chunk == nil || chunk.Web == nil || chunk.Web.URI == "" {
			continue
		}
		uris = append(uris, chunk.Web.URI)
	}
	return uris
}
