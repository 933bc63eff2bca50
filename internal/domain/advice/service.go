package advice

import (
	"context"
	"log/slog"
	"strings"

	"github.com/yanqian/agristack/internal/infra/llm/gemini"
	apperrors "github.com/yanqian/agristack/pkg/errors"
)

// Service exposes crop-protection advice capabilities.
type Service interface {
	Advise(ctx context.Context, req Request) (Response, error)
}

type ModelClient interface {
	GenerateContent(ctx context.Context, req gemini.GenerateRequest) (gemini.GenerateResponse, error)
}

type service struct {
	cfg    Config
	client ModelClient
	logger *slog.Logger
}

// NewService wires up the advice domain.
func NewService(cfg Config, client ModelClient, logger *slog.Logger) Service {
	return &service{cfg: cfg, client: client, logger: logger.With("component", "advice.service")}
}

func (s *service) Advise(ctx context.Context, req Request) (Response, error) {
	if err := req.Validate(); err != nil {
		return Response{}, err
	}

	out, err := s.client.GenerateContent(ctx, gemini.GenerateRequest{
		Model:             s.cfg.Model,
		SystemInstruction: s.systemPrompt(),
		Prompt:            buildUserPrompt(req),
		Temperature:       s.cfg.Temperature,
		GoogleSearch:      s.cfg.GoogleSearch,
	})
	if err != nil {
		s.logger.Error("gemini request failed", "crop", req.Crop, "error", err)
		return Response{}, apperrors.Wrap(CodeModelUnavailable, "gemini request failed", err)
	}

	text := strings.TrimSpace(out.Text)
	if text == "" {
		s.logger.Warn("gemini returned no text", "finish_reason", out.FinishReason)
		return Response{}, apperrors.Wrap(CodeEmptyOutput, "model returned an empty response", nil)
	}

	resp, stage, err := normalize(text)
	if err != nil {
		s.logger.Error("gemini response malformed", "finish_reason", out.FinishReason, "error", err)
		return Response{}, err
	}

	attrs := []any{
		"crop", req.Crop,
		"parse_stage", stage,
		"products", len(resp.Products),
		"sources", len(resp.Sources),
		"grounding_chunks", len(out.GroundingURIs),
	}
	if !out.Usage.IsZero() {
		attrs = append(attrs, out.Usage.LogAttrs()...)
	}
	s.logger.Info("advice generated", attrs...)
	return resp, nil
}
