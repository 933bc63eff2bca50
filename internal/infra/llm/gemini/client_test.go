package gemini

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"
	"google.golang.org/genai"

	"github.com/yanqian/agristack/pkg/metrics"
)

func TestNewClientRequiresAPIKey(t *testing.T) {
	_, err := NewClient(context.Background(), "  ", 0)
	require.EqualError(t, err, "gemini api key cannot be empty")
}

func TestBuildConfig(t *testing.T) {
	cfg := buildConfig(GenerateRequest{
		SystemInstruction: "  Jesteś ekspertem ochrony roślin.  ",
		Temperature:       0.7,
		GoogleSearch:      true,
	})

	require.NotNil(t, cfg.Temperature)
	require.InDelta(t, 0.7, *cfg.Temperature, 1e-6)
	require.NotNil(t, cfg.SystemInstruction)
	require.Len(t, cfg.SystemInstruction.Parts, 1)
	require.Equal(t, "Jesteś ekspertem ochrony roślin.", cfg.SystemInstruction.Parts[0].Text)
	require.Len(t, cfg.Tools, 1)
	require.NotNil(t, cfg.Tools[0].GoogleSearch)
}

func TestBuildConfigWithoutSearchOrInstruction(t *testing.T) {
	cfg := buildConfig(GenerateRequest{Temperature: 0})

	require.Nil(t, cfg.SystemInstruction)
	require.Empty(t, cfg.Tools)
	require.NotNil(t, cfg.Temperature)
	require.Zero(t, *cfg.Temperature)
}

func TestResponseText(t *testing.T) {
	tests := []struct {
		name string
		resp *genai.GenerateContentResponse
		want string
	}{
		{name: "nil response", resp: nil, want: ""},
		{name: "no candidates", resp: &genai.GenerateContentResponse{}, want: ""},
		{
			name: "candidate without content",
			resp: &genai.GenerateContentResponse{Candidates: []*genai.Candidate{{}}},
			want: "",
		},
		{
			name: "joins text parts and skips thoughts",
			resp: &genai.GenerateContentResponse{Candidates: []*genai.Candidate{{
				Content: &genai.Content{Parts: []*genai.Part{
					{Text: "planning the answer", Thought: true},
					{Text: "  {\"summary\":"},
					nil,
					{Text: "\"ok\"}\n"},
				}},
			}}},
			want: "{\"summary\":\"ok\"}",
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			require.Equal(t, tt.want, responseText(tt.resp))
		})
	}
}

func TestToResponseMetadata(t *testing.T) {
	resp := &genai.GenerateContentResponse{
		Candidates: []*genai.Candidate{{
			Content:      &genai.Content{Parts: []*genai.Part{{Text: "{}"}}},
			FinishReason: genai.FinishReasonStop,
			GroundingMetadata: &genai.GroundingMetadata{
				GroundingChunks: []*genai.GroundingChunk{
					{Web: &genai.GroundingChunkWeb{URI: "https://www.topagrar.pl/a"}},
					{},
					{Web: &genai.GroundingChunkWeb{URI: "https://www.farmer.pl/b"}},
				},
			},
		}},
		UsageMetadata: &genai.GenerateContentResponseUsageMetadata{
			PromptTokenCount:        1200,
			CandidatesTokenCount:    180,
			ToolUsePromptTokenCount: 40,
			TotalTokenCount:         1420,
		},
	}

	out := toResponse(resp)
	require.Equal(t, "{}", out.Text)
	require.Equal(t, string(genai.FinishReasonStop), out.FinishReason)
	require.Equal(t, []string{"https://www.topagrar.pl/a", "https://www.farmer.pl/b"}, out.GroundingURIs)
	require.Equal(t, metrics.TokenUsage{PromptTokens: 1200, CompletionTokens: 180, ToolTokens: 40, TotalTokens: 1420}, out.Usage)
}
