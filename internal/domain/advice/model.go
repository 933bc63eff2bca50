package advice

import (
	_ "embed"
)

// Error codes surfaced by the advice domain.
const (
	CodeInvalidInput     = "invalid_input"
	CodeModelUnavailable = "model_unavailable"
	CodeEmptyOutput      = "empty_model_output"
	CodeMalformedOutput  = "malformed_model_output"
)

// DefaultSystemPrompt is the agronomy instruction sent with every request unless overridden.
//
//go:embed prompts/system.txt
var DefaultSystemPrompt string

// Request captures the crop-protection query accepted by the advice endpoint.
type Request struct {
	Crop                   string  `json:"crop"`
	Status                 string  `json:"status"`
	BBCH                   *string `json:"bbch,omitempty"`
	SeasonContext          *string `json:"season_context,omitempty"`
	TimeSinceLastSprayDays *int    `json:"time_since_last_spray_days,omitempty"`
	SituationDescription   *string `json:"situation_description,omitempty"`
}

// Product is a single recommended plant protection product.
type Product struct {
	Name          string `json:"name"`
	Dose          string `json:"dose"`
	StoreTalkHint string `json:"store_talk_hint"`
}

// Response is serialized back to API consumers.
type Response struct {
	Summary    string    `json:"summary"`
	Products   []Product `json:"products"`
	Sources    []string  `json:"sources"`
	Disclaimer string    `json:"disclaimer"`
}

// Config wires runtime dependencies for the advice domain.
type Config struct {
	Model        string
	Temperature  float32
	SystemPrompt string
	GoogleSearch bool
}
