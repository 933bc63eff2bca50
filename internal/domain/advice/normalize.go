package advice

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	apperrors "github.com/yanqian/agristack/pkg/errors"
)

const fence = "```"

var errNoJSONObject = errors.New("no JSON object found in model output")

// parseStage is one attempt at turning model text into a Response.
type parseStage struct {
	name  string
	parse func(text string) (Response, error)
}

// parseStages run in order; the first success wins.
var parseStages = []parseStage{
	{name: "direct", parse: parseDirect},
	{name: "extracted", parse: parseExtracted},
}

// Normalize turns raw model output into a validated Response or a malformed_model_output error.
func Normalize(raw string) (Response, error) {
	resp, _, err := normalize(raw)
	return resp, err
}

func normalize(raw string) (Response, string, error) {
	text := strings.TrimSpace(raw)
	var lastErr error
	for _, stage := range parseStages {
		resp, err := stage.parse(text)
		if err == nil {
			return resp, stage.name, nil
		}
		lastErr = err
	}
	return Response{}, "", apperrors.Wrap(CodeMalformedOutput, "model did not return valid JSON", fmt.Errorf("%w; raw output: %q", lastErr, raw))
}

func parseDirect(text string) (Response, error) {
	return decodeResponse([]byte(text))
}

func parseExtracted(text string) (Response, error) {
	candidate, err := extractObject(stripFences(text))
	if err != nil {
		return Response{}, err
	}
	return decodeResponse([]byte(candidate))
}

// stripFences keeps the text between the first and the last ``` marker. Inner markers are
// left untouched; with fewer than two markers the text is returned as is.
func stripFences(text string) string {
	first := strings.Index(text, fence)
	last := strings.LastIndex(text, fence)
	if first == -1 || first == last {
		return text
	}
	return strings.TrimSpace(text[first+len(fence) : last])
}

// extractObject returns the inclusive span from the first '{' to the last '}'.
func extractObject(text string) (string, error) {
	start := strings.Index(text, "{")
	end := strings.LastIndex(text, "}")
	if start == -1 || end == -1 || end <= start {
		return "", errNoJSONObject
	}
	return text[start : end+1], nil
}

// Keys are matched exactly; encoding/json struct decoding would accept "Summary" for "summary".
type rawObject map[string]json.RawMessage

func decodeResponse(data []byte) (Response, error) {
	var obj rawObject
	if err := json.Unmarshal(data, &obj); err != nil {
		return Response{}, err
	}

	var resp Response
	if err := obj.require("summary", "summary", &resp.Summary); err != nil {
		return Response{}, err
	}
	var rawProducts []rawObject
	if err := obj.require("products", "products", &rawProducts); err != nil {
		return Response{}, err
	}
	var rawSources []*string
	if err := obj.require("sources", "sources", &rawSources); err != nil {
		return Response{}, err
	}
	if err := obj.require("disclaimer", "disclaimer", &resp.Disclaimer); err != nil {
		return Response{}, err
	}

	resp.Products = make([]Product, 0, len(rawProducts))
	for i, p := range rawProducts {
		var product Product
		path := fmt.Sprintf("products[%d]", i)
		if err := p.require("name", path+".name", &product.Name); err != nil {
			return Response{}, err
		}
		if err := p.require("dose", path+".dose", &product.Dose); err != nil {
			return Response{}, err
		}
		if err := p.require("store_talk_hint", path+".store_talk_hint", &product.StoreTalkHint); err != nil {
			return Response{}, err
		}
		resp.Products = append(resp.Products, product)
	}

	resp.Sources = make([]string, 0, len(rawSources))
	for i, src := range rawSources {
		if src == nil {
			return Response{}, fmt.Errorf("sources[%d] must be a string", i)
		}
		resp.Sources = append(resp.Sources, *src)
	}

	return resp, nil
}

// require decodes the value stored under key into dst. Absent keys and null values are both
// reported as missing.
func (o rawObject) require(key, path string, dst any) error {
	raw, ok := o[key]
	if !ok || bytes.Equal(bytes.TrimSpace(raw), []byte("null")) {
		return missingField(path)
	}
	if err := json.Unmarshal(raw, dst); err != nil {
		return fmt.Errorf("field %s: %w", path, err)
	}
	return nil
}

func missingField(name string) error {
	return fmt.Errorf("field %s is required", name)
}
