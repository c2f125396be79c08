package scans

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"
)

var (
	ErrUnparsableResponse = errors.New("AI returned invalid JSON. Please try again with a clearer image.")
	ErrInvalidScore       = errors.New("AI returned an invalid Glow Score. Please try again.")
)

// StripFences removes leading/trailing markdown code fences from model
// output. Models sometimes wrap the JSON in ```json ... ``` despite the
// prompt forbidding it, so this runs as a normalization stage before parsing.
func StripFences(raw string) string {
	s := strings.TrimSpace(raw)
	if strings.HasPrefix(s, "```") {
		s = strings.TrimPrefix(s, "```")
		// the fence may carry a language tag, e.g. ```json or ```JSON
		if i := strings.IndexAny(s, "\n{"); i >= 0 {
			tag := strings.TrimSpace(strings.ToLower(s[:i]))
			if tag == "json" || tag == "" {
				s = s[i:]
			}
		}
	}
	s = strings.TrimSpace(s)
	s = strings.TrimSuffix(s, "```")
	return strings.TrimSpace(s)
}

// ParseAnalysis turns raw model output into a validated AnalysisResult.
// Single-shot policy: a parse or score failure is terminal for the request,
// the caller is asked to resubmit instead of retrying upstream.
func ParseAnalysis(raw string) (*AnalysisResult, error) {
	cleaned := StripFences(raw)

	// red_flags diparse longgar: kalau bukan array, dianggap kosong
	var parsed struct {
		ProductName   string          `json:"product_name"`
		GlowScore     string          `json:"glow_score"`
		VibeCheck     string          `json:"vibe_check"`
		RedFlags      json.RawMessage `json:"red_flags"`
		SuggestedSwap string          `json:"suggested_swap"`
	}
	if err := json.Unmarshal([]byte(cleaned), &parsed); err != nil {
		return nil, ErrUnparsableResponse
	}

	score := GlowScore(strings.ToUpper(strings.TrimSpace(parsed.GlowScore)))
	if !score.Valid() {
		return nil, fmt.Errorf("%w (got %q)", ErrInvalidScore, parsed.GlowScore)
	}

	redFlags := []string{}
	if len(parsed.RedFlags) > 0 {
		// coerce to empty on anything that is not a string array
		var flags []string
		if err := json.Unmarshal(parsed.RedFlags, &flags); err == nil && flags != nil {
			redFlags = flags
		}
	}

	res := &AnalysisResult{
		ProductName:   strings.TrimSpace(parsed.ProductName),
		GlowScore:     score,
		VibeCheck:     parsed.VibeCheck,
		RedFlags:      redFlags,
		SuggestedSwap: parsed.SuggestedSwap,
	}
	if res.ProductName == "" {
		res.ProductName = UnknownProduct
	}
	return res, nil
}
