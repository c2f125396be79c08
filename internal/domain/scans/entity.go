package scans

import (
	"time"
)

// ID tipe untuk Scan
type ScanID string

// GlowScore enum: A = cleanest, D = heaviest additive load
type GlowScore string

const (
	ScoreA GlowScore = "A"
	ScoreB GlowScore = "B"
	ScoreC GlowScore = "C"
	ScoreD GlowScore = "D"
)

// Valid reports whether the score is one of the four accepted letters.
func (g GlowScore) Valid() bool {
	switch g {
	case ScoreA, ScoreB, ScoreC, ScoreD:
		return true
	}
	return false
}

// UnknownProduct is the sentinel used when the model cannot read a name off the label.
const UnknownProduct = "Unknown Product"

// AnalysisResult is the validated output of one label analysis.
// Invariant: GlowScore is always valid and RedFlags is never nil.
type AnalysisResult struct {
	ProductName   string    `json:"product_name"`
	GlowScore     GlowScore `json:"glow_score"`
	VibeCheck     string    `json:"vibe_check"`
	RedFlags      []string  `json:"red_flags"`
	SuggestedSwap string    `json:"suggested_swap"`
}

// Aggregate Root: Scan (satu baris per analisa yang selesai)
type Scan struct {
	ID            ScanID    `json:"id"`
	ProductName   string    `json:"product_name"`
	GlowScore     GlowScore `json:"glow_score"`
	VibeCheck     string    `json:"vibe_check"`
	RedFlags      []string  `json:"red_flags"`
	SuggestedSwap string    `json:"suggested_swap"`
	ImageURL      string    `json:"image_url,omitempty"`
	CreatedAt     time.Time `json:"created_at"`
}

// NewScan derives a persistent record from a validated result.
func NewScan(id ScanID, res AnalysisResult, imageURL string, at time.Time) *Scan {
	return &Scan{
		ID:            id,
		ProductName:   res.ProductName,
		GlowScore:     res.GlowScore,
		VibeCheck:     res.VibeCheck,
		RedFlags:      res.RedFlags,
		SuggestedSwap: res.SuggestedSwap,
		ImageURL:      imageURL,
		CreatedAt:     at,
	}
}
