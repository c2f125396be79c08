package scans

// ScoreMeta holds the fixed display attributes for one Glow Score letter.
// Presentation only; not part of the analysis contract.
type ScoreMeta struct {
	Label       string `json:"label"`
	Description string `json:"description"`
	Background  string `json:"bg"`
	Border      string `json:"border"`
	Text        string `json:"text"`
}

// ScoreMetadata maps each score letter to its display tuple.
var ScoreMetadata = map[GlowScore]ScoreMeta{
	ScoreA: {
		Label:       "Clean",
		Description: "Excellent ingredient profile",
		Background:  "#E8F5E9",
		Border:      "#C8E6C9",
		Text:        "#2E7D32",
	},
	ScoreB: {
		Label:       "Good",
		Description: "Mostly wholesome ingredients",
		Background:  "#FFFDE7",
		Border:      "#FFF9C4",
		Text:        "#F57F17",
	},
	ScoreC: {
		Label:       "Fair",
		Description: "Some processed ingredients",
		Background:  "#FFF3E0",
		Border:      "#FFE0B2",
		Text:        "#E65100",
	},
	ScoreD: {
		Label:       "Avoid",
		Description: "Heavy industrial additives",
		Background:  "#FFEBEE",
		Border:      "#FFCDD2",
		Text:        "#B71C1C",
	},
}
