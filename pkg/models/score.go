package models

// ScoreBand classifies a 1-5 score for display.
type ScoreBand string

const (
	ScoreBandGood ScoreBand = "good"
	ScoreBandFair ScoreBand = "fair"
	ScoreBandPoor ScoreBand = "poor"
)

// MaxScore is the top of the technical and professionalism scales.
const MaxScore = 5

// BandFor returns the display band of a score. Scores are not range-checked.
func BandFor(score int) ScoreBand {
	switch {
	case score >= 4:
		return ScoreBandGood
	case score >= 3:
		return ScoreBandFair
	default:
		return ScoreBandPoor
	}
}
