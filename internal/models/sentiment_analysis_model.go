package models

import "strings"

type SentimentLabel string

const (
	SentimentNegative SentimentLabel = "negative"
	SentimentNeutral  SentimentLabel = "neutral"
	SentimentPositive SentimentLabel = "positive"
)

const (
	DefaultSentimentScore = 0.5
	DefaultSentimentLabel = SentimentNeutral
	MaxKeywords           = 10

	negativeUpperBound = 0.4
	neutralUpperBound  = 0.6
)

// AnalysisRequest is the body accepted by POST /process_text.
type AnalysisRequest struct {
	Text string `json:"text" binding:"required"`
}

type AnalysisResult struct {
	SentimentScore float64        `json:"sentiment_score"`
	SentimentLabel SentimentLabel `json:"sentiment_label"`
	Keywords       []string       `json:"keywords"`
}

func (l SentimentLabel) Valid() bool {
	switch l {
	case SentimentNegative, SentimentNeutral, SentimentPositive:
		return true
	}
	return false
}

// ParseSentimentLabel accepts any casing and surrounding whitespace.
func ParseSentimentLabel(raw string) (SentimentLabel, bool) {
	label := SentimentLabel(strings.ToLower(strings.TrimSpace(raw)))
	if !label.Valid() {
		return "", false
	}
	return label, true
}

// BandForScore maps a score to the label its band implies:
// [0, 0.4) negative, [0.4, 0.6) neutral, [0.6, 1] positive.
func BandForScore(score float64) SentimentLabel {
	switch {
	case score < negativeUpperBound:
		return SentimentNegative
	case score < neutralUpperBound:
		return SentimentNeutral
	default:
		return SentimentPositive
	}
}

// ClampScore pins a score into [0, 1].
func ClampScore(score float64) float64 {
	if score < 0 {
		return 0
	}
	if score > 1 {
		return 1
	}
	return score
}
