package sentiment

import (
	"regexp"
	"strings"

	"github.com/jonreiter/govader"
	"github.com/russross/blackfriday/v2"
	"github.com/spacesedan/sentiaura/internal/models"
)

const vaderThreshold = 0.20

var (
	markdownLinkPattern = regexp.MustCompile(`\[(.*?)\]\((https?:\/\/[^\s\)]+)\)`)
	urlPattern          = regexp.MustCompile(`https?://\S+|www\.\S+`)
	htmlTagPattern      = regexp.MustCompile(`<[^>]+>`)
)

// VaderChecker scores text locally with VADER. Its output is only used to flag
// model labels that look off; it never changes a result.
type VaderChecker struct {
	analyzer *govader.SentimentIntensityAnalyzer
}

func NewVaderChecker() *VaderChecker {
	return &VaderChecker{analyzer: govader.NewSentimentIntensityAnalyzer()}
}

func RemoveLinks(input string) string {
	input = markdownLinkPattern.ReplaceAllString(input, "$1")
	return urlPattern.ReplaceAllString(input, "")
}

func ConvertMarkdownToText(input string) string {
	output := blackfriday.Run([]byte(input), blackfriday.WithNoExtensions())
	plainText := htmlTagPattern.ReplaceAllString(string(output), " ")
	plainText = strings.Join(strings.Fields(plainText), " ")

	return RemoveLinks(plainText)
}

// Analyze returns the VADER compound score in [-1, 1] and its label.
func (v *VaderChecker) Analyze(text string) (float64, models.SentimentLabel) {
	plainText := ConvertMarkdownToText(text)

	score := v.analyzer.PolarityScores(plainText).Compound

	var label models.SentimentLabel
	if score >= vaderThreshold {
		label = models.SentimentPositive
	} else if score <= -vaderThreshold {
		label = models.SentimentNegative
	} else {
		label = models.SentimentNeutral
	}

	return score, label
}
