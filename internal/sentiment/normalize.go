package sentiment

import (
	"log/slog"
	"math"
	"strconv"
	"strings"

	"github.com/spacesedan/sentiaura/internal/models"
	"github.com/tidwall/gjson"
)

const (
	fieldScore    = "sentiment_score"
	fieldLabel    = "sentiment_label"
	fieldKeywords = "keywords"
)

// ParseResult turns raw model output into an AnalysisResult.
//
// The document itself must be a JSON object; anything else is an error. Inside
// the object each field is coerced on its own: a missing (or null) field takes
// its default, while a present field of the wrong type is handled per field.
func ParseResult(raw string) (models.AnalysisResult, error) {
	var result models.AnalysisResult

	cleaned := cleanModelResponse(raw)
	if cleaned == "" {
		return result, ErrEmptyResponse
	}
	if !gjson.Valid(cleaned) {
		return result, ErrInvalidJSON
	}

	doc := gjson.Parse(cleaned)
	if !doc.IsObject() {
		return result, ErrNotAnObject
	}

	fields := lastFields(doc)

	score, err := coerceScore(fields[fieldScore])
	if err != nil {
		return result, err
	}

	result.SentimentScore = score
	result.SentimentLabel = coerceLabel(fields[fieldLabel])
	result.Keywords = coerceKeywords(fields[fieldKeywords])

	return result, nil
}

// lastFields collects the known top-level fields. When a key repeats, the last
// occurrence wins, as with a standard JSON object decode.
func lastFields(doc gjson.Result) map[string]gjson.Result {
	fields := make(map[string]gjson.Result, 3)
	doc.ForEach(func(key, value gjson.Result) bool {
		switch key.Str {
		case fieldScore, fieldLabel, fieldKeywords:
			fields[key.Str] = value
		}
		return true
	})
	return fields
}

func absent(value gjson.Result) bool {
	return !value.Exists() || value.Type == gjson.Null
}

func coerceScore(value gjson.Result) (float64, error) {
	if absent(value) {
		return models.DefaultSentimentScore, nil
	}

	var score float64
	switch value.Type {
	case gjson.Number:
		score = value.Num
	case gjson.True:
		score = 1
	case gjson.False:
		score = 0
	case gjson.String:
		parsed, err := strconv.ParseFloat(strings.TrimSpace(value.Str), 64)
		if err != nil {
			return 0, ErrInvalidScore
		}
		score = parsed
	default:
		return 0, ErrInvalidScore
	}

	if math.IsNaN(score) || math.IsInf(score, 0) {
		return 0, ErrInvalidScore
	}

	return models.ClampScore(score), nil
}

func coerceLabel(value gjson.Result) models.SentimentLabel {
	if absent(value) {
		return models.DefaultSentimentLabel
	}

	if value.Type == gjson.String {
		if label, ok := models.ParseSentimentLabel(value.Str); ok {
			return label
		}
	}

	slog.Warn("[SentimentAnalyzer] Model returned an unknown sentiment label, using default",
		slog.String("label", value.Raw),
		slog.String("default", string(models.DefaultSentimentLabel)))
	return models.DefaultSentimentLabel
}

func coerceKeywords(value gjson.Result) []string {
	keywords := []string{}
	if absent(value) {
		return keywords
	}
	if !value.IsArray() {
		slog.Debug("[SentimentAnalyzer] keywords is not an array, ignoring",
			slog.String("keywords", value.Raw))
		return keywords
	}

	for _, item := range value.Array() {
		if len(keywords) == models.MaxKeywords {
			break
		}
		keywords = append(keywords, keywordString(item))
	}
	return keywords
}

func keywordString(item gjson.Result) string {
	if item.Type == gjson.String {
		return item.Str
	}
	return strings.TrimSpace(item.Raw)
}
