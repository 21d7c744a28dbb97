package sentiment

import (
	"context"
	"log/slog"
	"time"
	"unicode/utf8"

	"github.com/spacesedan/sentiaura/internal/models"
)

// Completer is the remote model: one system instruction plus one user text in,
// one text blob out.
type Completer interface {
	Complete(ctx context.Context, systemPrompt, userText string) (string, error)
}

type Analyzer struct {
	completer Completer
	vader     *VaderChecker
}

type Option func(*Analyzer)

// WithVaderCrossCheck logs when the model's label disagrees with a local VADER score.
func WithVaderCrossCheck(checker *VaderChecker) Option {
	return func(a *Analyzer) {
		a.vader = checker
	}
}

func NewAnalyzer(completer Completer, opts ...Option) *Analyzer {
	a := &Analyzer{completer: completer}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

// Analyze asks the remote model to score text and normalizes its answer.
// Every failure is an *AnalysisError; nothing is retried here.
func (a *Analyzer) Analyze(ctx context.Context, text string) (models.AnalysisResult, error) {
	start := time.Now()

	raw, err := a.completer.Complete(ctx, SystemPrompt, text)
	if err != nil {
		return models.AnalysisResult{}, upstreamError(err)
	}

	result, err := ParseResult(raw)
	if err != nil {
		slog.Error("[SentimentAnalyzer] Failed to parse model response",
			slog.String("error", err.Error()),
			getPreview(raw))
		return models.AnalysisResult{}, parseError(err)
	}

	a.crossCheck(text, result)

	slog.Info("[SentimentAnalyzer] Text analyzed",
		slog.Float64("sentiment_score", result.SentimentScore),
		slog.String("sentiment_label", string(result.SentimentLabel)),
		slog.Int("keywords", len(result.Keywords)),
		slog.Duration("elapsed", time.Since(start)))

	return result, nil
}

func (a *Analyzer) crossCheck(text string, result models.AnalysisResult) {
	if band := models.BandForScore(result.SentimentScore); band != result.SentimentLabel {
		slog.Warn("[SentimentAnalyzer] Model label does not match its score band",
			slog.Float64("sentiment_score", result.SentimentScore),
			slog.String("sentiment_label", string(result.SentimentLabel)),
			slog.String("band", string(band)))
	}

	if a.vader == nil {
		return
	}
	compound, label := a.vader.Analyze(text)
	if label != result.SentimentLabel {
		slog.Debug("[SentimentAnalyzer] Model label disagrees with VADER",
			slog.String("sentiment_label", string(result.SentimentLabel)),
			slog.String("vader_label", string(label)),
			slog.Float64("vader_compound", compound))
	}
}

const previewLen = 100

func getPreview(raw string) slog.Attr {
	return slog.String("raw_response", preview(raw))
}

// preview cuts raw to at most previewLen bytes without splitting a rune.
func preview(raw string) string {
	if len(raw) <= previewLen {
		return raw
	}
	cut := previewLen
	for cut > 0 && !utf8.RuneStart(raw[cut]) {
		cut--
	}
	return raw[:cut] + "..."
}
