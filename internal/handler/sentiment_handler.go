package handler

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/spacesedan/sentiaura/internal/models"
	"github.com/spacesedan/sentiaura/internal/sentiment"
)

const analyzeFailedMessage = "Failed to analyze text"

type Analyzer interface {
	Analyze(ctx context.Context, text string) (models.AnalysisResult, error)
}

type SentimentHandler struct {
	analyzer Analyzer
}

func NewSentimentHandler(analyzer Analyzer) *SentimentHandler {
	return &SentimentHandler{analyzer: analyzer}
}

func (h *SentimentHandler) GetHealth(c *gin.Context) {
	c.JSON(http.StatusOK, HealthResponse{Status: "ok"})
}

// ProcessText validates the body before the analyzer is ever called.
func (h *SentimentHandler) ProcessText(c *gin.Context) {
	var req models.AnalysisRequest
	if err := bindJSONBody(c, &req); err != nil {
		slog.Debug("[Gateway] Rejected invalid request body",
			slog.String("error", err.Error()),
			requestIDAttr(c))
		c.JSON(http.StatusUnprocessableEntity, ValidationErrorResponse{
			Detail: validationDetails(err, req),
		})
		return
	}

	result, err := h.analyzer.Analyze(c.Request.Context(), req.Text)
	if err != nil {
		var analysisErr *sentiment.AnalysisError
		if errors.As(err, &analysisErr) {
			slog.Error("[Gateway] Text analysis failed",
				slog.String("kind", string(analysisErr.Kind)),
				slog.String("error", err.Error()),
				requestIDAttr(c))
		} else {
			slog.Error("[Gateway] Unexpected error from analyzer",
				slog.String("error", err.Error()),
				requestIDAttr(c))
			c.Error(err)
		}
		c.JSON(http.StatusInternalServerError, ErrorResponse{Detail: analyzeFailedMessage})
		return
	}

	if !result.SentimentLabel.Valid() {
		slog.Error("[Gateway] Analyzer produced a label outside the response contract",
			slog.String("sentiment_label", string(result.SentimentLabel)),
			requestIDAttr(c))
		c.JSON(http.StatusInternalServerError, ErrorResponse{Detail: analyzeFailedMessage})
		return
	}
	if result.Keywords == nil {
		result.Keywords = []string{}
	}

	c.JSON(http.StatusOK, result)
}
