package handler

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/assert/v2"
	"github.com/spacesedan/sentiaura/internal/models"
	"github.com/spacesedan/sentiaura/internal/sentiment"
)

const testOrigin = "http://localhost:5173"

type fakeAnalyzer struct {
	result models.AnalysisResult
	err    error
	panics bool

	calls int
	text  string
}

func (f *fakeAnalyzer) Analyze(ctx context.Context, text string) (models.AnalysisResult, error) {
	f.calls++
	f.text = text
	if f.panics {
		panic("analyzer blew up")
	}
	return f.result, f.err
}

type fakeCompleter struct {
	response string
}

func (f *fakeCompleter) Complete(ctx context.Context, systemPrompt, userText string) (string, error) {
	return f.response, nil
}

func newTestRouter(analyzer Analyzer) *gin.Engine {
	gin.SetMode(gin.TestMode)
	return NewRouter([]string{testOrigin}, NewSentimentHandler(analyzer))
}

func postText(r *gin.Engine, body string) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	req := httptest.NewRequest("POST", "/process_text", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	r.ServeHTTP(w, req)
	return w
}

func TestGetHealth(t *testing.T) {
	analyzer := &fakeAnalyzer{err: errors.New("model unreachable")}
	r := newTestRouter(analyzer)

	w := httptest.NewRecorder()
	req := httptest.NewRequest("GET", "/health", nil)
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, `{"status":"ok"}`, w.Body.String())
	assert.Equal(t, 0, analyzer.calls)
}

func TestProcessText_Success(t *testing.T) {
	analyzer := &fakeAnalyzer{result: models.AnalysisResult{
		SentimentScore: 0.9,
		SentimentLabel: models.SentimentPositive,
		Keywords:       []string{"a", "b", "c"},
	}}
	r := newTestRouter(analyzer)

	w := postText(r, `{"text":"I love sunny days"}`)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, 1, analyzer.calls)
	assert.Equal(t, "I love sunny days", analyzer.text)

	var res models.AnalysisResult
	json.Unmarshal(w.Body.Bytes(), &res)
	assert.Equal(t, 0.9, res.SentimentScore)
	assert.Equal(t, models.SentimentPositive, res.SentimentLabel)
	assert.Equal(t, []string{"a", "b", "c"}, res.Keywords)
	assert.NotEqual(t, "", w.Header().Get(requestIDHeader))
}

func TestProcessText_NilKeywordsSerializeAsEmptyList(t *testing.T) {
	analyzer := &fakeAnalyzer{result: models.AnalysisResult{
		SentimentScore: 0.5,
		SentimentLabel: models.SentimentNeutral,
	}}
	r := newTestRouter(analyzer)

	w := postText(r, `{"text":"ok"}`)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, `{"sentiment_score":0.5,"sentiment_label":"neutral","keywords":[]}`, w.Body.String())
}

func TestProcessText_ValidationNeverReachesAnalyzer(t *testing.T) {
	tests := []struct {
		name    string
		body    string
		wantLoc []string
	}{
		{"empty text", `{"text":""}`, []string{"body", "text"}},
		{"missing text", `{}`, []string{"body", "text"}},
		{"null text", `{"text":null}`, []string{"body", "text"}},
		{"wrong type", `{"text":42}`, []string{"body", "text"}},
		{"empty body", ``, []string{"body"}},
		{"not JSON", `text=hello`, []string{"body"}},
		{"array body", `["hello"]`, []string{"body"}},
		{"trailing data", `{"text":"hi"} junk`, []string{"body"}},
		{"second document", `{"text":"hi"}{"text":"again"}`, []string{"body"}},
		{"whitespace body", " \n\t", []string{"body"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			analyzer := &fakeAnalyzer{}
			r := newTestRouter(analyzer)

			w := postText(r, tt.body)

			assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
			assert.Equal(t, 0, analyzer.calls)

			var res ValidationErrorResponse
			json.Unmarshal(w.Body.Bytes(), &res)
			assert.Equal(t, 1, len(res.Detail))
			assert.Equal(t, tt.wantLoc, res.Detail[0].Loc)
		})
	}
}

func TestProcessText_WhitespaceTextIsAccepted(t *testing.T) {
	analyzer := &fakeAnalyzer{result: models.AnalysisResult{SentimentScore: 0.5, SentimentLabel: models.SentimentNeutral}}
	r := newTestRouter(analyzer)

	w := postText(r, `{"text":"   "}`)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, 1, analyzer.calls)
}

func TestProcessText_AnalysisErrorsAreOpaque(t *testing.T) {
	tests := []struct {
		name string
		err  error
	}{
		{"upstream", &sentiment.AnalysisError{Kind: sentiment.KindUpstream, Err: errors.New("401 invalid api key sk-secret")}},
		{"parse", &sentiment.AnalysisError{Kind: sentiment.KindParse, Err: sentiment.ErrInvalidJSON}},
		{"unclassified", errors.New("something unexpected")},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := newTestRouter(&fakeAnalyzer{err: tt.err})

			w := postText(r, `{"text":"hello"}`)

			assert.Equal(t, http.StatusInternalServerError, w.Code)
			assert.Equal(t, `{"detail":"Failed to analyze text"}`, w.Body.String())
		})
	}
}

func TestProcessText_PanicIsOpaque(t *testing.T) {
	r := newTestRouter(&fakeAnalyzer{panics: true})

	w := postText(r, `{"text":"hello"}`)

	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.Equal(t, `{"detail":"Failed to analyze text"}`, w.Body.String())
}

func TestProcessText_OutOfContractLabelIsOpaque(t *testing.T) {
	r := newTestRouter(&fakeAnalyzer{result: models.AnalysisResult{SentimentScore: 0.5, SentimentLabel: "mixed"}})

	w := postText(r, `{"text":"hello"}`)

	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.Equal(t, `{"detail":"Failed to analyze text"}`, w.Body.String())
}

func TestProcessText_TruncatedModelOutputEndToEnd(t *testing.T) {
	analyzer := sentiment.NewAnalyzer(&fakeCompleter{response: `{"sentiment_score": 0.9, "sentim`})
	r := newTestRouter(analyzer)

	w := postText(r, `{"text":"hello"}`)

	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.Equal(t, `{"detail":"Failed to analyze text"}`, w.Body.String())
}

func TestProcessText_NormalizedModelOutputEndToEnd(t *testing.T) {
	analyzer := sentiment.NewAnalyzer(&fakeCompleter{
		response: `{"sentiment_label":"negative","keywords":["k1","k2","k3","k4","k5","k6","k7","k8","k9","k10","k11"]}`,
	})
	r := newTestRouter(analyzer)

	w := postText(r, `{"text":"rainy monday"}`)

	assert.Equal(t, http.StatusOK, w.Code)

	var res models.AnalysisResult
	json.Unmarshal(w.Body.Bytes(), &res)
	assert.Equal(t, 0.5, res.SentimentScore)
	assert.Equal(t, models.SentimentNegative, res.SentimentLabel)
	assert.Equal(t, 10, len(res.Keywords))
	assert.Equal(t, "k10", res.Keywords[9])
}

func TestCORS_AllowedOriginPreflight(t *testing.T) {
	r := newTestRouter(&fakeAnalyzer{})

	w := httptest.NewRecorder()
	req := httptest.NewRequest("OPTIONS", "/process_text", nil)
	req.Header.Set("Origin", testOrigin)
	req.Header.Set("Access-Control-Request-Method", "POST")
	req.Header.Set("Access-Control-Request-Headers", "Content-Type")
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusNoContent, w.Code)
	assert.Equal(t, testOrigin, w.Header().Get("Access-Control-Allow-Origin"))
	assert.Equal(t, "true", w.Header().Get("Access-Control-Allow-Credentials"))
}

func TestCORS_DisallowedOrigin(t *testing.T) {
	analyzer := &fakeAnalyzer{}
	r := newTestRouter(analyzer)

	w := httptest.NewRecorder()
	req := httptest.NewRequest("POST", "/process_text", strings.NewReader(`{"text":"hello"}`))
	req.Header.Set("Origin", "https://evil.example.com")
	req.Header.Set("Content-Type", "application/json")
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusForbidden, w.Code)
	assert.Equal(t, "", w.Header().Get("Access-Control-Allow-Origin"))
	assert.Equal(t, 0, analyzer.calls)
}

func TestRequestLogger_ReusesCallerRequestID(t *testing.T) {
	r := newTestRouter(&fakeAnalyzer{})

	w := httptest.NewRecorder()
	req := httptest.NewRequest("GET", "/health", nil)
	req.Header.Set(requestIDHeader, "req-123")
	r.ServeHTTP(w, req)

	assert.Equal(t, "req-123", w.Header().Get(requestIDHeader))
}
