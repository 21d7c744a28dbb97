package sentiment

import (
	"errors"
	"fmt"
)

type ErrorKind string

const (
	// KindUpstream covers remote call failures: network, timeout, auth, rate limit.
	KindUpstream ErrorKind = "upstream"
	// KindParse covers model output that cannot be turned into a result.
	KindParse ErrorKind = "parse"
)

var (
	ErrInvalidJSON   = errors.New("model response is not valid JSON")
	ErrNotAnObject   = errors.New("model response is not a JSON object")
	ErrInvalidScore  = errors.New("sentiment_score is not a finite number")
	ErrEmptyResponse = errors.New("model response is empty")
)

// AnalysisError is the only error type Analyze returns.
type AnalysisError struct {
	Kind ErrorKind
	Err  error
}

func (e *AnalysisError) Error() string {
	return fmt.Sprintf("sentiment analysis %s error: %v", e.Kind, e.Err)
}

func (e *AnalysisError) Unwrap() error {
	return e.Err
}

func upstreamError(err error) error {
	return &AnalysisError{Kind: KindUpstream, Err: err}
}

func parseError(err error) error {
	return &AnalysisError{Kind: KindParse, Err: err}
}
