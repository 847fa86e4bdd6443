package providers

import (
	"context"
	"errors"
)

// ErrClassifierUnavailable signals the classifier cannot serve requests
// (unconfigured, unauthorized, or offline). Callers fall back to keyword
// matching instead of propagating it.
var ErrClassifierUnavailable = errors.New("text classifier unavailable")

// LabelScore is one classifier label with its score.
type LabelScore struct {
	Label string  `json:"label"`
	Score float64 `json:"score"`
}

// TextClassifier is the pluggable multi-label zero-shot classifier used by
// the long-input suggestion path. Implementations must be safe for
// concurrent use and honor context cancellation.
type TextClassifier interface {
	// Classify scores the text against every candidate label. The result
	// preserves the classifier's own ordering and may cover fewer labels
	// than requested.
	Classify(ctx context.Context, text string, candidateLabels []string) ([]LabelScore, error)
}
