package pipeline

import (
	"time"

	"github.com/echoscribe/engine/internal/insight"
	"github.com/google/uuid"
)

// Result is one completed pipeline run. Immutable once constructed.
type Result struct {
	ID        string          `json:"id"`
	FullText  string          `json:"fullText"`
	Insights  *insight.Fields `json:"insights"`
	Timestamp time.Time       `json:"timestamp"`
	FileName  string          `json:"fileName"`
}

// newResult combines a transcript and parsed fields into a Result,
// stamping the creation time. Pure; no I/O.
func newResult(fullText string, fields *insight.Fields, fileName string, now time.Time) *Result {
	return &Result{
		ID:        uuid.New().String(),
		FullText:  fullText,
		Insights:  fields,
		Timestamp: now,
		FileName:  fileName,
	}
}

// DisplayDirection resolves the direction to render for this result,
// applying the filename fallback when the model reported Unknown.
func (r *Result) DisplayDirection() string {
	return insight.DisplayDirection(r.Insights.CallDirection, r.FileName)
}

// Markers returns the classified bracket annotations of the transcript.
func (r *Result) Markers() []insight.Marker {
	return insight.Markers(r.FullText)
}
