package pipeline

import "errors"

// The pipeline's error taxonomy. Handlers match with errors.Is and
// surface only the category; the underlying cause is logged.
var (
	// ErrInput: the audio blob could not be read. Raised before any
	// network call is made.
	ErrInput = errors.New("audio input unreadable")

	// ErrModel: a transport, quota, or model failure on either request.
	// Externally reported as a generic processing failure.
	ErrModel = errors.New("processing failed")

	// ErrExtraction: the extraction response was not valid JSON or
	// violated the schema contract. Fatal for the run; the transcript
	// is not salvaged.
	ErrExtraction = errors.New("failed to extract structured intelligence")

	// ErrBusy: a run is already in flight for this session. A new
	// capture may only begin after the prior one resolves.
	ErrBusy = errors.New("a recording is already being processed")
)
