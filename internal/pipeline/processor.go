package pipeline

import (
	"context"
	"fmt"
	"io"
	"sync/atomic"
	"time"

	"github.com/rs/zerolog"

	"github.com/echoscribe/engine/internal/events"
	"github.com/echoscribe/engine/internal/genai"
	"github.com/echoscribe/engine/internal/insight"
	"github.com/echoscribe/engine/internal/metrics"
)

// FallbackTranscript is substituted when the transcription call returns
// no text. Transcription absence is not itself an error.
const FallbackTranscript = "No transcription available."

// ModelClient is the subset of the genai client the pipeline needs.
type ModelClient interface {
	GenerateContent(ctx context.Context, parts []genai.Part, cfg *genai.GenerationConfig) (string, error)
}

// Processor runs the two-stage model pipeline for one capture session.
// The two requests are strictly sequential: extraction consumes the
// transcription output. Only one run may be in flight at a time.
type Processor struct {
	model   ModelClient
	history *History
	bus     *events.Bus
	log     zerolog.Logger
	now     func() time.Time

	inFlight atomic.Bool
}

// NewProcessor creates a pipeline processor.
func NewProcessor(model ModelClient, history *History, bus *events.Bus, log zerolog.Logger) *Processor {
	return &Processor{
		model:   model,
		history: history,
		bus:     bus,
		log:     log.With().Str("component", "pipeline").Logger(),
		now:     time.Now,
	}
}

// statusPayload is the event body published on state transitions.
type statusPayload struct {
	FileName string `json:"fileName"`
	ResultID string `json:"resultId,omitempty"`
	Error    string `json:"error,omitempty"`
}

// Process encodes, transcribes, extracts, and assembles a result for
// one audio blob. Success is all-or-nothing: an error at any stage
// aborts the run and leaves the history untouched.
func (p *Processor) Process(ctx context.Context, audio io.Reader, mimeType, fileName string) (*Result, error) {
	if !p.inFlight.CompareAndSwap(false, true) {
		metrics.PipelineRunsTotal.WithLabelValues("busy").Inc()
		return nil, ErrBusy
	}
	defer p.inFlight.Store(false)

	log := p.log.With().Str("file_name", fileName).Str("mime_type", mimeType).Logger()
	p.publish(events.TypeProcessing, statusPayload{FileName: fileName})

	base64Data, err := EncodeAudio(audio)
	if err != nil {
		log.Error().Err(err).Msg("audio encoding failed")
		metrics.PipelineRunsTotal.WithLabelValues("input_error").Inc()
		p.publish(events.TypeError, statusPayload{FileName: fileName, Error: ErrInput.Error()})
		return nil, err
	}

	// Stage 1: verbatim transcription with inline event markers.
	start := p.now()
	fullText, err := p.model.GenerateContent(ctx, []genai.Part{
		genai.AudioPart(base64Data, mimeType),
		genai.TextPart(insight.TranscriptionPrompt(fileName)),
	}, nil)
	metrics.ModelRequestDuration.WithLabelValues("transcription").Observe(time.Since(start).Seconds())
	if err != nil {
		log.Error().Err(err).Msg("transcription request failed")
		metrics.PipelineRunsTotal.WithLabelValues("model_error").Inc()
		p.publish(events.TypeError, statusPayload{FileName: fileName, Error: ErrModel.Error()})
		return nil, fmt.Errorf("%w: transcription: %v", ErrModel, err)
	}
	if fullText == "" {
		fullText = FallbackTranscript
	}

	// Stage 2: schema-constrained extraction, cross-validated against
	// the re-attached audio.
	start = p.now()
	rawFields, err := p.model.GenerateContent(ctx, []genai.Part{
		genai.AudioPart(base64Data, mimeType),
		genai.TextPart(insight.ExtractionPrompt(fullText, fileName)),
	}, &genai.GenerationConfig{
		ResponseMIMEType: "application/json",
		ResponseSchema:   insight.ResponseSchema(),
	})
	metrics.ModelRequestDuration.WithLabelValues("extraction").Observe(time.Since(start).Seconds())
	if err != nil {
		log.Error().Err(err).Msg("extraction request failed")
		metrics.PipelineRunsTotal.WithLabelValues("model_error").Inc()
		p.publish(events.TypeError, statusPayload{FileName: fileName, Error: ErrModel.Error()})
		return nil, fmt.Errorf("%w: extraction: %v", ErrModel, err)
	}

	fields, err := insight.ParseFields([]byte(rawFields))
	if err != nil {
		log.Error().Err(err).Msg("extraction response violated the contract")
		metrics.PipelineRunsTotal.WithLabelValues("extraction_error").Inc()
		p.publish(events.TypeError, statusPayload{FileName: fileName, Error: ErrExtraction.Error()})
		return nil, fmt.Errorf("%w: %v", ErrExtraction, err)
	}

	result := newResult(fullText, fields, fileName, p.now())
	p.history.Add(result)
	p.publish(events.TypeCompleted, statusPayload{FileName: fileName, ResultID: result.ID})
	metrics.PipelineRunsTotal.WithLabelValues("completed").Inc()

	log.Info().
		Str("result_id", result.ID).
		Int("transcript_len", len(fullText)).
		Int("automation_score", fields.AutomationScore).
		Bool("dnc_requested", fields.DNCRequested).
		Msg("pipeline run completed")

	return result, nil
}

func (p *Processor) publish(eventType string, payload statusPayload) {
	if p.bus == nil {
		return
	}
	p.bus.Publish(eventType, payload)
	metrics.SSEEventsPublishedTotal.Inc()
}
