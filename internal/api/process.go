package api

import (
	"errors"
	"mime"
	"net/http"
	"path/filepath"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog"

	"github.com/echoscribe/engine/internal/insight"
	"github.com/echoscribe/engine/internal/pipeline"
)

// maxUploadBytes bounds in-memory multipart parsing.
const maxUploadBytes = 64 << 20

// ResultView is the wire shape of one result: the record plus the
// rendering-ready derivations (resolved direction, classified markers)
// so the presentation layer never re-derives them.
type ResultView struct {
	*pipeline.Result
	DisplayDirection string           `json:"displayDirection"`
	Markers          []insight.Marker `json:"markers"`
}

func newResultView(r *pipeline.Result) ResultView {
	return ResultView{
		Result:           r,
		DisplayDirection: r.DisplayDirection(),
		Markers:          r.Markers(),
	}
}

// ProcessHandler accepts one recording per request and runs the pipeline.
type ProcessHandler struct {
	processor *pipeline.Processor
	log       zerolog.Logger
}

// NewProcessHandler creates the upload/process handler.
func NewProcessHandler(processor *pipeline.Processor, log zerolog.Logger) *ProcessHandler {
	return &ProcessHandler{
		processor: processor,
		log:       log.With().Str("handler", "process").Logger(),
	}
}

// Routes registers the process endpoint.
func (h *ProcessHandler) Routes(r chi.Router) {
	r.Post("/api/v1/process", h.Process)
}

// Process handles POST /api/v1/process. Multipart form: an "audio" file
// part plus an optional "fileName" value overriding the part's filename.
func (h *ProcessHandler) Process(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseMultipartForm(maxUploadBytes); err != nil {
		WriteError(w, http.StatusBadRequest, "invalid multipart form")
		return
	}
	defer r.MultipartForm.RemoveAll()

	file, header, err := r.FormFile("audio")
	if err != nil {
		WriteError(w, http.StatusBadRequest, "missing audio file")
		return
	}
	defer file.Close()

	fileName := r.FormValue("fileName")
	if fileName == "" {
		fileName = header.Filename
	}
	if fileName == "" {
		fileName = "recording"
	}

	mimeType := header.Header.Get("Content-Type")
	if mimeType == "" || mimeType == "application/octet-stream" {
		if byExt := mime.TypeByExtension(strings.ToLower(filepath.Ext(fileName))); byExt != "" {
			mimeType = byExt
		} else {
			mimeType = "audio/webm"
		}
	}

	result, err := h.processor.Process(r.Context(), file, mimeType, fileName)
	if err != nil {
		h.writeProcessError(w, fileName, err)
		return
	}

	WriteJSON(w, http.StatusCreated, newResultView(result))
}

// writeProcessError maps the pipeline's error taxonomy to HTTP. The
// category is surfaced; the cause stays in the log.
func (h *ProcessHandler) writeProcessError(w http.ResponseWriter, fileName string, err error) {
	h.log.Error().Err(err).Str("file_name", fileName).Msg("processing failed")

	switch {
	case errors.Is(err, pipeline.ErrBusy):
		WriteError(w, http.StatusConflict, pipeline.ErrBusy.Error())
	case errors.Is(err, pipeline.ErrInput):
		WriteError(w, http.StatusBadRequest, pipeline.ErrInput.Error())
	case errors.Is(err, pipeline.ErrExtraction):
		WriteError(w, http.StatusBadGateway, pipeline.ErrExtraction.Error())
	default:
		WriteError(w, http.StatusBadGateway, pipeline.ErrModel.Error())
	}
}
