package handler

import (
	"errors"
	"io"
	"log/slog"
	"net/http"

	"github.com/meetscribe/backend/pkg/json"
	historyEntity "github.com/meetscribe/backend/services/history/entity"
	"github.com/meetscribe/backend/services/pipeline/consts"
	"github.com/meetscribe/backend/services/pipeline/entity"
)

// multipart form memory threshold, larger parts spill to disk
const maxFormMemory = 32 << 20

func (h *Handler) Transcribe(w http.ResponseWriter, r *http.Request) {
	h.log.Info("transcribe request received", slog.String("remote_addr", r.RemoteAddr))

	if err := r.ParseMultipartForm(maxFormMemory); err != nil {
		h.log.Warn("failed to parse multipart form", slog.String("error", err.Error()))
		json.WriteError(w, http.StatusBadRequest, entity.ErrNoAudio)
		return
	}

	file, header, err := r.FormFile("audio")
	if err != nil {
		h.log.Warn("no audio file in request")
		json.WriteError(w, http.StatusBadRequest, entity.ErrNoAudio)
		return
	}
	defer file.Close()

	if header.Size > consts.MaxAudioSize {
		json.WriteError(w, http.StatusBadRequest, entity.ErrAudioTooLarge)
		return
	}

	data, err := io.ReadAll(file)
	if err != nil {
		h.log.Error("failed to read upload", slog.String("error", err.Error()))
		json.WriteError(w, http.StatusInternalServerError, errors.New("failed to read upload"))
		return
	}

	settings, err := h.settings.Get(r.Context())
	if err != nil {
		h.log.Error("failed to load settings", slog.String("error", err.Error()))
		json.WriteError(w, http.StatusInternalServerError, errors.New("failed to load settings"))
		return
	}

	enableDiarization := r.FormValue("enableDiarization") == "true" && settings.DiarizationEnabled

	result, err := h.pipeline.Run(r.Context(), &entity.TranscribeRequest{
		Audio: &entity.AudioAsset{
			Data:             data,
			SizeBytes:        header.Size,
			DeclaredFileName: header.Filename,
			DeclaredMimeType: header.Header.Get("Content-Type"),
		},
		Config: entity.RunConfig{
			DiarizationEnabled:  enableDiarization,
			ASRProvider:         settings.ASRProvider,
			ASRModel:            settings.ASRModel,
			DiarizationProvider: settings.DiarizationProvider,
		},
	})
	if err != nil {
		h.writePipelineError(w, err)
		return
	}

	// the transcript is the valuable artifact, keep it even when the
	// history write fails
	if _, err := h.history.SaveTranscription(r.Context(), &historyEntity.Transcription{
		FileName:        result.FileName,
		FileSize:        result.FileSize,
		DurationSeconds: result.Diarization.TotalDurationSeconds,
		WordCount:       result.WordCount,
		Text:            result.Transcription,
		ASRProvider:     settings.ASRProvider,
		ASRModel:        settings.ASRModel,
		FormatConverted: result.FormatConverted,
		OriginalFormat:  result.OriginalFormat,
	}); err != nil {
		h.log.Error("failed to save transcription", slog.String("error", err.Error()))
	}

	json.WriteJSON(w, http.StatusOK, result)
	h.log.Info("transcribe response sent",
		slog.String("file_name", result.FileName),
		slog.Int("word_count", result.WordCount),
		slog.Bool("diarized", result.Diarization.Enabled))
}

func (h *Handler) writePipelineError(w http.ResponseWriter, err error) {
	if dle, ok := entity.AsDurationLimit(err); ok {
		json.WriteErrorCode(w, http.StatusUnprocessableEntity, dle, dle.Code, dle.Suggestion)
		return
	}

	switch {
	case errors.Is(err, entity.ErrNoAudio), errors.Is(err, entity.ErrAudioTooLarge):
		json.WriteError(w, http.StatusBadRequest, err)
	case errors.Is(err, entity.ErrConverterUnavailable):
		json.WriteError(w, http.StatusServiceUnavailable, err)
	default:
		json.WriteError(w, http.StatusInternalServerError, err)
	}
}
