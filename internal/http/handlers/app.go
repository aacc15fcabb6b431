package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"contentportal/internal/content"
	"contentportal/internal/domain"
	"contentportal/internal/infra"
	"contentportal/internal/videoservice"
)

const maxBodyBytes = 1 << 20

// ContentService is the set of content operations exposed over HTTP.
type ContentService interface {
	CreateScript(ctx context.Context, locale string, in content.ScriptInput) (*domain.ContentRecord, error)
	CreateImage(ctx context.Context, locale string, in content.ImageInput) (*domain.ContentRecord, error)
	CreateSentiment(ctx context.Context, locale string, in content.SentimentInput) (*domain.ContentRecord, error)
	CreateVideo(ctx context.Context, in content.VideoInput) (*domain.ContentRecord, error)
	UpdateVideoStatus(ctx context.Context, id string, status domain.VideoStatus) (*domain.ContentRecord, error)
	ListRecent(ctx context.Context, limit int) ([]domain.ContentRecord, error)
	VideoStatus(ctx context.Context, videoID string) (*videoservice.Status, error)
	DownloadVideo(ctx context.Context, videoID string) (*videoservice.Video, error)
}

type App struct {
	Content ContentService
	Logger  *infra.Logger

	// Ping checks the record store; nil skips the check.
	Ping func(ctx context.Context) error
}

func NewApp(svc ContentService, logger *infra.Logger) *App {
	if logger == nil {
		logger = infra.DiscardLogger()
	}
	return &App{Content: svc, Logger: logger}
}

type errorResponse struct {
	Error string `json:"error"`
	Code  string `json:"code"`
}

type itemResponse struct {
	Item *domain.ContentRecord `json:"item"`
}

type itemsResponse struct {
	Items []domain.ContentRecord `json:"items"`
}

func (a *App) json(w http.ResponseWriter, code int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(v)
}

func (a *App) error(w http.ResponseWriter, code int, slug, msg string) {
	a.json(w, code, errorResponse{Error: msg, Code: slug})
}

// decode reads a JSON body into v, answering 400 itself on failure.
func (a *App) decode(w http.ResponseWriter, r *http.Request, v any) bool {
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	if err := dec.Decode(v); err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			a.error(w, http.StatusRequestEntityTooLarge, "payload_too_large", "La solicitud es demasiado grande.")
			return false
		}
		a.error(w, http.StatusBadRequest, "invalid_json", "No se pudo interpretar la solicitud.")
		return false
	}
	return true
}
