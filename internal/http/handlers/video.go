package handlers

import (
	"errors"
	"io"
	"net/http"
	"strconv"
	"strings"
	"time"

	"contentportal/internal/domain"
)

type videoStatusUpdate struct {
	ItemID      string `json:"itemId"`
	VideoStatus string `json:"videoStatus"`
}

// VideoStatus proxies the render state reported by the video service.
func (a *App) VideoStatus(w http.ResponseWriter, r *http.Request) {
	videoID := strings.TrimSpace(r.URL.Query().Get("videoId"))
	if videoID == "" {
		a.error(w, http.StatusBadRequest, "bad_request", "Se requiere el parámetro videoId")
		return
	}
	status, err := a.Content.VideoStatus(r.Context(), videoID)
	if err != nil {
		a.fail(w, r, err)
		return
	}
	a.json(w, http.StatusOK, status.Raw)
}

// UpdateVideoStatus records a status change reported by a client watching the render.
func (a *App) UpdateVideoStatus(w http.ResponseWriter, r *http.Request) {
	var req videoStatusUpdate
	if !a.decode(w, r, &req) {
		return
	}
	if strings.TrimSpace(req.ItemID) == "" || strings.TrimSpace(req.VideoStatus) == "" {
		a.error(w, http.StatusBadRequest, "bad_request", "Se requieren itemId y videoStatus")
		return
	}
	rec, err := a.Content.UpdateVideoStatus(r.Context(), req.ItemID, domain.VideoStatus(req.VideoStatus))
	if err != nil {
		a.fail(w, r, err)
		return
	}
	a.json(w, http.StatusOK, itemResponse{Item: rec})
}

// DownloadVideo streams the rendered file as an attachment.
func (a *App) DownloadVideo(w http.ResponseWriter, r *http.Request) {
	videoID := strings.TrimSpace(r.URL.Query().Get("videoId"))
	if videoID == "" {
		a.error(w, http.StatusBadRequest, "bad_request", "Se requiere el parámetro videoId")
		return
	}
	video, err := a.Content.DownloadVideo(r.Context(), videoID)
	if err != nil {
		a.fail(w, r, err)
		return
	}
	defer video.Body.Close()

	w.Header().Set("Content-Type", "video/mp4")
	w.Header().Set("Content-Disposition", `attachment; filename="video-`+safeFilename(videoID)+`.mp4"`)
	if video.ContentLength > 0 {
		w.Header().Set("Content-Length", strconv.FormatInt(video.ContentLength, 10))
	}
	// Renders can outlast the server write timeout; the stream ends when the
	// client goes away or the upstream body does.
	if err := http.NewResponseController(w).SetWriteDeadline(time.Time{}); err != nil && !errors.Is(err, http.ErrNotSupported) {
		a.Logger.Debug().Err(err).Str("video_id", videoID).Msg("clear write deadline")
	}
	w.WriteHeader(http.StatusOK)
	if _, err := io.Copy(w, video.Body); err != nil {
		a.Logger.Warn().Err(err).Str("video_id", videoID).Msg("video download interrupted")
	}
}

func safeFilename(id string) string {
	return strings.Map(func(r rune) rune {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9', r == '-', r == '_':
			return r
		}
		return '_'
	}, id)
}
