package handlers

import (
	"net/http"
	"strconv"

	"contentportal/internal/content"
	"contentportal/internal/domain"
)

// History lists the most recent records. Missing or non-numeric limits use
// the default page size.
func (a *App) History(w http.ResponseWriter, r *http.Request) {
	limit := content.DefaultHistoryLimit
	if raw := r.URL.Query().Get("limit"); raw != "" {
		if n, err := strconv.Atoi(raw); err == nil {
			limit = n
		}
	}
	items, err := a.Content.ListRecent(r.Context(), limit)
	if err != nil {
		a.fail(w, r, err)
		return
	}
	if items == nil {
		items = []domain.ContentRecord{}
	}
	a.json(w, http.StatusOK, itemsResponse{Items: items})
}
