package handlers

import (
	"net/http"

	"contentportal/internal/content"
	"contentportal/internal/middleware"
)

func (a *App) CreateScript(w http.ResponseWriter, r *http.Request) {
	var in content.ScriptInput
	if !a.decode(w, r, &in) {
		return
	}
	rec, err := a.Content.CreateScript(r.Context(), middleware.LocaleFromContext(r.Context()), in)
	if err != nil {
		a.fail(w, r, err)
		return
	}
	a.json(w, http.StatusOK, itemResponse{Item: rec})
}

func (a *App) CreateImage(w http.ResponseWriter, r *http.Request) {
	var in content.ImageInput
	if !a.decode(w, r, &in) {
		return
	}
	rec, err := a.Content.CreateImage(r.Context(), middleware.LocaleFromContext(r.Context()), in)
	if err != nil {
		a.fail(w, r, err)
		return
	}
	a.json(w, http.StatusOK, itemResponse{Item: rec})
}

func (a *App) CreateSentiment(w http.ResponseWriter, r *http.Request) {
	var in content.SentimentInput
	if !a.decode(w, r, &in) {
		return
	}
	rec, err := a.Content.CreateSentiment(r.Context(), middleware.LocaleFromContext(r.Context()), in)
	if err != nil {
		a.fail(w, r, err)
		return
	}
	a.json(w, http.StatusOK, itemResponse{Item: rec})
}

func (a *App) CreateVideo(w http.ResponseWriter, r *http.Request) {
	var in content.VideoInput
	if !a.decode(w, r, &in) {
		return
	}
	rec, err := a.Content.CreateVideo(r.Context(), in)
	if err != nil {
		a.fail(w, r, err)
		return
	}
	a.json(w, http.StatusOK, itemResponse{Item: rec})
}
