package handlers

import (
	"context"
	"errors"

	"contentportal/internal/content"
	"contentportal/internal/domain"
	"contentportal/internal/videoservice"
)

var errNotStubbed = errors.New("not stubbed")

type fakeContent struct {
	script    func(locale string, in content.ScriptInput) (*domain.ContentRecord, error)
	image     func(locale string, in content.ImageInput) (*domain.ContentRecord, error)
	sentiment func(locale string, in content.SentimentInput) (*domain.ContentRecord, error)
	video     func(in content.VideoInput) (*domain.ContentRecord, error)
	update    func(id string, status domain.VideoStatus) (*domain.ContentRecord, error)
	list      func(limit int) ([]domain.ContentRecord, error)
	status    func(videoID string) (*videoservice.Status, error)
	download  func(videoID string) (*videoservice.Video, error)
}

func (f *fakeContent) CreateScript(_ context.Context, locale string, in content.ScriptInput) (*domain.ContentRecord, error) {
	if f.script == nil {
		return nil, errNotStubbed
	}
	return f.script(locale, in)
}

func (f *fakeContent) CreateImage(_ context.Context, locale string, in content.ImageInput) (*domain.ContentRecord, error) {
	if f.image == nil {
		return nil, errNotStubbed
	}
	return f.image(locale, in)
}

func (f *fakeContent) CreateSentiment(_ context.Context, locale string, in content.SentimentInput) (*domain.ContentRecord, error) {
	if f.sentiment == nil {
		return nil, errNotStubbed
	}
	return f.sentiment(locale, in)
}

func (f *fakeContent) CreateVideo(_ context.Context, in content.VideoInput) (*domain.ContentRecord, error) {
	if f.video == nil {
		return nil, errNotStubbed
	}
	return f.video(in)
}

func (f *fakeContent) UpdateVideoStatus(_ context.Context, id string, status domain.VideoStatus) (*domain.ContentRecord, error) {
	if f.update == nil {
		return nil, errNotStubbed
	}
	return f.update(id, status)
}

func (f *fakeContent) ListRecent(_ context.Context, limit int) ([]domain.ContentRecord, error) {
	if f.list == nil {
		return nil, errNotStubbed
	}
	return f.list(limit)
}

func (f *fakeContent) VideoStatus(_ context.Context, videoID string) (*videoservice.Status, error) {
	if f.status == nil {
		return nil, errNotStubbed
	}
	return f.status(videoID)
}

func (f *fakeContent) DownloadVideo(_ context.Context, videoID string) (*videoservice.Video, error) {
	if f.download == nil {
		return nil, errNotStubbed
	}
	return f.download(videoID)
}
