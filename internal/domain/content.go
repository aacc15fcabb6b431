package domain

import "time"

// ContentKind enumerates the brief categories accepted by the portal.
type ContentKind string

const (
	ContentKindScript    ContentKind = "script"
	ContentKindImage     ContentKind = "image"
	ContentKindVideo     ContentKind = "video"
	ContentKindSentiment ContentKind = "sentiment"
)

// Valid reports whether k is one of the known kinds.
func (k ContentKind) Valid() bool {
	switch k {
	case ContentKindScript, ContentKindImage, ContentKindVideo, ContentKindSentiment:
		return true
	}
	return false
}

// ContentStatus enumerates record lifecycle states.
type ContentStatus string

const (
	ContentStatusPending    ContentStatus = "pending"
	ContentStatusProcessing ContentStatus = "processing"
	ContentStatusCompleted  ContentStatus = "completed"
	ContentStatusFailed     ContentStatus = "failed"
)

// Terminal reports whether no further transition is expected from s.
func (s ContentStatus) Terminal() bool {
	return s == ContentStatusCompleted || s == ContentStatusFailed
}

// VideoStatus is the render state reported by the video service.
type VideoStatus string

const (
	VideoStatusPending    VideoStatus = "pending"
	VideoStatusProcessing VideoStatus = "processing"
	VideoStatusReady      VideoStatus = "ready"
	VideoStatusError      VideoStatus = "error"
)

// Result keys the portal reads or writes on a record result.
const (
	ResultKeyVideoID     = "videoId"
	ResultKeyVideoStatus = "videoStatus"
)

// ContentRecord is one persisted request and its automation outcome.
type ContentRecord struct {
	ID               string         `json:"id"`
	Kind             ContentKind    `json:"type"`
	Prompt           string         `json:"prompt"`
	Metadata         map[string]any `json:"metadata"`
	Result           map[string]any `json:"result"`
	Status           ContentStatus  `json:"status"`
	AutomationTaskID string         `json:"automationTaskId,omitempty"`
	Error            string         `json:"error,omitempty"`
	CreatedAt        time.Time      `json:"createdAt"`
	UpdatedAt        time.Time      `json:"updatedAt"`
}

// VideoID returns the video identifier stored on the result, if any.
func (r *ContentRecord) VideoID() string {
	if r == nil || r.Result == nil {
		return ""
	}
	id, _ := r.Result[ResultKeyVideoID].(string)
	return id
}

// HasVideoState reports whether r is a video record already at videoStatus
// and status.
func (r *ContentRecord) HasVideoState(videoStatus VideoStatus, status ContentStatus) bool {
	if r == nil || r.Kind != ContentKindVideo || r.Status != status {
		return false
	}
	vs, _ := r.Result[ResultKeyVideoStatus].(string)
	return vs == string(videoStatus)
}

// NewContentRecord carries the fields a caller supplies on creation.
type NewContentRecord struct {
	Kind             ContentKind
	Prompt           string
	Metadata         map[string]any
	Result           map[string]any
	Status           ContentStatus
	AutomationTaskID string
	Error            string
}
