package automation

import "strconv"

// UnwrapEnvelope extracts the payload from the envelope conventions used by
// the automation workflow engine: a list of items whose first element may wrap
// its payload under "json", an object wrapping its payload under "json", or a
// bare value. An empty list is returned as an empty list, which callers treat
// as "no items".
func UnwrapEnvelope(raw any) any {
	switch v := raw.(type) {
	case []any:
		if len(v) == 0 {
			return []any{}
		}
		if first, ok := v[0].(map[string]any); ok {
			if inner, ok := first["json"]; ok {
				return inner
			}
		}
		return v[0]
	case map[string]any:
		if inner, ok := v["json"]; ok {
			return inner
		}
	}
	return raw
}

// envelope is the status-bearing shape the automation endpoint uses to report
// task progress. Anything without a string "status" is a raw result.
type envelope struct {
	Status  string
	TaskID  string
	VideoID any
	Message string
	Error   string

	result    any
	hasResult bool
	raw       map[string]any
}

const (
	statusPending    = "pending"
	statusCompleted  = "completed"
	statusError      = "error"
	statusReady      = "ready"
	statusProcessing = "processing"
)

// asEnvelope is the single discriminant between a status envelope and a raw
// result.
func asEnvelope(v any) (*envelope, bool) {
	m, ok := v.(map[string]any)
	if !ok {
		return nil, false
	}
	status, ok := m["status"].(string)
	if !ok {
		return nil, false
	}
	env := &envelope{
		Status:  status,
		TaskID:  scalarString(m["taskId"]),
		VideoID: m["videoId"],
		Message: scalarString(m["message"]),
		Error:   scalarString(m["error"]),
		raw:     m,
	}
	if res, ok := m["result"]; ok && res != nil {
		env.result = res
		env.hasResult = true
	}
	return env, true
}

// payload returns the nested result when present, otherwise the envelope itself.
func (e *envelope) payload() any {
	if e.hasResult {
		return e.result
	}
	return e.raw
}

func (e *envelope) errorMessage(fallback string) string {
	return firstNonEmpty(e.Message, e.Error, fallback)
}

func scalarString(v any) string {
	switch s := v.(type) {
	case string:
		return s
	case float64:
		return strconv.FormatFloat(s, 'f', -1, 64)
	}
	return ""
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}
