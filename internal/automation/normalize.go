package automation

import (
	"errors"
	"regexp"
	"strings"
)

// ErrNormalizeDepth reports a result whose "output" nesting never bottoms out.
var ErrNormalizeDepth = errors.New("automation: result output nesting too deep")

const maxOutputDepth = 20

// imageDataMinLength is the shortest undecorated base64 string treated as image
// data. Shorter strings are assumed to be ordinary text.
const imageDataMinLength = 100

var base64Charset = regexp.MustCompile(`^[A-Za-z0-9+/=]+$`)

// LooksLikeImageData reports whether s is a data URI for an image or a long
// string made only of base64 characters (whitespace ignored).
func LooksLikeImageData(s string) bool {
	if s == "" {
		return false
	}
	if strings.HasPrefix(s, "data:image") {
		return true
	}
	if len(s) < imageDataMinLength {
		return false
	}
	return base64Charset.MatchString(strings.Join(strings.Fields(s), ""))
}

func isImageData(v any) bool {
	s, ok := v.(string)
	return ok && LooksLikeImageData(s)
}

// imageProbe checks one candidate field for an embedded image.
type imageProbe struct {
	field string
	probe func(v any) (data, mime string, ok bool)
}

// imageProbes is tried in order; the first hit becomes imageData. All string
// candidates are tried before any object candidate.
var imageProbes = []imageProbe{
	{"imageData", probeString},
	{"imageBase64", probeString},
	{"image", probeString},
	{"data", probeString},
	{"binary", probeString},
	{"file", probeString},
	{"image", probeObject},
	{"data", probeObject},
	{"binary", probeObject},
	{"file", probeObject},
}

var (
	objectMimeFields   = []string{"contentType", "mimeType", "type"}
	fallbackMimeFields = []string{"imageType", "contentType"}
)

func probeString(v any) (string, string, bool) {
	s, ok := v.(string)
	if !ok || !LooksLikeImageData(s) {
		return "", "", false
	}
	return s, "", true
}

func probeObject(v any) (string, string, bool) {
	obj, ok := v.(map[string]any)
	if !ok {
		return "", "", false
	}
	data, ok := obj["data"].(string)
	if !ok || !LooksLikeImageData(data) {
		return "", "", false
	}
	return data, firstString(obj, objectMimeFields...), true
}

// Normalize coerces an automation payload into the canonical result mapping:
// nested "output" objects are flattened into the top level, an embedded image
// is surfaced as imageData (with imageMimeType when known), and every other
// field passes through untouched. Normalizing its own output is a no-op. A nil
// payload, including a nil map, yields a nil result.
func Normalize(payload any) (map[string]any, error) {
	if payload == nil {
		return nil, nil
	}
	if m, ok := payload.(map[string]any); ok && m == nil {
		return nil, nil
	}
	current := copyMap(ResultFromPayload(payload))

	for depth := 0; ; depth++ {
		nested, ok := current["output"].(map[string]any)
		if !ok {
			break
		}
		if depth >= maxOutputDepth {
			return nil, ErrNormalizeDepth
		}
		merged := make(map[string]any, len(current)+len(nested))
		for k, v := range current {
			if k != "output" {
				merged[k] = v
			}
		}
		for k, v := range nested {
			merged[k] = v
		}
		current = merged
	}

	if out, ok := current["output"].(string); ok && LooksLikeImageData(out) {
		current["imageData"] = out
	} else {
		for _, p := range imageProbes {
			data, mime, ok := p.probe(current[p.field])
			if !ok {
				continue
			}
			current["imageData"] = data
			if mime != "" && firstString(current, "imageMimeType") == "" {
				current["imageMimeType"] = mime
			}
			break
		}
	}

	if firstString(current, "imageData") != "" && firstString(current, "imageMimeType") == "" {
		if mime := firstString(current, fallbackMimeFields...); mime != "" {
			current["imageMimeType"] = mime
		}
	}
	return current, nil
}

// ResultFromPayload coerces any automation payload into a mapping. Lists whose
// first item carries "output" yield that output; other lists are kept under
// "items"; strings become imageData or output depending on their content;
// anything else is kept under "value".
func ResultFromPayload(payload any) map[string]any {
	switch v := payload.(type) {
	case map[string]any:
		return v
	case []any:
		if len(v) == 0 {
			return map[string]any{"items": []any{}}
		}
		if first, ok := v[0].(map[string]any); ok {
			if out, ok := first["output"]; ok {
				if obj, ok := out.(map[string]any); ok {
					return obj
				}
				return map[string]any{"output": out}
			}
		}
		return map[string]any{"items": v}
	case string:
		if LooksLikeImageData(v) {
			return map[string]any{"imageData": v}
		}
		return map[string]any{"output": v}
	}
	return map[string]any{"value": payload}
}

func copyMap(m map[string]any) map[string]any {
	out := make(map[string]any, len(m))
	for k, v := range m {
		out[k] = v
	}
	return out
}

// firstString returns the first non-empty string value among keys.
func firstString(m map[string]any, keys ...string) string {
	for _, k := range keys {
		if s, ok := m[k].(string); ok && s != "" {
			return s
		}
	}
	return ""
}
