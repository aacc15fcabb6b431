package automation

import (
	"encoding/base64"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
)

// decodeBody turns a webhook response into a generic JSON value according to
// its content type. Binary and image bodies become a data URI under imageData.
func decodeBody(resp *http.Response) (any, error) {
	contentType := resp.Header.Get("Content-Type")
	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("automation: read response: %w", err)
	}

	switch {
	case strings.Contains(contentType, "application/json"), strings.Contains(contentType, "text/json"):
		var out any
		if err := json.Unmarshal(raw, &out); err != nil {
			return nil, fmt.Errorf("automation: decode response: %w", err)
		}
		return out, nil
	case strings.HasPrefix(contentType, "image/"), strings.Contains(contentType, "application/octet-stream"):
		return map[string]any{
			"imageData": "data:" + contentType + ";base64," + base64.StdEncoding.EncodeToString(raw),
			"imageType": contentType,
		}, nil
	}

	text := string(raw)
	var out any
	if err := json.Unmarshal(raw, &out); err == nil {
		return out, nil
	}
	if strings.HasPrefix(text, "data:image") {
		return map[string]any{"imageData": text}, nil
	}
	return map[string]any{"output": text}, nil
}
