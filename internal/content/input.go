package content

import (
	"encoding/json"
	"fmt"
	"strings"
	"unicode/utf8"

	"contentportal/internal/automation"
	"contentportal/internal/domain"
)

// ScriptInput is the brief for a social media script.
type ScriptInput struct {
	Topic string `json:"topic"`
	Tone  string `json:"tone"`
}

func (in ScriptInput) validate() error {
	verr := &domain.ValidationError{}
	if runeLen(in.Topic) < 10 {
		verr.Add("topic", "Describe con más contexto la publicación.")
	}
	if n := runeLen(in.Tone); n < 3 || n > 50 {
		verr.Add("tone", "El tono debe tener entre 3 y 50 caracteres.")
	}
	return verr.OrNil()
}

// Goals accepts either a single string or a list of strings.
type Goals []string

func (g *Goals) UnmarshalJSON(data []byte) error {
	var raw any
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	switch v := raw.(type) {
	case string:
		if v == "" {
			*g = Goals{}
			return nil
		}
		*g = Goals{v}
	case []any:
		out := make(Goals, 0, len(v))
		for _, item := range v {
			s, ok := item.(string)
			if !ok {
				return fmt.Errorf("goals must be text, got %T", item)
			}
			out = append(out, s)
		}
		*g = out
	default:
		*g = Goals{}
	}
	return nil
}

// ImageInput is the brief for a social media image.
type ImageInput struct {
	Description string `json:"description"`
	Goals       Goals  `json:"goals"`
}

// normalized trims every field and reports all problems at once.
func (in ImageInput) normalized() (ImageInput, error) {
	out := ImageInput{Description: strings.TrimSpace(in.Description)}
	verr := &domain.ValidationError{}
	if runeLen(out.Description) < 10 {
		verr.Add("description", "Describe con más detalle qué imagen necesitas.")
	}
	if len(in.Goals) == 0 {
		verr.Add("goals", "Selecciona al menos un objetivo visual.")
	}
	for i, goal := range in.Goals {
		goal = strings.TrimSpace(goal)
		if runeLen(goal) < 3 {
			verr.Add(fmt.Sprintf("goals.%d", i), "Cada objetivo debe tener al menos 3 caracteres.")
		}
		out.Goals = append(out.Goals, goal)
	}
	return out, verr.OrNil()
}

// SentimentInput is the text to analyse.
type SentimentInput struct {
	Text string `json:"text"`
}

func (in SentimentInput) validate() error {
	verr := &domain.ValidationError{}
	if runeLen(in.Text) < 10 {
		verr.Add("text", "Necesito más contexto para analizar el sentimiento.")
	}
	return verr.OrNil()
}

// SceneInput is one narrated scene of a short video.
type SceneInput struct {
	Text        string   `json:"text"`
	SearchTerms []string `json:"searchTerms"`
}

// VideoConfigInput holds optional render options; absent fields take defaults.
type VideoConfigInput struct {
	PaddingBack            *int    `json:"paddingBack"`
	Music                  *string `json:"music"`
	Voice                  *string `json:"voice"`
	CaptionPosition        *string `json:"captionPosition"`
	CaptionBackgroundColor *string `json:"captionBackgroundColor"`
	Orientation            *string `json:"orientation"`
}

// VideoInput is the brief for a short video.
type VideoInput struct {
	Scenes []SceneInput      `json:"scenes"`
	Config *VideoConfigInput `json:"config"`
}

// DefaultVideoConfig is applied field by field to missing render options.
var DefaultVideoConfig = automation.VideoConfig{
	PaddingBack:            1500,
	Music:                  "chill",
	Voice:                  "af_heart",
	CaptionPosition:        "bottom",
	CaptionBackgroundColor: "blue",
	Orientation:            "portrait",
}

var (
	captionPositions = map[string]bool{"top": true, "center": true, "bottom": true}
	orientations     = map[string]bool{"portrait": true, "landscape": true}
)

func (in VideoInput) resolve() ([]automation.Scene, automation.VideoConfig, error) {
	verr := &domain.ValidationError{}
	if len(in.Scenes) == 0 {
		verr.Add("scenes", "Se requiere al menos una escena")
	}
	scenes := make([]automation.Scene, 0, len(in.Scenes))
	for i, s := range in.Scenes {
		if runeLen(s.Text) < 5 {
			verr.Add(fmt.Sprintf("scenes.%d.text", i), "El texto de la escena es muy corto")
		}
		if len(s.SearchTerms) == 0 {
			verr.Add(fmt.Sprintf("scenes.%d.searchTerms", i), "Se requiere al menos un término de búsqueda")
		}
		terms := s.SearchTerms
		if terms == nil {
			terms = []string{}
		}
		scenes = append(scenes, automation.Scene{Text: s.Text, SearchTerms: terms})
	}

	cfg := DefaultVideoConfig
	if c := in.Config; c != nil {
		if c.PaddingBack != nil {
			cfg.PaddingBack = *c.PaddingBack
		}
		if c.Music != nil {
			cfg.Music = *c.Music
		}
		if c.Voice != nil {
			cfg.Voice = *c.Voice
		}
		if c.CaptionPosition != nil {
			cfg.CaptionPosition = *c.CaptionPosition
		}
		if c.CaptionBackgroundColor != nil {
			cfg.CaptionBackgroundColor = *c.CaptionBackgroundColor
		}
		if c.Orientation != nil {
			cfg.Orientation = *c.Orientation
		}
	}
	if !captionPositions[cfg.CaptionPosition] {
		verr.Add("config.captionPosition", "Debe ser top, center o bottom")
	}
	if !orientations[cfg.Orientation] {
		verr.Add("config.orientation", "Debe ser portrait o landscape")
	}
	return scenes, cfg, verr.OrNil()
}

func runeLen(s string) int {
	return utf8.RuneCountInString(s)
}
