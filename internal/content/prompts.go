package content

import (
	"fmt"
	"strings"

	"golang.org/x/text/language"
)

// SupportedLocales lists the prompt languages, default first.
var SupportedLocales = []language.Tag{language.Spanish, language.English}

var localeMatcher = language.NewMatcher(SupportedLocales)

// LocalesWithDefault returns SupportedLocales reordered so the tag matching
// def comes first. Unknown or empty values keep the built-in order.
func LocalesWithDefault(def string) []language.Tag {
	out := append([]language.Tag(nil), SupportedLocales...)
	tag, err := language.Parse(def)
	if err != nil {
		return out
	}
	_, idx, conf := localeMatcher.Match(tag)
	if conf == language.No || idx == 0 {
		return out
	}
	out[0], out[idx] = out[idx], out[0]
	return out
}

type promptTemplates struct {
	script    [4]string
	image     [4]string
	sentiment [3]string
}

var templates = map[language.Tag]promptTemplates{
	language.Spanish: {
		script: [4]string{
			"Genera un guion para una publicación en redes sociales.",
			"Tono sugerido: %s.",
			"Instrucciones del usuario: %s",
			"Devuelve una estructura clara con ganchos, cuerpo y llamado a la acción.",
		},
		image: [4]string{
			"Genera una propuesta de imagen para redes sociales.",
			"Descripción solicitada: %s",
			"Objetivos del contenido: %s",
			"Devuelve una breve explicación del concepto y, si aplica, la URL/base64 de la imagen.",
		},
		sentiment: [3]string{
			"Analiza el sentimiento del siguiente texto destinado a redes sociales.",
			"Indica si es positivo, negativo o neutro y justifica brevemente.",
			"Texto: %s",
		},
	},
	language.English: {
		script: [4]string{
			"Write a script for a social media post.",
			"Suggested tone: %s.",
			"User instructions: %s",
			"Return a clear structure with hooks, body and a call to action.",
		},
		image: [4]string{
			"Create an image proposal for social media.",
			"Requested description: %s",
			"Content goals: %s",
			"Return a short explanation of the concept and, when available, the image URL/base64.",
		},
		sentiment: [3]string{
			"Analyze the sentiment of the following social media text.",
			"State whether it is positive, negative or neutral and briefly justify it.",
			"Text: %s",
		},
	},
}

// ResolveLocale maps a BCP 47 tag or Accept-Language value onto a supported
// prompt language. Unknown or empty input yields the default (Spanish).
func ResolveLocale(locale string) language.Tag {
	tags, _, err := language.ParseAcceptLanguage(locale)
	if err != nil || len(tags) == 0 {
		return SupportedLocales[0]
	}
	_, idx, confidence := localeMatcher.Match(tags...)
	if confidence == language.No {
		return SupportedLocales[0]
	}
	return SupportedLocales[idx]
}

func templatesFor(locale string) promptTemplates {
	return templates[ResolveLocale(locale)]
}

// ScriptPrompt builds the automation prompt for a script brief.
func ScriptPrompt(locale string, in ScriptInput) string {
	t := templatesFor(locale).script
	return strings.Join([]string{
		t[0],
		fmt.Sprintf(t[1], in.Tone),
		fmt.Sprintf(t[2], in.Topic),
		t[3],
	}, "\n")
}

// ImagePrompt builds the automation prompt for an image brief.
func ImagePrompt(locale string, in ImageInput) string {
	t := templatesFor(locale).image
	return strings.Join([]string{
		t[0],
		fmt.Sprintf(t[1], in.Description),
		fmt.Sprintf(t[2], strings.Join(in.Goals, ", ")),
		t[3],
	}, "\n")
}

// SentimentPrompt builds the automation prompt for a sentiment analysis.
func SentimentPrompt(locale string, in SentimentInput) string {
	t := templatesFor(locale).sentiment
	return strings.Join([]string{t[0], t[1], fmt.Sprintf(t[2], in.Text)}, "\n")
}

// VideoPrompt summarises the scenes; it is language independent.
func VideoPrompt(scenes []SceneInput) string {
	texts := make([]string, 0, len(scenes))
	for _, s := range scenes {
		texts = append(texts, s.Text)
	}
	return strings.Join(texts, " | ")
}
