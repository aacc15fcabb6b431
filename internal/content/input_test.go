package content

import (
	"encoding/json"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"contentportal/internal/domain"
)

func TestGoalsUnmarshal(t *testing.T) {
	tests := []struct {
		name string
		body string
		want Goals
	}{
		{name: "single string", body: `{"goals":"engagement"}`, want: Goals{"engagement"}},
		{name: "list", body: `{"goals":["a b c","marca"]}`, want: Goals{"a b c", "marca"}},
		{name: "empty string", body: `{"goals":""}`, want: Goals{}},
		{name: "number", body: `{"goals":3}`, want: Goals{}},
		{name: "null", body: `{"goals":null}`, want: Goals{}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var in ImageInput
			require.NoError(t, json.Unmarshal([]byte(tt.body), &in))
			assert.Equal(t, tt.want, in.Goals)
		})
	}

	var in ImageInput
	assert.Error(t, json.Unmarshal([]byte(`{"goals":["ok", 4]}`), &in))
}

func TestImageInputValidation(t *testing.T) {
	_, err := ImageInput{Description: "   corta   ", Goals: Goals{"ab", " x "}}.normalized()
	var verr *domain.ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Len(t, verr.Problems, 3)
	assert.True(t, strings.HasPrefix(verr.Problems[0], "description: "))

	_, err = ImageInput{Description: "Descripción válida y larga"}.normalized()
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, "goals: Selecciona al menos un objetivo visual.", err.Error())
}

func TestScriptInputToneBounds(t *testing.T) {
	topic := "Un tema con suficiente contexto"
	assert.NoError(t, ScriptInput{Topic: topic, Tone: "abc"}.validate())
	assert.NoError(t, ScriptInput{Topic: topic, Tone: strings.Repeat("a", 50)}.validate())
	assert.Error(t, ScriptInput{Topic: topic, Tone: strings.Repeat("a", 51)}.validate())
	assert.Error(t, ScriptInput{Topic: topic, Tone: "ab"}.validate())
	// length is counted in characters, not bytes
	assert.NoError(t, ScriptInput{Topic: "ñññññññññá", Tone: "ñoñ"}.validate())
}

func TestVideoInputValidation(t *testing.T) {
	_, _, err := VideoInput{}.resolve()
	var verr *domain.ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, []string{"scenes: Se requiere al menos una escena"}, verr.Problems)

	_, _, err = VideoInput{Scenes: []SceneInput{{Text: "hey"}}}.resolve()
	require.ErrorAs(t, err, &verr)
	assert.Len(t, verr.Problems, 2)

	bad := "sideways"
	_, _, err = VideoInput{
		Scenes: []SceneInput{{Text: "Escena válida", SearchTerms: []string{"sea"}}},
		Config: &VideoConfigInput{Orientation: &bad},
	}.resolve()
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, []string{"config.orientation: Debe ser portrait o landscape"}, verr.Problems)
}

func TestVideoInputDefaults(t *testing.T) {
	scenes, cfg, err := VideoInput{Scenes: []SceneInput{{Text: "Escena válida", SearchTerms: []string{"sea"}}}}.resolve()
	require.NoError(t, err)
	assert.Equal(t, DefaultVideoConfig, cfg)
	require.Len(t, scenes, 1)
	assert.Equal(t, []string{"sea"}, scenes[0].SearchTerms)
}
