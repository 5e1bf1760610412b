package export

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/BurntSushi/toml"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"

	"github.com/alexanderramin/grindfit/internal/domain"
	"github.com/alexanderramin/grindfit/internal/testutil"
)

func completedProgram(t *testing.T) domain.Program {
	t.Helper()
	p := testutil.NewTestProgram()
	var err error
	for _, task := range p.Schedule[0].Tasks {
		p, err = p.ToggleTask(0, task.ID)
		require.NoError(t, err)
	}
	return p
}

func TestParseFormat(t *testing.T) {
	tests := map[string]Format{
		"json": FormatJSON,
		"TOML": FormatTOML,
		"yaml": FormatYAML,
		" yml": FormatYAML,
	}
	for in, want := range tests {
		got, err := ParseFormat(in)
		require.NoError(t, err, in)
		assert.Equal(t, want, got, in)
	}

	_, err := ParseFormat("csv")
	assert.Error(t, err)
}

func TestBuild_ResolvesDates(t *testing.T) {
	doc := Build(testutil.NewTestProgram())

	require.Len(t, doc.Days, 12)
	// Three days a week from Monday 2024-01-01: Mon, Wed, Fri.
	assert.Equal(t, "2024-01-01", doc.Days[0].Date)
	assert.Equal(t, "Monday", doc.Days[0].Weekday)
	assert.Equal(t, "2024-01-03", doc.Days[1].Date)
	assert.Equal(t, "2024-01-05", doc.Days[2].Date)
	assert.Equal(t, "2024-01-08", doc.Days[3].Date)
	assert.Equal(t, 12, doc.Days[11].Number)
	assert.Equal(t, "2024-01-01", doc.CreatedAt)
}

func TestBuild_Summary(t *testing.T) {
	doc := Build(completedProgram(t))

	assert.Equal(t, 4, doc.Summary.Completed)
	assert.Equal(t, 48, doc.Summary.Total)
	assert.Equal(t, 8, doc.Summary.Percent)
	assert.Equal(t, 200, doc.Summary.XP)
	assert.Equal(t, 1, doc.Summary.Level)
	assert.Equal(t, []string{"First Step", "Day One Done"}, doc.Summary.Badges)
	assert.True(t, doc.Days[0].Complete)
	assert.False(t, doc.Days[1].Complete)
}

func TestWrite_JSON(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, Write(&buf, completedProgram(t), FormatJSON))

	var doc Document
	require.NoError(t, json.Unmarshal(buf.Bytes(), &doc))
	assert.Equal(t, "Ada", doc.Profile.Name)
	assert.Equal(t, "WORKOUT", doc.Days[0].Tasks[0].Type)
	assert.True(t, doc.Days[0].Tasks[0].Completed)
	assert.Contains(t, buf.String(), `"days_per_week": 3`)
}

func TestWrite_TOML(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, Write(&buf, testutil.NewTestProgram(), FormatTOML))

	var doc Document
	_, err := toml.Decode(buf.String(), &doc)
	require.NoError(t, err)
	assert.Len(t, doc.Days, 12)
	assert.Equal(t, "2024-01-08", doc.Days[3].Date)
	assert.Contains(t, buf.String(), "[[days]]")
}

func TestWrite_YAML(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, Write(&buf, testutil.NewTestProgram(), FormatYAML))

	var doc Document
	require.NoError(t, yaml.Unmarshal(buf.Bytes(), &doc))
	assert.Equal(t, "Muscle Gain", doc.Profile.Goal)
	assert.Equal(t, "medium", doc.Days[5].Tasks[1].Priority)
	assert.Contains(t, buf.String(), "program_id:")
}

func TestWrite_UnknownFormat(t *testing.T) {
	var buf bytes.Buffer
	assert.Error(t, Write(&buf, testutil.NewTestProgram(), Format("xml")))
}
