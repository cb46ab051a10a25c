package seed

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/anirbanjana883/question-traker/models"
)

func TestNormalize(t *testing.T) {
	src := &Source{Data: SourceData{
		Sheet: SourceSheet{ID: "s1", Name: "Sheet One"},
		Questions: []SourceQuestion{
			{ID: "a", Topic: "Arrays", SubTopic: "Basics", Title: "Two Sum",
				QuestionID: &SourceQuestionRef{ProblemURL: "https://x", Difficulty: "easy"}},
			{ID: "b", Topic: "Graphs", SubTopic: "Basics", Title: "BFS"},
			{ID: "c", Topic: "Arrays", SubTopic: "Basics", Title: "3Sum"},
			{ID: "d", Topic: "Arrays", SubTopic: "Sliding Window", Title: "Max Window",
				QuestionID: &SourceQuestionRef{Difficulty: "HARD"}},
		},
	}}

	doc := Normalize(src)

	assert.Equal(t, "s1", doc.Sheet.ID)
	assert.Equal(t, "Sheet One", doc.Sheet.Title)
	assert.Equal(t, []string{"topic-1", "topic-2"}, doc.Sheet.TopicOrder)

	assert.Equal(t, "Arrays", doc.Topics["topic-1"].Title)
	assert.Equal(t, []string{"sub-1", "sub-3"}, doc.Topics["topic-1"].SubTopicOrder)
	// same sub-topic name under a different topic is a separate node
	assert.Equal(t, []string{"sub-2"}, doc.Topics["topic-2"].SubTopicOrder)
	assert.Equal(t, "Basics", doc.SubTopics["sub-2"].Title)

	assert.Equal(t, []string{"q-a", "q-c"}, doc.SubTopics["sub-1"].QuestionOrder)
	assert.Equal(t, []string{"q-b"}, doc.SubTopics["sub-2"].QuestionOrder)
	assert.Equal(t, []string{"q-d"}, doc.SubTopics["sub-3"].QuestionOrder)

	q := doc.Questions["q-a"]
	assert.Equal(t, "Two Sum", q.Title)
	assert.Equal(t, "https://x", q.Link)
	assert.Equal(t, models.Easy, q.Difficulty)
	assert.False(t, q.IsPinned)

	assert.Equal(t, models.Hard, doc.Questions["q-d"].Difficulty)
}

func TestNormalize_Defaults(t *testing.T) {
	src := &Source{Data: SourceData{
		Questions: []SourceQuestion{
			{ID: "1"},
			{ID: "2", QuestionID: &SourceQuestionRef{Name: "From Ref", Difficulty: "Impossible"}},
		},
	}}

	doc := Normalize(src)

	assert.Equal(t, models.DefaultSheetID, doc.Sheet.ID)
	assert.Equal(t, models.DefaultSheetTitle, doc.Sheet.Title)
	assert.Equal(t, DefaultTopic, doc.Topics["topic-1"].Title)
	assert.Equal(t, DefaultSubTopic, doc.SubTopics["sub-1"].Title)

	first := doc.Questions["q-1"]
	assert.Equal(t, UnknownTitle, first.Title)
	assert.Equal(t, models.PlaceholderLink, first.Link)
	assert.Equal(t, models.Medium, first.Difficulty)

	second := doc.Questions["q-2"]
	assert.Equal(t, "From Ref", second.Title)
	assert.Equal(t, models.Medium, second.Difficulty)
}

func TestNormalize_QuestionIDs(t *testing.T) {
	src := &Source{Data: SourceData{
		Questions: []SourceQuestion{
			{ID: "q-already", Title: "Prefixed"},
			{Title: "No ID"},
			{ID: "dup", Title: "First"},
			{ID: "dup", Title: "Second"},
		},
	}}

	doc := Normalize(src)

	assert.Contains(t, doc.Questions, "q-already")
	assert.Equal(t, "First", doc.Questions["q-dup"].Title)
	assert.Len(t, doc.Questions, 3)

	order := doc.SubTopics["sub-1"].QuestionOrder
	require.Len(t, order, 3)
	assert.Equal(t, "q-already", order[0])
	assert.True(t, strings.HasPrefix(order[1], "q-"))
	assert.Len(t, order[1], len("q-")+36)
	assert.Equal(t, "q-dup", order[2])
}

func TestNormalize_CountersAreLocal(t *testing.T) {
	src := &Source{Data: SourceData{
		Questions: []SourceQuestion{{ID: "1", Topic: "A", SubTopic: "B", Title: "x"}},
	}}

	first := Normalize(src)
	second := Normalize(src)

	assert.Equal(t, first.Sheet.TopicOrder, second.Sheet.TopicOrder)
	assert.Equal(t, []string{"topic-1"}, second.Sheet.TopicOrder)
}

func TestLoadSource_JSONAndYAML(t *testing.T) {
	dir := t.TempDir()

	jsonPath := filepath.Join(dir, "sheet.json")
	require.NoError(t, os.WriteFile(jsonPath, []byte(`{
		"data": {
			"sheet": {"_id": "x", "name": "JSON Sheet"},
			"questions": [{"_id": "1", "topic": "T", "subTopic": "S", "title": "Q"}]
		}
	}`), 0o644))

	yamlPath := filepath.Join(dir, "sheet.yaml")
	require.NoError(t, os.WriteFile(yamlPath, []byte(`
data:
  sheet:
    _id: x
    name: JSON Sheet
  questions:
    - _id: "1"
      topic: T
      subTopic: S
      title: Q
`), 0o644))

	fromJSON, err := LoadSource(jsonPath)
	require.NoError(t, err)
	fromYAML, err := LoadSource(yamlPath)
	require.NoError(t, err)

	assert.Equal(t, fromJSON, fromYAML)
	assert.Equal(t, "JSON Sheet", fromJSON.Data.Sheet.Name)
	require.Len(t, fromJSON.Data.Questions, 1)
	assert.Equal(t, "Q", fromJSON.Data.Questions[0].Title)
}

func TestParseSource_Invalid(t *testing.T) {
	tests := []struct {
		name string
		body string
	}{
		{"not json", `{`},
		{"missing data", `{"questions": []}`},
		{"questions not array", `{"data": {"questions": {}}}`},
		{"title wrong type", `{"data": {"questions": [{"title": 7}]}}`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseSource([]byte(tt.body))
			assert.Error(t, err)
		})
	}
}

func TestParseSource_Nulls(t *testing.T) {
	src, err := ParseSource([]byte(`{"data": {"sheet": null, "questions": [{"_id": "1", "questionId": null, "topic": null}]}}`))
	require.NoError(t, err)

	doc := Normalize(src)
	assert.Equal(t, DefaultTopic, doc.Topics["topic-1"].Title)
}

func TestFileSeeder(t *testing.T) {
	_, err := FileSeeder{}.Seed()
	assert.Error(t, err)

	_, err = FileSeeder{Path: filepath.Join(t.TempDir(), "missing.json")}.Seed()
	assert.Error(t, err)

	path := filepath.Join(t.TempDir(), "sheet.json")
	require.NoError(t, os.WriteFile(path, []byte(`{"data": {"questions": [{"_id": "1", "title": "Q"}]}}`), 0o644))

	doc, err := FileSeeder{Path: path}.Seed()
	require.NoError(t, err)
	assert.Contains(t, doc.Questions, "q-1")
}

func TestBundledSeedFile(t *testing.T) {
	doc, err := FileSeeder{Path: filepath.Join("..", "scripts", "sheet.json")}.Seed()
	require.NoError(t, err)

	assert.Equal(t, models.DefaultSheetID, doc.Sheet.ID)
	assert.Len(t, doc.Sheet.TopicOrder, 3)
	assert.Len(t, doc.Questions, 6)
	assert.Equal(t, models.Hard, doc.Questions["q-median-streams"].Difficulty)
	assert.Zero(t, doc.Repair())
}
