package models

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleDocument() *Document {
	d := NewDocument("sheet-1", "Sheet")
	d.Sheet.TopicOrder = []string{"t1"}
	d.Topics["t1"] = &Topic{ID: "t1", Title: "Arrays", SubTopicOrder: []string{"s1"}}
	d.SubTopics["s1"] = &SubTopic{ID: "s1", Title: "Basics", QuestionOrder: []string{"q1"}}
	d.Questions["q1"] = &Question{ID: "q1", Title: "Two Sum", Link: "#", Difficulty: Easy}
	return d
}

func TestClone_IsIndependent(t *testing.T) {
	d := sampleDocument()
	c := d.Clone()

	c.Sheet.TopicOrder = append(c.Sheet.TopicOrder, "t2")
	c.Topics["t1"].Title = "Changed"
	c.SubTopics["s1"].QuestionOrder[0] = "other"
	c.Questions["q1"].IsPinned = true
	delete(c.Questions, "q1")

	assert.Equal(t, []string{"t1"}, d.Sheet.TopicOrder)
	assert.Equal(t, "Arrays", d.Topics["t1"].Title)
	assert.Equal(t, []string{"q1"}, d.SubTopics["s1"].QuestionOrder)
	require.Contains(t, d.Questions, "q1")
	assert.False(t, d.Questions["q1"].IsPinned)
}

func TestNormalize_FillsEmptyCollections(t *testing.T) {
	var d Document
	require.NoError(t, json.Unmarshal([]byte(`{"sheet":{"id":"x"},"topics":{"t":{"id":"t"},"gone":null}}`), &d))

	d.Normalize()

	out, err := json.Marshal(&d)
	require.NoError(t, err)
	assert.JSONEq(t, `{
		"sheet": {"id": "x", "title": "", "topicOrder": []},
		"topics": {"t": {"id": "t", "title": "", "subTopicOrder": []}},
		"subTopics": {},
		"questions": {}
	}`, string(out))
}

func TestRepair(t *testing.T) {
	d := sampleDocument()
	d.Sheet.TopicOrder = []string{"t1", "missing", "t1"}
	d.Topics["t1"].SubTopicOrder = []string{"s1", "nope"}
	d.SubTopics["s1"].QuestionOrder = []string{"q1", "q1", "ghost"}
	// unreachable topic that also claims s1
	d.Topics["t9"] = &Topic{ID: "t9", Title: "Orphan", SubTopicOrder: []string{"s1"}}

	removed := d.Repair()

	assert.Equal(t, 6, removed)
	assert.Equal(t, []string{"t1"}, d.Sheet.TopicOrder)
	assert.Equal(t, []string{"s1"}, d.Topics["t1"].SubTopicOrder)
	assert.Empty(t, d.Topics["t9"].SubTopicOrder)
	assert.Equal(t, []string{"q1"}, d.SubTopics["s1"].QuestionOrder)
}

func TestRepair_CleanDocument(t *testing.T) {
	d := sampleDocument()
	assert.Zero(t, d.Repair())
}

func TestWalk(t *testing.T) {
	d := sampleDocument()
	d.SubTopics["s1"].QuestionOrder = []string{"q1", "dangling"}

	var titles []string
	d.Walk(func(tp *Topic, st *SubTopic, q *Question) {
		titles = append(titles, tp.Title+"/"+st.Title+"/"+q.Title)
	})

	assert.Equal(t, []string{"Arrays/Basics/Two Sum"}, titles)
}

func TestHas(t *testing.T) {
	d := sampleDocument()
	assert.True(t, d.Has(KindTopic, "t1"))
	assert.True(t, d.Has(KindSubTopic, "s1"))
	assert.True(t, d.Has(KindQuestion, "q1"))
	assert.False(t, d.Has(KindQuestion, "t1"))
	assert.False(t, d.Has(Kind("sheet"), "sheet-1"))
}

func TestParseKind(t *testing.T) {
	for _, s := range []string{"topic", "subTopic", "question"} {
		k, err := ParseKind(s)
		require.NoError(t, err)
		assert.Equal(t, Kind(s), k)
	}
	_, err := ParseKind("subtopic")
	assert.Error(t, err)
	_, err = ParseKind("")
	assert.Error(t, err)
}

func TestParseDifficulty(t *testing.T) {
	tests := []struct {
		in      string
		want    Difficulty
		wantErr bool
	}{
		{"Easy", Easy, false},
		{"medium", Medium, false},
		{" HARD ", Hard, false},
		{"", Medium, false},
		{"Extreme", "", true},
	}
	for _, tt := range tests {
		got, err := ParseDifficulty(tt.in)
		if tt.wantErr {
			assert.Error(t, err, tt.in)
			continue
		}
		require.NoError(t, err, tt.in)
		assert.Equal(t, tt.want, got, tt.in)
	}
}
