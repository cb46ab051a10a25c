package models

import "slices"

// Document is the whole persisted tree: the sheet root plus one mapping per entity kind.
type Document struct {
	Sheet     Sheet                `json:"sheet"`
	Topics    map[string]*Topic    `json:"topics"`
	SubTopics map[string]*SubTopic `json:"subTopics"`
	Questions map[string]*Question `json:"questions"`
}

// Sheet is the singleton root
type Sheet struct {
	ID         string   `json:"id"`
	Title      string   `json:"title"`
	TopicOrder []string `json:"topicOrder"`
}

type Topic struct {
	ID            string   `json:"id"`
	Title         string   `json:"title"`
	SubTopicOrder []string `json:"subTopicOrder"`
}

type SubTopic struct {
	ID            string   `json:"id"`
	Title         string   `json:"title"`
	QuestionOrder []string `json:"questionOrder"`
}

// Question is a single checklist entry
type Question struct {
	ID         string     `json:"id"`
	Title      string     `json:"title"`
	Link       string     `json:"link"`
	Difficulty Difficulty `json:"difficulty"`
	IsPinned   bool       `json:"isPinned"`
}

const (
	DefaultSheetID    = "sheet-1"
	DefaultSheetTitle = "My Question Sheet"
	PlaceholderLink   = "#"
)

// NewDocument returns an empty tree with initialized mappings.
func NewDocument(id, title string) *Document {
	return &Document{
		Sheet:     Sheet{ID: id, Title: title, TopicOrder: []string{}},
		Topics:    map[string]*Topic{},
		SubTopics: map[string]*SubTopic{},
		Questions: map[string]*Question{},
	}
}

// Has reports whether id is present in the mapping for kind.
func (d *Document) Has(kind Kind, id string) bool {
	switch kind {
	case KindTopic:
		_, ok := d.Topics[id]
		return ok
	case KindSubTopic:
		_, ok := d.SubTopics[id]
		return ok
	case KindQuestion:
		_, ok := d.Questions[id]
		return ok
	}
	return false
}

// Clone returns a deep copy that shares nothing with d.
func (d *Document) Clone() *Document {
	c := NewDocument(d.Sheet.ID, d.Sheet.Title)
	c.Sheet.TopicOrder = append(c.Sheet.TopicOrder, d.Sheet.TopicOrder...)
	for id, t := range d.Topics {
		c.Topics[id] = &Topic{
			ID:            t.ID,
			Title:         t.Title,
			SubTopicOrder: append([]string{}, t.SubTopicOrder...),
		}
	}
	for id, st := range d.SubTopics {
		c.SubTopics[id] = &SubTopic{
			ID:            st.ID,
			Title:         st.Title,
			QuestionOrder: append([]string{}, st.QuestionOrder...),
		}
	}
	for id, q := range d.Questions {
		cp := *q
		c.Questions[id] = &cp
	}
	return c
}

// Normalize replaces nil mappings and order arrays with empty ones so the
// document always serializes with [] and {} instead of null.
func (d *Document) Normalize() {
	if d.Sheet.TopicOrder == nil {
		d.Sheet.TopicOrder = []string{}
	}
	if d.Topics == nil {
		d.Topics = map[string]*Topic{}
	}
	if d.SubTopics == nil {
		d.SubTopics = map[string]*SubTopic{}
	}
	if d.Questions == nil {
		d.Questions = map[string]*Question{}
	}
	for id, t := range d.Topics {
		if t == nil {
			delete(d.Topics, id)
			continue
		}
		if t.SubTopicOrder == nil {
			t.SubTopicOrder = []string{}
		}
	}
	for id, st := range d.SubTopics {
		if st == nil {
			delete(d.SubTopics, id)
			continue
		}
		if st.QuestionOrder == nil {
			st.QuestionOrder = []string{}
		}
	}
	for id, q := range d.Questions {
		if q == nil {
			delete(d.Questions, id)
		}
	}
}

// Repair drops dangling and duplicate IDs from every order array and returns
// how many slots were removed.
func (d *Document) Repair() int {
	d.Normalize()

	hasTopic := func(id string) bool {
		_, ok := d.Topics[id]
		return ok
	}
	hasSub := func(id string) bool {
		_, ok := d.SubTopics[id]
		return ok
	}
	hasQuestion := func(id string) bool {
		_, ok := d.Questions[id]
		return ok
	}

	removed := 0
	seenTopics, seenSubs, seenQuestions := map[string]bool{}, map[string]bool{}, map[string]bool{}
	repairedTopics, repairedSubs := map[string]bool{}, map[string]bool{}

	repairSub := func(st *SubTopic) {
		if repairedSubs[st.ID] {
			return
		}
		repairedSubs[st.ID] = true
		st.QuestionOrder, removed = keepValid(st.QuestionOrder, seenQuestions, hasQuestion, removed)
	}
	repairTopic := func(t *Topic) {
		if repairedTopics[t.ID] {
			return
		}
		repairedTopics[t.ID] = true
		t.SubTopicOrder, removed = keepValid(t.SubTopicOrder, seenSubs, hasSub, removed)
		for _, subID := range t.SubTopicOrder {
			repairSub(d.SubTopics[subID])
		}
	}

	// Reachable entities claim their slots first so duplicates are dropped
	// from the later, or unreachable, owner.
	d.Sheet.TopicOrder, removed = keepValid(d.Sheet.TopicOrder, seenTopics, hasTopic, removed)
	for _, topicID := range d.Sheet.TopicOrder {
		repairTopic(d.Topics[topicID])
	}
	for _, id := range sortedKeys(d.Topics) {
		repairTopic(d.Topics[id])
	}
	for _, id := range sortedKeys(d.SubTopics) {
		repairSub(d.SubTopics[id])
	}
	return removed
}

func sortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	slices.Sort(keys)
	return keys
}

func keepValid(order []string, seen map[string]bool, exists func(string) bool, removed int) ([]string, int) {
	kept := make([]string, 0, len(order))
	for _, id := range order {
		if seen[id] || !exists(id) {
			removed++
			continue
		}
		seen[id] = true
		kept = append(kept, id)
	}
	return kept, removed
}

// Walk calls fn for every reachable question in display order. Dangling IDs
// are skipped.
func (d *Document) Walk(fn func(t *Topic, st *SubTopic, q *Question)) {
	for _, topicID := range d.Sheet.TopicOrder {
		t, ok := d.Topics[topicID]
		if !ok {
			continue
		}
		for _, subID := range t.SubTopicOrder {
			st, ok := d.SubTopics[subID]
			if !ok {
				continue
			}
			for _, qID := range st.QuestionOrder {
				q, ok := d.Questions[qID]
				if !ok {
					continue
				}
				fn(t, st, q)
			}
		}
	}
}
