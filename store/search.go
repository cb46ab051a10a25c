package store

import (
	"fmt"
	"strings"

	"golang.org/x/text/cases"

	"github.com/anirbanjana883/question-traker/models"
)

// Search matches query against question titles and difficulties, ignoring
// case. Results follow display order. A blank query matches nothing.
func (s *Store) Search(query string) []models.SearchResult {
	results := []models.SearchResult{}

	query = strings.TrimSpace(query)
	if query == "" {
		return results
	}

	// Casers are stateful, so each search gets its own.
	fold := cases.Fold()
	needle := fold.String(query)

	s.mu.Lock()
	defer s.mu.Unlock()

	s.doc.Walk(func(t *models.Topic, st *models.SubTopic, q *models.Question) {
		if !strings.Contains(fold.String(q.Title), needle) &&
			!strings.Contains(fold.String(string(q.Difficulty)), needle) {
			return
		}
		results = append(results, models.SearchResult{
			Question:     *q,
			TopicID:      t.ID,
			TopicName:    t.Title,
			SubTopicID:   st.ID,
			SubTopicName: st.Title,
		})
	})
	return results
}

// Questions splits a sub-topic's questions into pinned and unpinned groups,
// each in questionOrder order.
func (s *Store) Questions(subTopicID string) (pinned, unpinned []models.Question, err error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	st, ok := s.doc.SubTopics[subTopicID]
	if !ok {
		return nil, nil, fmt.Errorf("%w: sub-topic %q", ErrNotFound, subTopicID)
	}

	pinned, unpinned = []models.Question{}, []models.Question{}
	for _, qID := range st.QuestionOrder {
		q, ok := s.doc.Questions[qID]
		if !ok {
			continue
		}
		if q.IsPinned {
			pinned = append(pinned, *q)
		} else {
			unpinned = append(unpinned, *q)
		}
	}
	return pinned, unpinned, nil
}
