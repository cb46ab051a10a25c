package store

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"slices"
	"sync"
	"time"

	"github.com/anirbanjana883/question-traker/models"
	"github.com/anirbanjana883/question-traker/utils"
)

const saveTimeout = 5 * time.Second

// Seeder builds a fresh tree from an external seed source.
type Seeder interface {
	Seed() (*models.Document, error)
}

// Store owns the in-memory tree. Every operation holds mu across the whole
// read-modify-save sequence, and every mutation is saved before it returns.
type Store struct {
	mu      sync.Mutex
	doc     *models.Document
	gateway Gateway
	seeder  Seeder
	newID   func() (string, error)
}

// New loads the persisted document, or bootstraps one from seeder when
// nothing usable has been saved yet. seeder may be nil.
func New(ctx context.Context, gateway Gateway, seeder Seeder) (*Store, error) {
	s := &Store{
		gateway: gateway,
		seeder:  seeder,
		newID:   utils.NewID,
	}

	doc, err := gateway.Load(ctx)
	switch {
	case err == nil:
		if n := doc.Repair(); n > 0 {
			slog.Warn("dropped dangling order entries", "count", n)
		}
		s.doc = doc
		slog.Info("sheet loaded from persistence", "topics", len(doc.Topics), "questions", len(doc.Questions))
	case errors.Is(err, ErrNoDocument), errors.Is(err, ErrCorruptDocument):
		slog.Warn("no usable persisted sheet, bootstrapping", "error", err)
		s.doc = s.bootstrapDocument()
		s.persist()
	default:
		return nil, fmt.Errorf("loading sheet: %w", err)
	}

	return s, nil
}

func (s *Store) bootstrapDocument() *models.Document {
	if s.seeder == nil {
		return models.NewDocument(models.DefaultSheetID, models.DefaultSheetTitle)
	}
	doc, err := s.seeder.Seed()
	if err != nil {
		slog.Warn("seed unavailable, starting with an empty sheet", "error", err)
		return models.NewDocument(models.DefaultSheetID, models.DefaultSheetTitle)
	}
	return doc
}

// persist saves the live document. A failed save is logged and otherwise
// ignored: the in-memory mutation stays applied.
func (s *Store) persist() {
	ctx, cancel := context.WithTimeout(context.Background(), saveTimeout)
	defer cancel()

	if err := s.gateway.Save(ctx, s.doc); err != nil {
		slog.Error("failed to save sheet", "error", err)
	}
}

// Get returns a deep copy of the current tree.
func (s *Store) Get() *models.Document {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.doc.Clone()
}

// Add creates an entity of kind under parentID and appends it to the parent's
// order array. Topics ignore parentID. An unresolvable parent is rejected
// rather than creating an unreachable entity.
func (s *Store) Add(kind models.Kind, parentID string, f models.Fields) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	switch kind {
	case models.KindTopic:
	case models.KindSubTopic:
		if _, ok := s.doc.Topics[parentID]; !ok {
			return "", fmt.Errorf("%w: topic %q not found", ErrInvalidRequest, parentID)
		}
	case models.KindQuestion:
		if _, ok := s.doc.SubTopics[parentID]; !ok {
			return "", fmt.Errorf("%w: sub-topic %q not found", ErrInvalidRequest, parentID)
		}
	default:
		return "", fmt.Errorf("%w: unknown kind %q", ErrInvalidRequest, kind)
	}

	id, err := s.freshID()
	if err != nil {
		return "", err
	}

	title := ""
	if f.Title != nil {
		title = *f.Title
	}

	switch kind {
	case models.KindTopic:
		s.doc.Topics[id] = &models.Topic{ID: id, Title: title, SubTopicOrder: []string{}}
		s.doc.Sheet.TopicOrder = append(s.doc.Sheet.TopicOrder, id)
	case models.KindSubTopic:
		s.doc.SubTopics[id] = &models.SubTopic{ID: id, Title: title, QuestionOrder: []string{}}
		parent := s.doc.Topics[parentID]
		parent.SubTopicOrder = append(parent.SubTopicOrder, id)
	case models.KindQuestion:
		q := &models.Question{
			ID:         id,
			Title:      title,
			Link:       models.PlaceholderLink,
			Difficulty: models.Medium,
		}
		if f.Link != nil && *f.Link != "" {
			q.Link = *f.Link
		}
		if f.Difficulty != nil && *f.Difficulty != "" {
			q.Difficulty = *f.Difficulty
		}
		s.doc.Questions[id] = q
		parent := s.doc.SubTopics[parentID]
		parent.QuestionOrder = append(parent.QuestionOrder, id)
	}

	s.persist()
	return id, nil
}

func (s *Store) freshID() (string, error) {
	for attempts := 0; attempts < 5; attempts++ {
		id, err := s.newID()
		if err != nil {
			return "", fmt.Errorf("generate id: %w", err)
		}
		if !s.doc.Has(models.KindTopic, id) && !s.doc.Has(models.KindSubTopic, id) &&
			!s.doc.Has(models.KindQuestion, id) && id != s.doc.Sheet.ID {
			return id, nil
		}
	}
	return "", fmt.Errorf("generate id: too many collisions")
}

// Update merges f into the entity. Unknown IDs are a successful no-op.
// A question title is only replaced by a non-empty one.
func (s *Store) Update(kind models.Kind, id string, f models.Fields) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	switch kind {
	case models.KindTopic:
		t, ok := s.doc.Topics[id]
		if !ok {
			return nil
		}
		if f.Title != nil {
			t.Title = *f.Title
		}
	case models.KindSubTopic:
		st, ok := s.doc.SubTopics[id]
		if !ok {
			return nil
		}
		if f.Title != nil {
			st.Title = *f.Title
		}
	case models.KindQuestion:
		q, ok := s.doc.Questions[id]
		if !ok {
			return nil
		}
		if f.Title != nil && *f.Title != "" {
			q.Title = *f.Title
		}
		if f.Link != nil {
			q.Link = *f.Link
		}
		if f.Difficulty != nil {
			q.Difficulty = *f.Difficulty
		}
	default:
		return fmt.Errorf("%w: unknown kind %q", ErrInvalidRequest, kind)
	}

	s.persist()
	return nil
}

// Delete removes the entity and everything it owns. parentID is a hint for
// which order array holds id; if it does not, the owner is found by scanning.
// Unknown IDs are a successful no-op.
func (s *Store) Delete(kind models.Kind, id, parentID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	switch kind {
	case models.KindTopic:
		t, ok := s.doc.Topics[id]
		if !ok {
			return nil
		}
		s.doc.Sheet.TopicOrder = without(s.doc.Sheet.TopicOrder, id)
		for _, subID := range t.SubTopicOrder {
			s.dropSubTopic(subID)
		}
		delete(s.doc.Topics, id)
	case models.KindSubTopic:
		if _, ok := s.doc.SubTopics[id]; !ok {
			return nil
		}
		s.unlinkSubTopic(id, parentID)
		s.dropSubTopic(id)
	case models.KindQuestion:
		if _, ok := s.doc.Questions[id]; !ok {
			return nil
		}
		s.unlinkQuestion(id, parentID)
		delete(s.doc.Questions, id)
	default:
		return fmt.Errorf("%w: unknown kind %q", ErrInvalidRequest, kind)
	}

	s.persist()
	return nil
}

// dropSubTopic deletes a sub-topic and its questions from the mappings. It
// does not touch the parent's order array.
func (s *Store) dropSubTopic(id string) {
	st, ok := s.doc.SubTopics[id]
	if !ok {
		return
	}
	for _, qID := range st.QuestionOrder {
		delete(s.doc.Questions, qID)
	}
	delete(s.doc.SubTopics, id)
}

func (s *Store) unlinkSubTopic(id, parentID string) {
	if t, ok := s.doc.Topics[parentID]; ok && slices.Contains(t.SubTopicOrder, id) {
		t.SubTopicOrder = without(t.SubTopicOrder, id)
		return
	}
	for _, t := range s.doc.Topics {
		t.SubTopicOrder = without(t.SubTopicOrder, id)
	}
}

func (s *Store) unlinkQuestion(id, parentID string) {
	if st, ok := s.doc.SubTopics[parentID]; ok && slices.Contains(st.QuestionOrder, id) {
		st.QuestionOrder = without(st.QuestionOrder, id)
		return
	}
	for _, st := range s.doc.SubTopics {
		st.QuestionOrder = without(st.QuestionOrder, id)
	}
}

func without(order []string, id string) []string {
	return slices.DeleteFunc(order, func(v string) bool { return v == id })
}

// TogglePin flips isPinned on a question.
func (s *Store) TogglePin(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	q, ok := s.doc.Questions[id]
	if !ok {
		return fmt.Errorf("%w: question %q", ErrNotFound, id)
	}
	q.IsPinned = !q.IsPinned

	s.persist()
	return nil
}

// Reorder removes the element at m.SourceIndex from the source order array
// and inserts it at m.DestIndex of the destination array, where DestIndex is
// counted after the removal. An out-of-range source index is a no-op and the
// destination index is clamped.
func (s *Store) Reorder(m models.Move) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	src, dst, err := s.orderArrays(m)
	if err != nil {
		return err
	}

	if m.SourceIndex < 0 || m.SourceIndex >= len(*src) {
		slog.Debug("reorder source index out of range", "kind", m.Kind, "index", m.SourceIndex, "len", len(*src))
		return nil
	}

	moved := (*src)[m.SourceIndex]
	*src = slices.Delete(*src, m.SourceIndex, m.SourceIndex+1)

	destIndex := min(max(m.DestIndex, 0), len(*dst))
	*dst = slices.Insert(*dst, destIndex, moved)

	s.persist()
	return nil
}

// orderArrays resolves the source and destination arrays of a move. Both
// pointers are equal when the move stays inside one parent.
func (s *Store) orderArrays(m models.Move) (src, dst *[]string, err error) {
	switch m.Kind {
	case models.KindTopic:
		return &s.doc.Sheet.TopicOrder, &s.doc.Sheet.TopicOrder, nil
	case models.KindSubTopic:
		from, okFrom := s.doc.Topics[m.SourceParentID]
		to, okTo := s.doc.Topics[m.DestParentID]
		if !okFrom || !okTo {
			return nil, nil, fmt.Errorf("%w: unknown topic", ErrInvalidRequest)
		}
		return &from.SubTopicOrder, &to.SubTopicOrder, nil
	case models.KindQuestion:
		from, okFrom := s.doc.SubTopics[m.SourceParentID]
		to, okTo := s.doc.SubTopics[m.DestParentID]
		if !okFrom || !okTo {
			return nil, nil, fmt.Errorf("%w: unknown sub-topic", ErrInvalidRequest)
		}
		return &from.QuestionOrder, &to.QuestionOrder, nil
	}
	return nil, nil, fmt.Errorf("%w: unknown kind %q", ErrInvalidRequest, m.Kind)
}

// Reset replaces the whole tree with a fresh one from the seeder and returns
// a copy of it. On failure the current tree is left untouched.
func (s *Store) Reset() (*models.Document, error) {
	if s.seeder == nil {
		return nil, ErrSeedMissing
	}
	doc, err := s.seeder.Seed()
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrSeedMissing, err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	s.doc = doc
	s.persist()
	slog.Info("sheet reset from seed", "topics", len(doc.Topics), "questions", len(doc.Questions))
	return s.doc.Clone(), nil
}
