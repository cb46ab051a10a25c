package seed

import (
	"fmt"
	"log/slog"
	"strings"

	"github.com/google/uuid"

	"github.com/anirbanjana883/question-traker/models"
)

const (
	DefaultTopic    = "Uncategorized"
	DefaultSubTopic = "General Problems"
	UnknownTitle    = "Unknown Question"

	questionPrefix = "q-"
)

// Normalize builds a tree from src in a single pass. Topics are keyed by
// name and sub-topics by "topic:subTopic", so equally named sub-topics under
// different topics stay distinct. IDs are "topic-N" and "sub-N" from counters
// local to this call; question IDs are the source IDs under the "q-" prefix.
func Normalize(src *Source) *models.Document {
	sheetID := src.Data.Sheet.ID
	if sheetID == "" {
		sheetID = models.DefaultSheetID
	}
	sheetTitle := src.Data.Sheet.Name
	if sheetTitle == "" {
		sheetTitle = models.DefaultSheetTitle
	}
	doc := models.NewDocument(sheetID, sheetTitle)

	topicIDs := map[string]string{}
	subTopicIDs := map[string]string{}
	topicCount, subTopicCount := 0, 0

	for _, item := range src.Data.Questions {
		topicName := item.Topic
		if topicName == "" {
			topicName = DefaultTopic
		}
		subTopicName := item.SubTopic
		if subTopicName == "" {
			subTopicName = DefaultSubTopic
		}

		topicID, ok := topicIDs[topicName]
		if !ok {
			topicCount++
			topicID = fmt.Sprintf("topic-%d", topicCount)
			topicIDs[topicName] = topicID
			doc.Topics[topicID] = &models.Topic{ID: topicID, Title: topicName, SubTopicOrder: []string{}}
			doc.Sheet.TopicOrder = append(doc.Sheet.TopicOrder, topicID)
		}

		subKey := topicName + ":" + subTopicName
		subTopicID, ok := subTopicIDs[subKey]
		if !ok {
			subTopicCount++
			subTopicID = fmt.Sprintf("sub-%d", subTopicCount)
			subTopicIDs[subKey] = subTopicID
			doc.SubTopics[subTopicID] = &models.SubTopic{ID: subTopicID, Title: subTopicName, QuestionOrder: []string{}}
			topic := doc.Topics[topicID]
			topic.SubTopicOrder = append(topic.SubTopicOrder, subTopicID)
		}

		q := normalizeQuestion(item)
		if _, dup := doc.Questions[q.ID]; dup {
			slog.Warn("skipping duplicate seed question", "id", q.ID, "title", q.Title)
			continue
		}
		doc.Questions[q.ID] = q
		sub := doc.SubTopics[subTopicID]
		sub.QuestionOrder = append(sub.QuestionOrder, q.ID)
	}

	return doc
}

func normalizeQuestion(item SourceQuestion) *models.Question {
	ref := SourceQuestionRef{}
	if item.QuestionID != nil {
		ref = *item.QuestionID
	}

	rawID := item.ID
	if rawID == "" {
		rawID = uuid.NewString()
	}
	id := rawID
	if !strings.HasPrefix(id, questionPrefix) {
		id = questionPrefix + id
	}

	title := item.Title
	if title == "" {
		title = ref.Name
	}
	if title == "" {
		title = UnknownTitle
	}

	link := ref.ProblemURL
	if link == "" {
		link = models.PlaceholderLink
	}

	difficulty, err := models.ParseDifficulty(ref.Difficulty)
	if err != nil {
		slog.Warn("unknown seed difficulty, using Medium", "id", id, "difficulty", ref.Difficulty)
		difficulty = models.Medium
	}

	return &models.Question{
		ID:         id,
		Title:      title,
		Link:       link,
		Difficulty: difficulty,
		IsPinned:   false,
	}
}

// FileSeeder reads and normalizes the seed file at Path on every call.
type FileSeeder struct {
	Path string
}

func (f FileSeeder) Seed() (*models.Document, error) {
	if f.Path == "" {
		return nil, fmt.Errorf("no seed file configured")
	}
	src, err := LoadSource(f.Path)
	if err != nil {
		return nil, err
	}
	return Normalize(src), nil
}
