package models

import (
	"fmt"
	"strings"
)

// Kind identifies which of the three entity mappings an operation targets.
type Kind string

const (
	KindTopic    Kind = "topic"
	KindSubTopic Kind = "subTopic"
	KindQuestion Kind = "question"
)

// ParseKind accepts exactly the three wire names used by the client.
func ParseKind(s string) (Kind, error) {
	switch Kind(s) {
	case KindTopic, KindSubTopic, KindQuestion:
		return Kind(s), nil
	}
	return "", fmt.Errorf("unknown item type %q", s)
}

// Difficulty of a question
type Difficulty string

const (
	Easy   Difficulty = "Easy"
	Medium Difficulty = "Medium"
	Hard   Difficulty = "Hard"
)

// ParseDifficulty is case-insensitive. An empty string yields Medium.
func ParseDifficulty(s string) (Difficulty, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "":
		return Medium, nil
	case "easy":
		return Easy, nil
	case "medium":
		return Medium, nil
	case "hard":
		return Hard, nil
	}
	return "", fmt.Errorf("unknown difficulty %q", s)
}

// Fields carries the optional attributes of add and update requests. A nil
// pointer means "not provided".
type Fields struct {
	Title      *string
	Link       *string
	Difficulty *Difficulty
}

// Move describes a drag-and-drop reorder.
type Move struct {
	Kind           Kind
	SourceParentID string
	DestParentID   string
	SourceIndex    int
	DestIndex      int
}

// SearchResult is a question flattened with the titles of its ancestors.
type SearchResult struct {
	Question
	TopicID      string `json:"topicId"`
	TopicName    string `json:"topicName"`
	SubTopicID   string `json:"subTopicId"`
	SubTopicName string `json:"subTopicName"`
}
