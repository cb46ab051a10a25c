// Package seed turns a denormalized question list into the normalized sheet
// tree used by the store.
package seed

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/xeipuuv/gojsonschema"
	"gopkg.in/yaml.v3"
)

// Source is the external seed document: { data: { sheet, questions } }.
type Source struct {
	Data SourceData `json:"data"`
}

type SourceData struct {
	Sheet     SourceSheet      `json:"sheet"`
	Questions []SourceQuestion `json:"questions"`
}

type SourceSheet struct {
	ID   string `json:"_id"`
	Name string `json:"name"`
}

// SourceQuestion is one flat row carrying its topic and sub-topic by name.
type SourceQuestion struct {
	ID         string             `json:"_id"`
	Topic      string             `json:"topic"`
	SubTopic   string             `json:"subTopic"`
	Title      string             `json:"title"`
	QuestionID *SourceQuestionRef `json:"questionId"`
}

type SourceQuestionRef struct {
	Name       string `json:"name"`
	ProblemURL string `json:"problemUrl"`
	Difficulty string `json:"difficulty"`
}

const sourceSchema = `{
  "type": "object",
  "required": ["data"],
  "properties": {
    "data": {
      "type": "object",
      "required": ["questions"],
      "properties": {
        "sheet": {
          "type": ["object", "null"],
          "properties": {
            "_id": {"type": ["string", "null"]},
            "name": {"type": ["string", "null"]}
          }
        },
        "questions": {
          "type": "array",
          "items": {
            "type": "object",
            "properties": {
              "_id": {"type": ["string", "null"]},
              "topic": {"type": ["string", "null"]},
              "subTopic": {"type": ["string", "null"]},
              "title": {"type": ["string", "null"]},
              "questionId": {
                "type": ["object", "null"],
                "properties": {
                  "name": {"type": ["string", "null"]},
                  "problemUrl": {"type": ["string", "null"]},
                  "difficulty": {"type": ["string", "null"]}
                }
              }
            }
          }
        }
      }
    }
  }
}`

var schemaLoader = gojsonschema.NewStringLoader(sourceSchema)

// LoadSource reads a seed file. Files ending in .yaml or .yml are parsed as
// YAML, anything else as JSON. The content is validated before decoding.
func LoadSource(path string) (*Source, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read seed source: %w", err)
	}

	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		data, err = yamlToJSON(data)
		if err != nil {
			return nil, err
		}
	}

	return ParseSource(data)
}

// ParseSource validates and decodes a JSON seed document.
func ParseSource(data []byte) (*Source, error) {
	result, err := gojsonschema.Validate(schemaLoader, gojsonschema.NewBytesLoader(data))
	if err != nil {
		return nil, fmt.Errorf("parse seed source: %w", err)
	}
	if !result.Valid() {
		msgs := make([]string, 0, len(result.Errors()))
		for _, e := range result.Errors() {
			msgs = append(msgs, e.String())
		}
		return nil, fmt.Errorf("invalid seed source: %s", strings.Join(msgs, "; "))
	}

	var src Source
	if err := json.Unmarshal(data, &src); err != nil {
		return nil, fmt.Errorf("decode seed source: %w", err)
	}
	return &src, nil
}

func yamlToJSON(data []byte) ([]byte, error) {
	var raw any
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("parse seed yaml: %w", err)
	}
	out, err := json.Marshal(raw)
	if err != nil {
		return nil, fmt.Errorf("convert seed yaml: %w", err)
	}
	return out, nil
}
