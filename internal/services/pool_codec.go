package services

import (
	"encoding/json"
	"strings"

	"github.com/xeipuuv/gojsonschema"

	"speakroots/internal/models"
	contextutils "speakroots/internal/utils"
)

// poolSchema describes a persisted QuestionPool
const poolSchema = `{
  "$schema": "http://json-schema.org/draft-07/schema#",
  "type": "object",
  "required": ["levelKey", "items", "generatedAt"],
  "properties": {
    "levelKey": {"type": "string"},
    "generatedAt": {"type": "string"},
    "seed": {"type": "integer", "minimum": 0, "maximum": 4294967295},
    "items": {
      "type": "array",
      "minItems": 1,
      "items": {
        "type": "object",
        "required": ["prompt", "choices", "correctAnswer"],
        "properties": {
          "prompt": {"type": "string", "minLength": 1},
          "choices": {
            "type": "array",
            "minItems": 4,
            "maxItems": 4,
            "uniqueItems": true,
            "items": {"type": "string", "minLength": 1}
          },
          "correctAnswer": {"type": "string", "minLength": 1}
        }
      }
    }
  }
}`

// PoolCodec serialises pools for the key-value store and rejects anything that
// does not satisfy the pool schema and the model invariants on the way back in
type PoolCodec struct {
	schema *gojsonschema.Schema
}

// NewPoolCodec compiles the pool schema
func NewPoolCodec() (*PoolCodec, error) {
	schema, err := gojsonschema.NewSchema(gojsonschema.NewStringLoader(poolSchema))
	if err != nil {
		return nil, contextutils.WrapError(err, "failed to compile pool schema")
	}
	return &PoolCodec{schema: schema}, nil
}

// Encode marshals a pool
func (c *PoolCodec) Encode(pool *models.QuestionPool) ([]byte, error) {
	data, err := json.Marshal(pool)
	if err != nil {
		return nil, contextutils.WrapError(err, "failed to marshal pool")
	}
	return data, nil
}

// Decode validates data against the schema and the pool invariants
func (c *PoolCodec) Decode(data []byte) (*models.QuestionPool, error) {
	result, err := c.schema.Validate(gojsonschema.NewBytesLoader(data))
	if err != nil {
		return nil, corrupted("cached pool is not valid JSON", err)
	}
	if !result.Valid() {
		messages := make([]string, 0, len(result.Errors()))
		for _, e := range result.Errors() {
			messages = append(messages, e.String())
		}
		return nil, corrupted("cached pool failed schema validation: "+strings.Join(messages, "; "), nil)
	}

	var pool models.QuestionPool
	if err := json.Unmarshal(data, &pool); err != nil {
		return nil, corrupted("failed to decode cached pool", err)
	}
	if err := pool.Validate(); err != nil {
		return nil, corrupted("cached pool violates invariants", err)
	}
	return &pool, nil
}

func corrupted(details string, cause error) error {
	return contextutils.NewAppErrorWithCause(contextutils.ErrorCodeCacheCorrupted, contextutils.SeverityWarn,
		contextutils.ErrCacheCorrupted.Message, details, cause)
}
