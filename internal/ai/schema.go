package ai

import (
	"fmt"
	"strings"

	"github.com/xeipuuv/gojsonschema"
)

// JSON Schemas for generated artifacts. Generation output is checked
// against these before it is unmarshalled or cached; a model response
// that fails the schema is rejected rather than repaired.

const analysisSchema = `{
	"type": "object",
	"required": ["match_score", "summary", "strong_skills", "critical_gaps"],
	"properties": {
		"match_score": {"type": "integer", "minimum": 0, "maximum": 100},
		"summary": {"type": "string"},
		"strong_skills": {"type": "array", "items": {"type": "string"}},
		"critical_gaps": {"type": "array", "items": {
			"type": "object",
			"required": ["name"],
			"properties": {
				"name": {"type": "string"},
				"importance": {"type": "string"},
				"reason": {"type": "string"}
			}
		}},
		"nice_to_have": {"type": "array", "items": {
			"type": "object",
			"required": ["name"],
			"properties": {
				"name": {"type": "string"},
				"importance": {"type": "string"},
				"reason": {"type": "string"}
			}
		}}
	}
}`

const roadmapSchema = `{
	"type": "array",
	"items": {
		"type": "object",
		"required": ["id", "title", "status", "items"],
		"properties": {
			"id": {"type": "integer"},
			"title": {"type": "string"},
			"status": {"type": "string", "enum": ["Completed", "In Progress", "Locked"]},
			"duration": {"type": "string"},
			"items": {"type": "array", "items": {
				"type": "object",
				"required": ["title", "status"],
				"properties": {
					"title": {"type": "string"},
					"status": {"type": "string"},
					"subtitle": {"type": "string"},
					"progress": {"type": "integer", "minimum": 0, "maximum": 100},
					"resources": {"type": "array", "items": {
						"type": "object",
						"required": ["title"],
						"properties": {
							"title": {"type": "string"},
							"url": {"type": "string"},
							"type": {"type": "string"}
						}
					}}
				}
			}}
		}
	}
}`

const tasksSchema = `{
	"type": "array",
	"items": {
		"type": "object",
		"required": ["title", "type", "status"],
		"properties": {
			"id": {"type": "string"},
			"title": {"type": "string"},
			"type": {"type": "string", "enum": ["Learning", "Practice", "Building", "Reading"]},
			"duration": {"type": "string"},
			"status": {"type": "string", "enum": ["Todo", "In Progress", "Done"]},
			"difficulty": {"type": "string", "enum": ["Easy", "Medium", "Hard"]},
			"description": {"type": "string"}
		}
	}
}`

const projectIdeasSchema = `{
	"type": "array",
	"items": {
		"type": "object",
		"required": ["title", "description"],
		"properties": {
			"title": {"type": "string"},
			"description": {"type": "string"},
			"difficulty": {"type": "string"},
			"skills": {"type": "array", "items": {"type": "string"}},
			"duration": {"type": "string"}
		}
	}
}`

const interviewSchema = `{
	"type": "object",
	"required": ["score", "verdict", "strengths", "improvements"],
	"properties": {
		"score": {"type": "integer", "minimum": 0, "maximum": 100},
		"verdict": {"type": "string"},
		"strengths": {"type": "array", "items": {"type": "string"}},
		"improvements": {"type": "array", "items": {"type": "string"}},
		"model_answer": {"type": "string"}
	}
}`

const jobScanSchema = `{
	"type": "array",
	"items": {
		"type": "object",
		"required": ["title", "company", "match_score"],
		"properties": {
			"title": {"type": "string"},
			"company": {"type": "string"},
			"location": {"type": "string"},
			"match_score": {"type": "integer", "minimum": 0, "maximum": 100},
			"salary": {"type": "string"},
			"reason": {"type": "string"}
		}
	}
}`

const resumeImportSchema = `{
	"type": "object",
	"properties": {
		"name": {"type": "string"},
		"current_role": {"type": "string"},
		"location": {"type": "string"},
		"bio": {"type": "string"},
		"skills": {"type": "array", "items": {
			"type": "object",
			"required": ["name"],
			"properties": {
				"name": {"type": "string"},
				"category": {"type": "string"},
				"level": {"type": "string"}
			}
		}},
		"experience": {"type": "array", "items": {
			"type": "object",
			"required": ["role", "company"],
			"properties": {
				"role": {"type": "string"},
				"company": {"type": "string"},
				"start_date": {"type": "string"},
				"end_date": {"type": "string"},
				"description": {"type": "string"}
			}
		}},
		"education": {"type": "array", "items": {
			"type": "object",
			"required": ["school"],
			"properties": {
				"school": {"type": "string"},
				"degree": {"type": "string"},
				"field": {"type": "string"},
				"year": {"type": "string"}
			}
		}},
		"certifications": {"type": "array", "items": {
			"type": "object",
			"required": ["name"],
			"properties": {
				"name": {"type": "string"},
				"issuer": {"type": "string"},
				"year": {"type": "string"}
			}
		}},
		"projects": {"type": "array", "items": {
			"type": "object",
			"required": ["name"],
			"properties": {
				"name": {"type": "string"},
				"description": {"type": "string"},
				"tech": {"type": "array", "items": {"type": "string"}},
				"link": {"type": "string"}
			}
		}}
	}
}`

// SchemaError reports why a generated document failed its schema, with
// one entry per offending field.
type SchemaError struct {
	Errors []FieldError
}

// FieldError is a single validation failure at a specific field.
type FieldError struct {
	Field   string
	Message string
}

func (e *SchemaError) Error() string {
	var sb strings.Builder
	sb.WriteString("generated document failed schema:\n")
	for i, err := range e.Errors {
		sb.WriteString(fmt.Sprintf("  %d. %s: %s\n", i+1, err.Field, err.Message))
	}
	return sb.String()
}

// validateSchema checks a JSON document against a schema string.
func validateSchema(schema, document string) error {
	schemaLoader := gojsonschema.NewStringLoader(schema)
	documentLoader := gojsonschema.NewStringLoader(document)

	result, err := gojsonschema.Validate(schemaLoader, documentLoader)
	if err != nil {
		return fmt.Errorf("failed to validate generated document: %w", err)
	}

	if result.Valid() {
		return nil
	}

	schemaErr := &SchemaError{
		Errors: make([]FieldError, 0, len(result.Errors())),
	}
	for _, desc := range result.Errors() {
		field := desc.Field()
		if field == "" {
			field = "(root)"
		}
		schemaErr.Errors = append(schemaErr.Errors, FieldError{
			Field:   field,
			Message: desc.Description(),
		})
	}
	return schemaErr
}
