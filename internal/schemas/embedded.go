package schemas

import (
	"embed"
	"fmt"
	"sync"

	"github.com/xeipuuv/gojsonschema"
)

//go:embed schemas/*.json
var schemaFS embed.FS

// Embedded schema names.
const (
	RequirementRecord = "requirement_record"
	ResumeProfile     = "resume_profile"
	CandidateAnalysis = "candidate_analysis"
	RerankResult      = "rerank_result"
)

var (
	compiledMu sync.Mutex
	compiled   = map[string]*gojsonschema.Schema{}
)

// schema returns the compiled embedded schema by name, compiling it once.
func schema(name string) (*gojsonschema.Schema, error) {
	compiledMu.Lock()
	defer compiledMu.Unlock()

	if s, ok := compiled[name]; ok {
		return s, nil
	}

	content, err := schemaFS.ReadFile(fmt.Sprintf("schemas/%s.schema.json", name))
	if err != nil {
		return nil, &SchemaLoadError{Name: name, Message: "embedded schema not found", Cause: err}
	}

	s, err := gojsonschema.NewSchema(gojsonschema.NewBytesLoader(content))
	if err != nil {
		return nil, &SchemaLoadError{Name: name, Message: "embedded schema failed to compile", Cause: err}
	}

	compiled[name] = s
	return s, nil
}

// Validate checks a JSON document against the named embedded schema.
// A violation returns a *ValidationError listing the failing fields.
func Validate(name, jsonContent string) error {
	s, err := schema(name)
	if err != nil {
		return err
	}

	result, err := s.Validate(gojsonschema.NewStringLoader(jsonContent))
	if err != nil {
		return &SchemaLoadError{Name: name, Message: "document failed to load", Cause: err}
	}

	if result.Valid() {
		return nil
	}

	validationErr := &ValidationError{
		Errors: make([]FieldError, 0, len(result.Errors())),
	}
	for _, desc := range result.Errors() {
		field := desc.Field()
		if field == "" {
			field = "(root)"
		}
		validationErr.Errors = append(validationErr.Errors, FieldError{
			Field:   field,
			Message: desc.Description(),
		})
	}
	return validationErr
}
