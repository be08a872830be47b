package repotests

import (
	"fmt"
	"unicode/utf8"

	"github.com/beevik/etree"

	"github.com/launchdarkly/go-jsonstream/v3/jreader"
)

// Validator checks that datastream content is well-formed for its declared type.
type Validator interface {
	Validate(content []byte) error
}

// ValidatorConstructor creates a Validator. The registry maps discriminators to
// constructors rather than instances so that validators may keep per-run state.
type ValidatorConstructor func() Validator

// ValidatorRegistry is an explicit mapping from a discriminator to a validator
// constructor. The primary discriminator is the datastream's MIME type; a registration
// for a specific datastream ID overrides the MIME type lookup.
type ValidatorRegistry struct {
	byMIMEType     map[string]ValidatorConstructor
	byDatastreamID map[string]ValidatorConstructor
}

func NewValidatorRegistry() *ValidatorRegistry {
	return &ValidatorRegistry{
		byMIMEType:     make(map[string]ValidatorConstructor),
		byDatastreamID: make(map[string]ValidatorConstructor),
	}
}

// RegisterMIMEType registers a constructor for all datastreams with the given MIME type.
func (r *ValidatorRegistry) RegisterMIMEType(mimeType string, constructor ValidatorConstructor) {
	r.byMIMEType[mimeType] = constructor
}

// RegisterDatastreamID registers a constructor for a specific datastream ID, taking
// precedence over the MIME type registration.
func (r *ValidatorRegistry) RegisterDatastreamID(id string, constructor ValidatorConstructor) {
	r.byDatastreamID[id] = constructor
}

// ValidatorFor returns a validator for the datastream, or false if neither its ID nor
// its MIME type has a registration.
func (r *ValidatorRegistry) ValidatorFor(id, mimeType string) (Validator, bool) {
	if constructor, ok := r.byDatastreamID[id]; ok {
		return constructor(), true
	}
	if constructor, ok := r.byMIMEType[mimeType]; ok {
		return constructor(), true
	}
	return nil, false
}

// DefaultValidatorRegistry returns a registry with the standard content validators.
func DefaultValidatorRegistry() *ValidatorRegistry {
	r := NewValidatorRegistry()
	r.RegisterMIMEType("text/xml", func() Validator { return XMLValidator{} })
	r.RegisterMIMEType("application/xml", func() Validator { return XMLValidator{} })
	r.RegisterMIMEType("application/json", func() Validator { return JSONValidator{} })
	r.RegisterMIMEType("text/plain", func() Validator { return TextValidator{} })
	return r
}

// XMLValidator checks that content parses as XML with a single root element.
type XMLValidator struct{}

func (v XMLValidator) Validate(content []byte) error {
	doc := etree.NewDocument()
	if err := doc.ReadFromBytes(content); err != nil {
		return fmt.Errorf("malformed XML: %w", err)
	}
	if doc.Root() == nil {
		return fmt.Errorf("XML content has no root element")
	}
	return nil
}

// JSONValidator checks that content is a single well-formed JSON value.
type JSONValidator struct{}

func (v JSONValidator) Validate(content []byte) error {
	reader := jreader.NewReader(content)
	consumeJSONValue(&reader)
	if err := reader.Error(); err != nil {
		return fmt.Errorf("malformed JSON: %w", err)
	}
	return nil
}

func consumeJSONValue(reader *jreader.Reader) {
	value := reader.Any()
	switch value.Kind {
	case jreader.ArrayValue:
		for value.Array.Next() {
			consumeJSONValue(reader)
		}
	case jreader.ObjectValue:
		for value.Object.Next() {
			consumeJSONValue(reader)
		}
	}
}

// TextValidator checks that content is non-empty valid UTF-8.
type TextValidator struct{}

func (v TextValidator) Validate(content []byte) error {
	if len(content) == 0 {
		return fmt.Errorf("text content is empty")
	}
	if !utf8.Valid(content) {
		return fmt.Errorf("text content is not valid UTF-8")
	}
	return nil
}
