package scaffold

import (
	"bytes"
	_ "embed"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
	"sync"

	"github.com/santhosh-tekuri/jsonschema/v6"
	"go.yaml.in/yaml/v3"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

//go:embed schema/descriptors.schema.json
var schemaBytes []byte

const schemaURL = "descriptors.schema.json"

var (
	schemaOnce sync.Once
	schema     *jsonschema.Schema
	schemaErr  error
	printer    = message.NewPrinter(language.English)
)

// Issue is one schema violation in a template set.
type Issue struct {
	// Field locates the offending value, e.g. "categories.agent.marker[0].level".
	// Empty for the document itself.
	Field   string
	Message string
}

func (i Issue) String() string {
	if i.Field == "" {
		return i.Message
	}
	return i.Field + ": " + i.Message
}

// SchemaError lists every violation found in a template set.
type SchemaError struct {
	Issues []Issue
}

func (e *SchemaError) Error() string {
	msgs := make([]string, len(e.Issues))
	for i, issue := range e.Issues {
		msgs[i] = issue.String()
	}
	return "invalid template set: " + strings.Join(msgs, "; ")
}

func compiledSchema() (*jsonschema.Schema, error) {
	schemaOnce.Do(func() {
		doc, err := jsonschema.UnmarshalJSON(bytes.NewReader(schemaBytes))
		if err != nil {
			schemaErr = fmt.Errorf("unmarshaling descriptor schema: %w", err)
			return
		}
		c := jsonschema.NewCompiler()
		if err := c.AddResource(schemaURL, doc); err != nil {
			schemaErr = fmt.Errorf("adding descriptor schema: %w", err)
			return
		}
		if schema, err = c.Compile(schemaURL); err != nil {
			schemaErr = fmt.Errorf("compiling descriptor schema: %w", err)
		}
	})
	return schema, schemaErr
}

// CheckSchema validates a YAML template set against the descriptor schema.
// Violations come back as a *SchemaError; any other error means the document
// could not be read as YAML or the schema itself failed to compile.
func CheckSchema(data []byte) error {
	s, err := compiledSchema()
	if err != nil {
		return err
	}

	var doc interface{}
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return fmt.Errorf("parsing YAML: %w", err)
	}
	// The validator wants JSON values (json.Number, string-keyed maps).
	raw, err := json.Marshal(doc)
	if err != nil {
		return fmt.Errorf("converting to JSON: %w", err)
	}
	inst, err := jsonschema.UnmarshalJSON(bytes.NewReader(raw))
	if err != nil {
		return fmt.Errorf("converting to JSON: %w", err)
	}

	err = s.Validate(inst)
	if err == nil {
		return nil
	}
	ve, ok := err.(*jsonschema.ValidationError)
	if !ok {
		return fmt.Errorf("validating template set: %w", err)
	}

	serr := &SchemaError{}
	seen := make(map[Issue]bool)
	collectIssues(ve, serr, seen)
	if len(serr.Issues) == 0 {
		serr.Issues = append(serr.Issues, Issue{Message: ve.Error()})
	}
	return serr
}

// collectIssues appends the leaves of the error tree. Inner nodes only say
// that a $ref or additionalProperties subschema failed somewhere below.
func collectIssues(ve *jsonschema.ValidationError, serr *SchemaError, seen map[Issue]bool) {
	if len(ve.Causes) > 0 {
		for _, cause := range ve.Causes {
			collectIssues(cause, serr, seen)
		}
		return
	}
	if ve.ErrorKind == nil {
		return
	}
	issue := Issue{
		Field:   fieldPath(ve.InstanceLocation),
		Message: ve.ErrorKind.LocalizedString(printer),
	}
	if !seen[issue] {
		seen[issue] = true
		serr.Issues = append(serr.Issues, issue)
	}
}

// fieldPath renders a JSON pointer as a dotted YAML path with list indexes.
func fieldPath(loc []string) string {
	var b strings.Builder
	for _, seg := range loc {
		if _, err := strconv.Atoi(seg); err == nil {
			b.WriteString("[" + seg + "]")
			continue
		}
		if b.Len() > 0 {
			b.WriteByte('.')
		}
		b.WriteString(seg)
	}
	return b.String()
}
