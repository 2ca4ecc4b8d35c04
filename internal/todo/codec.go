package todo

import (
	"bytes"
	_ "embed"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"sync"

	jsonschema "github.com/santhosh-tekuri/jsonschema/v5"

	"github.com/nibzard/tpdp/internal/utils"
)

//go:embed tasks.schema.json
var schemaSource string

const schemaURL = "https://github.com/nibzard/tpdp/tasks.schema.json"

// ErrCorrupt is returned by Decode for data that is not a valid task list.
var ErrCorrupt = errors.New("corrupt task data")

// ValidationError represents a schema violation with its location.
type ValidationError struct {
	Path string // dot path to the offending value, e.g. [2].text
	Err  error
}

func (e *ValidationError) Error() string {
	if e.Path != "" {
		return fmt.Sprintf("%s: %s", e.Path, e.Err)
	}
	return e.Err.Error()
}

// Unwrap returns the underlying error.
func (e *ValidationError) Unwrap() error {
	return e.Err
}

var (
	compiledOnce   sync.Once
	compiledSchema *jsonschema.Schema
	compileErr     error
)

func schema() (*jsonschema.Schema, error) {
	compiledOnce.Do(func() {
		compiler := jsonschema.NewCompiler()
		if err := compiler.AddResource(schemaURL, bytes.NewReader([]byte(schemaSource))); err != nil {
			compileErr = fmt.Errorf("add schema resource: %w", err)
			return
		}
		compiledSchema, compileErr = compiler.Compile(schemaURL)
	})
	return compiledSchema, compileErr
}

// Encode serializes c as a JSON array. A nil collection encodes as [].
func Encode(c Collection) ([]byte, error) {
	if c == nil {
		c = Collection{}
	}
	data, err := json.Marshal(c)
	if err != nil {
		return nil, fmt.Errorf("marshal tasks: %w", err)
	}
	return data, nil
}

// Validate checks data against the task list schema and returns every
// violation found. Malformed JSON is reported as a single error.
func Validate(data []byte) []error {
	var doc interface{}
	if err := json.Unmarshal(data, &doc); err != nil {
		return []error{&ValidationError{Err: fmt.Errorf("invalid JSON: %w", err)}}
	}

	s, err := schema()
	if err != nil {
		return []error{err}
	}

	if err := s.Validate(doc); err != nil {
		var errs []error
		var ve *jsonschema.ValidationError
		if !errors.As(err, &ve) {
			return []error{err}
		}
		collectSchemaErrors(&errs, ve)
		return errs
	}
	return nil
}

func collectSchemaErrors(errs *[]error, ve *jsonschema.ValidationError) {
	if len(ve.Causes) == 0 {
		*errs = append(*errs, &ValidationError{
			Path: utils.JSONPointerToPath(ve.InstanceLocation),
			Err:  errors.New(ve.Message),
		})
		return
	}
	for _, cause := range ve.Causes {
		collectSchemaErrors(errs, cause)
	}
}

// Decode parses a persisted task list, skipping records that are not valid
// tasks. Only data that is not a JSON array is ErrCorrupt.
func Decode(data []byte) (Collection, error) {
	c, _, err := DecodeRecords(data)
	return c, err
}

// DecodeRecords is like Decode but also reports every skipped record. Each
// record is checked against the schema on its own; text is re-normalized and
// a record with blank text or a repeated id is dropped, keeping the first
// occurrence.
func DecodeRecords(data []byte) (c Collection, skipped []error, err error) {
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) == 0 || trimmed[0] != '[' {
		return nil, nil, fmt.Errorf("%w: not a JSON array", ErrCorrupt)
	}
	var records []json.RawMessage
	if err := json.Unmarshal(trimmed, &records); err != nil {
		return nil, nil, fmt.Errorf("%w: %v", ErrCorrupt, err)
	}

	c = make(Collection, 0, len(records))
	seen := make(map[string]bool, len(records))
	for i, rec := range records {
		t, err := decodeRecord(i, rec)
		if err == nil && seen[t.ID] {
			err = &ValidationError{Path: fmt.Sprintf("[%d].id", i), Err: fmt.Errorf("duplicate id %q", t.ID)}
		}
		if err != nil {
			skipped = append(skipped, err)
			continue
		}
		seen[t.ID] = true
		c = append(c, t)
	}
	return c, skipped, nil
}

func decodeRecord(i int, rec json.RawMessage) (Task, error) {
	prefix := fmt.Sprintf("[%d]", i)

	// The schema describes the whole list, so the record is checked as a
	// one-element list and the paths are moved to its real index.
	wrapped := make([]byte, 0, len(rec)+2)
	wrapped = append(wrapped, '[')
	wrapped = append(wrapped, rec...)
	wrapped = append(wrapped, ']')
	if errs := Validate(wrapped); len(errs) > 0 {
		for _, err := range errs {
			var ve *ValidationError
			if errors.As(err, &ve) {
				ve.Path = prefix + strings.TrimPrefix(ve.Path, "[0]")
			}
		}
		return Task{}, errors.Join(errs...)
	}

	var t Task
	if err := json.Unmarshal(rec, &t); err != nil {
		return Task{}, &ValidationError{Path: prefix, Err: err}
	}
	t.Text = NormalizeText(t.Text)
	if t.Text == "" {
		return Task{}, &ValidationError{Path: prefix + ".text", Err: errors.New("text is blank")}
	}
	return t, nil
}
