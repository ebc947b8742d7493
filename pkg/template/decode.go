package template

import (
	"encoding/json"
	"fmt"
	"io"
	"io/ioutil"

	"github.com/pkg/errors"

	"github.com/nilsiker/disarm/pkg/expression"
)

// errRequired marks the missing field inside a DecodeError
var errRequired = errors.New("required field is missing")

// DecodeError reports a structural problem with a template document: a
// missing required field or a field of the wrong JSON type. Expression
// parse failures surface as *expression.ParseError instead, so callers
// can tell the two apart.
type DecodeError struct {
	Path string // path of the offending field, when known
	Err  error
}

func (e *DecodeError) Error() string {
	if e.Path != "" {
		return fmt.Sprintf("template field %q: %v", e.Path, e.Err)
	}
	return fmt.Sprintf("invalid template document: %v", e.Err)
}

func (e *DecodeError) Unwrap() error {
	return e.Err
}

// Decode reads a JSON ARM template document from r and returns the typed
// model, with every expression-typed string parsed. Unknown fields in the
// document are ignored.
func Decode(r io.Reader) (*Template, error) {
	data, err := ioutil.ReadAll(r)
	if err != nil {
		return nil, errors.Wrap(err, "Error reading template document")
	}
	return DecodeBytes(data)
}

// DecodeBytes is Decode over an in-memory document
func DecodeBytes(data []byte) (*Template, error) {
	var t Template
	if err := json.Unmarshal(data, &t); err != nil {
		return nil, decodeError(err)
	}
	// a document without resources decodes to an empty sequence
	if t.Resources == nil {
		t.Resources = []Resource{}
	}
	if err := t.validate(); err != nil {
		return nil, err
	}
	return &t, nil
}

// decodeError keeps expression parse errors intact and wraps everything
// else, attaching the field path when the codec reports one.
func decodeError(err error) error {
	if _, ok := expression.AsParseError(err); ok {
		return err
	}
	if typeErr, ok := err.(*json.UnmarshalTypeError); ok {
		return &DecodeError{Path: typeErr.Field, Err: err}
	}
	return &DecodeError{Err: err}
}

func (t *Template) validate() error {
	for name, parameter := range t.Parameters {
		if parameter.Type == "" {
			return &DecodeError{Path: fmt.Sprintf("parameters.%s.type", name), Err: errRequired}
		}
	}
	for i := range t.Resources {
		resource := &t.Resources[i]
		if resource.Name.IsZero() {
			return &DecodeError{Path: fmt.Sprintf("resources[%d].name", i), Err: errRequired}
		}
		if resource.Type == "" {
			return &DecodeError{Path: fmt.Sprintf("resources[%d].type", i), Err: errRequired}
		}
		if resource.APIVersion == "" {
			return &DecodeError{Path: fmt.Sprintf("resources[%d].apiVersion", i), Err: errRequired}
		}
	}
	for i := range t.Outputs {
		if t.Outputs[i].Name == "" {
			return &DecodeError{Path: fmt.Sprintf("outputs[%d].name", i), Err: errRequired}
		}
	}
	return nil
}
