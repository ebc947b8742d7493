package expression

import (
	"encoding/json"

	"github.com/pkg/errors"
)

// Expression carries an Expr across a JSON boundary. Template fields that
// hold ARM expressions are declared with this type so that decoding a
// document routes every such string through Parse. The zero value means
// the field was absent or empty.
type Expression struct {
	Node Expr
}

// New wraps a parsed node
func New(node Expr) Expression {
	return Expression{Node: node}
}

// MustParse parses raw and panics on error. It is intended for fixtures
// and package-level constants, not for untrusted input.
func MustParse(raw string) Expression {
	node, err := Parse(raw)
	if err != nil {
		panic(err)
	}
	return Expression{Node: node}
}

// IsZero reports whether no expression is present
func (e Expression) IsZero() bool {
	return e.Node == nil
}

// String returns the reconstructed ARM syntax for the expression
func (e Expression) String() string {
	return Render(e.Node)
}

// UnmarshalJSON parses a JSON string value as an ARM expression. Parse
// failures surface as *ParseError.
func (e *Expression) UnmarshalJSON(data []byte) error {
	var raw string
	if err := json.Unmarshal(data, &raw); err != nil {
		return errors.Wrap(err, "expression fields must be JSON strings")
	}
	node, err := Parse(raw)
	if err != nil {
		return err
	}
	e.Node = node
	return nil
}

// MarshalJSON renders the expression back to ARM syntax
func (e Expression) MarshalJSON() ([]byte, error) {
	return json.Marshal(Render(e.Node))
}
