// Package expression parses the ARM template expression language that is
// embedded in JSON string values, e.g. "[concat('a', parameters('b'))]",
// into an expression tree. Parsing never panics: malformed input is
// reported as a *ParseError.
package expression

import (
	"strconv"
	"strings"
)

// DefaultMaxDepth bounds how deeply function calls may nest before
// parsing fails with ErrRecursionLimit
const DefaultMaxDepth = 64

var functions = map[string]FunctionName{
	"concat":        Concat,
	"resourceId":    ResourceId,
	"copyIndex":     CopyIndex,
	"format":        Format,
	"if":            If,
	"resourceGroup": ResourceGroup,
}

// Parse converts a raw template string into an expression tree.
//
// An empty string yields a nil Expr. Input wrapped in "[...]" must contain
// a function call; "[[" escapes a literal leading bracket. Unwrapped input
// is a literal, except for the parameters(...), variables(...) and
// reference(...) forms which parse the same with or without brackets, and
// quoted, numeric or boolean text which yields a typed literal. Bare
// tokens that match nothing above keep their text as a string literal;
// property access chains such as reference(x).name are not part of the
// grammar.
func Parse(raw string) (Expr, error) {
	return ParseWithLimit(raw, DefaultMaxDepth)
}

// ParseWithLimit is Parse with a caller-chosen recursion limit. A limit
// below 1 falls back to DefaultMaxDepth.
func ParseWithLimit(raw string, maxDepth int) (Expr, error) {
	if maxDepth < 1 {
		maxDepth = DefaultMaxDepth
	}
	p := &parser{input: raw, maxDepth: maxDepth}
	switch {
	case raw == "":
		return nil, nil
	case strings.HasPrefix(raw, "[["):
		return Literal{Value: StringValue(raw[1:])}, nil
	case strings.HasPrefix(raw, "[") && strings.HasSuffix(raw, "]") && len(raw) >= 2:
		return p.parseCall(strings.TrimSpace(raw[1:len(raw)-1]), 0)
	default:
		return p.parseTop(raw)
	}
}

type parser struct {
	input    string
	maxDepth int
}

// parseTop handles input that is not bracket-wrapped. Only the name
// reference forms are parsed as calls here; anything else that does not
// scan as a quoted, numeric or boolean literal stays verbatim text.
func (p *parser) parseTop(s string) (Expr, error) {
	switch callName(s) {
	case "parameters", "variables", "reference":
		if isCall(s) {
			return p.parseCall(s, 0)
		}
	}
	return p.parseScalar(s, false)
}

func (p *parser) parseCall(s string, depth int) (Expr, error) {
	if depth >= p.maxDepth {
		return nil, &ParseError{Err: ErrRecursionLimit, Input: p.input}
	}
	if s == "" {
		return nil, &ParseError{Err: ErrEmptyFunctionName, Input: p.input}
	}
	open := strings.IndexByte(s, '(')
	if open < 0 || !strings.HasSuffix(s, ")") {
		return nil, &ParseError{Err: ErrUnbalancedParenthesis, Token: s, Input: p.input}
	}
	name := strings.TrimSpace(s[:open])
	if name == "" {
		return nil, &ParseError{Err: ErrEmptyFunctionName, Input: p.input}
	}
	rawArgs, err := p.splitArgs(s[open+1 : len(s)-1])
	if err != nil {
		return nil, err
	}

	switch name {
	case "parameters":
		inner, err := p.singleName(name, rawArgs)
		if err != nil {
			return nil, err
		}
		return Parameter{Name: inner}, nil
	case "variables":
		inner, err := p.singleName(name, rawArgs)
		if err != nil {
			return nil, err
		}
		return Variable{Name: inner}, nil
	case "reference":
		return p.parseReference(rawArgs)
	}

	fn, ok := functions[name]
	if !ok {
		return nil, &ParseError{Err: ErrUnknownFunction, Token: name, Input: p.input}
	}
	args := make([]Expr, 0, len(rawArgs))
	for _, rawArg := range rawArgs {
		arg, err := p.parseArg(rawArg, depth+1)
		if err != nil {
			return nil, err
		}
		args = append(args, arg)
	}
	return FunctionCall{Name: fn, Args: args}, nil
}

func (p *parser) parseArg(s string, depth int) (Expr, error) {
	if isCall(s) {
		return p.parseCall(s, depth)
	}
	return p.parseScalar(s, true)
}

// parseScalar scans a non-call term. In strict mode (argument position)
// malformed quoted or numeric text is an error; otherwise it falls back
// to the verbatim text.
func (p *parser) parseScalar(s string, strict bool) (Expr, error) {
	if s == "" {
		return Literal{Value: StringValue("")}, nil
	}
	if strings.HasPrefix(s, "'") {
		text, err := p.unquote(s)
		if err != nil {
			if strict {
				return nil, err
			}
			return Literal{Value: StringValue(s)}, nil
		}
		return Literal{Value: StringValue(text)}, nil
	}
	if strings.EqualFold(s, "true") {
		return Literal{Value: BoolValue(true)}, nil
	}
	if strings.EqualFold(s, "false") {
		return Literal{Value: BoolValue(false)}, nil
	}
	if looksNumeric(s) {
		n, err := strconv.ParseFloat(s, 64)
		if err != nil {
			if strict {
				return nil, &ParseError{Err: ErrInvalidNumber, Token: s, Input: p.input}
			}
			return Literal{Value: StringValue(s)}, nil
		}
		return Literal{Value: NumberValue(n)}, nil
	}
	return Literal{Value: StringValue(s)}, nil
}

// splitArgs splits an argument list on top-level commas only. Commas
// inside nested calls or single-quoted strings are never boundaries, and
// a doubled quote inside a string does not end it.
func (p *parser) splitArgs(s string) ([]string, error) {
	if strings.TrimSpace(s) == "" {
		return nil, nil
	}
	var (
		args    []string
		start   int
		depth   int
		inQuote bool
	)
	for i := 0; i < len(s); i++ {
		c := s[i]
		switch {
		case inQuote:
			if c != '\'' {
				continue
			}
			if i+1 < len(s) && s[i+1] == '\'' {
				i++
				continue
			}
			inQuote = false
		case c == '\'':
			inQuote = true
		case c == '(':
			depth++
		case c == ')':
			depth--
			if depth < 0 {
				return nil, &ParseError{Err: ErrUnbalancedParenthesis, Token: s, Input: p.input}
			}
		case c == ',' && depth == 0:
			args = append(args, strings.TrimSpace(s[start:i]))
			start = i + 1
		}
	}
	if inQuote {
		return nil, &ParseError{Err: ErrUnterminatedString, Token: s, Input: p.input}
	}
	if depth != 0 {
		return nil, &ParseError{Err: ErrUnbalancedParenthesis, Token: s, Input: p.input}
	}
	return append(args, strings.TrimSpace(s[start:])), nil
}

// unquote strips the surrounding single quotes from s, collapsing doubled
// quotes to one.
func (p *parser) unquote(s string) (string, error) {
	var b strings.Builder
	for i := 1; i < len(s); i++ {
		c := s[i]
		if c != '\'' {
			b.WriteByte(c)
			continue
		}
		if i+1 < len(s) && s[i+1] == '\'' {
			b.WriteByte('\'')
			i++
			continue
		}
		if i != len(s)-1 {
			return "", &ParseError{Err: ErrUnterminatedString, Token: s, Input: p.input}
		}
		return b.String(), nil
	}
	return "", &ParseError{Err: ErrUnterminatedString, Token: s, Input: p.input}
}

// singleName extracts the one name argument of parameters(...) or
// variables(...), quoted or bare.
func (p *parser) singleName(fn string, args []string) (string, error) {
	if len(args) != 1 || args[0] == "" {
		return "", &ParseError{Err: ErrUnbalancedParenthesis, Token: fn, Input: p.input}
	}
	return p.unquoteName(args[0])
}

func (p *parser) parseReference(args []string) (Expr, error) {
	if len(args) == 0 || len(args) > 2 {
		return nil, &ParseError{Err: ErrUnbalancedParenthesis, Token: "reference", Input: p.input}
	}
	name, err := p.unquoteName(args[0])
	if err != nil {
		return nil, err
	}
	ref := Reference{ResourceName: name}
	if len(args) == 2 {
		version, err := p.unquoteName(args[1])
		if err != nil {
			return nil, err
		}
		ref.APIVersion = version
	}
	return ref, nil
}

func (p *parser) unquoteName(s string) (string, error) {
	if strings.HasPrefix(s, "'") {
		return p.unquote(s)
	}
	return s, nil
}

func isCall(s string) bool {
	open := strings.IndexByte(s, '(')
	if open < 0 || !strings.HasSuffix(s, ")") {
		return false
	}
	name := strings.TrimSpace(s[:open])
	return name == "" || isIdentifier(name)
}

func callName(s string) string {
	open := strings.IndexByte(s, '(')
	if open < 0 {
		return ""
	}
	return strings.TrimSpace(s[:open])
}

func isIdentifier(s string) bool {
	for i, r := range s {
		switch {
		case r >= 'a' && r <= 'z' || r >= 'A' && r <= 'Z' || r == '_':
		case r >= '0' && r <= '9':
			if i == 0 {
				return false
			}
		default:
			return false
		}
	}
	return s != ""
}

func looksNumeric(s string) bool {
	c := s[0]
	if c >= '0' && c <= '9' {
		return true
	}
	if (c == '-' || c == '+' || c == '.') && len(s) > 1 {
		d := s[1]
		return d >= '0' && d <= '9' || d == '.'
	}
	return false
}
