package expression

import (
	"strconv"
	"strings"
)

// Render reconstructs ARM template syntax from an expression tree. The
// result is a best-effort textual form: whitespace and quoting style of
// the original input are not preserved. A nil node renders as "".
func Render(e Expr) string {
	switch v := e.(type) {
	case nil:
		return ""
	case Literal:
		s := renderValue(v.Value, false)
		if strings.HasPrefix(s, "[") {
			// escape the leading bracket so the text survives a re-parse
			return "[" + s
		}
		return s
	default:
		return "[" + renderNode(e) + "]"
	}
}

// renderNode renders a node in argument position, without the outer
// brackets.
func renderNode(e Expr) string {
	switch v := e.(type) {
	case Literal:
		return renderValue(v.Value, true)
	case Parameter:
		return "parameters('" + escapeQuotes(v.Name) + "')"
	case Variable:
		return "variables('" + escapeQuotes(v.Name) + "')"
	case Reference:
		if v.APIVersion != "" {
			return "reference('" + escapeQuotes(v.ResourceName) + "', '" + escapeQuotes(v.APIVersion) + "')"
		}
		return "reference('" + escapeQuotes(v.ResourceName) + "')"
	case FunctionCall:
		args := make([]string, len(v.Args))
		for i, arg := range v.Args {
			args[i] = renderNode(arg)
		}
		return string(v.Name) + "(" + strings.Join(args, ", ") + ")"
	default:
		return ""
	}
}

func renderValue(v Value, quoted bool) string {
	switch value := v.(type) {
	case StringValue:
		if quoted {
			return "'" + escapeQuotes(string(value)) + "'"
		}
		return string(value)
	case NumberValue:
		return strconv.FormatFloat(float64(value), 'f', -1, 64)
	case BoolValue:
		return strconv.FormatBool(bool(value))
	default:
		return ""
	}
}

func escapeQuotes(s string) string {
	return strings.Replace(s, "'", "''", -1)
}
