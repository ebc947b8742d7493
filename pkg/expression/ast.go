package expression

// FunctionName identifies one of the template functions the parser accepts.
type FunctionName string

const (
	Concat        FunctionName = "concat"
	ResourceId    FunctionName = "resourceId"
	CopyIndex     FunctionName = "copyIndex"
	Format        FunctionName = "format"
	If            FunctionName = "if"
	ResourceGroup FunctionName = "resourceGroup"
)

// Expr is a node in a parsed ARM expression tree. A nil Expr means the
// source string was empty. Nodes are plain values and are never mutated
// after Parse returns them.
type Expr interface {
	exprNode()
}

// Literal is a constant value appearing in an expression
type Literal struct {
	Value Value `json:"value"`
}

// FunctionCall is an invocation of a template function, arguments in
// declaration order
type FunctionCall struct {
	Name FunctionName `json:"name"`
	Args []Expr       `json:"args"`
}

// Parameter references a template parameter by name
type Parameter struct {
	Name string `json:"name"`
}

// Variable references a template variable by name
type Variable struct {
	Name string `json:"name"`
}

// Reference refers to the runtime properties of a deployed resource,
// optionally pinned to an API version
type Reference struct {
	ResourceName string `json:"resourceName"`
	APIVersion   string `json:"apiVersion,omitempty"`
}

func (Literal) exprNode()      {}
func (FunctionCall) exprNode() {}
func (Parameter) exprNode()    {}
func (Variable) exprNode()     {}
func (Reference) exprNode()    {}

// Value is the type of a literal: a string, a 64-bit float or a boolean.
type Value interface {
	valueNode()
}

// StringValue is a string literal
type StringValue string

// NumberValue is a numeric literal, always carried as a 64-bit float
type NumberValue float64

// BoolValue is a boolean literal
type BoolValue bool

func (StringValue) valueNode() {}
func (NumberValue) valueNode() {}
func (BoolValue) valueNode()   {}
