package expression

import (
	"encoding/json"
	"errors"
	"testing"

	"gotest.tools/assert"
)

type fixture struct {
	Name  Expression `json:"name"`
	Value Expression `json:"value,omitempty"`
}

func TestExpressionUnmarshalJSON(t *testing.T) {
	var f fixture
	err := json.Unmarshal([]byte(`{"name": "[parameters('siteName')]", "value": "plain"}`), &f)
	assert.NilError(t, err)

	assert.DeepEqual(t, Expr(Parameter{Name: "siteName"}), f.Name.Node)
	assert.DeepEqual(t, Expr(Literal{Value: StringValue("plain")}), f.Value.Node)
}

func TestExpressionUnmarshalJSONEmptyString(t *testing.T) {
	var f fixture
	err := json.Unmarshal([]byte(`{"name": ""}`), &f)
	assert.NilError(t, err)
	assert.Assert(t, f.Name.IsZero())
}

func TestExpressionUnmarshalJSONParseError(t *testing.T) {
	var f fixture
	err := json.Unmarshal([]byte(`{"name": "[bogus('x')]"}`), &f)
	assert.Assert(t, errors.Is(err, ErrUnknownFunction))
}

func TestExpressionUnmarshalJSONRejectsNonString(t *testing.T) {
	var f fixture
	err := json.Unmarshal([]byte(`{"name": 42}`), &f)
	assert.ErrorContains(t, err, "JSON strings")
}

func TestExpressionMarshalJSON(t *testing.T) {
	f := fixture{
		Name: MustParse("[concat('a', parameters('b'))]"),
	}
	data, err := json.Marshal(f)
	assert.NilError(t, err)
	assert.Equal(t, `{"name":"[concat('a', parameters('b'))]","value":""}`, string(data))
}

func TestExpressionString(t *testing.T) {
	e := MustParse("[variables('planName')]")
	assert.Equal(t, "[variables('planName')]", e.String())
	assert.Assert(t, !e.IsZero())
}
