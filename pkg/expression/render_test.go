package expression

import (
	"testing"

	"gotest.tools/assert"
)

func TestRenderRoundTripsQuotedString(t *testing.T) {
	node, err := Parse("'foo'")
	assert.NilError(t, err)
	assert.DeepEqual(t, Literal{Value: StringValue("foo")}, node)

	reparsed, err := Parse(Render(node))
	assert.NilError(t, err)
	assert.DeepEqual(t, node, reparsed)
}

func TestRenderNodes(t *testing.T) {
	cases := []struct {
		node     Expr
		expected string
	}{
		{nil, ""},
		{Literal{Value: StringValue("plain text")}, "plain text"},
		{Literal{Value: NumberValue(1.5)}, "1.5"},
		{Literal{Value: BoolValue(true)}, "true"},
		{Parameter{Name: "siteName"}, "[parameters('siteName')]"},
		{Variable{Name: "planName"}, "[variables('planName')]"},
		{Reference{ResourceName: "site"}, "[reference('site')]"},
		{Reference{ResourceName: "site", APIVersion: "2020-06-01"}, "[reference('site', '2020-06-01')]"},
		{
			FunctionCall{Name: Concat, Args: []Expr{
				Literal{Value: StringValue("a")},
				Parameter{Name: "b"},
			}},
			"[concat('a', parameters('b'))]",
		},
	}

	for _, c := range cases {
		assert.Equal(t, c.expected, Render(c.node))
	}
}

func TestRenderEscapesLeadingBracket(t *testing.T) {
	rendered := Render(Literal{Value: StringValue("[not an expression]")})
	assert.Equal(t, "[[not an expression]", rendered)

	reparsed, err := Parse(rendered)
	assert.NilError(t, err)
	assert.DeepEqual(t, Literal{Value: StringValue("[not an expression]")}, reparsed)
}

func TestRenderEscapesQuotes(t *testing.T) {
	node := FunctionCall{Name: Concat, Args: []Expr{Literal{Value: StringValue("it's")}}}
	rendered := Render(node)
	assert.Equal(t, "[concat('it''s')]", rendered)

	reparsed, err := Parse(rendered)
	assert.NilError(t, err)
	assert.DeepEqual(t, Expr(node), reparsed)
}

func TestRenderReparsesToSameTree(t *testing.T) {
	for _, raw := range []string{
		"[concat('a', parameters('b'))]",
		"[format('{0},{1}', 'x,y', 1)]",
		"[if(true, resourceId('Microsoft.Web/sites', parameters('siteName')), variables('fallback'))]",
		"[copyIndex()]",
		"[reference('site', '2020-06-01')]",
	} {
		node, err := Parse(raw)
		assert.NilError(t, err)

		reparsed, err := Parse(Render(node))
		assert.NilError(t, err)
		assert.DeepEqual(t, node, reparsed)
	}
}
