package template

import (
	"errors"
	"os"
	"testing"

	"gotest.tools/assert"

	"github.com/nilsiker/disarm/pkg/expression"
)

func TestLinkDependenciesByName(t *testing.T) {
	file, err := os.Open("testdata/azuredeploy.json")
	assert.NilError(t, err)
	defer file.Close()

	decoded, err := Decode(file)
	assert.NilError(t, err)

	links, err := decoded.LinkDependencies()
	assert.NilError(t, err)
	assert.DeepEqual(t, [][]int{nil, {0}}, links)
}

func TestLinkDependenciesByResourceId(t *testing.T) {
	tpl := &Template{
		Resources: []Resource{
			{
				Type:       "Microsoft.Web/serverfarms",
				APIVersion: "2020-06-01",
				Name:       expression.MustParse("plan"),
			},
			{
				Type:       "Microsoft.Web/sites",
				APIVersion: "2020-06-01",
				Name:       expression.MustParse("site"),
				DependsOn: []expression.Expression{
					expression.MustParse("[resourceId('Microsoft.Web/serverfarms', 'plan')]"),
				},
			},
		},
	}

	links, err := tpl.LinkDependencies()
	assert.NilError(t, err)
	assert.DeepEqual(t, [][]int{nil, {0}}, links)
}

func TestLinkDependenciesByResourceIdWithTemplatedName(t *testing.T) {
	tpl := &Template{
		Resources: []Resource{
			{
				Type:       "Microsoft.Web/serverfarms",
				APIVersion: "2020-06-01",
				Name:       expression.MustParse("[parameters('planName')]"),
			},
			{
				Type:       "Microsoft.Web/sites",
				APIVersion: "2020-06-01",
				Name:       expression.MustParse("site"),
				DependsOn: []expression.Expression{
					expression.MustParse("[resourceId('Microsoft.Web/serverfarms', parameters('planName'))]"),
				},
			},
		},
	}

	links, err := tpl.LinkDependencies()
	assert.NilError(t, err)
	assert.DeepEqual(t, [][]int{nil, {0}}, links)
}

func TestLinkDependenciesUnresolved(t *testing.T) {
	tpl := &Template{
		Resources: []Resource{
			{
				Type:       "Microsoft.Web/sites",
				APIVersion: "2020-06-01",
				Name:       expression.MustParse("site"),
				DependsOn: []expression.Expression{
					expression.MustParse("ghost"),
				},
			},
		},
	}

	_, err := tpl.LinkDependencies()
	var lerr *LinkError
	assert.Assert(t, errors.As(err, &lerr))
	assert.Equal(t, "site", lerr.Resource)
	assert.Equal(t, "ghost", lerr.Dependency)
}
