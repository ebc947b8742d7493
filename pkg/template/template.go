package template

import (
	"fmt"

	"github.com/nilsiker/disarm/pkg/expression"
)

// Template defines an ARM deployment template. String fields that hold
// ARM expressions are typed expression.Expression so that decoding parses
// them into expression trees.
type Template struct {
	Schema         string                           `json:"$schema,omitempty"`
	ContentVersion string                           `json:"contentVersion,omitempty"`
	Parameters     map[string]Parameter             `json:"parameters,omitempty"`
	Variables      map[string]expression.Expression `json:"variables,omitempty"`
	Resources      []Resource                       `json:"resources"`
	Outputs        []Output                         `json:"outputs,omitempty"`
}

// Metadata defines the metadata for a template parameter
type Metadata struct {
	Description string `json:"description,omitempty"`
}

// Parameter defines a template parameter
type Parameter struct {
	Type          string                 `json:"type"`
	DefaultValue  *expression.Expression `json:"defaultValue,omitempty"`
	AllowedValues interface{}            `json:"allowedValues,omitempty"`
	Metadata      *Metadata              `json:"metadata,omitempty"`
	MinValue      *int                   `json:"minValue,omitempty"`
	MaxValue      *int                   `json:"maxValue,omitempty"`
	MinLength     *int                   `json:"minLength,omitempty"`
	MaxLength     *int                   `json:"maxLength,omitempty"`
}

// Resource defines a resource in the template. Resource names may
// themselves be templated, so Name is an expression. DependsOn entries
// identify other resources by name or expression; they are never embedded
// copies of the resources themselves.
type Resource struct {
	Condition  string                  `json:"condition,omitempty"`
	Type       string                  `json:"type"`
	Name       expression.Expression   `json:"name"`
	APIVersion string                  `json:"apiVersion"`
	Location   string                  `json:"location,omitempty"`
	Kind       string                  `json:"kind,omitempty"`
	DependsOn  []expression.Expression `json:"dependsOn,omitempty"`
	Properties interface{}             `json:"properties,omitempty"`
}

// Output defines an output of the template
type Output struct {
	Name  string                `json:"name"`
	Type  string                `json:"type,omitempty"`
	Value expression.Expression `json:"value"`
}

// FindResource returns the resource whose rendered name equals
// resourceName
func (t *Template) FindResource(resourceName string) (*Resource, error) {
	for i := range t.Resources {
		resource := &t.Resources[i]
		if resource.Name.String() == resourceName {
			return resource, nil
		}
	}

	return nil, fmt.Errorf("Resource %s not found in the template", resourceName)
}
