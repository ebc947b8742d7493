package template

import (
	"fmt"

	"github.com/nilsiker/disarm/pkg/expression"
)

// LinkError reports a dependsOn entry that identifies no resource in the
// template
type LinkError struct {
	Resource   string // rendered name of the resource declaring the dependency
	Dependency string // rendered dependency identifier
}

func (e *LinkError) Error() string {
	return fmt.Sprintf("resource %q depends on %q which matches no resource in the template", e.Resource, e.Dependency)
}

// LinkDependencies resolves every dependsOn entry to an index into
// t.Resources. The result holds one slice per resource, in resource
// order, with the indices of its dependencies in declaration order. The
// dependency graph stays a set of references into the resource sequence;
// resources are stored once, only in t.Resources.
//
// An entry matches a resource when its rendered text equals the rendered
// resource name. resourceId(...) entries additionally match on their last
// argument, which carries the target resource name.
func (t *Template) LinkDependencies() ([][]int, error) {
	links := make([][]int, len(t.Resources))
	for i := range t.Resources {
		resource := &t.Resources[i]
		if len(resource.DependsOn) == 0 {
			continue
		}
		indices := make([]int, 0, len(resource.DependsOn))
		for _, dependency := range resource.DependsOn {
			j, ok := t.resolveDependency(dependency)
			if !ok {
				return nil, &LinkError{
					Resource:   resource.Name.String(),
					Dependency: dependency.String(),
				}
			}
			indices = append(indices, j)
		}
		links[i] = indices
	}
	return links, nil
}

func (t *Template) resolveDependency(dependency expression.Expression) (int, bool) {
	key := dependency.String()
	if call, ok := dependency.Node.(expression.FunctionCall); ok && call.Name == expression.ResourceId && len(call.Args) > 0 {
		key = expression.Render(call.Args[len(call.Args)-1])
	}
	for j := range t.Resources {
		if t.Resources[j].Name.String() == key {
			return j, true
		}
	}
	return 0, false
}
