// Package template builds CloudFormation templates from declared resources.
//
// Dependencies between resources are derived from the serialized properties:
// Ref, Fn::GetAtt and Fn::Sub references to other logical names become graph
// edges, the graph is checked for cycles, and resources are ordered with a
// deterministic topological sort.
package template

import (
	"encoding/json"
	"errors"
	"fmt"
	"regexp"
	"sort"
	"strings"

	"gopkg.in/yaml.v3"

	ecspipe "github.com/codeavatar1/ecspipe"
	"github.com/codeavatar1/ecspipe/internal/serialize"
)

// Builder accumulates resources, parameters and outputs and synthesizes the
// template.
type Builder struct {
	description string

	names      []string
	resources  map[string]ecspipe.Resource
	explicit   map[string][]string
	parameters map[string]ecspipe.Parameter
	outputs    map[string]ecspipe.Output
}

// NewBuilder creates an empty template builder.
func NewBuilder(description string) *Builder {
	return &Builder{
		description: description,
		resources:   make(map[string]ecspipe.Resource),
		explicit:    make(map[string][]string),
		parameters:  make(map[string]ecspipe.Parameter),
		outputs:     make(map[string]ecspipe.Output),
	}
}

// AddResource registers a resource under its logical name. Explicit
// dependencies are emitted as DependsOn in addition to the derived edges.
func (b *Builder) AddResource(name string, res ecspipe.Resource, dependsOn ...string) error {
	if _, exists := b.resources[name]; exists {
		return fmt.Errorf("duplicate logical name: %s", name)
	}
	b.names = append(b.names, name)
	b.resources[name] = res
	if len(dependsOn) > 0 {
		b.explicit[name] = append([]string(nil), dependsOn...)
	}
	return nil
}

// AddParameter registers a template parameter.
func (b *Builder) AddParameter(name string, param ecspipe.Parameter) error {
	if _, exists := b.parameters[name]; exists {
		return fmt.Errorf("duplicate parameter: %s", name)
	}
	b.parameters[name] = param
	return nil
}

// AddOutput registers a template output.
func (b *Builder) AddOutput(name string, out ecspipe.Output) error {
	if _, exists := b.outputs[name]; exists {
		return fmt.Errorf("duplicate output: %s", name)
	}
	b.outputs[name] = out
	return nil
}

// Synthesis is the result of building: the template plus the derived
// dependency graph and a deterministic dependency ordering.
type Synthesis struct {
	Template     *ecspipe.Template
	Order        []string
	Dependencies map[string][]string
}

// Build serializes all registered components into a CloudFormation template.
func (b *Builder) Build() (*Synthesis, error) {
	props := make(map[string]map[string]any, len(b.resources))
	deps := make(map[string][]string, len(b.resources))

	for _, name := range b.names {
		serialized, err := serialize.Properties(b.resources[name])
		if err != nil {
			return nil, fmt.Errorf("serializing %s: %w", name, err)
		}
		props[name] = serialized

		edges, err := b.resolveRefs(name, serialized)
		if err != nil {
			return nil, err
		}
		for _, dep := range b.explicit[name] {
			if _, ok := b.resources[dep]; !ok {
				return nil, fmt.Errorf("%s depends on unknown resource %s", name, dep)
			}
			edges = append(edges, dep)
		}
		deps[name] = dedupe(edges)
	}

	order, err := topologicalSort(b.names, deps)
	if err != nil {
		return nil, err
	}

	tmpl := &ecspipe.Template{
		AWSTemplateFormatVersion: "2010-09-09",
		Description:              b.description,
		Resources:                make(map[string]ecspipe.ResourceDef, len(b.resources)),
	}

	for _, name := range order {
		tmpl.Resources[name] = ecspipe.ResourceDef{
			Type:       b.resources[name].ResourceType(),
			Properties: props[name],
			DependsOn:  b.explicit[name],
		}
	}

	if len(b.parameters) > 0 {
		tmpl.Parameters = make(map[string]ecspipe.Parameter, len(b.parameters))
		for name, param := range b.parameters {
			tmpl.Parameters[name] = param
		}
	}

	if len(b.outputs) > 0 {
		tmpl.Outputs = make(map[string]ecspipe.Output, len(b.outputs))
		for name, out := range b.outputs {
			value, err := serialize.Value(out.Value)
			if err != nil {
				return nil, fmt.Errorf("serializing output %s: %w", name, err)
			}
			out.Value = value
			tmpl.Outputs[name] = out
		}
	}

	return &Synthesis{Template: tmpl, Order: order, Dependencies: deps}, nil
}

// subVarPattern matches ${Name} and ${Name.Attr} tokens inside Fn::Sub
// strings. Literal ${!...} tokens are skipped during resolution.
var subVarPattern = regexp.MustCompile(`\$\{([^}]+)\}`)

// resolveRefs walks serialized properties and returns the logical names of
// referenced resources. References to parameters are legal but produce no
// edge; references to unknown names are errors.
func (b *Builder) resolveRefs(from string, v any) ([]string, error) {
	var edges []string

	var walk func(v any) error
	walk = func(v any) error {
		switch val := v.(type) {
		case map[string]any:
			if target, ok := val["Ref"].(string); ok && len(val) == 1 {
				name, err := b.checkRef(from, target, false)
				if err != nil {
					return err
				}
				if name != "" {
					edges = append(edges, name)
				}
				return nil
			}
			if target, ok := val["Fn::GetAtt"]; ok && len(val) == 1 {
				name, err := b.checkGetAtt(from, target)
				if err != nil {
					return err
				}
				if name != "" {
					edges = append(edges, name)
				}
				return nil
			}
			if target, ok := val["Fn::Sub"]; ok && len(val) == 1 {
				return b.walkSub(from, target, &edges, walk)
			}
			for _, elem := range val {
				if err := walk(elem); err != nil {
					return err
				}
			}
		case []any:
			for _, elem := range val {
				if err := walk(elem); err != nil {
					return err
				}
			}
		}
		return nil
	}

	if err := walk(v); err != nil {
		return nil, err
	}
	return edges, nil
}

// walkSub extracts references from an Fn::Sub string or [string, vars] pair.
func (b *Builder) walkSub(from string, target any, edges *[]string, walk func(any) error) error {
	var text string
	switch sub := target.(type) {
	case string:
		text = sub
	case []any:
		if len(sub) > 0 {
			text, _ = sub[0].(string)
		}
		if len(sub) > 1 {
			if vars, ok := sub[1].(map[string]any); ok {
				for _, v := range vars {
					if err := walk(v); err != nil {
						return err
					}
				}
			}
		}
	}

	var localVars map[string]any
	if sub, ok := target.([]any); ok && len(sub) > 1 {
		localVars, _ = sub[1].(map[string]any)
	}

	for _, match := range subVarPattern.FindAllStringSubmatch(text, -1) {
		token := match[1]
		if strings.HasPrefix(token, "!") {
			continue
		}
		if strings.Contains(token, "::") {
			continue
		}
		if _, local := localVars[token]; local {
			continue
		}
		name := token
		if i := strings.Index(token, "."); i >= 0 {
			name = token[:i]
		}
		resolved, err := b.checkRef(from, name, strings.Contains(token, "."))
		if err != nil {
			return err
		}
		if resolved != "" {
			*edges = append(*edges, resolved)
		}
	}
	return nil
}

// checkRef validates a referenced name. It returns the name when it is a
// resource, empty string when it is a parameter, and an error otherwise.
func (b *Builder) checkRef(from, name string, attrOnly bool) (string, error) {
	if _, ok := b.resources[name]; ok {
		return name, nil
	}
	if _, ok := b.parameters[name]; ok && !attrOnly {
		return "", nil
	}
	return "", fmt.Errorf("%s references unknown resource %s", from, name)
}

// checkGetAtt validates an Fn::GetAtt target in either list or dotted form.
func (b *Builder) checkGetAtt(from string, target any) (string, error) {
	var name string
	switch att := target.(type) {
	case string:
		parts := strings.SplitN(att, ".", 2)
		name = parts[0]
	case []any:
		if len(att) > 0 {
			name, _ = att[0].(string)
		}
	}
	if name == "" {
		return "", fmt.Errorf("%s has malformed Fn::GetAtt", from)
	}
	if _, ok := b.resources[name]; !ok {
		return "", fmt.Errorf("%s references unknown resource %s", from, name)
	}
	return name, nil
}

func dedupe(names []string) []string {
	seen := make(map[string]bool, len(names))
	var result []string
	for _, name := range names {
		if !seen[name] {
			seen[name] = true
			result = append(result, name)
		}
	}
	sort.Strings(result)
	return result
}

// topologicalSort orders resources so dependencies come first, using Kahn's
// algorithm with a sorted queue for deterministic output.
func topologicalSort(names []string, deps map[string][]string) ([]string, error) {
	graph := make(map[string][]string, len(names))
	inDegree := make(map[string]int, len(names))

	for _, name := range names {
		graph[name] = nil
		inDegree[name] = 0
	}

	for _, name := range names {
		for _, dep := range deps[name] {
			graph[dep] = append(graph[dep], name)
			inDegree[name]++
		}
	}

	var queue []string
	for _, name := range names {
		if inDegree[name] == 0 {
			queue = append(queue, name)
		}
	}
	sort.Strings(queue)

	var result []string
	for len(queue) > 0 {
		node := queue[0]
		queue = queue[1:]
		result = append(result, node)

		for _, neighbor := range graph[node] {
			inDegree[neighbor]--
			if inDegree[neighbor] == 0 {
				queue = append(queue, neighbor)
				sort.Strings(queue)
			}
		}
	}

	if len(result) != len(names) {
		return nil, detectCycle(names, deps)
	}

	return result, nil
}

// detectCycle reports one cycle from the dependency graph.
func detectCycle(names []string, deps map[string][]string) error {
	visited := make(map[string]bool)
	path := make(map[string]bool)

	var cycle []string
	var findCycle func(node string) bool
	findCycle = func(node string) bool {
		visited[node] = true
		path[node] = true

		for _, dep := range deps[node] {
			if !visited[dep] {
				if findCycle(dep) {
					cycle = append([]string{node}, cycle...)
					return true
				}
			} else if path[dep] {
				cycle = append([]string{dep, node}, cycle...)
				return true
			}
		}

		path[node] = false
		return false
	}

	for _, name := range names {
		if !visited[name] {
			if findCycle(name) {
				break
			}
		}
	}

	if len(cycle) > 0 {
		return fmt.Errorf("circular dependency detected: %s", strings.Join(cycle, " -> "))
	}

	return errors.New("circular dependency detected")
}

// EncodeJSON renders the template as indented JSON.
func EncodeJSON(t *ecspipe.Template) ([]byte, error) {
	return json.MarshalIndent(t, "", "  ")
}

// EncodeYAML renders the template as YAML. The template is round-tripped
// through JSON first so intrinsic marshalers and json tags are honored.
func EncodeYAML(t *ecspipe.Template) ([]byte, error) {
	data, err := json.Marshal(t)
	if err != nil {
		return nil, err
	}
	var generic map[string]any
	if err := json.Unmarshal(data, &generic); err != nil {
		return nil, err
	}
	return yaml.Marshal(generic)
}
