// Package stack collects declared resources under stable logical names and
// synthesizes them into a CloudFormation template.
package stack

import (
	ecspipe "github.com/codeavatar1/ecspipe"
	"github.com/codeavatar1/ecspipe/internal/template"
)

// Stack is an ordered registry of resources, parameters and outputs that
// together form one CloudFormation stack.
type Stack struct {
	name    string
	builder *template.Builder

	names []string
	types map[string]string
	err   error
}

// New creates an empty stack. The description appears in the synthesized
// template.
func New(name, description string) *Stack {
	return &Stack{
		name:    name,
		builder: template.NewBuilder(description),
		types:   make(map[string]string),
	}
}

// Name returns the stack name used for deployment.
func (s *Stack) Name() string { return s.name }

// Add registers a resource under its logical name. Registration errors are
// deferred so declarations stay assignment-free; Synth reports the first one.
func (s *Stack) Add(name string, res ecspipe.Resource, dependsOn ...string) *Stack {
	if s.err == nil {
		s.err = s.builder.AddResource(name, res, dependsOn...)
	}
	if s.err == nil {
		s.names = append(s.names, name)
		s.types[name] = res.ResourceType()
	}
	return s
}

// Parameter registers a template parameter.
func (s *Stack) Parameter(name string, param ecspipe.Parameter) *Stack {
	if s.err == nil {
		s.err = s.builder.AddParameter(name, param)
	}
	return s
}

// Output registers a template output.
func (s *Stack) Output(name string, out ecspipe.Output) *Stack {
	if s.err == nil {
		s.err = s.builder.AddOutput(name, out)
	}
	return s
}

// Resources returns the logical names in declaration order.
func (s *Stack) Resources() []string {
	return append([]string(nil), s.names...)
}

// ResourceType returns the CloudFormation type of a registered resource.
func (s *Stack) ResourceType(name string) string {
	return s.types[name]
}

// Synth builds the CloudFormation template and dependency graph.
func (s *Stack) Synth() (*template.Synthesis, error) {
	if s.err != nil {
		return nil, s.err
	}
	return s.builder.Build()
}
