// Package graph renders the stack dependency graph in DOT and Mermaid formats.
package graph

import (
	"io"
	"strings"

	"github.com/emicklei/dot"

	"github.com/codeavatar1/ecspipe/internal/template"
)

// Format specifies the output format for the graph.
type Format string

const (
	// FormatDOT outputs Graphviz DOT format.
	FormatDOT Format = "dot"
	// FormatMermaid outputs Mermaid format for GitHub/markdown rendering.
	FormatMermaid Format = "mermaid"
)

// Generator renders dependency graphs from a synthesized stack.
type Generator struct {
	// IncludeParameters includes parameter nodes in the graph.
	IncludeParameters bool

	// Format specifies the output format (dot or mermaid). Defaults to dot.
	Format Format

	// ClusterByService groups resources by AWS service.
	ClusterByService bool
}

// Generate writes the dependency graph for a synthesized stack to w.
func (g *Generator) Generate(syn *template.Synthesis, w io.Writer) error {
	graph := g.buildGraph(syn)

	format := g.Format
	if format == "" {
		format = FormatDOT
	}

	var output string
	if format == FormatMermaid {
		output = dot.MermaidGraph(graph, dot.MermaidTopToBottom)
	} else {
		output = graph.String()
	}

	_, err := w.Write([]byte(output))
	return err
}

// GenerateString returns the graph as a string.
func (g *Generator) GenerateString(syn *template.Synthesis) (string, error) {
	var sb strings.Builder
	if err := g.Generate(syn, &sb); err != nil {
		return "", err
	}
	return sb.String(), nil
}

func (g *Generator) buildGraph(syn *template.Synthesis) *dot.Graph {
	graph := dot.NewGraph(dot.Directed)
	graph.Attr("rankdir", "TB")

	graph.NodeInitializer(func(n dot.Node) {
		n.Attr("shape", "box")
		n.Attr("fontname", "Arial")
	})

	graph.EdgeInitializer(func(e dot.Edge) {
		e.Attr("fontname", "Arial")
		e.Attr("fontsize", "10")
	})

	getAttEdges := buildGetAttSet(syn)

	if g.ClusterByService {
		g.addClusteredNodes(graph, syn)
	} else {
		g.addNodes(graph, syn)
	}

	if g.IncludeParameters && syn.Template.Parameters != nil {
		for name := range syn.Template.Parameters {
			n := graph.Node(name)
			n.Attr("shape", "ellipse")
			n.Attr("style", "dashed")
			n.Label(name)
		}
	}

	for _, name := range syn.Order {
		for _, dep := range syn.Dependencies[name] {
			from := graph.Node(name)
			to := graph.Node(dep)
			e := graph.Edge(from, to)

			// Attribute references get a distinct color.
			if getAttEdges[name+"->"+dep] {
				e.Attr("color", "blue")
			}
		}
	}

	return graph
}

// buildGetAttSet collects the edges that carry an Fn::GetAtt reference.
func buildGetAttSet(syn *template.Synthesis) map[string]bool {
	edges := make(map[string]bool)
	for name, def := range syn.Template.Resources {
		for _, target := range getAttTargets(def.Properties) {
			edges[name+"->"+target] = true
		}
	}
	return edges
}

// getAttTargets walks serialized properties collecting Fn::GetAtt targets.
func getAttTargets(v any) []string {
	var targets []string
	switch val := v.(type) {
	case map[string]any:
		if att, ok := val["Fn::GetAtt"]; ok && len(val) == 1 {
			switch t := att.(type) {
			case string:
				targets = append(targets, strings.SplitN(t, ".", 2)[0])
			case []any:
				if len(t) > 0 {
					if name, ok := t[0].(string); ok {
						targets = append(targets, name)
					}
				}
			case []string:
				if len(t) > 0 {
					targets = append(targets, t[0])
				}
			}
			return targets
		}
		for _, elem := range val {
			targets = append(targets, getAttTargets(elem)...)
		}
	case []any:
		for _, elem := range val {
			targets = append(targets, getAttTargets(elem)...)
		}
	}
	return targets
}

func (g *Generator) addNodes(graph *dot.Graph, syn *template.Synthesis) {
	for _, name := range syn.Order {
		n := graph.Node(name)
		n.Label(name + "\\n[" + syn.Template.Resources[name].Type + "]")
	}
}

// addClusteredNodes groups resources by AWS service.
func (g *Generator) addClusteredNodes(graph *dot.Graph, syn *template.Synthesis) {
	serviceResources := make(map[string][]string)

	for _, name := range syn.Order {
		service := extractService(syn.Template.Resources[name].Type)
		serviceResources[service] = append(serviceResources[service], name)
	}

	for service, resNames := range serviceResources {
		if len(resNames) > 1 {
			cluster := graph.Subgraph("cluster_"+service, dot.ClusterOption{})
			cluster.Attr("label", service)
			cluster.Attr("style", "rounded")
			cluster.Attr("bgcolor", "lightyellow")

			for _, name := range resNames {
				n := cluster.Node(name)
				n.Label(name + "\\n[" + syn.Template.Resources[name].Type + "]")
			}
		} else {
			for _, name := range resNames {
				n := graph.Node(name)
				n.Label(name + "\\n[" + syn.Template.Resources[name].Type + "]")
			}
		}
	}
}

// extractService pulls the service segment from a CloudFormation type.
// e.g., "AWS::ECS::Cluster" -> "ECS"
func extractService(cfType string) string {
	parts := strings.Split(cfType, "::")
	if len(parts) == 3 {
		return parts[1]
	}
	return "Other"
}
