// Package intrinsics provides CloudFormation intrinsic functions.
// This file contains IAM policy document types and helpers.
package intrinsics

import (
	"encoding/json"
)

// Json is a shorthand for map[string]any.
// Used for inline JSON objects like log driver option maps.
type Json = map[string]any

// List creates a typed slice from the given items.
// Avoids verbose slice type annotations in struct literals.
func List[T any](items ...T) []T {
	return items
}

// Any creates a []any slice from the given items.
// Use for fields typed as []any that accept mixed types or intrinsics.
func Any(items ...any) []any {
	return items
}

// PolicyVersion is the current IAM policy language version.
const PolicyVersion = "2012-10-17"

// PolicyDocument represents an IAM policy document.
type PolicyDocument struct {
	Version   string `json:"Version,omitempty"`
	Statement []any  `json:"Statement"`
}

// PolicyStatement represents an IAM policy statement.
//
// Example:
//
//	var AssumeByBuild = PolicyStatement{
//	    Effect:    "Allow",
//	    Principal: ServicePrincipal{"codebuild.amazonaws.com"},
//	    Action:    "sts:AssumeRole",
//	}
type PolicyStatement struct {
	Sid       string `json:"Sid,omitempty"`
	Effect    string `json:"Effect"`
	Principal any    `json:"Principal,omitempty"`
	Action    any    `json:"Action,omitempty"`
	Resource  any    `json:"Resource,omitempty"`
	Condition Json   `json:"Condition,omitempty"`
}

// ServicePrincipal represents a service principal (e.g., ecs-tasks.amazonaws.com).
// Serializes to {"Service": ...} format.
type ServicePrincipal []any

// MarshalJSON serializes to {"Service": ...} format.
func (p ServicePrincipal) MarshalJSON() ([]byte, error) {
	if len(p) == 1 {
		return json.Marshal(map[string]any{"Service": p[0]})
	}
	return json.Marshal(map[string]any{"Service": []any(p)})
}

// AssumeRolePolicy builds the trust policy allowing the given service
// principals to assume a role. Every role in the topology uses this shape.
func AssumeRolePolicy(services ...any) PolicyDocument {
	return PolicyDocument{
		Version: PolicyVersion,
		Statement: []any{
			PolicyStatement{
				Effect:    "Allow",
				Principal: ServicePrincipal(services),
				Action:    "sts:AssumeRole",
			},
		},
	}
}
