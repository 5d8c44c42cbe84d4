// Package iam provides the AWS::IAM resource types used by the topology.
package iam

// Role is an AWS::IAM::Role.
type Role struct {
	RoleName                 any    `json:"RoleName,omitempty"`
	AssumeRolePolicyDocument any    `json:"AssumeRolePolicyDocument,omitempty"`
	ManagedPolicyArns        []any  `json:"ManagedPolicyArns,omitempty"`
	Policies                 []any  `json:"Policies,omitempty"`
	Path                     string `json:"Path,omitempty"`
	Tags                     []any  `json:"Tags,omitempty"`
}

// ResourceType returns the CloudFormation type.
func (Role) ResourceType() string { return "AWS::IAM::Role" }

// Role_Policy is an inline policy attached to a role.
type Role_Policy struct {
	PolicyName     any `json:"PolicyName,omitempty"`
	PolicyDocument any `json:"PolicyDocument,omitempty"`
}

// InstanceProfile is an AWS::IAM::InstanceProfile.
type InstanceProfile struct {
	InstanceProfileName any    `json:"InstanceProfileName,omitempty"`
	Roles               []any  `json:"Roles,omitempty"`
	Path                string `json:"Path,omitempty"`
}

// ResourceType returns the CloudFormation type.
func (InstanceProfile) ResourceType() string { return "AWS::IAM::InstanceProfile" }
