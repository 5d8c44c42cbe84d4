// Package intrinsics provides the CloudFormation intrinsic functions used by
// the deployment topology.
//
// The core intrinsic types come from cloudformation-schema-go; this package
// re-exports the subset the topology needs and adds IAM policy document types.
//
//	Ref{LogicalName: "ImageRepo"}         → {"Ref": "ImageRepo"}
//	Sub{String: "${AWS::StackName}-web"}  → {"Fn::Sub": "${AWS::StackName}-web"}
//	Join{Delimiter: ",", Values: [...]}   → {"Fn::Join": [",", [...]]}
package intrinsics

import (
	"github.com/lex00/cloudformation-schema-go/intrinsics"
)

type (
	// Ref represents a CloudFormation Ref intrinsic function.
	Ref = intrinsics.Ref

	// GetAtt represents a CloudFormation Fn::GetAtt intrinsic function.
	GetAtt = intrinsics.GetAtt

	// Sub represents a CloudFormation Fn::Sub intrinsic function.
	Sub = intrinsics.Sub

	// SubWithMap is Fn::Sub with a variable map.
	SubWithMap = intrinsics.SubWithMap

	// Join represents a CloudFormation Fn::Join intrinsic function.
	Join = intrinsics.Join

	// Select represents a CloudFormation Fn::Select intrinsic function.
	Select = intrinsics.Select

	// Split represents a CloudFormation Fn::Split intrinsic function.
	Split = intrinsics.Split

	// Base64 represents a CloudFormation Fn::Base64 intrinsic function.
	Base64 = intrinsics.Base64

	// ImportValue represents a CloudFormation Fn::ImportValue intrinsic function.
	ImportValue = intrinsics.ImportValue

	// GetAZs represents a CloudFormation Fn::GetAZs intrinsic function.
	GetAZs = intrinsics.GetAZs

	// Tag represents a CloudFormation resource tag.
	Tag = intrinsics.Tag
)

// Param creates a Ref for a CloudFormation parameter.
var Param = intrinsics.Param
