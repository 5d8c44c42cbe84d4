// Package logs provides the AWS::Logs resource types used by the topology.
package logs

// LogGroup is an AWS::Logs::LogGroup.
type LogGroup struct {
	LogGroupName    any `json:"LogGroupName,omitempty"`
	RetentionInDays int `json:"RetentionInDays,omitempty"`
}

// ResourceType returns the CloudFormation type.
func (LogGroup) ResourceType() string { return "AWS::Logs::LogGroup" }
