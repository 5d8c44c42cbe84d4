// Package ec2 provides the AWS::EC2 resource types used by the topology.
//
// The VPC itself is referenced through template parameters rather than
// declared here: the topology attaches to an existing network.
package ec2

// SecurityGroup is an AWS::EC2::SecurityGroup.
type SecurityGroup struct {
	GroupDescription     string                      `json:"GroupDescription,omitempty"`
	GroupName            any                         `json:"GroupName,omitempty"`
	VpcId                any                         `json:"VpcId,omitempty"`
	SecurityGroupIngress []SecurityGroup_IngressRule `json:"SecurityGroupIngress,omitempty"`
	SecurityGroupEgress  []SecurityGroup_EgressRule  `json:"SecurityGroupEgress,omitempty"`
	Tags                 []any                       `json:"Tags,omitempty"`
}

// ResourceType returns the CloudFormation type.
func (SecurityGroup) ResourceType() string { return "AWS::EC2::SecurityGroup" }

// SecurityGroup_IngressRule is one inbound rule on a security group.
type SecurityGroup_IngressRule struct {
	Description           string `json:"Description,omitempty"`
	IpProtocol            string `json:"IpProtocol,omitempty"`
	FromPort              int    `json:"FromPort,omitempty"`
	ToPort                int    `json:"ToPort,omitempty"`
	CidrIp                string `json:"CidrIp,omitempty"`
	SourceSecurityGroupId any    `json:"SourceSecurityGroupId,omitempty"`
}

// SecurityGroup_EgressRule is one outbound rule on a security group.
type SecurityGroup_EgressRule struct {
	Description string `json:"Description,omitempty"`
	IpProtocol  string `json:"IpProtocol,omitempty"`
	FromPort    int    `json:"FromPort,omitempty"`
	ToPort      int    `json:"ToPort,omitempty"`
	CidrIp      string `json:"CidrIp,omitempty"`
}

// SecurityGroupIngress is an AWS::EC2::SecurityGroupIngress.
//
// A standalone ingress rule breaks the circular reference that would occur if
// two security groups pointed at each other inline.
type SecurityGroupIngress struct {
	Description           string `json:"Description,omitempty"`
	GroupId               any    `json:"GroupId,omitempty"`
	IpProtocol            string `json:"IpProtocol,omitempty"`
	FromPort              int    `json:"FromPort,omitempty"`
	ToPort                int    `json:"ToPort,omitempty"`
	SourceSecurityGroupId any    `json:"SourceSecurityGroupId,omitempty"`
	CidrIp                string `json:"CidrIp,omitempty"`
}

// ResourceType returns the CloudFormation type.
func (SecurityGroupIngress) ResourceType() string { return "AWS::EC2::SecurityGroupIngress" }

// LaunchTemplate is an AWS::EC2::LaunchTemplate.
type LaunchTemplate struct {
	LaunchTemplateName any                      `json:"LaunchTemplateName,omitempty"`
	LaunchTemplateData *LaunchTemplate_Data     `json:"LaunchTemplateData,omitempty"`
	TagSpecifications  []LaunchTemplate_TagSpec `json:"TagSpecifications,omitempty"`
}

// ResourceType returns the CloudFormation type.
func (LaunchTemplate) ResourceType() string { return "AWS::EC2::LaunchTemplate" }

// LaunchTemplate_Data holds the instance settings for a launch template.
type LaunchTemplate_Data struct {
	ImageId            any                             `json:"ImageId,omitempty"`
	InstanceType       string                          `json:"InstanceType,omitempty"`
	IamInstanceProfile *LaunchTemplate_InstanceProfile `json:"IamInstanceProfile,omitempty"`
	SecurityGroupIds   []any                           `json:"SecurityGroupIds,omitempty"`
	UserData           any                             `json:"UserData,omitempty"`
}

// LaunchTemplate_InstanceProfile references the IAM instance profile.
type LaunchTemplate_InstanceProfile struct {
	Arn  any `json:"Arn,omitempty"`
	Name any `json:"Name,omitempty"`
}

// LaunchTemplate_TagSpec tags launched resources.
type LaunchTemplate_TagSpec struct {
	ResourceType string `json:"ResourceType,omitempty"`
	Tags         []any  `json:"Tags,omitempty"`
}
