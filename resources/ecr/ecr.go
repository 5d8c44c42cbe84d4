// Package ecr provides the AWS::ECR resource types used by the topology.
package ecr

// Repository is an AWS::ECR::Repository.
//
// The repository outlives any single pipeline run: images pushed by the build
// project stay until removed by a lifecycle policy or by hand.
type Repository struct {
	RepositoryName             any                                    `json:"RepositoryName,omitempty"`
	ImageTagMutability         string                                 `json:"ImageTagMutability,omitempty"`
	ImageScanningConfiguration *Repository_ImageScanningConfiguration `json:"ImageScanningConfiguration,omitempty"`
	LifecyclePolicy            *Repository_LifecyclePolicy            `json:"LifecyclePolicy,omitempty"`
	Tags                       []any                                  `json:"Tags,omitempty"`
}

// ResourceType returns the CloudFormation type.
func (Repository) ResourceType() string { return "AWS::ECR::Repository" }

// Repository_ImageScanningConfiguration enables image scanning on push.
type Repository_ImageScanningConfiguration struct {
	ScanOnPush bool `json:"ScanOnPush,omitempty"`
}

// Repository_LifecyclePolicy holds a lifecycle policy document.
type Repository_LifecyclePolicy struct {
	LifecyclePolicyText string `json:"LifecyclePolicyText,omitempty"`
	RegistryId          string `json:"RegistryId,omitempty"`
}
