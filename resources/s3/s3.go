// Package s3 provides the AWS::S3 resource types used by the topology.
package s3

// Bucket is an AWS::S3::Bucket. The pipeline uses one as its artifact store.
type Bucket struct {
	BucketName                     any                                    `json:"BucketName,omitempty"`
	VersioningConfiguration        *Bucket_VersioningConfiguration        `json:"VersioningConfiguration,omitempty"`
	BucketEncryption               *Bucket_BucketEncryption               `json:"BucketEncryption,omitempty"`
	PublicAccessBlockConfiguration *Bucket_PublicAccessBlockConfiguration `json:"PublicAccessBlockConfiguration,omitempty"`
	Tags                           []any                                  `json:"Tags,omitempty"`
}

// ResourceType returns the CloudFormation type.
func (Bucket) ResourceType() string { return "AWS::S3::Bucket" }

// Bucket_VersioningConfiguration toggles object versioning.
type Bucket_VersioningConfiguration struct {
	Status string `json:"Status,omitempty"`
}

// Bucket_BucketEncryption configures default server-side encryption.
type Bucket_BucketEncryption struct {
	ServerSideEncryptionConfiguration []Bucket_ServerSideEncryptionRule `json:"ServerSideEncryptionConfiguration,omitempty"`
}

// Bucket_ServerSideEncryptionRule is one encryption rule.
type Bucket_ServerSideEncryptionRule struct {
	ServerSideEncryptionByDefault *Bucket_ServerSideEncryptionByDefault `json:"ServerSideEncryptionByDefault,omitempty"`
}

// Bucket_ServerSideEncryptionByDefault selects the default encryption algorithm.
type Bucket_ServerSideEncryptionByDefault struct {
	SSEAlgorithm string `json:"SSEAlgorithm,omitempty"`
}

// Bucket_PublicAccessBlockConfiguration blocks public access to the bucket.
type Bucket_PublicAccessBlockConfiguration struct {
	BlockPublicAcls       bool `json:"BlockPublicAcls,omitempty"`
	BlockPublicPolicy     bool `json:"BlockPublicPolicy,omitempty"`
	IgnorePublicAcls      bool `json:"IgnorePublicAcls,omitempty"`
	RestrictPublicBuckets bool `json:"RestrictPublicBuckets,omitempty"`
}
