// Package config loads the environment configuration for the deployment
// topology.
package config

import (
	"fmt"
	"os"

	"github.com/BurntSushi/toml"
)

// Config drives topology synthesis and deployment for one environment.
type Config struct {
	Environment string `toml:"environment"`
	Region      string `toml:"region"`
	StackName   string `toml:"stack_name"`

	Container Container `toml:"container"`
	Capacity  Capacity  `toml:"capacity"`
	Source    Source    `toml:"source"`
}

// Container configures the single web container of the task definition.
type Container struct {
	Name              string `toml:"name"`
	Port              int    `toml:"port"`
	Cpu               int    `toml:"cpu"`
	MemoryReservation int    `toml:"memory_reservation"`
	StreamPrefix      string `toml:"stream_prefix"`
}

// Capacity configures the ARM container instances behind the cluster.
type Capacity struct {
	InstanceType string `toml:"instance_type"`
	MinCapacity  int    `toml:"min_capacity"`
	MaxCapacity  int    `toml:"max_capacity"`
}

// Source names the GitHub repository the pipeline releases from. The
// values become parameter defaults, overridable at deploy time.
type Source struct {
	Owner         string `toml:"owner"`
	Repository    string `toml:"repository"`
	Branch        string `toml:"branch"`
	ConnectionArn string `toml:"connection_arn"`
}

// Default returns the committed configuration.
func Default() Config {
	return Config{
		Environment: "dev",
		Region:      "us-east-1",
		StackName:   "EcsArmPipeline",
		Container: Container{
			Name:              "web",
			Port:              80,
			Cpu:               256,
			MemoryReservation: 256,
			StreamPrefix:      "web-arm",
		},
		Capacity: Capacity{
			InstanceType: "t4g.micro",
			MinCapacity:  1,
			MaxCapacity:  1,
		},
		Source: Source{
			Owner:         "codeavatar1",
			Repository:    "code-pipeline-manual-arm-cdk",
			Branch:        "main",
			ConnectionArn: "arn:aws:codestar-connections:us-east-1:595922124144:connection/6ff91833-3f77-4334-8ba2-3573bbd3015d",
		},
	}
}

// Load reads a TOML file over the defaults. A missing path returns the
// defaults unchanged.
func Load(path string) (Config, error) {
	cfg := Default()
	if path == "" {
		return cfg, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, fmt.Errorf("config file not found: %s", path)
		}
		return cfg, fmt.Errorf("reading config: %w", err)
	}

	if err := toml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("parsing %s: %w", path, err)
	}

	if err := cfg.Validate(); err != nil {
		return cfg, err
	}
	return cfg, nil
}

// Validate rejects configurations the topology cannot express.
func (c Config) Validate() error {
	if c.StackName == "" {
		return fmt.Errorf("stack_name is required")
	}
	if c.Container.Name == "" {
		return fmt.Errorf("container.name is required")
	}
	if c.Container.Port <= 0 || c.Container.Port > 65535 {
		return fmt.Errorf("container.port %d out of range", c.Container.Port)
	}
	if c.Container.MemoryReservation <= 0 {
		return fmt.Errorf("container.memory_reservation must be positive")
	}
	if c.Capacity.MinCapacity < 1 {
		return fmt.Errorf("capacity.min_capacity must be at least 1")
	}
	if c.Capacity.MaxCapacity < c.Capacity.MinCapacity {
		return fmt.Errorf("capacity.max_capacity %d below min_capacity %d",
			c.Capacity.MaxCapacity, c.Capacity.MinCapacity)
	}
	if c.Source.Owner == "" || c.Source.Repository == "" {
		return fmt.Errorf("source.owner and source.repository are required")
	}
	if c.Source.Branch == "" {
		return fmt.Errorf("source.branch is required")
	}
	return nil
}

// FullRepositoryId returns the owner/name form CodeStar connections use.
func (s Source) FullRepositoryId() string {
	return s.Owner + "/" + s.Repository
}
