package harness

import (
	"bytes"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/roach88/cutoff/internal/sum"
)

// Scenario defines one summation test case.
type Scenario struct {
	// Name uniquely identifies this scenario and names its golden file.
	Name string `yaml:"name"`

	// Description explains what this scenario validates.
	Description string `yaml:"description"`

	// Threshold overrides sum.DefaultThreshold when set.
	Threshold *int64 `yaml:"threshold,omitempty"`

	// Items is the input sequence.
	Items Items `yaml:"items"`

	// Expect holds the expected result.
	Expect *Expect `yaml:"expect"`
}

// Expect specifies expected summation behavior.
// Only Total is required; nil fields are not checked.
type Expect struct {
	Total    *int64  `yaml:"total"`
	Consumed *int    `yaml:"consumed,omitempty"`
	Crossed  *bool   `yaml:"crossed,omitempty"`
	Trace    []int64 `yaml:"trace,omitempty"`
}

// Items is a sequence decoded strictly from YAML integers.
type Items []int64

// UnmarshalYAML rejects anything that is not a list of integer scalars.
// Strings that look like numbers ("10") are rejected too.
func (it *Items) UnmarshalYAML(value *yaml.Node) error {
	source := fmt.Sprintf("line %d", value.Line)
	if value.Kind != yaml.SequenceNode {
		return &sum.InvalidInputError{Source: source, Index: -1, Value: value.Value, Reason: "items must be a list"}
	}

	items := make(Items, 0, len(value.Content))
	for i, n := range value.Content {
		if n.Kind != yaml.ScalarNode || n.ShortTag() != "!!int" {
			return &sum.InvalidInputError{
				Source: fmt.Sprintf("line %d", n.Line),
				Index:  i,
				Value:  n.Value,
				Reason: "not an integer",
			}
		}
		var v int64
		if err := n.Decode(&v); err != nil {
			return &sum.InvalidInputError{
				Source: fmt.Sprintf("line %d", n.Line),
				Index:  i,
				Value:  n.Value,
				Reason: "out of int64 range",
			}
		}
		items = append(items, v)
	}
	*it = items
	return nil
}

// ThresholdOrDefault returns the scenario threshold or sum.DefaultThreshold.
func (s *Scenario) ThresholdOrDefault() int64 {
	if s.Threshold != nil {
		return *s.Threshold
	}
	return sum.DefaultThreshold
}

// LoadScenario reads and parses a scenario YAML file.
// Returns an error if the file doesn't exist, is malformed,
// contains unknown fields (typos), or is missing required fields.
func LoadScenario(path string) (*Scenario, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read scenario file: %w", err)
	}
	return ParseScenario(data)
}

// ParseScenario parses scenario YAML with strict field validation.
func ParseScenario(data []byte) (*Scenario, error) {
	var scenario Scenario
	decoder := yaml.NewDecoder(bytes.NewReader(data))
	decoder.KnownFields(true) // Reject unknown fields
	if err := decoder.Decode(&scenario); err != nil {
		return nil, fmt.Errorf("failed to parse YAML: %w", err)
	}

	if err := validateScenario(&scenario); err != nil {
		return nil, fmt.Errorf("invalid scenario: %w", err)
	}

	return &scenario, nil
}

// validateScenario checks that required fields are present.
func validateScenario(s *Scenario) error {
	if s.Name == "" {
		return fmt.Errorf("name is required")
	}

	if s.Description == "" {
		return fmt.Errorf("description is required")
	}

	if s.Items == nil {
		return fmt.Errorf("items is required (use [] for an empty sequence)")
	}

	if err := sum.CheckRange("items", s.Items, s.ThresholdOrDefault()); err != nil {
		return err
	}

	if s.Expect == nil {
		return fmt.Errorf("expect is required")
	}

	if s.Expect.Total == nil {
		return fmt.Errorf("expect.total is required")
	}

	if s.Expect.Consumed != nil && *s.Expect.Consumed < 0 {
		return fmt.Errorf("expect.consumed must be non-negative, got %d", *s.Expect.Consumed)
	}

	return nil
}
