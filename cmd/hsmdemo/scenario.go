package main

import (
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"
)

// Step is one step of a scenario: a key press, some timer ticks, or a key press followed by ticks.
type Step struct {
	Key   string `yaml:"key,omitempty"`
	Ticks int    `yaml:"ticks,omitempty"`
}

// Scenario is a scripted run of a demo.
//
//	set_time: 5
//	steps:
//	  - key: s
//	  - ticks: 5
type Scenario struct {
	SetTime    uint   `yaml:"set_time,omitempty"`
	DoorClosed *bool  `yaml:"door_closed,omitempty"`
	Steps      []Step `yaml:"steps"`
}

func parseScenario(r io.Reader) (Scenario, error) {
	var sc Scenario
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&sc); err != nil {
		return Scenario{}, fmt.Errorf("decoding scenario: %w", err)
	}
	for i, step := range sc.Steps {
		if len([]rune(step.Key)) > 1 {
			return Scenario{}, fmt.Errorf("step %d: key %q must be a single character", i, step.Key)
		}
		if step.Ticks < 0 {
			return Scenario{}, fmt.Errorf("step %d: negative ticks", i)
		}
	}
	return sc, nil
}

func loadScenario(path string) (Scenario, error) {
	f, err := os.Open(path)
	if err != nil {
		return Scenario{}, fmt.Errorf("opening scenario: %w", err)
	}
	defer f.Close()
	return parseScenario(f)
}

// keySteps turns a string of keys into steps, each followed by ticks timer ticks. Blanks are skipped.
func keySteps(keys string, ticks int) []Step {
	var steps []Step
	for _, key := range keys {
		switch key {
		case ' ', '\t', '\r', '\n':
			continue
		}
		steps = append(steps, Step{Key: string(key), Ticks: ticks})
	}
	return steps
}
