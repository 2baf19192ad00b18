package usecase

import (
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

const (
	DefaultSystemPrompt = "You are a helpful AI legal assistant for the Indian legal context. Provide concise, accurate guidance with references when relevant. Avoid offering guaranteed legal outcomes and suggest consulting a lawyer for critical matters."

	DefaultComparisonInstruction = "Compare it with new Indian laws and highlight what are added or removed (changes)."
)

type Prompts struct {
	SystemPrompt          string `yaml:"system_prompt"`
	ComparisonInstruction string `yaml:"comparison_instruction"`
}

func DefaultPrompts() Prompts {
	return Prompts{
		SystemPrompt:          DefaultSystemPrompt,
		ComparisonInstruction: DefaultComparisonInstruction,
	}
}

// LoadPrompts reads optional overrides from a YAML file. Blank fields keep
// the defaults; an empty path returns the defaults.
func LoadPrompts(path string) (Prompts, error) {
	prompts := DefaultPrompts()
	path = strings.TrimSpace(path)
	if path == "" {
		return prompts, nil
	}

	raw, err := os.ReadFile(path)
	if err != nil {
		return prompts, fmt.Errorf("read prompts file: %w", err)
	}

	var overrides Prompts
	if err := yaml.Unmarshal(raw, &overrides); err != nil {
		return prompts, fmt.Errorf("parse prompts file: %w", err)
	}
	if s := strings.TrimSpace(overrides.SystemPrompt); s != "" {
		prompts.SystemPrompt = s
	}
	if s := strings.TrimSpace(overrides.ComparisonInstruction); s != "" {
		prompts.ComparisonInstruction = s
	}
	return prompts, nil
}

func buildComparisonPrompt(extractedText, instruction string) string {
	return extractedText + "\n\n" + instruction
}
