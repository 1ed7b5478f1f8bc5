// Package prompts provides a loader for externalized LLM prompt templates.
// Prompts are stored as JSON files and embedded at compile time.
package prompts

import (
	"embed"
	"encoding/json"
	"fmt"
	"strings"
	"sync"
)

//go:embed *.json
var promptFiles embed.FS

// promptFile is the single prompt catalog for the resume parser.
const promptFile = "parser.json"

var (
	loadOnce sync.Once
	catalog  map[string]string
	loadErr  error
)

// Get retrieves a prompt template by key from the embedded catalog.
func Get(key string) (string, error) {
	loadOnce.Do(func() {
		data, err := promptFiles.ReadFile(promptFile)
		if err != nil {
			loadErr = fmt.Errorf("failed to read prompt file %s: %w", promptFile, err)
			return
		}
		if err := json.Unmarshal(data, &catalog); err != nil {
			loadErr = fmt.Errorf("failed to parse prompt file %s: %w", promptFile, err)
		}
	})
	if loadErr != nil {
		return "", loadErr
	}

	prompt, exists := catalog[key]
	if !exists {
		return "", fmt.Errorf("prompt key %q not found in %s", key, promptFile)
	}
	return prompt, nil
}

// MustGet retrieves a prompt by key, panicking if not found.
// Use this for prompts that are required at initialization time.
func MustGet(key string) string {
	prompt, err := Get(key)
	if err != nil {
		panic(fmt.Sprintf("failed to load prompt: %v", err))
	}
	return prompt
}

// Format replaces template placeholders in the form {{.Key}} with values from data.
func Format(template string, data map[string]string) string {
	result := template
	for key, value := range data {
		placeholder := fmt.Sprintf("{{.%s}}", key)
		result = strings.ReplaceAll(result, placeholder, value)
	}
	return result
}
