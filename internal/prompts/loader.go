// Package prompts holds the LLM prompt templates. Each embedded JSON file
// covers one concern (parsing, ranking, analysis) and maps template keys to
// template text with {{.Name}} placeholders.
package prompts

import (
	"embed"
	"encoding/json"
	"fmt"
	"sort"
	"strings"
	"sync"
)

//go:embed *.json
var files embed.FS

var (
	loadOnce  sync.Once
	templates map[string]map[string]string
	loadErr   error
)

// load parses every embedded prompt file once. A malformed file is a
// packaging defect and fails every subsequent lookup.
func load() {
	templates = make(map[string]map[string]string)

	entries, err := files.ReadDir(".")
	if err != nil {
		loadErr = fmt.Errorf("failed to list prompt files: %w", err)
		return
	}

	for _, entry := range entries {
		data, err := files.ReadFile(entry.Name())
		if err != nil {
			loadErr = fmt.Errorf("failed to read prompt file %s: %w", entry.Name(), err)
			return
		}

		var byKey map[string]string
		if err := json.Unmarshal(data, &byKey); err != nil {
			loadErr = fmt.Errorf("failed to parse prompt file %s: %w", entry.Name(), err)
			return
		}
		templates[entry.Name()] = byKey
	}
}

// Get returns the template stored under key in the named file.
func Get(filename, key string) (string, error) {
	loadOnce.Do(load)
	if loadErr != nil {
		return "", loadErr
	}

	byKey, ok := templates[filename]
	if !ok {
		return "", fmt.Errorf("unknown prompt file %s", filename)
	}
	template, ok := byKey[key]
	if !ok {
		return "", fmt.Errorf("prompt key %q not found in %s", key, filename)
	}
	return template, nil
}

// MustGet is Get for templates whose absence is a packaging defect.
func MustGet(filename, key string) string {
	template, err := Get(filename, key)
	if err != nil {
		panic(fmt.Sprintf("failed to load prompt: %v", err))
	}
	return template
}

// Format substitutes {{.Name}} placeholders with the matching data values.
// Placeholders without a matching entry are left in place.
func Format(template string, data map[string]string) string {
	pairs := make([]string, 0, len(data)*2)
	for name, value := range data {
		pairs = append(pairs, "{{."+name+"}}", value)
	}
	return strings.NewReplacer(pairs...).Replace(template)
}

// Keys returns the sorted template keys of the named file.
func Keys(filename string) ([]string, error) {
	loadOnce.Do(load)
	if loadErr != nil {
		return nil, loadErr
	}

	byKey, ok := templates[filename]
	if !ok {
		return nil, fmt.Errorf("unknown prompt file %s", filename)
	}

	keys := make([]string, 0, len(byKey))
	for key := range byKey {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	return keys, nil
}
