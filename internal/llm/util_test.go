package llm

import (
	"testing"
)

func TestCleanJSONBlock_MarkdownCodeBlock(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{
			name:     "json code block",
			input:    "```json\n{\"skills\": [\"go\"]}\n```",
			expected: `{"skills": ["go"]}`,
		},
		{
			name:     "generic code block",
			input:    "```\n{\"skills\": [\"go\"]}\n```",
			expected: `{"skills": ["go"]}`,
		},
		{
			name:     "code block with language",
			input:    "```javascript\n{\"skills\": [\"go\"]}\n```",
			expected: `{"skills": ["go"]}`,
		},
		{
			name:     "plain JSON",
			input:    `{"skills": ["go"]}`,
			expected: `{"skills": ["go"]}`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := CleanJSONBlock(tt.input)
			if result != tt.expected {
				t.Errorf("CleanJSONBlock() = %q, want %q", result, tt.expected)
			}
		})
	}
}

func TestCleanJSONBlock_PreambleText(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{
			name:     "preamble before JSON object",
			input:    "As requested, here are the requirements:\n{\"role\": \"Engineer\"}",
			expected: `{"role": "Engineer"}`,
		},
		{
			name:     "conversational preamble",
			input:    "I've reviewed the job description. Here's the structured output:\n\n{\"role\": \"Engineer\", \"experience_years\": 5}",
			expected: `{"role": "Engineer", "experience_years": 5}`,
		},
		{
			name:     "preamble before JSON array",
			input:    "Here are the matched skills:\n[\"go\", \"postgresql\"]",
			expected: `["go", "postgresql"]`,
		},
		{
			name:     "JSON with trailing text",
			input:    "{\"summary\": \"strong fit\"}\n\nLet me know if you need anything else!",
			expected: `{"summary": "strong fit"}`,
		},
		{
			name:     "nested objects",
			input:    "Output:\n{\"analysis\": {\"fit_score\": 80}}",
			expected: `{"analysis": {"fit_score": 80}}`,
		},
		{
			name:     "JSON with escaped quotes",
			input:    "Result: {\"summary\": \"a \\\"strong\\\" candidate\"}",
			expected: `{"summary": "a \"strong\" candidate"}`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := CleanJSONBlock(tt.input)
			if result != tt.expected {
				t.Errorf("CleanJSONBlock() = %q, want %q", result, tt.expected)
			}
		})
	}
}

func TestExtractJSONObject(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{
			name:     "simple object",
			input:    `{"key": "value"}`,
			expected: `{"key": "value"}`,
		},
		{
			name:     "object with trailing text",
			input:    `{"key": "value"} and some more text`,
			expected: `{"key": "value"}`,
		},
		{
			name:     "string with braces inside",
			input:    `{"template": "Hello {name}!"}`,
			expected: `{"template": "Hello {name}!"}`,
		},
		{
			name:     "unterminated object",
			input:    `{"key": "value"`,
			expected: "",
		},
		{
			name:     "empty input",
			input:    "",
			expected: "",
		},
		{
			name:     "not starting with brace",
			input:    "not json",
			expected: "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := extractJSONObject(tt.input)
			if result != tt.expected {
				t.Errorf("extractJSONObject() = %q, want %q", result, tt.expected)
			}
		})
	}
}

func TestExtractJSONArray(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{
			name:     "simple array",
			input:    `["a", "b", "c"]`,
			expected: `["a", "b", "c"]`,
		},
		{
			name:     "array of objects",
			input:    `[{"id": 1}, {"id": 2}]`,
			expected: `[{"id": 1}, {"id": 2}]`,
		},
		{
			name:     "array with trailing text",
			input:    `[1, 2, 3] extra stuff`,
			expected: `[1, 2, 3]`,
		},
		{
			name:     "empty input",
			input:    "",
			expected: "",
		},
		{
			name:     "not starting with bracket",
			input:    "not array",
			expected: "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := extractJSONArray(tt.input)
			if result != tt.expected {
				t.Errorf("extractJSONArray() = %q, want %q", result, tt.expected)
			}
		})
	}
}
