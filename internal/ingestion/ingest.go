// Package ingestion turns job descriptions from URLs or files into clean
// plain text suitable for requirement extraction.
package ingestion

import (
	"context"
	"fmt"
	"os"
	"regexp"
	"strings"

	"github.com/daniel/talent-ranker/internal/fetch"
)

var (
	// ErrFetchFailed is returned when the HTTP request fails.
	ErrFetchFailed = fmt.Errorf("HTTP request failed")
	// ErrExtractionFailed is returned when text extraction fails.
	ErrExtractionFailed = fmt.Errorf("content extraction failed")
	// ErrEmptyContent is returned when a source yields no usable text.
	ErrEmptyContent = fmt.Errorf("no usable text content")
)

var multiSpace = regexp.MustCompile(`\s+`)

// JDFromURL fetches a job posting, extracts the posting body using platform
// specific selectors, and returns cleaned text. When useBrowser is true and
// the plain HTTP fetch yields too little text, a headless browser render is
// attempted; browser failures fall back to the HTTP content.
func JDFromURL(ctx context.Context, urlStr string, useBrowser bool) (string, error) {
	platform := fetch.DetectPlatform(urlStr)

	result, err := fetch.URL(ctx, urlStr, nil)
	if err != nil {
		return "", fmt.Errorf("%w: %w", ErrFetchFailed, err)
	}

	contentSelectors := fetch.PlatformContentSelectors(platform)
	noiseSelectors := fetch.PlatformNoiseSelectors(platform)

	text, err := fetch.ExtractMainText(result.HTML, contentSelectors, noiseSelectors...)
	if err != nil {
		return "", fmt.Errorf("%w: %w", ErrExtractionFailed, err)
	}

	if useBrowser && fetch.ShouldUseBrowser(text) {
		if browserHTML, browserErr := fetch.BrowserSimple(ctx, urlStr); browserErr == nil {
			if browserText, extractErr := fetch.ExtractMainText(browserHTML, contentSelectors, noiseSelectors...); extractErr == nil {
				text = browserText
			}
		}
	}

	cleaned := CleanText(text)
	if cleaned == "" {
		return "", fmt.Errorf("%w from %s", ErrEmptyContent, urlStr)
	}
	return cleaned, nil
}

// JDFromFile reads a job description from a local text file and cleans it.
func JDFromFile(path string) (string, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return "", fmt.Errorf("file not found: %w", err)
		}
		return "", fmt.Errorf("failed to read file: %w", err)
	}

	cleaned := CleanText(string(content))
	if cleaned == "" {
		return "", fmt.Errorf("%w in %s", ErrEmptyContent, path)
	}
	return cleaned, nil
}

// CleanText normalizes line endings and whitespace while preserving markdown
// headings and bullet structure.
func CleanText(content string) string {
	if content == "" {
		return ""
	}

	content = strings.ReplaceAll(content, "\r\n", "\n")
	content = strings.ReplaceAll(content, "\r", "\n")

	lines := strings.Split(content, "\n")
	cleanedLines := make([]string, 0, len(lines))
	for _, line := range lines {
		cleanedLines = append(cleanedLines, cleanLine(line))
	}

	result := strings.Join(cleanedLines, "\n")
	result = removeExcessiveBlankLines(result)
	return strings.TrimSpace(result)
}

// cleanLine cleans a single line while preserving structure.
func cleanLine(line string) string {
	line = strings.TrimRight(line, " \t")
	if strings.TrimSpace(line) == "" {
		return ""
	}

	trimmed := strings.TrimLeft(line, " \t")

	// Headings keep their marker and lose leading indentation.
	if strings.HasPrefix(trimmed, "#") {
		return trimmed
	}

	// Bullets keep their indentation.
	if strings.HasPrefix(trimmed, "- ") || strings.HasPrefix(trimmed, "* ") {
		indent := len(line) - len(trimmed)
		if indent > 0 {
			return strings.Repeat(" ", indent) + trimmed
		}
		return trimmed
	}

	indent := len(line) - len(trimmed)
	content := multiSpace.ReplaceAllString(strings.TrimSpace(line), " ")
	if indent > 0 {
		return strings.Repeat(" ", indent) + content
	}
	return content
}

// removeExcessiveBlankLines reduces runs of blank lines to a single blank line
// between paragraphs.
func removeExcessiveBlankLines(content string) string {
	re := regexp.MustCompile(`\n\n\n+`)
	return re.ReplaceAllString(content, "\n\n")
}
