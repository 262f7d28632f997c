package ingestion

import (
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCleanText(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{
			name:  "empty input",
			input: "",
			want:  "",
		},
		{
			name:  "crlf normalized",
			input: "first line\r\nsecond line\r",
			want:  "first line\nsecond line",
		},
		{
			name:  "multiple spaces collapsed",
			input: "Senior   Backend    Engineer",
			want:  "Senior Backend Engineer",
		},
		{
			name:  "heading indentation stripped",
			input: "   ## Requirements",
			want:  "## Requirements",
		},
		{
			name:  "bullet indentation preserved",
			input: "- Go experience\n  - gRPC services",
			want:  "- Go experience\n  - gRPC services",
		},
		{
			name:  "excessive blank lines reduced",
			input: "About the role\n\n\n\nRequirements",
			want:  "About the role\n\nRequirements",
		},
		{
			name:  "surrounding whitespace trimmed",
			input: "\n\n  Backend Engineer  \n\n",
			want:  "Backend Engineer",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, CleanText(tt.input))
		})
	}
}

func TestJDFromURL(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/html")
		_, _ = w.Write([]byte(`<html><body>
			<nav>Careers | About</nav>
			<div class="job-description">
				<h1>Backend Engineer</h1>
				<p>We build   payment services in Go.</p>
			</div>
			<footer>Acme Inc</footer>
		</body></html>`))
	}))
	defer ts.Close()

	text, err := JDFromURL(t.Context(), ts.URL, false)
	require.NoError(t, err)

	assert.Contains(t, text, "Backend Engineer")
	assert.Contains(t, text, "We build payment services in Go.")
	assert.NotContains(t, text, "Careers | About")
	assert.NotContains(t, text, "Acme Inc")
}

func TestJDFromURL_FetchFailure(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "not found", http.StatusNotFound)
	}))
	defer ts.Close()

	_, err := JDFromURL(t.Context(), ts.URL, false)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrFetchFailed)
}

func TestJDFromURL_EmptyContent(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/html")
		_, _ = w.Write([]byte(`<html><body><nav>menu only</nav></body></html>`))
	}))
	defer ts.Close()

	_, err := JDFromURL(t.Context(), ts.URL, false)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrEmptyContent)
}

func TestJDFromFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "jd.txt")
	require.NoError(t, os.WriteFile(path, []byte("Backend   Engineer\r\n\r\n\r\n\r\n- Go\n"), 0o644))

	text, err := JDFromFile(path)
	require.NoError(t, err)
	assert.Equal(t, "Backend Engineer\n\n- Go", text)
}

func TestJDFromFile_NotFound(t *testing.T) {
	_, err := JDFromFile(filepath.Join(t.TempDir(), "missing.txt"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "file not found")
}

func TestJDFromFile_Empty(t *testing.T) {
	path := filepath.Join(t.TempDir(), "blank.txt")
	require.NoError(t, os.WriteFile(path, []byte("   \n\n  "), 0o644))

	_, err := JDFromFile(path)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrEmptyContent)
}
