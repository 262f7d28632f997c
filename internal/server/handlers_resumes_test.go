package server

import (
	"encoding/json"
	"fmt"
	"net/http"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/daniel/talent-ranker/internal/db"
)

const resumeProfileJSON = `{
	"name": "Priya Raman",
	"email": "priya@example.com",
	"phone": "+49 170 1234567",
	"location": "Berlin, Germany",
	"skills": ["golang", "PostgreSQL", "Go"],
	"experiences": [
		{"role": "Backend Engineer", "company": "Zentry", "start_date": "2020-03", "end_date": ""}
	],
	"projects": [
		{"name": "ledgerd", "description": "double-entry ledger service"}
	]
}`

func TestUploadResume(t *testing.T) {
	env := newTestEnv(t)
	auth := env.register(t, "dana@flowboard.io")
	candidate := createCandidate(t, env, auth.Token, "Priya", "priya@example.com")
	env.llm.responses = []string{resumeProfileJSON}

	rec := env.do(t, http.MethodPost, fmt.Sprintf("/candidates/%s/resume", candidate.ID),
		`{"resume_text":"Priya Raman. Backend Engineer at Zentry since 2020..."}`, auth.Token)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	var resp struct {
		Candidate db.Candidate `json:"candidate"`
		Parsed    struct {
			Skills []string `json:"skills"`
		} `json:"parsed"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))

	assert.Equal(t, candidate.ID, resp.Candidate.ID, "parse updates the same row")
	assert.Equal(t, "Priya Raman", resp.Candidate.Name)
	assert.Equal(t, "Berlin, Germany", resp.Candidate.Location)
	// "golang" normalizes to "Go" and dedupes against the existing "Go".
	assert.Equal(t, []string{"Go", "PostgreSQL"}, resp.Parsed.Skills)

	assert.Equal(t, []string{"Go", "PostgreSQL"}, env.store.skills[candidate.ID])
	require.Len(t, env.store.exps[candidate.ID], 1)
	assert.Equal(t, "Backend Engineer", env.store.exps[candidate.ID][0].Role)
	require.Len(t, env.store.projects[candidate.ID], 1)

	assert.Contains(t, env.store.activityTypes(), "RESUME_PARSED")
}

func TestUploadResume_KeepsStoredEmail(t *testing.T) {
	env := newTestEnv(t)
	auth := env.register(t, "dana@flowboard.io")
	candidate := createCandidate(t, env, auth.Token, "Priya", "priya@example.com")

	// Resume claims a different address; the stored one stays authoritative.
	divergent := `{"name":"Priya Raman","email":"other@example.com","skills":["Go"]}`
	env.llm.responses = []string{divergent}

	rec := env.do(t, http.MethodPost, fmt.Sprintf("/candidates/%s/resume", candidate.ID),
		`{"resume_text":"Priya Raman..."}`, auth.Token)
	require.Equal(t, http.StatusOK, rec.Code)

	var resp struct {
		Candidate db.Candidate `json:"candidate"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "priya@example.com", resp.Candidate.Email)
}

func TestUploadResume_BadRequests(t *testing.T) {
	env := newTestEnv(t)
	auth := env.register(t, "dana@flowboard.io")
	candidate := createCandidate(t, env, auth.Token, "Priya", "priya@example.com")

	t.Run("empty resume text", func(t *testing.T) {
		rec := env.do(t, http.MethodPost, fmt.Sprintf("/candidates/%s/resume", candidate.ID),
			`{"resume_text":"   "}`, auth.Token)
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("unknown candidate", func(t *testing.T) {
		rec := env.do(t, http.MethodPost, fmt.Sprintf("/candidates/%s/resume", uuid.New()),
			`{"resume_text":"text"}`, auth.Token)
		assert.Equal(t, http.StatusNotFound, rec.Code)
	})
}

func TestUploadResume_SchemaViolation(t *testing.T) {
	env := newTestEnv(t)
	auth := env.register(t, "dana@flowboard.io")
	candidate := createCandidate(t, env, auth.Token, "Priya", "priya@example.com")

	// Missing required name and email.
	env.llm.responses = []string{`{"skills":["Go"]}`}

	rec := env.do(t, http.MethodPost, fmt.Sprintf("/candidates/%s/resume", candidate.ID),
		`{"resume_text":"some resume"}`, auth.Token)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Empty(t, env.store.skills[candidate.ID], "failed parses must not write")
}
