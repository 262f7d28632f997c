package server

import (
	"encoding/json"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/daniel/talent-ranker/internal/db"
	"github.com/daniel/talent-ranker/internal/sourcing"
)

func TestSourceProfile(t *testing.T) {
	env := newTestEnv(t)
	auth := env.register(t, "dana@flowboard.io")
	env.sourcer.profile = &sourcing.Profile{
		FullName: "Priya Raman",
		Location: "Bengaluru, India",
		Skills:   []string{"golang", "Kubernetes"},
		Experiences: []sourcing.ProfileExperience{
			{Position: "Backend Engineer", CompanyName: "Zentry", StartsAt: "Jan 2020"},
		},
	}

	rec := env.do(t, http.MethodPost, "/sourcing",
		`{"profile_url":"https://www.linkedin.com/in/priya-raman"}`, auth.Token)
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

	var candidate db.Candidate
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &candidate))

	assert.Equal(t, "https://www.linkedin.com/in/priya-raman", env.sourcer.seenURL)
	assert.Equal(t, "Priya Raman", candidate.Name)
	assert.Equal(t, "priya-raman@sourced.invalid", candidate.Email,
		"missing email falls back to a stable placeholder")
	assert.Equal(t, "Bengaluru, India", candidate.Location)

	assert.Equal(t, []string{"Go", "Kubernetes"}, env.store.skills[candidate.ID])
	require.Len(t, env.store.exps[candidate.ID], 1)
	assert.Equal(t, "Backend Engineer", env.store.exps[candidate.ID][0].Role)
	assert.Contains(t, env.store.activityTypes(), "PROFILE_SOURCED")
}

func TestSourceProfile_SameURLSameCandidate(t *testing.T) {
	env := newTestEnv(t)
	auth := env.register(t, "dana@flowboard.io")
	env.sourcer.profile = &sourcing.Profile{FullName: "Priya Raman"}

	body := `{"profile_url":"https://www.linkedin.com/in/priya-raman"}`

	rec := env.do(t, http.MethodPost, "/sourcing", body, auth.Token)
	require.Equal(t, http.StatusCreated, rec.Code)
	var first db.Candidate
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &first))

	rec = env.do(t, http.MethodPost, "/sourcing", body, auth.Token)
	require.Equal(t, http.StatusCreated, rec.Code)
	var second db.Candidate
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &second))

	assert.Equal(t, first.ID, second.ID)
}

func TestSourceProfile_ProviderFailure(t *testing.T) {
	env := newTestEnv(t)
	auth := env.register(t, "dana@flowboard.io")
	env.sourcer.err = &sourcing.FetchError{URL: "https://www.linkedin.com/in/x", Message: "quota exceeded"}

	rec := env.do(t, http.MethodPost, "/sourcing",
		`{"profile_url":"https://www.linkedin.com/in/x"}`, auth.Token)
	assert.Equal(t, http.StatusBadGateway, rec.Code)
}

func TestSourceProfile_NotConfigured(t *testing.T) {
	env := newTestEnv(t)
	auth := env.register(t, "dana@flowboard.io")
	env.server.sourcer = nil

	rec := env.do(t, http.MethodPost, "/sourcing",
		`{"profile_url":"https://www.linkedin.com/in/x"}`, auth.Token)
	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
}

func TestSourceProfile_MissingURL(t *testing.T) {
	env := newTestEnv(t)
	auth := env.register(t, "dana@flowboard.io")

	rec := env.do(t, http.MethodPost, "/sourcing", `{}`, auth.Token)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestPlaceholderEmail(t *testing.T) {
	assert.Equal(t, "priya-raman@sourced.invalid",
		placeholderEmail("https://www.linkedin.com/in/priya-raman/"))
	assert.Equal(t, "unknown@sourced.invalid", placeholderEmail(""))
}
