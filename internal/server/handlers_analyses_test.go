package server

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/daniel/talent-ranker/internal/analysis"
	"github.com/daniel/talent-ranker/internal/types"
)

func TestCreateAnalysis(t *testing.T) {
	env := newTestEnv(t)
	auth := env.register(t, "dana@flowboard.io")
	candidate := createCandidate(t, env, auth.Token, "Priya Raman", "priya@example.com")

	rec := env.do(t, http.MethodPost, fmt.Sprintf("/candidates/%s/analyses", candidate.ID),
		`{"jd_text":"Backend engineer, Go"}`, auth.Token)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	var record types.AnalysisRecord
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &record))
	assert.Equal(t, candidate.ID, record.CandidateID)
	assert.Equal(t, auth.CompanyID, record.CompanyID)
	assert.Equal(t, analysis.HashJD("Backend engineer, Go"), record.JDHash)
	assert.Equal(t, 72, record.Analysis.FitScore)
	assert.Contains(t, env.store.activityTypes(), types.ActivityAnalysisCreated)
}

func TestCreateAnalysis_CacheHit(t *testing.T) {
	env := newTestEnv(t)
	auth := env.register(t, "dana@flowboard.io")
	candidate := createCandidate(t, env, auth.Token, "Priya Raman", "priya@example.com")

	calls := 0
	env.server.analyses = analysis.NewService(env.store,
		func(context.Context, string, string) (*types.CandidateAnalysis, error) {
			calls++
			return &types.CandidateAnalysis{Summary: "ok", FitScore: 50}, nil
		})

	for i := 0; i < 3; i++ {
		rec := env.do(t, http.MethodPost, fmt.Sprintf("/candidates/%s/analyses", candidate.ID),
			`{"jd_text":"Backend engineer, Go"}`, auth.Token)
		require.Equal(t, http.StatusOK, rec.Code)
	}
	assert.Equal(t, 1, calls, "repeat requests with the same JD must hit the cache")

	// A different JD is a different key.
	rec := env.do(t, http.MethodPost, fmt.Sprintf("/candidates/%s/analyses", candidate.ID),
		`{"jd_text":"Data engineer, Python"}`, auth.Token)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, 2, calls)
}

func TestCreateAnalysis_UnknownCandidate(t *testing.T) {
	env := newTestEnv(t)
	auth := env.register(t, "dana@flowboard.io")

	rec := env.do(t, http.MethodPost, fmt.Sprintf("/candidates/%s/analyses", uuid.New()),
		`{"jd_text":"Backend engineer"}`, auth.Token)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestCreateAnalysis_GeneratorFailure(t *testing.T) {
	env := newTestEnv(t)
	auth := env.register(t, "dana@flowboard.io")
	candidate := createCandidate(t, env, auth.Token, "Priya Raman", "priya@example.com")

	env.server.analyses = analysis.NewService(env.store,
		func(context.Context, string, string) (*types.CandidateAnalysis, error) {
			return nil, fmt.Errorf("model overloaded")
		})

	rec := env.do(t, http.MethodPost, fmt.Sprintf("/candidates/%s/analyses", candidate.ID),
		`{"jd_text":"Backend engineer"}`, auth.Token)
	assert.Equal(t, http.StatusBadGateway, rec.Code)
	assert.Empty(t, env.store.analyses, "failed generations must not persist")
}

func TestCreateAnalysis_EmptyJD(t *testing.T) {
	env := newTestEnv(t)
	auth := env.register(t, "dana@flowboard.io")
	candidate := createCandidate(t, env, auth.Token, "Priya Raman", "priya@example.com")

	rec := env.do(t, http.MethodPost, fmt.Sprintf("/candidates/%s/analyses", candidate.ID),
		`{"jd_text":""}`, auth.Token)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestListAnalyses(t *testing.T) {
	env := newTestEnv(t)
	auth := env.register(t, "dana@flowboard.io")
	candidate := createCandidate(t, env, auth.Token, "Priya Raman", "priya@example.com")

	for _, jd := range []string{"Backend engineer", "Platform engineer"} {
		rec := env.do(t, http.MethodPost, fmt.Sprintf("/candidates/%s/analyses", candidate.ID),
			fmt.Sprintf(`{"jd_text":%q}`, jd), auth.Token)
		require.Equal(t, http.StatusOK, rec.Code)
	}

	rec := env.do(t, http.MethodGet, fmt.Sprintf("/candidates/%s/analyses", candidate.ID), "", auth.Token)
	require.Equal(t, http.StatusOK, rec.Code)

	var resp struct {
		Analyses []types.AnalysisRecord `json:"analyses"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Len(t, resp.Analyses, 2)
}
