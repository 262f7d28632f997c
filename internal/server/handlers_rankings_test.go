package server

import (
	"encoding/json"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const requirementJSON = `{
	"skills": ["Go", "PostgreSQL"],
	"experience_years": 5,
	"role": "backend engineer",
	"location": "Berlin",
	"keywords": ["grpc"]
}`

func seedPool(t *testing.T, env *testEnv, token string) {
	t.Helper()
	strong := createCandidate(t, env, token, "Priya Raman", "priya@example.com")
	env.store.skills[strong.ID] = []string{"Go", "PostgreSQL", "Kubernetes"}

	weak := createCandidate(t, env, token, "Jonas Weber", "jonas@example.com")
	env.store.skills[weak.ID] = []string{"Photoshop"}
}

func TestCreateRanking(t *testing.T) {
	env := newTestEnv(t)
	auth := env.register(t, "dana@flowboard.io")
	seedPool(t, env, auth.Token)
	env.llm.responses = []string{requirementJSON}

	rec := env.do(t, http.MethodPost, "/rankings",
		`{"jd_text":"Backend engineer, Go and PostgreSQL, 5 years"}`, auth.Token)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	var resp createRankingResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))

	require.NotNil(t, resp.Requirement)
	assert.Equal(t, []string{"Go", "PostgreSQL"}, resp.Requirement.Skills)

	require.Len(t, resp.Candidates, 2)
	assert.Equal(t, "Priya Raman", resp.Candidates[0].Candidate.Name,
		"skill-matched candidate ranks first")
	assert.Greater(t, resp.Candidates[0].Breakdown.TotalScore, resp.Candidates[1].Breakdown.TotalScore)
	assert.Nil(t, resp.Rerank)

	assert.Contains(t, env.store.activityTypes(), "RANKING_RUN")
}

func TestCreateRanking_EmptyPool(t *testing.T) {
	env := newTestEnv(t)
	auth := env.register(t, "dana@flowboard.io")
	env.llm.responses = []string{requirementJSON}

	rec := env.do(t, http.MethodPost, "/rankings", `{"jd_text":"Backend engineer"}`, auth.Token)
	require.Equal(t, http.StatusOK, rec.Code)

	var resp createRankingResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Empty(t, resp.Candidates)
}

func TestCreateRanking_WithRerank(t *testing.T) {
	env := newTestEnv(t)
	auth := env.register(t, "dana@flowboard.io")
	seedPool(t, env, auth.Token)

	// The rerank response references real candidate IDs, so it is built after
	// the pool exists and returned as the second LLM call.
	snapshots, err := env.store.ListCandidateSnapshots(t.Context(), auth.CompanyID)
	require.NoError(t, err)
	require.Len(t, snapshots, 2)
	rerankJSON := fmt.Sprintf(`{"order":[{"candidate_id":%q,"summary":"strongest overlap"}]}`,
		snapshots[0].ID)
	env.llm.responses = []string{requirementJSON, rerankJSON}

	rec := env.do(t, http.MethodPost, "/rankings",
		`{"jd_text":"Backend engineer","rerank":true}`, auth.Token)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	var resp createRankingResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	require.NotNil(t, resp.Rerank)
	require.Len(t, resp.Rerank.Order, 1)
	assert.Equal(t, snapshots[0].ID, resp.Rerank.Order[0].CandidateID)
}

func TestCreateRanking_RerankFailureDegrades(t *testing.T) {
	env := newTestEnv(t)
	auth := env.register(t, "dana@flowboard.io")
	seedPool(t, env, auth.Token)
	// Requirement extraction succeeds; the rerank call has no response left
	// and fails. The deterministic order must still come back.
	env.llm.responses = []string{requirementJSON}

	rec := env.do(t, http.MethodPost, "/rankings",
		`{"jd_text":"Backend engineer","rerank":true}`, auth.Token)
	require.Equal(t, http.StatusOK, rec.Code)

	var resp createRankingResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Len(t, resp.Candidates, 2)
	assert.Nil(t, resp.Rerank)
}

func TestCreateRanking_BadRequests(t *testing.T) {
	env := newTestEnv(t)
	auth := env.register(t, "dana@flowboard.io")

	t.Run("empty jd", func(t *testing.T) {
		rec := env.do(t, http.MethodPost, "/rankings", `{"jd_text":"  "}`, auth.Token)
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("malformed body", func(t *testing.T) {
		rec := env.do(t, http.MethodPost, "/rankings", `{{`, auth.Token)
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})
}

func TestCreateRanking_ExtractionFailure(t *testing.T) {
	env := newTestEnv(t)
	auth := env.register(t, "dana@flowboard.io")
	env.llm.err = fmt.Errorf("model overloaded")

	rec := env.do(t, http.MethodPost, "/rankings", `{"jd_text":"Backend engineer"}`, auth.Token)
	assert.Equal(t, http.StatusInternalServerError, rec.Code)
}
