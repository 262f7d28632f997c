package db

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/daniel/talent-ranker/internal/types"
)

// Candidate is the full candidates table row.
type Candidate struct {
	ID               uuid.UUID  `json:"id"`
	CompanyID        uuid.UUID  `json:"company_id"`
	CreatedBy        uuid.UUID  `json:"created_by"`
	Name             string     `json:"name"`
	Email            string     `json:"email"`
	Phone            string     `json:"phone,omitempty"`
	LinkedInURL      string     `json:"linkedin_url,omitempty"`
	GitHubURL        string     `json:"github_url,omitempty"`
	Location         string     `json:"location,omitempty"`
	ResumeText       string     `json:"-"`
	Status           string     `json:"status"`
	LastStatusUpdate *time.Time `json:"last_status_update,omitempty"`
	CreatedAt        time.Time  `json:"created_at"`
	UpdatedAt        time.Time  `json:"updated_at"`
}

const candidateColumns = `id, company_id, created_by, name, email,
	COALESCE(phone, ''), COALESCE(linkedin_url, ''), COALESCE(github_url, ''),
	COALESCE(location, ''), COALESCE(resume_text, ''), status,
	last_status_update, created_at, updated_at`

func scanCandidate(row pgx.Row) (*Candidate, error) {
	var c Candidate
	err := row.Scan(&c.ID, &c.CompanyID, &c.CreatedBy, &c.Name, &c.Email,
		&c.Phone, &c.LinkedInURL, &c.GitHubURL, &c.Location, &c.ResumeText,
		&c.Status, &c.LastStatusUpdate, &c.CreatedAt, &c.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &c, nil
}

// UpsertCandidate inserts a candidate, updating the existing row when the
// company already has one with the same email. Email comparison is
// case-insensitive: the address is lowercased before it is stored.
func (db *DB) UpsertCandidate(ctx context.Context, c *Candidate) (*Candidate, error) {
	row := db.pool.QueryRow(ctx,
		`INSERT INTO candidates
		   (company_id, created_by, name, email, phone, linkedin_url, github_url, location, resume_text, status)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, COALESCE(NULLIF($10, ''), 'NEW'))
		 ON CONFLICT (company_id, email) DO UPDATE SET
		   name = EXCLUDED.name,
		   phone = COALESCE(NULLIF(EXCLUDED.phone, ''), candidates.phone),
		   linkedin_url = COALESCE(NULLIF(EXCLUDED.linkedin_url, ''), candidates.linkedin_url),
		   github_url = COALESCE(NULLIF(EXCLUDED.github_url, ''), candidates.github_url),
		   location = COALESCE(NULLIF(EXCLUDED.location, ''), candidates.location),
		   resume_text = COALESCE(NULLIF(EXCLUDED.resume_text, ''), candidates.resume_text),
		   updated_at = NOW()
		 RETURNING `+candidateColumns,
		c.CompanyID, c.CreatedBy, c.Name, strings.ToLower(c.Email), c.Phone,
		c.LinkedInURL, c.GitHubURL, c.Location, c.ResumeText, c.Status,
	)
	stored, err := scanCandidate(row)
	if err != nil {
		return nil, fmt.Errorf("failed to upsert candidate: %w", err)
	}
	return stored, nil
}

// GetCandidate retrieves a candidate scoped to a company. Returns nil when
// not found or owned by another company.
func (db *DB) GetCandidate(ctx context.Context, id, companyID uuid.UUID) (*Candidate, error) {
	row := db.pool.QueryRow(ctx,
		`SELECT `+candidateColumns+` FROM candidates WHERE id = $1 AND company_id = $2`,
		id, companyID,
	)
	c, err := scanCandidate(row)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get candidate: %w", err)
	}
	return c, nil
}

// ListCandidates retrieves a company's candidates, optionally filtered by
// status, most recently updated first.
func (db *DB) ListCandidates(ctx context.Context, companyID uuid.UUID, status string) ([]Candidate, error) {
	query := `SELECT ` + candidateColumns + ` FROM candidates WHERE company_id = $1`
	args := []any{companyID}
	if status != "" {
		query += ` AND status = $2`
		args = append(args, status)
	}
	query += ` ORDER BY updated_at DESC`

	rows, err := db.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list candidates: %w", err)
	}
	defer rows.Close()

	var out []Candidate
	for rows.Next() {
		c, err := scanCandidate(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan candidate: %w", err)
		}
		out = append(out, *c)
	}
	return out, nil
}

// UpdateCandidateStatus transitions a candidate's status and records the
// change in the status log in the same transaction. Returns nil when the
// candidate is not in the company's pool.
func (db *DB) UpdateCandidateStatus(ctx context.Context, id, companyID, userID uuid.UUID, newStatus, notes string) (*Candidate, error) {
	tx, err := db.pool.Begin(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	var oldStatus string
	err = tx.QueryRow(ctx,
		`SELECT status FROM candidates WHERE id = $1 AND company_id = $2 FOR UPDATE`,
		id, companyID,
	).Scan(&oldStatus)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to lock candidate: %w", err)
	}

	row := tx.QueryRow(ctx,
		`UPDATE candidates SET status = $1, last_status_update = NOW(), updated_at = NOW()
		 WHERE id = $2 AND company_id = $3
		 RETURNING `+candidateColumns,
		newStatus, id, companyID,
	)
	c, err := scanCandidate(row)
	if err != nil {
		return nil, fmt.Errorf("failed to update candidate status: %w", err)
	}

	_, err = tx.Exec(ctx,
		`INSERT INTO status_log (candidate_id, user_id, old_status, new_status, notes)
		 VALUES ($1, $2, $3, $4, $5)`,
		id, userID, oldStatus, newStatus, notes,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to log status change: %w", err)
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, fmt.Errorf("failed to commit status change: %w", err)
	}
	return c, nil
}

// ReplaceExperiences swaps a candidate's work history for the given entries.
// Absent dates are stored as NULL.
func (db *DB) ReplaceExperiences(ctx context.Context, candidateID uuid.UUID, experiences []types.Experience) error {
	tx, err := db.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	if _, err := tx.Exec(ctx, `DELETE FROM experiences WHERE candidate_id = $1`, candidateID); err != nil {
		return fmt.Errorf("failed to clear experiences: %w", err)
	}

	for _, exp := range experiences {
		_, err := tx.Exec(ctx,
			`INSERT INTO experiences (candidate_id, role, company, start_date, end_date, description)
			 VALUES ($1, $2, $3, $4, $5, $6)`,
			candidateID, exp.Role, exp.Company,
			dateOrNil(exp.StartDate), dateOrNil(exp.EndDate), exp.Description,
		)
		if err != nil {
			return fmt.Errorf("failed to insert experience: %w", err)
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("failed to commit experiences: %w", err)
	}
	return nil
}

// ReplaceSkills swaps a candidate's skill set. Skill names are shared across
// companies through the skills table and linked per candidate.
func (db *DB) ReplaceSkills(ctx context.Context, candidateID uuid.UUID, skills []string) error {
	tx, err := db.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	if _, err := tx.Exec(ctx, `DELETE FROM candidate_skills WHERE candidate_id = $1`, candidateID); err != nil {
		return fmt.Errorf("failed to clear skills: %w", err)
	}

	for _, skill := range skills {
		var skillID uuid.UUID
		err := tx.QueryRow(ctx,
			`INSERT INTO skills (name) VALUES ($1)
			 ON CONFLICT (name) DO UPDATE SET name = EXCLUDED.name
			 RETURNING id`,
			skill,
		).Scan(&skillID)
		if err != nil {
			return fmt.Errorf("failed to upsert skill %q: %w", skill, err)
		}

		_, err = tx.Exec(ctx,
			`INSERT INTO candidate_skills (candidate_id, skill_id)
			 VALUES ($1, $2)
			 ON CONFLICT (candidate_id, skill_id) DO NOTHING`,
			candidateID, skillID,
		)
		if err != nil {
			return fmt.Errorf("failed to link skill %q: %w", skill, err)
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("failed to commit skills: %w", err)
	}
	return nil
}

// ReplaceProjects swaps a candidate's project list.
func (db *DB) ReplaceProjects(ctx context.Context, candidateID uuid.UUID, projects []types.Project) error {
	tx, err := db.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	if _, err := tx.Exec(ctx, `DELETE FROM projects WHERE candidate_id = $1`, candidateID); err != nil {
		return fmt.Errorf("failed to clear projects: %w", err)
	}

	for _, p := range projects {
		_, err := tx.Exec(ctx,
			`INSERT INTO projects (candidate_id, name, description) VALUES ($1, $2, $3)`,
			candidateID, p.Name, p.Description,
		)
		if err != nil {
			return fmt.Errorf("failed to insert project: %w", err)
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("failed to commit projects: %w", err)
	}
	return nil
}

// ListCandidateSnapshots loads a company's full candidate pool as scoring
// snapshots, experiences and skills included.
func (db *DB) ListCandidateSnapshots(ctx context.Context, companyID uuid.UUID) ([]types.CandidateSnapshot, error) {
	rows, err := db.pool.Query(ctx,
		`SELECT id, name, email, COALESCE(location, ''), COALESCE(linkedin_url, '')
		 FROM candidates WHERE company_id = $1 ORDER BY created_at`,
		companyID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list candidates: %w", err)
	}
	defer rows.Close()

	var snapshots []types.CandidateSnapshot
	index := make(map[uuid.UUID]int)
	for rows.Next() {
		var s types.CandidateSnapshot
		if err := rows.Scan(&s.ID, &s.Name, &s.Email, &s.Location, &s.LinkedInURL); err != nil {
			return nil, fmt.Errorf("failed to scan candidate: %w", err)
		}
		index[s.ID] = len(snapshots)
		snapshots = append(snapshots, s)
	}
	rows.Close()
	if len(snapshots) == 0 {
		return snapshots, nil
	}

	expRows, err := db.pool.Query(ctx,
		`SELECT e.candidate_id, e.role, COALESCE(e.company, ''), e.start_date, e.end_date, COALESCE(e.description, '')
		 FROM experiences e
		 JOIN candidates c ON c.id = e.candidate_id
		 WHERE c.company_id = $1
		 ORDER BY e.start_date DESC NULLS LAST`,
		companyID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list experiences: %w", err)
	}
	defer expRows.Close()

	for expRows.Next() {
		var candidateID uuid.UUID
		var exp types.Experience
		var start, end *time.Time
		if err := expRows.Scan(&candidateID, &exp.Role, &exp.Company, &start, &end, &exp.Description); err != nil {
			return nil, fmt.Errorf("failed to scan experience: %w", err)
		}
		exp.StartDate = dateFrom(start)
		exp.EndDate = dateFrom(end)
		if i, ok := index[candidateID]; ok {
			snapshots[i].Experiences = append(snapshots[i].Experiences, exp)
		}
	}

	skillRows, err := db.pool.Query(ctx,
		`SELECT cs.candidate_id, s.name
		 FROM candidate_skills cs
		 JOIN skills s ON s.id = cs.skill_id
		 JOIN candidates c ON c.id = cs.candidate_id
		 WHERE c.company_id = $1
		 ORDER BY s.name`,
		companyID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list skills: %w", err)
	}
	defer skillRows.Close()

	for skillRows.Next() {
		var candidateID uuid.UUID
		var name string
		if err := skillRows.Scan(&candidateID, &name); err != nil {
			return nil, fmt.Errorf("failed to scan skill: %w", err)
		}
		if i, ok := index[candidateID]; ok {
			snapshots[i].Skills = append(snapshots[i].Skills, name)
		}
	}

	return snapshots, nil
}

// GetCandidateBundle loads the full structured view of one candidate.
// Returns nil when the candidate is not in the company's pool.
func (db *DB) GetCandidateBundle(ctx context.Context, candidateID, companyID uuid.UUID) (*types.CandidateBundle, error) {
	c, err := db.GetCandidate(ctx, candidateID, companyID)
	if err != nil {
		return nil, err
	}
	if c == nil {
		return nil, nil
	}

	bundle := &types.CandidateBundle{
		Snapshot: types.CandidateSnapshot{
			ID:          c.ID,
			Name:        c.Name,
			Email:       c.Email,
			Location:    c.Location,
			LinkedInURL: c.LinkedInURL,
		},
		Phone:      c.Phone,
		GitHubURL:  c.GitHubURL,
		ResumeText: c.ResumeText,
		CompanyID:  c.CompanyID,
		Status:     c.Status,
		UpdatedAt:  c.UpdatedAt,
	}

	expRows, err := db.pool.Query(ctx,
		`SELECT role, COALESCE(company, ''), start_date, end_date, COALESCE(description, '')
		 FROM experiences WHERE candidate_id = $1
		 ORDER BY start_date DESC NULLS LAST`,
		candidateID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list experiences: %w", err)
	}
	defer expRows.Close()

	for expRows.Next() {
		var exp types.Experience
		var start, end *time.Time
		if err := expRows.Scan(&exp.Role, &exp.Company, &start, &end, &exp.Description); err != nil {
			return nil, fmt.Errorf("failed to scan experience: %w", err)
		}
		exp.StartDate = dateFrom(start)
		exp.EndDate = dateFrom(end)
		bundle.Snapshot.Experiences = append(bundle.Snapshot.Experiences, exp)
	}

	skillRows, err := db.pool.Query(ctx,
		`SELECT s.name FROM candidate_skills cs
		 JOIN skills s ON s.id = cs.skill_id
		 WHERE cs.candidate_id = $1 ORDER BY s.name`,
		candidateID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list skills: %w", err)
	}
	defer skillRows.Close()

	for skillRows.Next() {
		var name string
		if err := skillRows.Scan(&name); err != nil {
			return nil, fmt.Errorf("failed to scan skill: %w", err)
		}
		bundle.Snapshot.Skills = append(bundle.Snapshot.Skills, name)
	}

	projRows, err := db.pool.Query(ctx,
		`SELECT name, COALESCE(description, '') FROM projects WHERE candidate_id = $1`,
		candidateID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list projects: %w", err)
	}
	defer projRows.Close()

	for projRows.Next() {
		var p types.Project
		if err := projRows.Scan(&p.Name, &p.Description); err != nil {
			return nil, fmt.Errorf("failed to scan project: %w", err)
		}
		bundle.Projects = append(bundle.Projects, p)
	}

	return bundle, nil
}

// StatusCounts returns the number of candidates per status for a company.
func (db *DB) StatusCounts(ctx context.Context, companyID uuid.UUID) (map[string]int, error) {
	rows, err := db.pool.Query(ctx,
		`SELECT status, COUNT(*) FROM candidates WHERE company_id = $1 GROUP BY status`,
		companyID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to count statuses: %w", err)
	}
	defer rows.Close()

	counts := make(map[string]int)
	for rows.Next() {
		var status string
		var count int
		if err := rows.Scan(&status, &count); err != nil {
			return nil, fmt.Errorf("failed to scan status count: %w", err)
		}
		counts[status] = count
	}
	return counts, nil
}

// RecentlyUpdatedCandidates returns a company's most recently touched
// candidates.
func (db *DB) RecentlyUpdatedCandidates(ctx context.Context, companyID uuid.UUID, limit int) ([]Candidate, error) {
	if limit <= 0 {
		limit = 10
	}
	rows, err := db.pool.Query(ctx,
		`SELECT `+candidateColumns+` FROM candidates
		 WHERE company_id = $1 ORDER BY updated_at DESC LIMIT $2`,
		companyID, limit,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list recent candidates: %w", err)
	}
	defer rows.Close()

	var out []Candidate
	for rows.Next() {
		c, err := scanCandidate(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan candidate: %w", err)
		}
		out = append(out, *c)
	}
	return out, nil
}

func dateOrNil(d types.Date) *time.Time {
	if d.IsAbsent() {
		return nil
	}
	t := d.Time
	return &t
}

func dateFrom(t *time.Time) types.Date {
	if t == nil {
		return types.Date{}
	}
	return types.Date{Time: *t}
}
