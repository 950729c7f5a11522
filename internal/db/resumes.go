package db

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/RohanMakvana24/Resume-Pilot/internal/types"
)

// CreateResume creates a new empty resume document for a user and returns its ID.
// All content fields start absent; sections are populated incrementally as
// each editor saves.
func (db *DB) CreateResume(ctx context.Context, userID uuid.UUID, title string) (uuid.UUID, error) {
	var id uuid.UUID
	err := db.pool.QueryRow(ctx,
		`INSERT INTO resumes (user_id, title)
		 VALUES ($1, $2)
		 RETURNING id`,
		userID, title,
	).Scan(&id)
	if err != nil {
		return uuid.Nil, fmt.Errorf("failed to create resume: %w", err)
	}
	return id, nil
}

// GetResume retrieves a full resume document by ID. Returns nil if not found.
func (db *DB) GetResume(ctx context.Context, id uuid.UUID) (*types.Resume, error) {
	var (
		r          types.Resume
		experience []byte
		education  []byte
		skills     []byte
		projects   []byte
	)
	err := db.pool.QueryRow(ctx,
		`SELECT id, user_id, title, theme_color, first_name, last_name, job_title,
		        address, phone, email, summary,
		        experience, education, skills, projects,
		        created_at, updated_at
		 FROM resumes WHERE id = $1`,
		id,
	).Scan(&r.ID, &r.UserID, &r.Title, &r.ThemeColor, &r.FirstName, &r.LastName,
		&r.JobTitle, &r.Address, &r.Phone, &r.Email, &r.Summary,
		&experience, &education, &skills, &projects,
		&r.CreatedAt, &r.UpdatedAt)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get resume: %w", err)
	}

	if err := unmarshalSection(experience, &r.Experience); err != nil {
		return nil, fmt.Errorf("failed to decode experience: %w", err)
	}
	if err := unmarshalSection(education, &r.Education); err != nil {
		return nil, fmt.Errorf("failed to decode education: %w", err)
	}
	if err := unmarshalSection(skills, &r.Skills); err != nil {
		return nil, fmt.Errorf("failed to decode skills: %w", err)
	}
	if err := unmarshalSection(projects, &r.Projects); err != nil {
		return nil, fmt.Errorf("failed to decode projects: %w", err)
	}
	return &r, nil
}

// PatchResume applies a partial patch to a resume, updating only the columns
// named by the patch. A patch naming no keys is a no-op.
func (db *DB) PatchResume(ctx context.Context, id uuid.UUID, patch *types.SectionPatch) error {
	if patch == nil || patch.IsEmpty() {
		return nil
	}

	set, args := buildPatchSet(patch)
	args = append(args, id)
	query := fmt.Sprintf(
		`UPDATE resumes SET %s, updated_at = NOW() WHERE id = $%d`,
		set, len(args),
	)

	tag, err := db.pool.Exec(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("failed to patch resume: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("resume not found: %s", id)
	}
	return nil
}

// DeleteResume removes a persisted resume record. No cascade beyond the
// single document.
func (db *DB) DeleteResume(ctx context.Context, id uuid.UUID) error {
	tag, err := db.pool.Exec(ctx, `DELETE FROM resumes WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete resume: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("resume not found: %s", id)
	}
	return nil
}

// ListResumes returns dashboard summaries for all resumes owned by a user,
// most recently updated first.
func (db *DB) ListResumes(ctx context.Context, userID uuid.UUID) ([]types.ResumeSummary, error) {
	rows, err := db.pool.Query(ctx,
		`SELECT id, title, first_name, last_name, job_title, updated_at
		 FROM resumes WHERE user_id = $1
		 ORDER BY updated_at DESC`,
		userID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list resumes: %w", err)
	}
	defer rows.Close()

	summaries := []types.ResumeSummary{}
	for rows.Next() {
		var s types.ResumeSummary
		if err := rows.Scan(&s.ID, &s.Title, &s.FirstName, &s.LastName, &s.JobTitle, &s.UpdatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan resume summary: %w", err)
		}
		summaries = append(summaries, s)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate resumes: %w", err)
	}
	return summaries, nil
}

// unmarshalSection decodes a JSONB list column, treating NULL as absent.
func unmarshalSection(data []byte, dst any) error {
	if len(data) == 0 {
		return nil
	}
	return json.Unmarshal(data, dst)
}

// buildPatchSet builds the SET clause and arguments for a partial update.
// Only keys named by the patch appear; list sections marshal to JSONB.
func buildPatchSet(patch *types.SectionPatch) (string, []any) {
	var (
		set  string
		args []any
	)
	add := func(column string, value any) {
		if set != "" {
			set += ", "
		}
		args = append(args, value)
		set += fmt.Sprintf("%s = $%d", column, len(args))
	}

	if patch.Title != nil {
		add("title", *patch.Title)
	}
	if patch.ThemeColor != nil {
		add("theme_color", *patch.ThemeColor)
	}
	if patch.FirstName != nil {
		add("first_name", *patch.FirstName)
	}
	if patch.LastName != nil {
		add("last_name", *patch.LastName)
	}
	if patch.JobTitle != nil {
		add("job_title", *patch.JobTitle)
	}
	if patch.Address != nil {
		add("address", *patch.Address)
	}
	if patch.Phone != nil {
		add("phone", *patch.Phone)
	}
	if patch.Email != nil {
		add("email", *patch.Email)
	}
	if patch.Summary != nil {
		add("summary", *patch.Summary)
	}
	if patch.Experience != nil {
		add("experience", mustJSON(*patch.Experience))
	}
	if patch.Education != nil {
		add("education", mustJSON(*patch.Education))
	}
	if patch.Skills != nil {
		add("skills", mustJSON(*patch.Skills))
	}
	if patch.Projects != nil {
		add("projects", mustJSON(*patch.Projects))
	}
	return set, args
}

// mustJSON marshals a section list for JSONB storage. The section types
// contain only marshalable fields, so failure is a programming error.
func mustJSON(v any) []byte {
	data, err := json.Marshal(v)
	if err != nil {
		panic(fmt.Sprintf("failed to marshal section: %v", err))
	}
	return data
}
