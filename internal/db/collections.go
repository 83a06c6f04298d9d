package db

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/martinsumner/careerpilot/internal/types"
)

// Sub-collection persistence. Reads return rows in stored (position)
// order; writes replace the whole collection for the user inside the
// caller's transaction.

func (db *DB) listSkills(ctx context.Context, userID uuid.UUID) ([]types.Skill, error) {
	rows, err := db.pool.Query(ctx,
		`SELECT id, name, category, level, verified, source
		 FROM skills WHERE user_id = $1 ORDER BY position`,
		userID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list skills: %w", err)
	}
	defer rows.Close()

	skills := []types.Skill{}
	for rows.Next() {
		var s types.Skill
		if err := rows.Scan(&s.ID, &s.Name, &s.Category, &s.Level, &s.Verified, &s.Source); err != nil {
			return nil, fmt.Errorf("failed to scan skill: %w", err)
		}
		skills = append(skills, s)
	}
	return skills, rows.Err()
}

func replaceSkills(ctx context.Context, tx pgx.Tx, userID uuid.UUID, skills []types.Skill) error {
	if _, err := tx.Exec(ctx, `DELETE FROM skills WHERE user_id = $1`, userID); err != nil {
		return fmt.Errorf("failed to clear skills: %w", err)
	}
	for i, s := range skills {
		_, err := tx.Exec(ctx,
			`INSERT INTO skills (user_id, id, name, category, level, verified, source, position)
			 VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`,
			userID, s.ID, s.Name, s.Category, s.Level, s.Verified, s.Source, i,
		)
		if err != nil {
			return fmt.Errorf("failed to insert skill %s: %w", s.Name, err)
		}
	}
	return nil
}

func (db *DB) listExperience(ctx context.Context, userID uuid.UUID) ([]types.ExperienceEntry, error) {
	rows, err := db.pool.Query(ctx,
		`SELECT id, role, company, start_date, end_date, description
		 FROM experience WHERE user_id = $1 ORDER BY position`,
		userID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list experience: %w", err)
	}
	defer rows.Close()

	entries := []types.ExperienceEntry{}
	for rows.Next() {
		var e types.ExperienceEntry
		if err := rows.Scan(&e.ID, &e.Role, &e.Company, &e.StartDate, &e.EndDate, &e.Description); err != nil {
			return nil, fmt.Errorf("failed to scan experience: %w", err)
		}
		entries = append(entries, e)
	}
	return entries, rows.Err()
}

func replaceExperience(ctx context.Context, tx pgx.Tx, userID uuid.UUID, entries []types.ExperienceEntry) error {
	if _, err := tx.Exec(ctx, `DELETE FROM experience WHERE user_id = $1`, userID); err != nil {
		return fmt.Errorf("failed to clear experience: %w", err)
	}
	for i, e := range entries {
		_, err := tx.Exec(ctx,
			`INSERT INTO experience (user_id, id, role, company, start_date, end_date, description, position)
			 VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`,
			userID, e.ID, e.Role, e.Company, e.StartDate, e.EndDate, e.Description, i,
		)
		if err != nil {
			return fmt.Errorf("failed to insert experience %s: %w", e.ID, err)
		}
	}
	return nil
}

func (db *DB) listEducation(ctx context.Context, userID uuid.UUID) ([]types.EducationEntry, error) {
	rows, err := db.pool.Query(ctx,
		`SELECT id, school, degree, field, year
		 FROM education WHERE user_id = $1 ORDER BY position`,
		userID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list education: %w", err)
	}
	defer rows.Close()

	entries := []types.EducationEntry{}
	for rows.Next() {
		var e types.EducationEntry
		if err := rows.Scan(&e.ID, &e.School, &e.Degree, &e.Field, &e.Year); err != nil {
			return nil, fmt.Errorf("failed to scan education: %w", err)
		}
		entries = append(entries, e)
	}
	return entries, rows.Err()
}

func replaceEducation(ctx context.Context, tx pgx.Tx, userID uuid.UUID, entries []types.EducationEntry) error {
	if _, err := tx.Exec(ctx, `DELETE FROM education WHERE user_id = $1`, userID); err != nil {
		return fmt.Errorf("failed to clear education: %w", err)
	}
	for i, e := range entries {
		_, err := tx.Exec(ctx,
			`INSERT INTO education (user_id, id, school, degree, field, year, position)
			 VALUES ($1, $2, $3, $4, $5, $6, $7)`,
			userID, e.ID, e.School, e.Degree, e.Field, e.Year, i,
		)
		if err != nil {
			return fmt.Errorf("failed to insert education %s: %w", e.ID, err)
		}
	}
	return nil
}

func (db *DB) listCertifications(ctx context.Context, userID uuid.UUID) ([]types.Certification, error) {
	rows, err := db.pool.Query(ctx,
		`SELECT id, name, issuer, year
		 FROM certifications WHERE user_id = $1 ORDER BY position`,
		userID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list certifications: %w", err)
	}
	defer rows.Close()

	certs := []types.Certification{}
	for rows.Next() {
		var c types.Certification
		if err := rows.Scan(&c.ID, &c.Name, &c.Issuer, &c.Year); err != nil {
			return nil, fmt.Errorf("failed to scan certification: %w", err)
		}
		certs = append(certs, c)
	}
	return certs, rows.Err()
}

func replaceCertifications(ctx context.Context, tx pgx.Tx, userID uuid.UUID, certs []types.Certification) error {
	if _, err := tx.Exec(ctx, `DELETE FROM certifications WHERE user_id = $1`, userID); err != nil {
		return fmt.Errorf("failed to clear certifications: %w", err)
	}
	for i, c := range certs {
		_, err := tx.Exec(ctx,
			`INSERT INTO certifications (user_id, id, name, issuer, year, position)
			 VALUES ($1, $2, $3, $4, $5, $6)`,
			userID, c.ID, c.Name, c.Issuer, c.Year, i,
		)
		if err != nil {
			return fmt.Errorf("failed to insert certification %s: %w", c.ID, err)
		}
	}
	return nil
}

func (db *DB) listProjects(ctx context.Context, userID uuid.UUID) ([]types.Project, error) {
	rows, err := db.pool.Query(ctx,
		`SELECT id, name, description, tech, link
		 FROM projects WHERE user_id = $1 ORDER BY position`,
		userID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list projects: %w", err)
	}
	defer rows.Close()

	projects := []types.Project{}
	for rows.Next() {
		var p types.Project
		if err := rows.Scan(&p.ID, &p.Name, &p.Description, &p.Tech, &p.Link); err != nil {
			return nil, fmt.Errorf("failed to scan project: %w", err)
		}
		projects = append(projects, p)
	}
	return projects, rows.Err()
}

func replaceProjects(ctx context.Context, tx pgx.Tx, userID uuid.UUID, projects []types.Project) error {
	if _, err := tx.Exec(ctx, `DELETE FROM projects WHERE user_id = $1`, userID); err != nil {
		return fmt.Errorf("failed to clear projects: %w", err)
	}
	for i, p := range projects {
		tech := p.Tech
		if tech == nil {
			tech = []string{}
		}
		_, err := tx.Exec(ctx,
			`INSERT INTO projects (user_id, id, name, description, tech, link, position)
			 VALUES ($1, $2, $3, $4, $5, $6, $7)`,
			userID, p.ID, p.Name, p.Description, tech, p.Link, i,
		)
		if err != nil {
			return fmt.Errorf("failed to insert project %s: %w", p.ID, err)
		}
	}
	return nil
}
