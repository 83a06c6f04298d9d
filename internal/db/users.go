package db

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/martinsumner/careerpilot/internal/types"
)

// Account is the credential-bearing view of a user row. The hash never
// leaves this package's callers in API responses.
type Account struct {
	ID           uuid.UUID
	Name         string
	Email        string
	PasswordHash string
}

// CreateUser inserts a new account with empty collections and returns its ID.
func (db *DB) CreateUser(ctx context.Context, name, email, passwordHash string) (uuid.UUID, error) {
	var id uuid.UUID
	err := db.pool.QueryRow(ctx,
		`INSERT INTO users (name, email, password_hash)
		 VALUES ($1, $2, $3)
		 RETURNING id`,
		name, email, passwordHash,
	).Scan(&id)
	if err != nil {
		return uuid.Nil, fmt.Errorf("failed to create user: %w", err)
	}
	return id, nil
}

// CheckEmailExists reports whether an account with the email exists.
func (db *DB) CheckEmailExists(ctx context.Context, email string) (bool, error) {
	var exists bool
	err := db.pool.QueryRow(ctx,
		`SELECT EXISTS(SELECT 1 FROM users WHERE email = $1)`, email,
	).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("failed to check email: %w", err)
	}
	return exists, nil
}

// GetAccountByEmail retrieves the credential view of a user, or nil.
func (db *DB) GetAccountByEmail(ctx context.Context, email string) (*Account, error) {
	var a Account
	err := db.pool.QueryRow(ctx,
		`SELECT id, name, email, password_hash FROM users WHERE email = $1`,
		email,
	).Scan(&a.ID, &a.Name, &a.Email, &a.PasswordHash)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get account: %w", err)
	}
	return &a, nil
}

// GetAccount retrieves the credential view of a user by ID, or nil.
func (db *DB) GetAccount(ctx context.Context, userID uuid.UUID) (*Account, error) {
	var a Account
	err := db.pool.QueryRow(ctx,
		`SELECT id, name, email, password_hash FROM users WHERE id = $1`,
		userID,
	).Scan(&a.ID, &a.Name, &a.Email, &a.PasswordHash)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get account: %w", err)
	}
	return &a, nil
}

// UpdatePassword replaces a user's password hash.
func (db *DB) UpdatePassword(ctx context.Context, userID uuid.UUID, passwordHash string) error {
	result, err := db.pool.Exec(ctx,
		`UPDATE users SET password_hash = $1, updated_at = NOW() WHERE id = $2`,
		passwordHash, userID,
	)
	if err != nil {
		return fmt.Errorf("failed to update password: %w", err)
	}
	if result.RowsAffected() == 0 {
		return fmt.Errorf("user not found: %s", userID)
	}
	return nil
}

// GetProfile assembles the full profile: the user row plus all five
// sub-collections in stored order. Returns nil when the user is unknown.
func (db *DB) GetProfile(ctx context.Context, userID uuid.UUID) (*types.UserProfile, error) {
	var p types.UserProfile
	err := db.pool.QueryRow(ctx,
		`SELECT id, name, email, role, target_role, location, bio, avatar,
		        profile_strength, readiness_score, created_at, updated_at
		 FROM users WHERE id = $1`,
		userID,
	).Scan(&p.ID, &p.Name, &p.Email, &p.CurrentRole, &p.TargetRole, &p.Location,
		&p.Bio, &p.Avatar, &p.ProfileStrength, &p.ReadinessScore, &p.CreatedAt, &p.UpdatedAt)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get profile: %w", err)
	}

	if p.Skills, err = db.listSkills(ctx, userID); err != nil {
		return nil, err
	}
	if p.Experience, err = db.listExperience(ctx, userID); err != nil {
		return nil, err
	}
	if p.Education, err = db.listEducation(ctx, userID); err != nil {
		return nil, err
	}
	if p.Certifications, err = db.listCertifications(ctx, userID); err != nil {
		return nil, err
	}
	if p.Projects, err = db.listProjects(ctx, userID); err != nil {
		return nil, err
	}

	return &p, nil
}

// GetProfileByEmail assembles the full profile addressed by email.
func (db *DB) GetProfileByEmail(ctx context.Context, email string) (*types.UserProfile, error) {
	var id uuid.UUID
	err := db.pool.QueryRow(ctx,
		`SELECT id FROM users WHERE email = $1`, email,
	).Scan(&id)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to look up user by email: %w", err)
	}
	return db.GetProfile(ctx, id)
}

// UpdateProfile applies a partial update in one transaction: non-nil
// scalar fields patch the user row; non-nil collections are replaced
// wholesale (delete all rows, re-insert in order). Omitted fields are
// untouched.
func (db *DB) UpdateProfile(ctx context.Context, userID uuid.UUID, update *types.ProfileUpdate) error {
	tx, err := db.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	if err := updateUserRow(ctx, tx, userID, update); err != nil {
		return err
	}

	if update.Skills != nil {
		if err := replaceSkills(ctx, tx, userID, update.Skills); err != nil {
			return err
		}
	}
	if update.Experience != nil {
		if err := replaceExperience(ctx, tx, userID, update.Experience); err != nil {
			return err
		}
	}
	if update.Education != nil {
		if err := replaceEducation(ctx, tx, userID, update.Education); err != nil {
			return err
		}
	}
	if update.Certifications != nil {
		if err := replaceCertifications(ctx, tx, userID, update.Certifications); err != nil {
			return err
		}
	}
	if update.Projects != nil {
		if err := replaceProjects(ctx, tx, userID, update.Projects); err != nil {
			return err
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("failed to commit profile update: %w", err)
	}
	return nil
}

// updateUserRow builds a dynamic UPDATE for whichever scalar fields are set.
func updateUserRow(ctx context.Context, tx pgx.Tx, userID uuid.UUID, update *types.ProfileUpdate) error {
	sets := []string{"updated_at = NOW()"}
	args := []any{}
	argNum := 1

	addSet := func(column string, value any) {
		sets = append(sets, fmt.Sprintf("%s = $%d", column, argNum))
		args = append(args, value)
		argNum++
	}

	if update.Name != nil {
		addSet("name", *update.Name)
	}
	if update.CurrentRole != nil {
		addSet("role", *update.CurrentRole)
	}
	if update.TargetRole != nil {
		addSet("target_role", *update.TargetRole)
	}
	if update.Location != nil {
		addSet("location", *update.Location)
	}
	if update.Bio != nil {
		addSet("bio", *update.Bio)
	}
	if update.Avatar != nil {
		addSet("avatar", *update.Avatar)
	}
	if update.ProfileStrength != nil {
		addSet("profile_strength", *update.ProfileStrength)
	}
	if update.ReadinessScore != nil {
		addSet("readiness_score", *update.ReadinessScore)
	}

	query := fmt.Sprintf("UPDATE users SET %s WHERE id = $%d", strings.Join(sets, ", "), argNum)
	args = append(args, userID)

	result, err := tx.Exec(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("failed to update user row: %w", err)
	}
	if result.RowsAffected() == 0 {
		return fmt.Errorf("user not found: %s", userID)
	}
	return nil
}
