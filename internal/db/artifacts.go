package db

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

// Artifact kinds for the generation cache.
const (
	ArtifactAnalysis  = "analysis"
	ArtifactRoadmap   = "roadmap"
	ArtifactTasks     = "tasks"
	ArtifactProjects  = "projects"
	ArtifactInterview = "interview"
	ArtifactJobScan   = "jobscan"
)

// SaveArtifact upserts a cached generation result keyed by user, kind and
// the role pair it was generated for. A regeneration overwrites the prior
// entry for the same key.
func (db *DB) SaveArtifact(ctx context.Context, userID uuid.UUID, kind, role, targetRole string, content []byte) error {
	_, err := db.pool.Exec(ctx,
		`INSERT INTO artifacts (user_id, kind, role, target_role, content, created_at)
		 VALUES ($1, $2, $3, $4, $5, NOW())
		 ON CONFLICT (user_id, kind, role, target_role)
		 DO UPDATE SET content = EXCLUDED.content, created_at = NOW()`,
		userID, kind, role, targetRole, content,
	)
	if err != nil {
		return fmt.Errorf("failed to save %s artifact: %w", kind, err)
	}
	return nil
}

// GetArtifact returns the cached content for the given key, or (nil, nil)
// on a cache miss.
func (db *DB) GetArtifact(ctx context.Context, userID uuid.UUID, kind, role, targetRole string) ([]byte, error) {
	var content []byte
	err := db.pool.QueryRow(ctx,
		`SELECT content FROM artifacts
		 WHERE user_id = $1 AND kind = $2 AND role = $3 AND target_role = $4`,
		userID, kind, role, targetRole,
	).Scan(&content)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get %s artifact: %w", kind, err)
	}
	return content, nil
}

// CachedRoadmap returns the cached roadmap for the role pair, or (nil, nil)
// when none has been generated yet.
func (db *DB) CachedRoadmap(ctx context.Context, userID uuid.UUID, role, targetRole string) ([]byte, error) {
	return db.GetArtifact(ctx, userID, ArtifactRoadmap, role, targetRole)
}

// CachedAnalysis returns the cached gap analysis for the role pair, or
// (nil, nil) when none has been generated yet.
func (db *DB) CachedAnalysis(ctx context.Context, userID uuid.UUID, role, targetRole string) ([]byte, error) {
	return db.GetArtifact(ctx, userID, ArtifactAnalysis, role, targetRole)
}
