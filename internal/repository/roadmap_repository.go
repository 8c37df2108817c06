package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"careerpath/internal/database"
	"careerpath/internal/domain/roadmap"
)

type PostgresRoadmapRepository struct {
	db database.DB
}

func NewPostgresRoadmapRepository(db database.DB) *PostgresRoadmapRepository {
	return &PostgresRoadmapRepository{db: db}
}

const upsertRoadmapSQL = `
INSERT INTO user_roadmaps (user_id, document, created_at, updated_at)
VALUES ($1, $2::jsonb, now(), now())
ON CONFLICT (user_id) DO UPDATE
SET document = EXCLUDED.document, updated_at = now()`

func (r *PostgresRoadmapRepository) Save(ctx context.Context, doc roadmap.Document) error {
	if r == nil || r.db == nil {
		return errors.New("nil roadmap repository")
	}
	return saveDocument(ctx, r.db, doc)
}

func (r *PostgresRoadmapRepository) Get(ctx context.Context, userID string) (roadmap.Document, error) {
	if r == nil || r.db == nil {
		return roadmap.Document{}, errors.New("nil roadmap repository")
	}
	return loadDocument(ctx, r.db, userID, false)
}

func (r *PostgresRoadmapRepository) Update(ctx context.Context, userID string, fn func(*roadmap.Document) error) (roadmap.Document, error) {
	if r == nil || r.db == nil {
		return roadmap.Document{}, errors.New("nil roadmap repository")
	}

	tx, err := r.db.Begin(ctx)
	if err != nil {
		return roadmap.Document{}, err
	}
	defer func() {
		_ = tx.Rollback(context.Background())
	}()

	doc, err := loadDocument(ctx, tx, userID, true)
	if err != nil {
		return roadmap.Document{}, err
	}
	if err := fn(&doc); err != nil {
		return roadmap.Document{}, err
	}
	if err := saveDocument(ctx, tx, doc); err != nil {
		return roadmap.Document{}, err
	}
	if err := tx.Commit(ctx); err != nil {
		return roadmap.Document{}, err
	}
	return doc, nil
}

func saveDocument(ctx context.Context, q database.Querier, doc roadmap.Document) error {
	userID := strings.TrimSpace(doc.UserID)
	if userID == "" {
		return errors.New("empty user id")
	}
	b, err := json.Marshal(doc)
	if err != nil {
		return fmt.Errorf("encode roadmap: %w", err)
	}
	if _, err := q.Exec(ctx, upsertRoadmapSQL, userID, string(b)); err != nil {
		return fmt.Errorf("save roadmap: %w", err)
	}
	return nil
}

func loadDocument(ctx context.Context, q database.Querier, userID string, forUpdate bool) (roadmap.Document, error) {
	query := `SELECT document FROM user_roadmaps WHERE user_id = $1`
	if forUpdate {
		query += ` FOR UPDATE`
	}

	var raw []byte
	if err := q.QueryRow(ctx, query, strings.TrimSpace(userID)).Scan(&raw); err != nil {
		if errors.Is(err, database.ErrNoRows) {
			return roadmap.Document{}, roadmap.ErrNotFound
		}
		return roadmap.Document{}, err
	}

	var doc roadmap.Document
	if err := json.Unmarshal(raw, &doc); err != nil {
		return roadmap.Document{}, fmt.Errorf("decode roadmap: %w", err)
	}
	if doc.CompletedMilestones == nil {
		doc.CompletedMilestones = []string{}
	}
	return doc, nil
}

var _ roadmap.Repository = (*PostgresRoadmapRepository)(nil)
