package repository

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"careerpath/internal/database"
	"careerpath/internal/domain/roadmap"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeRow struct {
	data []byte
	err  error
}

func (r fakeRow) Scan(dest ...any) error {
	if r.err != nil {
		return r.err
	}
	*(dest[0].(*[]byte)) = r.data
	return nil
}

type execCall struct {
	query string
	args  []any
}

type fakeDB struct {
	stored    map[string][]byte
	execs     []execCall
	queries   []string
	committed bool
	execErr   error
}

func newFakeDB() *fakeDB { return &fakeDB{stored: map[string][]byte{}} }

func (f *fakeDB) Exec(_ context.Context, query string, args ...any) (int64, error) {
	if f.execErr != nil {
		return 0, f.execErr
	}
	f.execs = append(f.execs, execCall{query: query, args: args})
	f.stored[args[0].(string)] = []byte(args[1].(string))
	return 1, nil
}

func (f *fakeDB) Query(context.Context, string, ...any) (database.Rows, error) {
	return nil, errors.New("not implemented")
}

func (f *fakeDB) QueryRow(_ context.Context, query string, args ...any) database.Row {
	f.queries = append(f.queries, query)
	b, ok := f.stored[args[0].(string)]
	if !ok {
		return fakeRow{err: database.ErrNoRows}
	}
	return fakeRow{data: b}
}

func (f *fakeDB) Ping(context.Context) error                { return nil }
func (f *fakeDB) Close() error                              { return nil }
func (f *fakeDB) Begin(context.Context) (database.Tx, error) { return fakeTx{db: f}, nil }

type fakeTx struct {
	db *fakeDB
}

func (t fakeTx) Exec(ctx context.Context, q string, args ...any) (int64, error) {
	return t.db.Exec(ctx, q, args...)
}
func (t fakeTx) Query(ctx context.Context, q string, args ...any) (database.Rows, error) {
	return t.db.Query(ctx, q, args...)
}
func (t fakeTx) QueryRow(ctx context.Context, q string, args ...any) database.Row {
	return t.db.QueryRow(ctx, q, args...)
}
func (t fakeTx) Commit(context.Context) error   { t.db.committed = true; return nil }
func (t fakeTx) Rollback(context.Context) error { return nil }

func sampleDoc(userID string) roadmap.Document {
	return roadmap.NewDocument(userID, roadmap.FallbackRoadmap(),
		roadmap.NewSummary(roadmap.LevelBeginner, "Developer", ""), nil, []string{"Engineer"}, time.Now())
}

func TestRoadmapRepository_SaveOverwrites(t *testing.T) {
	db := newFakeDB()
	repo := NewPostgresRoadmapRepository(db)
	ctx := context.Background()

	first := sampleDoc("u1")
	first.CompletedMilestones = []string{"Build first project"}
	require.NoError(t, repo.Save(ctx, first))
	require.NoError(t, repo.Save(ctx, sampleDoc("u1")))

	require.Len(t, db.execs, 2)
	assert.Contains(t, db.execs[0].query, "ON CONFLICT (user_id) DO UPDATE")

	got, err := repo.Get(ctx, "u1")
	require.NoError(t, err)
	assert.Empty(t, got.CompletedMilestones)
	assert.Equal(t, []string{"Engineer"}, got.AlternativeTitles)

	var raw map[string]any
	require.NoError(t, json.Unmarshal(db.stored["u1"], &raw))
	assert.Equal(t, "u1", raw["userId"])
}

func TestRoadmapRepository_GetNotFound(t *testing.T) {
	repo := NewPostgresRoadmapRepository(newFakeDB())
	_, err := repo.Get(context.Background(), "missing")
	assert.ErrorIs(t, err, roadmap.ErrNotFound)
}

func TestRoadmapRepository_SaveRejectsEmptyUser(t *testing.T) {
	db := newFakeDB()
	repo := NewPostgresRoadmapRepository(db)
	assert.Error(t, repo.Save(context.Background(), sampleDoc(" ")))
	assert.Empty(t, db.execs)
}

func TestRoadmapRepository_Update(t *testing.T) {
	db := newFakeDB()
	repo := NewPostgresRoadmapRepository(db)
	ctx := context.Background()
	require.NoError(t, repo.Save(ctx, sampleDoc("u1")))

	doc, err := repo.Update(ctx, "u1", func(d *roadmap.Document) error {
		return d.SetMilestone("Build first project", true, time.Now())
	})
	require.NoError(t, err)
	assert.True(t, db.committed)
	assert.Contains(t, db.queries[len(db.queries)-1], "FOR UPDATE")
	assert.Equal(t, []string{"Build first project"}, doc.CompletedMilestones)

	stored, err := repo.Get(ctx, "u1")
	require.NoError(t, err)
	assert.Equal(t, 13, stored.Summary.Completion)
}

func TestRoadmapRepository_UpdateAbortsOnError(t *testing.T) {
	db := newFakeDB()
	repo := NewPostgresRoadmapRepository(db)
	ctx := context.Background()
	require.NoError(t, repo.Save(ctx, sampleDoc("u1")))

	_, err := repo.Update(ctx, "u1", func(d *roadmap.Document) error {
		return d.SetMilestone("unknown", true, time.Now())
	})
	assert.ErrorIs(t, err, roadmap.ErrUnknownMilestone)
	assert.False(t, db.committed)
	assert.Len(t, db.execs, 1)
}
