package main

import (
	"context"
	"slices"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/dmitrymomot/waypoint/pkg/cache"
	"github.com/dmitrymomot/waypoint/pkg/db"
	"github.com/dmitrymomot/waypoint/pkg/query"
)

const entriesTable = "entries"

// Entry is a stored note.
type Entry struct {
	CreatedAt time.Time `json:"created_at" db:"created_at"`
	Title     string    `json:"title" db:"title"`
	Body      string    `json:"body" db:"body"`
	ID        int64     `json:"id" db:"id"`
}

type listFilter struct {
	Search string
	Limit  int
	Offset int
}

type entryStore interface {
	List(ctx context.Context, f listFilter) ([]Entry, error)
	Get(ctx context.Context, id int64) (Entry, error)
	Create(ctx context.Context, title, body string) (Entry, error)
	Delete(ctx context.Context, id int64) error
}

// listQuery returns newest entries first. Search matches title or body.
func listQuery(f listFilter) *query.Builder {
	b := db.NewQuery().
		From(entriesTable).
		OrderBy(query.Desc("created_at"), query.Desc("id"))
	if f.Search != "" {
		b.WhereGroup(func(g *query.Builder) {
			g.WhereContains("title", f.Search).OrWhereContains("body", f.Search)
		})
	}
	return b.Limit(f.Limit).Offset(f.Offset)
}

func getQuery(id int64) *query.Builder {
	return db.NewQuery().From(entriesTable).WhereEquals("id", id)
}

type pgStore struct {
	pool *pgxpool.Pool
}

func (s *pgStore) List(ctx context.Context, f listFilter) ([]Entry, error) {
	return db.SelectInto[Entry](ctx, s.pool, listQuery(f))
}

func (s *pgStore) Get(ctx context.Context, id int64) (Entry, error) {
	return db.SelectOne[Entry](ctx, s.pool, getQuery(id))
}

func (s *pgStore) Create(ctx context.Context, title, body string) (Entry, error) {
	var e Entry
	err := db.WithTx(ctx, s.pool, func(tx pgx.Tx) error {
		rows, err := tx.Query(ctx,
			"INSERT INTO entries (title, body) VALUES ($1, $2) RETURNING id, title, body, created_at",
			title, body,
		)
		if err != nil {
			return err
		}
		e, err = pgx.CollectExactlyOneRow(rows, pgx.RowToStructByName[Entry])
		return err
	})
	return e, err
}

func (s *pgStore) Delete(ctx context.Context, id int64) error {
	tag, err := s.pool.Exec(ctx, "DELETE FROM entries WHERE id = $1", id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return db.ErrNotFound
	}
	return nil
}

// memStore keeps entries in process memory when no database is configured.
type memStore struct {
	now     func() time.Time
	entries []Entry
	nextID  int64
	mu      sync.RWMutex
}

func newMemStore() *memStore {
	return &memStore{now: time.Now, nextID: 1}
}

func (s *memStore) List(_ context.Context, f listFilter) ([]Entry, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]Entry, 0, len(s.entries))
	for _, e := range slices.Backward(s.entries) {
		if f.Search != "" && !strings.Contains(e.Title, f.Search) && !strings.Contains(e.Body, f.Search) {
			continue
		}
		out = append(out, e)
	}

	if f.Offset >= len(out) {
		return []Entry{}, nil
	}
	out = out[f.Offset:]
	if f.Limit < len(out) {
		out = out[:f.Limit]
	}
	return out, nil
}

func (s *memStore) Get(_ context.Context, id int64) (Entry, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, e := range s.entries {
		if e.ID == id {
			return e, nil
		}
	}
	return Entry{}, db.ErrNotFound
}

func (s *memStore) Create(_ context.Context, title, body string) (Entry, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	e := Entry{ID: s.nextID, Title: title, Body: body, CreatedAt: s.now().UTC()}
	s.nextID++
	s.entries = append(s.entries, e)
	return e, nil
}

func (s *memStore) Delete(_ context.Context, id int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	i := slices.IndexFunc(s.entries, func(e Entry) bool { return e.ID == id })
	if i < 0 {
		return db.ErrNotFound
	}
	s.entries = slices.Delete(s.entries, i, i+1)
	return nil
}

// cachedStore reads single entries through a cache.
type cachedStore struct {
	entryStore
	entries *cache.Loader[Entry]
}

func entryKey(id int64) string {
	return "entry:" + strconv.FormatInt(id, 10)
}

func (s *cachedStore) Get(ctx context.Context, id int64) (Entry, error) {
	return s.entries.Get(ctx, entryKey(id), func(ctx context.Context) (Entry, error) {
		return s.entryStore.Get(ctx, id)
	})
}

func (s *cachedStore) Delete(ctx context.Context, id int64) error {
	if err := s.entryStore.Delete(ctx, id); err != nil {
		return err
	}
	return s.entries.Forget(ctx, entryKey(id))
}
