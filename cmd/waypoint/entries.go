package main

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"

	"github.com/spf13/cast"

	"github.com/dmitrymomot/waypoint"
)

const (
	defaultPageSize = 20
	maxPageSize     = 100
)

// EntriesController exposes the entry store over HTTP.
type EntriesController struct {
	store    entryStore
	pageSize int
}

func newEntriesController(store entryStore) *EntriesController {
	return &EntriesController{store: store, pageSize: defaultPageSize}
}

type createEntryRequest struct {
	Title string `json:"title"`
	Body  string `json:"body"`
}

// List returns one page of entries. ?q filters, ?limit sets the page size.
func (c *EntriesController) List(r *http.Request, page int) ([]Entry, error) {
	if page < 1 {
		return nil, waypoint.ErrBadRequest("page must be positive", waypoint.WithErrorCode("invalid_page"))
	}

	size := c.pageSize
	if raw := r.URL.Query().Get("limit"); raw != "" {
		n, err := cast.ToIntE(raw)
		if err != nil || n < 1 {
			return nil, waypoint.ErrBadRequest("limit must be a positive integer", waypoint.WithErrorCode("invalid_limit"))
		}
		size = min(n, maxPageSize)
	}

	return c.store.List(r.Context(), listFilter{
		Search: strings.TrimSpace(r.URL.Query().Get("q")),
		Limit:  size,
		Offset: (page - 1) * size,
	})
}

// Search returns the first page of entries matching term.
func (c *EntriesController) Search(ctx context.Context, term string) ([]Entry, error) {
	return c.store.List(ctx, listFilter{Search: term, Limit: c.pageSize})
}

func (c *EntriesController) Show(ctx context.Context, id int64) (Entry, error) {
	return c.store.Get(ctx, id)
}

func (c *EntriesController) Create(r *http.Request) (*waypoint.Response, error) {
	var req createEntryRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		return nil, waypoint.ErrBadRequest("invalid JSON body", waypoint.WithError(err))
	}
	req.Title = strings.TrimSpace(req.Title)
	if req.Title == "" {
		return nil, waypoint.ErrUnprocessable("title is required", waypoint.WithErrorCode("title_required"))
	}

	e, err := c.store.Create(r.Context(), req.Title, req.Body)
	if err != nil {
		return nil, err
	}
	return waypoint.Created(e), nil
}

func (c *EntriesController) Delete(ctx context.Context, id int64) error {
	return c.store.Delete(ctx, id)
}

// statusController is instantiated per request.
type statusController struct {
	Version string
}

func (s *statusController) Init() error {
	s.Version = version
	return nil
}

func (s *statusController) Show() map[string]string {
	return map[string]string{"service": "waypoint", "version": s.Version}
}
