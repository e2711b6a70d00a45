package http

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/project-pulse/pulse-backend/internal/projects/domain"
)

// stubStore implements ProjectStore with per-test function fields.
type stubStore struct {
	create func(ctx context.Context, name string, description *string, status *domain.Status) (*domain.Project, error)
	get    func(ctx context.Context, id int64) (*domain.Project, error)
	list   func(ctx context.Context, filter domain.ListFilter, sort domain.Sort, page domain.Page) (*domain.ListResult, error)
	update func(ctx context.Context, id int64, patch domain.ProjectPatch) (*domain.Project, error)
	del    func(ctx context.Context, id int64) error
	stats  func(ctx context.Context) (*domain.Stats, error)
}

func (s *stubStore) Create(ctx context.Context, name string, description *string, status *domain.Status) (*domain.Project, error) {
	return s.create(ctx, name, description, status)
}

func (s *stubStore) Get(ctx context.Context, id int64) (*domain.Project, error) {
	return s.get(ctx, id)
}

func (s *stubStore) List(ctx context.Context, filter domain.ListFilter, sort domain.Sort, page domain.Page) (*domain.ListResult, error) {
	return s.list(ctx, filter, sort, page)
}

func (s *stubStore) Update(ctx context.Context, id int64, patch domain.ProjectPatch) (*domain.Project, error) {
	return s.update(ctx, id, patch)
}

func (s *stubStore) Delete(ctx context.Context, id int64) error {
	return s.del(ctx, id)
}

func (s *stubStore) Stats(ctx context.Context) (*domain.Stats, error) {
	return s.stats(ctx)
}

func newRouter(store ProjectStore) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	New(store).Register(r.Group("/projects"))
	return r
}

func doRequest(t *testing.T, r *gin.Engine, method, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	var reader *strings.Reader
	if body == "" {
		reader = strings.NewReader("")
	} else {
		reader = strings.NewReader(body)
	}
	req, err := http.NewRequest(method, path, reader)
	require.NoError(t, err)
	req.Header.Set("Content-Type", "application/json")
	rr := httptest.NewRecorder()
	r.ServeHTTP(rr, req)
	return rr
}

func sampleProject(id int64) *domain.Project {
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	return &domain.Project{
		ID:        id,
		Name:      "Alpha",
		Status:    domain.StatusNotStarted,
		CreatedAt: now,
		UpdatedAt: now,
	}
}

func TestCreate(t *testing.T) {
	t.Run("returns 201 with the stored entity", func(t *testing.T) {
		store := &stubStore{
			create: func(_ context.Context, name string, description *string, status *domain.Status) (*domain.Project, error) {
				assert.Equal(t, "Alpha", name)
				assert.Nil(t, description)
				assert.Nil(t, status)
				return sampleProject(1), nil
			},
		}

		rr := doRequest(t, newRouter(store), "POST", "/projects", `{"name":"Alpha"}`)
		require.Equal(t, http.StatusCreated, rr.Code)

		var p domain.Project
		require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &p))
		assert.Equal(t, int64(1), p.ID)
		assert.Equal(t, domain.StatusNotStarted, p.Status)
	})

	t.Run("passes an explicit status through", func(t *testing.T) {
		store := &stubStore{
			create: func(_ context.Context, _ string, _ *string, status *domain.Status) (*domain.Project, error) {
				require.NotNil(t, status)
				assert.Equal(t, domain.StatusInProgress, *status)
				return sampleProject(2), nil
			},
		}

		rr := doRequest(t, newRouter(store), "POST", "/projects", `{"name":"Beta","status":"In Progress"}`)
		assert.Equal(t, http.StatusCreated, rr.Code)
	})

	t.Run("rejects missing name", func(t *testing.T) {
		rr := doRequest(t, newRouter(&stubStore{}), "POST", "/projects", `{"description":"x"}`)
		assert.Equal(t, http.StatusUnprocessableEntity, rr.Code)
	})

	t.Run("rejects an unknown status", func(t *testing.T) {
		rr := doRequest(t, newRouter(&stubStore{}), "POST", "/projects", `{"name":"Alpha","status":"Done"}`)
		assert.Equal(t, http.StatusUnprocessableEntity, rr.Code)
	})

	t.Run("rejects a malformed body", func(t *testing.T) {
		rr := doRequest(t, newRouter(&stubStore{}), "POST", "/projects", `{`)
		assert.Equal(t, http.StatusUnprocessableEntity, rr.Code)
	})
}

func TestList(t *testing.T) {
	t.Run("defaults page, page_size and sort", func(t *testing.T) {
		store := &stubStore{
			list: func(_ context.Context, filter domain.ListFilter, sort domain.Sort, page domain.Page) (*domain.ListResult, error) {
				assert.Equal(t, domain.ListFilter{}, filter)
				assert.Equal(t, domain.SortNewest, sort)
				assert.Equal(t, domain.Page{Page: 1, PageSize: 10}, page)
				return &domain.ListResult{Total: 0, Page: 1, PageSize: 10, Items: []domain.Project{}}, nil
			},
		}

		rr := doRequest(t, newRouter(store), "GET", "/projects", "")
		require.Equal(t, http.StatusOK, rr.Code)

		var res domain.ListResult
		require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &res))
		assert.Equal(t, 1, res.Page)
		assert.Equal(t, 10, res.PageSize)
		assert.NotNil(t, res.Items)
	})

	t.Run("forwards filters, sort and pagination", func(t *testing.T) {
		store := &stubStore{
			list: func(_ context.Context, filter domain.ListFilter, sort domain.Sort, page domain.Page) (*domain.ListResult, error) {
				assert.Equal(t, "abc", filter.Name)
				require.NotNil(t, filter.Status)
				assert.Equal(t, domain.StatusCompleted, *filter.Status)
				assert.Equal(t, domain.SortNameAsc, sort)
				assert.Equal(t, domain.Page{Page: 2, PageSize: 5}, page)
				return &domain.ListResult{Total: 7, Page: 2, PageSize: 5, Items: []domain.Project{*sampleProject(6)}}, nil
			},
		}

		rr := doRequest(t, newRouter(store), "GET",
			"/projects?name=abc&status=Completed&sort_by=name_asc&page=2&page_size=5", "")
		require.Equal(t, http.StatusOK, rr.Code)

		var res domain.ListResult
		require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &res))
		assert.Equal(t, int64(7), res.Total)
		assert.Len(t, res.Items, 1)
	})

	t.Run("rejects invalid params", func(t *testing.T) {
		for _, q := range []string{
			"page=0", "page=-1", "page=x",
			"page_size=0", "page_size=101", "page_size=x",
			"status=Done", "sort_by=created",
		} {
			rr := doRequest(t, newRouter(&stubStore{}), "GET", "/projects?"+q, "")
			assert.Equal(t, http.StatusUnprocessableEntity, rr.Code, "query %q", q)
		}
	})
}

func TestGet(t *testing.T) {
	t.Run("returns the entity", func(t *testing.T) {
		store := &stubStore{
			get: func(_ context.Context, id int64) (*domain.Project, error) {
				assert.Equal(t, int64(42), id)
				return sampleProject(42), nil
			},
		}

		rr := doRequest(t, newRouter(store), "GET", "/projects/42", "")
		require.Equal(t, http.StatusOK, rr.Code)

		var p domain.Project
		require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &p))
		assert.Equal(t, int64(42), p.ID)
	})

	t.Run("404 when absent", func(t *testing.T) {
		store := &stubStore{
			get: func(_ context.Context, _ int64) (*domain.Project, error) {
				return nil, domain.ErrNotFound
			},
		}

		rr := doRequest(t, newRouter(store), "GET", "/projects/99", "")
		assert.Equal(t, http.StatusNotFound, rr.Code)
	})

	t.Run("422 on a non-integer id", func(t *testing.T) {
		rr := doRequest(t, newRouter(&stubStore{}), "GET", "/projects/abc", "")
		assert.Equal(t, http.StatusUnprocessableEntity, rr.Code)
	})
}

func TestUpdate(t *testing.T) {
	t.Run("omitted fields stay out of the patch", func(t *testing.T) {
		store := &stubStore{
			update: func(_ context.Context, id int64, patch domain.ProjectPatch) (*domain.Project, error) {
				assert.Equal(t, int64(1), id)
				assert.Nil(t, patch.Name)
				assert.Nil(t, patch.Description)
				require.NotNil(t, patch.Status)
				assert.Equal(t, domain.StatusCompleted, *patch.Status)
				p := sampleProject(1)
				p.Status = domain.StatusCompleted
				return p, nil
			},
		}

		rr := doRequest(t, newRouter(store), "PUT", "/projects/1", `{"status":"Completed"}`)
		require.Equal(t, http.StatusOK, rr.Code)

		var p domain.Project
		require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &p))
		assert.Equal(t, "Alpha", p.Name)
		assert.Equal(t, domain.StatusCompleted, p.Status)
	})

	t.Run("explicit empty description reaches the patch", func(t *testing.T) {
		store := &stubStore{
			update: func(_ context.Context, _ int64, patch domain.ProjectPatch) (*domain.Project, error) {
				require.NotNil(t, patch.Description)
				assert.Equal(t, "", *patch.Description)
				assert.Nil(t, patch.Name)
				return sampleProject(1), nil
			},
		}

		rr := doRequest(t, newRouter(store), "PUT", "/projects/1", `{"description":""}`)
		assert.Equal(t, http.StatusOK, rr.Code)
	})

	t.Run("404 when absent", func(t *testing.T) {
		store := &stubStore{
			update: func(_ context.Context, _ int64, _ domain.ProjectPatch) (*domain.Project, error) {
				return nil, domain.ErrNotFound
			},
		}

		rr := doRequest(t, newRouter(store), "PUT", "/projects/7", `{"name":"x"}`)
		assert.Equal(t, http.StatusNotFound, rr.Code)
	})

	t.Run("rejects an unknown status", func(t *testing.T) {
		rr := doRequest(t, newRouter(&stubStore{}), "PUT", "/projects/1", `{"status":"Paused"}`)
		assert.Equal(t, http.StatusUnprocessableEntity, rr.Code)
	})
}

func TestDelete(t *testing.T) {
	t.Run("returns a confirmation message", func(t *testing.T) {
		store := &stubStore{
			del: func(_ context.Context, id int64) error {
				assert.Equal(t, int64(3), id)
				return nil
			},
		}

		rr := doRequest(t, newRouter(store), "DELETE", "/projects/3", "")
		require.Equal(t, http.StatusOK, rr.Code)

		var body map[string]string
		require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &body))
		assert.Equal(t, "Project deleted successfully", body["message"])
	})

	t.Run("404 when absent", func(t *testing.T) {
		store := &stubStore{
			del: func(_ context.Context, _ int64) error {
				return domain.ErrNotFound
			},
		}

		rr := doRequest(t, newRouter(store), "DELETE", "/projects/3", "")
		assert.Equal(t, http.StatusNotFound, rr.Code)
	})
}

func TestStatuses(t *testing.T) {
	rr := doRequest(t, newRouter(&stubStore{}), "GET", "/projects/statuses", "")
	require.Equal(t, http.StatusOK, rr.Code)

	var statuses []string
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &statuses))
	assert.Equal(t, []string{"Not Started", "In Progress", "Completed"}, statuses)
}

func TestStats(t *testing.T) {
	store := &stubStore{
		stats: func(_ context.Context) (*domain.Stats, error) {
			return &domain.Stats{Total: 2, NotStarted: 1, InProgress: 0, Completed: 1}, nil
		},
	}

	rr := doRequest(t, newRouter(store), "GET", "/projects/stats", "")
	require.Equal(t, http.StatusOK, rr.Code)

	var s domain.Stats
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &s))
	assert.Equal(t, s.Total, s.NotStarted+s.InProgress+s.Completed)
	assert.Equal(t, int64(2), s.Total)
}
