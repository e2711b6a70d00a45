package repository

import (
	"context"
	"errors"
	"fmt"

	sq "github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"

	"github.com/project-pulse/pulse-backend/internal/projects/domain"
)

const (
	projectsTable     = "projects"
	idColumn          = "id"
	nameColumn        = "name"
	descriptionColumn = "description"
	statusColumn      = "status"
	createdAtColumn   = "created_at"
	updatedAtColumn   = "updated_at"
)

var projectColumns = []string{
	idColumn, nameColumn, descriptionColumn, statusColumn, createdAtColumn, updatedAtColumn,
}

var psql = sq.StatementBuilder.PlaceholderFormat(sq.Dollar)

// Repo provides persistence operations for projects over Postgres.
type Repo struct {
	db     *pgxpool.Pool
	logger *zap.Logger
}

func NewRepo(db *pgxpool.Pool, logger *zap.Logger) *Repo {
	return &Repo{db: db, logger: logger}
}

// Create inserts a new project. The database assigns id and both
// timestamps; the stored row is returned so server-assigned fields are
// visible to the caller.
func (r *Repo) Create(ctx context.Context, name string, description *string, status domain.Status) (*domain.Project, error) {
	query, args, err := psql.Insert(projectsTable).
		Columns(nameColumn, descriptionColumn, statusColumn).
		Values(name, description, status.String()).
		Suffix(returningClause()).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build insert: %w", err)
	}

	p, err := scanProject(r.db.QueryRow(ctx, query, args...))
	if err != nil {
		return nil, fmt.Errorf("insert project: %w", err)
	}

	r.logger.Info("project created",
		zap.Int64("id", p.ID),
		zap.String("status", p.Status.String()),
	)
	return p, nil
}

// GetByID returns the project with the given id, or domain.ErrNotFound.
func (r *Repo) GetByID(ctx context.Context, id int64) (*domain.Project, error) {
	query, args, err := psql.Select(projectColumns...).
		From(projectsTable).
		Where(sq.Eq{idColumn: id}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build select: %w", err)
	}

	p, err := scanProject(r.db.QueryRow(ctx, query, args...))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("select project: %w", err)
	}
	return p, nil
}

// List returns one page of projects matching the filter, in the given
// order, together with the total match count before pagination. A page
// past the end of the data yields empty items and the true total.
func (r *Repo) List(ctx context.Context, filter domain.ListFilter, sort domain.Sort, page domain.Page) (*domain.ListResult, error) {
	countQuery, countArgs, err := applyFilter(psql.Select("count(*)").From(projectsTable), filter).ToSql()
	if err != nil {
		return nil, fmt.Errorf("build count: %w", err)
	}

	var total int64
	if err := r.db.QueryRow(ctx, countQuery, countArgs...).Scan(&total); err != nil {
		return nil, fmt.Errorf("count projects: %w", err)
	}

	query, args, err := buildListQuery(filter, sort, page)
	if err != nil {
		return nil, fmt.Errorf("build list: %w", err)
	}

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list projects: %w", err)
	}
	defer rows.Close()

	items := make([]domain.Project, 0, page.PageSize)
	for rows.Next() {
		p, err := scanProject(rows)
		if err != nil {
			return nil, fmt.Errorf("scan project: %w", err)
		}
		items = append(items, *p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list projects: %w", err)
	}

	return &domain.ListResult{
		Total:    total,
		Page:     page.Page,
		PageSize: page.PageSize,
		Items:    items,
	}, nil
}

// Update applies a partial update as a single addressed UPDATE. Only
// fields present in the patch are set; updated_at is always refreshed.
// Returns domain.ErrNotFound when no row matches.
func (r *Repo) Update(ctx context.Context, id int64, patch domain.ProjectPatch) (*domain.Project, error) {
	b := psql.Update(projectsTable).
		Set(updatedAtColumn, sq.Expr("now()")).
		Where(sq.Eq{idColumn: id}).
		Suffix(returningClause())

	if patch.Name != nil {
		b = b.Set(nameColumn, *patch.Name)
	}
	if patch.Description != nil {
		b = b.Set(descriptionColumn, *patch.Description)
	}
	if patch.Status != nil {
		b = b.Set(statusColumn, patch.Status.String())
	}

	query, args, err := b.ToSql()
	if err != nil {
		return nil, fmt.Errorf("build update: %w", err)
	}

	p, err := scanProject(r.db.QueryRow(ctx, query, args...))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("update project: %w", err)
	}

	r.logger.Info("project updated", zap.Int64("id", p.ID))
	return p, nil
}

// Delete removes the project permanently. Returns domain.ErrNotFound
// when no row matches.
func (r *Repo) Delete(ctx context.Context, id int64) error {
	query, args, err := psql.Delete(projectsTable).
		Where(sq.Eq{idColumn: id}).
		ToSql()
	if err != nil {
		return fmt.Errorf("build delete: %w", err)
	}

	ct, err := r.db.Exec(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("delete project: %w", err)
	}
	if ct.RowsAffected() == 0 {
		return domain.ErrNotFound
	}

	r.logger.Info("project deleted", zap.Int64("id", id))
	return nil
}

// Stats returns the unfiltered per-status counts in one round trip.
func (r *Repo) Stats(ctx context.Context) (*domain.Stats, error) {
	query, args, err := psql.Select(statusColumn, "count(*)").
		From(projectsTable).
		GroupBy(statusColumn).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build stats: %w", err)
	}

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("count by status: %w", err)
	}
	defer rows.Close()

	var stats domain.Stats
	for rows.Next() {
		var status string
		var count int64
		if err := rows.Scan(&status, &count); err != nil {
			return nil, fmt.Errorf("scan status count: %w", err)
		}
		switch domain.Status(status) {
		case domain.StatusNotStarted:
			stats.NotStarted = count
		case domain.StatusInProgress:
			stats.InProgress = count
		case domain.StatusCompleted:
			stats.Completed = count
		}
		stats.Total += count
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("count by status: %w", err)
	}
	return &stats, nil
}

// buildListQuery composes the paged listing statement: filters ANDed,
// a whitelisted ORDER BY with an id tie-break, then LIMIT/OFFSET.
func buildListQuery(filter domain.ListFilter, sort domain.Sort, page domain.Page) (string, []interface{}, error) {
	b := applyFilter(psql.Select(projectColumns...).From(projectsTable), filter).
		OrderBy(orderBy(sort)...).
		Limit(uint64(page.PageSize)).
		Offset(uint64(page.Offset()))
	return b.ToSql()
}

func applyFilter(b sq.SelectBuilder, filter domain.ListFilter) sq.SelectBuilder {
	if filter.Name != "" {
		b = b.Where(sq.ILike{nameColumn: "%" + filter.Name + "%"})
	}
	if filter.Status != nil {
		b = b.Where(sq.Eq{statusColumn: filter.Status.String()})
	}
	return b
}

// orderBy maps a sort mode to ORDER BY terms. The id tie-break keeps
// pagination deterministic when sort keys collide.
func orderBy(sort domain.Sort) []string {
	switch sort {
	case domain.SortOldest:
		return []string{createdAtColumn + " ASC", idColumn + " ASC"}
	case domain.SortNameAsc:
		return []string{nameColumn + " ASC", idColumn + " ASC"}
	case domain.SortNameDesc:
		return []string{nameColumn + " DESC", idColumn + " DESC"}
	default:
		return []string{createdAtColumn + " DESC", idColumn + " DESC"}
	}
}

func returningClause() string {
	return "RETURNING id, name, description, status, created_at, updated_at"
}

func scanProject(row pgx.Row) (*domain.Project, error) {
	var p domain.Project
	err := row.Scan(&p.ID, &p.Name, &p.Description, &p.Status, &p.CreatedAt, &p.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &p, nil
}
