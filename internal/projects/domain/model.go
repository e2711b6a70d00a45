package domain

import "time"

// Project represents a single tracked project. It is intentionally
// storage-agnostic and used across repository and HTTP layers.
type Project struct {
	ID          int64     `json:"id"`
	Name        string    `json:"name"`
	Description *string   `json:"description"`
	Status      Status    `json:"status"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// Status is the closed set of project states. It is persisted and
// serialized as its literal string value.
type Status string

const (
	StatusNotStarted Status = "Not Started"
	StatusInProgress Status = "In Progress"
	StatusCompleted  Status = "Completed"
)

// DefaultStatus is assigned when a project is created without one.
const DefaultStatus = StatusNotStarted

// Statuses returns all valid statuses in display order.
func Statuses() []Status {
	return []Status{StatusNotStarted, StatusInProgress, StatusCompleted}
}

// ParseStatus validates a raw status string against the closed set.
func ParseStatus(s string) (Status, error) {
	switch Status(s) {
	case StatusNotStarted, StatusInProgress, StatusCompleted:
		return Status(s), nil
	}
	return "", ErrInvalidStatus
}

func (s Status) String() string { return string(s) }

// Sort selects the ordering of a project listing.
type Sort string

const (
	SortNewest   Sort = "newest"
	SortOldest   Sort = "oldest"
	SortNameAsc  Sort = "name_asc"
	SortNameDesc Sort = "name_desc"
)

// DefaultSort is used when the caller does not specify an ordering.
const DefaultSort = SortNewest

// ParseSort validates a raw sort string; empty input yields the default.
func ParseSort(s string) (Sort, error) {
	if s == "" {
		return DefaultSort, nil
	}
	switch Sort(s) {
	case SortNewest, SortOldest, SortNameAsc, SortNameDesc:
		return Sort(s), nil
	}
	return "", ErrInvalidSort
}

// ListFilter holds the optional listing predicates. Zero values mean
// "no filter"; set filters are combined with AND.
type ListFilter struct {
	Name   string
	Status *Status
}

// Pagination bounds.
const (
	DefaultPage     = 1
	DefaultPageSize = 10
	MaxPageSize     = 100
)

// Page is a 1-indexed pagination request.
type Page struct {
	Page     int
	PageSize int
}

// Valid reports whether the page request is within bounds.
func (p Page) Valid() bool {
	return p.Page >= 1 && p.PageSize >= 1 && p.PageSize <= MaxPageSize
}

// Offset returns the number of records to skip.
func (p Page) Offset() int {
	return (p.Page - 1) * p.PageSize
}

// ProjectPatch is a partial update. A nil pointer means the field was
// omitted and stays untouched; a non-nil pointer overwrites, even when
// it points at an empty string.
type ProjectPatch struct {
	Name        *string
	Description *string
	Status      *Status
}

// IsZero reports whether no field is present in the patch.
func (p ProjectPatch) IsZero() bool {
	return p.Name == nil && p.Description == nil && p.Status == nil
}

// ListResult is one page of a filtered, sorted listing. Total counts
// every record matching the filters, not just the returned page.
type ListResult struct {
	Total    int64     `json:"total"`
	Page     int       `json:"page"`
	PageSize int       `json:"page_size"`
	Items    []Project `json:"items"`
}

// Stats holds the unfiltered per-status counts. The three status
// counters always sum to Total.
type Stats struct {
	Total      int64 `json:"total"`
	NotStarted int64 `json:"not_started"`
	InProgress int64 `json:"in_progress"`
	Completed  int64 `json:"completed"`
}
