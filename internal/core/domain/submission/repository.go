package submission

import (
	"context"
	c "kedilabs/internal/core/domain/common"
	"time"
)

const (
	DefaultPageSize = 20
	MaxPageSize     = 100
	StatsDays       = 7
)

type CreateInput struct {
	Form      Form
	Metadata  Metadata
	CreatedAt time.Time
}

// ListInput selects one page of submissions ordered by creation time,
// newest first.
type ListInput struct {
	Page   int
	Limit  int
	Status c.Optional[Status]
}

// Normalized clamps Page to at least 1 and Limit to [1, MaxPageSize].
// A zero Limit falls back to DefaultPageSize.
func (in ListInput) Normalized() ListInput {
	if in.Page < 1 {
		in.Page = 1
	}
	switch {
	case in.Limit == 0:
		in.Limit = DefaultPageSize
	case in.Limit < 1:
		in.Limit = 1
	case in.Limit > MaxPageSize:
		in.Limit = MaxPageSize
	}
	return in
}

func (in ListInput) Offset() int {
	return (in.Page - 1) * in.Limit
}

type Pagination struct {
	Page    int
	Limit   int
	Total   int64
	HasMore bool
}

func NewPagination(in ListInput, total int64) Pagination {
	return Pagination{
		Page:    in.Page,
		Limit:   in.Limit,
		Total:   total,
		HasMore: int64(in.Page*in.Limit) < total,
	}
}

type List struct {
	Submissions []Submission
	Pagination  Pagination
}

type DailyCount struct {
	Date  string
	Count int64
}

type Stats struct {
	Total             int64
	Today             int64
	ByStatus          map[Status]int64
	ByStakeholderType map[StakeholderType]int64
	LastDays          []DailyCount
}

type UpdateStatusInput struct {
	ID        ID
	Status    Status
	UpdatedAt time.Time
}

type Repository interface {
	// Create assigns a new identifier and stores the submission with status new.
	Create(ctx context.Context, input CreateInput) (Submission, error)
	GetByID(ctx context.Context, id ID) (Submission, error)
	List(ctx context.Context, input ListInput) (List, error)
	Stats(ctx context.Context, now time.Time) (Stats, error)
	// UpdateStatus reports false when no submission has the given id.
	UpdateStatus(ctx context.Context, input UpdateStatusInput) (bool, error)
	Ping(ctx context.Context) error
}

type IDGenerator interface {
	GenerateID() ID
}
