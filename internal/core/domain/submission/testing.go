package submission

import (
	"context"
	"fmt"
	c "kedilabs/internal/core/domain/common"
	"sort"
	"sync"
	"time"
)

// TestRepository is an in-memory Repository.
type TestRepository struct {
	CreateError error
	ListError   error
	StatsError  error
	UpdateError error
	PingError   error
	ListedWith  []ListInput
	items       map[ID]Submission
	nextID      int
	lock        sync.Mutex
}

func NewTestRepository() *TestRepository {
	return &TestRepository{items: make(map[ID]Submission)}
}

func (r *TestRepository) Create(ctx context.Context, input CreateInput) (Submission, error) {
	if r.CreateError != nil {
		return Submission{}, r.CreateError
	}
	r.lock.Lock()
	defer r.lock.Unlock()
	r.nextID++
	s := Submission{
		ID:        ID(fmt.Sprintf("submission-%d", r.nextID)),
		Form:      input.Form,
		Status:    StatusNew,
		Metadata:  input.Metadata,
		CreatedAt: input.CreatedAt,
	}
	r.items[s.ID] = s
	return s, nil
}

func (r *TestRepository) GetByID(ctx context.Context, id ID) (Submission, error) {
	r.lock.Lock()
	defer r.lock.Unlock()
	s, ok := r.items[id]
	if !ok {
		return Submission{}, ErrSubmissionDoesNotExist
	}
	return s, nil
}

func (r *TestRepository) List(ctx context.Context, input ListInput) (List, error) {
	if r.ListError != nil {
		return List{}, r.ListError
	}
	input = input.Normalized()
	r.lock.Lock()
	defer r.lock.Unlock()
	r.ListedWith = append(r.ListedWith, input)

	all := make([]Submission, 0, len(r.items))
	for _, s := range r.items {
		if input.Status.IsPresent && s.Status != input.Status.Value {
			continue
		}
		all = append(all, s)
	}
	sort.Slice(all, func(i, j int) bool {
		if all[i].CreatedAt.Equal(all[j].CreatedAt) {
			return all[i].ID > all[j].ID
		}
		return all[i].CreatedAt.After(all[j].CreatedAt)
	})

	page := make([]Submission, 0, input.Limit)
	for i := input.Offset(); i < len(all) && len(page) < input.Limit; i++ {
		page = append(page, all[i])
	}
	return List{Submissions: page, Pagination: NewPagination(input, int64(len(all)))}, nil
}

func (r *TestRepository) Stats(ctx context.Context, now time.Time) (Stats, error) {
	if r.StatsError != nil {
		return Stats{}, r.StatsError
	}
	r.lock.Lock()
	defer r.lock.Unlock()
	stats := Stats{
		Total:             int64(len(r.items)),
		ByStatus:          make(map[Status]int64),
		ByStakeholderType: make(map[StakeholderType]int64),
	}
	today := now.UTC().Format("2006-01-02")
	for _, s := range r.items {
		stats.ByStatus[s.Status]++
		stats.ByStakeholderType[s.StakeholderType()]++
		if s.CreatedAt.UTC().Format("2006-01-02") == today {
			stats.Today++
		}
	}
	return stats, nil
}

func (r *TestRepository) UpdateStatus(ctx context.Context, input UpdateStatusInput) (bool, error) {
	if r.UpdateError != nil {
		return false, r.UpdateError
	}
	r.lock.Lock()
	defer r.lock.Unlock()
	s, ok := r.items[input.ID]
	if !ok {
		return false, nil
	}
	s.Status = input.Status
	s.UpdatedAt = c.NewOptional(input.UpdatedAt, true)
	r.items[input.ID] = s
	return true, nil
}

func (r *TestRepository) Ping(ctx context.Context) error {
	return r.PingError
}

func (r *TestRepository) Count() int {
	r.lock.Lock()
	defer r.lock.Unlock()
	return len(r.items)
}

// TestValidator returns Result for every input and records what it got.
type TestValidator struct {
	Result    ValidationResult
	Validated []map[string]any
	lock      sync.Mutex
}

func NewTestValidator(result ValidationResult) *TestValidator {
	return &TestValidator{Result: result}
}

func (v *TestValidator) Validate(raw map[string]any) ValidationResult {
	v.lock.Lock()
	defer v.lock.Unlock()
	v.Validated = append(v.Validated, raw)
	return v.Result
}

type TestEmailSender struct {
	AdminError        error
	UserError         error
	AdminNotified     []Submission
	UsersAcknowledged []Submission
	lock              sync.Mutex
}

func NewTestEmailSender() *TestEmailSender {
	return &TestEmailSender{}
}

func (s *TestEmailSender) SendAdminNotification(ctx context.Context, sub Submission) error {
	if s.AdminError != nil {
		return s.AdminError
	}
	s.lock.Lock()
	defer s.lock.Unlock()
	s.AdminNotified = append(s.AdminNotified, sub)
	return nil
}

func (s *TestEmailSender) SendAcknowledgment(ctx context.Context, sub Submission) error {
	if s.UserError != nil {
		return s.UserError
	}
	s.lock.Lock()
	defer s.lock.Unlock()
	s.UsersAcknowledged = append(s.UsersAcknowledged, sub)
	return nil
}

type TestNotificationQueue struct {
	Error    error
	Enqueued []Submission
	lock     sync.Mutex
}

func NewTestNotificationQueue() *TestNotificationQueue {
	return &TestNotificationQueue{}
}

func (q *TestNotificationQueue) Enqueue(ctx context.Context, s Submission) error {
	if q.Error != nil {
		return q.Error
	}
	q.lock.Lock()
	defer q.lock.Unlock()
	q.Enqueued = append(q.Enqueued, s)
	return nil
}

type TestEventPublisher struct {
	Error     error
	Published []Submission
	lock      sync.Mutex
}

func NewTestEventPublisher() *TestEventPublisher {
	return &TestEventPublisher{}
}

func (p *TestEventPublisher) PublishCreated(ctx context.Context, s Submission) error {
	if p.Error != nil {
		return p.Error
	}
	p.lock.Lock()
	defer p.lock.Unlock()
	p.Published = append(p.Published, s)
	return nil
}

type TestNotificationRecorder struct {
	Recorded map[string][]bool
	lock     sync.Mutex
}

func NewTestNotificationRecorder() *TestNotificationRecorder {
	return &TestNotificationRecorder{Recorded: make(map[string][]bool)}
}

func (r *TestNotificationRecorder) RecordNotification(kind string, success bool) {
	r.lock.Lock()
	defer r.lock.Unlock()
	r.Recorded[kind] = append(r.Recorded[kind], success)
}
