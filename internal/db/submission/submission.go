package submission

import (
	"context"
	"errors"
	"fmt"
	e "kedilabs/internal/core/domain/errors"
	"kedilabs/internal/core/domain/submission"
	"strconv"
	"time"

	"github.com/go-redis/redis/v9"
	"github.com/golang-module/carbon/v2"
)

const (
	allKey        = "submissions:all"
	totalKey      = "stats:total"
	updateRetries = 5
)

// Daily counters outlive the stats window by one day and then expire.
const dailyCounterTTL = (submission.StatsDays + 1) * 24 * time.Hour

func recordKey(id submission.ID) string {
	return "submission:" + string(id)
}

func statusKey(s submission.Status) string {
	return "submissions:status:" + s.String()
}

func typeKey(t submission.StakeholderType) string {
	return "stats:type:" + t.String()
}

func dailyKey(date string) string {
	return "stats:daily:" + date
}

func score(t time.Time) float64 {
	return float64(t.UnixMilli())
}

// RedisRepository stores each submission as a JSON string and indexes it in
// sorted sets scored by creation time in milliseconds. Counters under
// stats:* keep statistics O(1).
type RedisRepository struct {
	client      *redis.Client
	idGenerator submission.IDGenerator
	timeout     time.Duration
}

func NewRedisRepository(
	client *redis.Client,
	idGenerator submission.IDGenerator,
	timeout time.Duration,
) *RedisRepository {
	if client == nil {
		panic(e.NewNilArgumentError("client"))
	}
	if idGenerator == nil {
		panic(e.NewNilArgumentError("idGenerator"))
	}
	return &RedisRepository{client: client, idGenerator: idGenerator, timeout: timeout}
}

func (r *RedisRepository) withTimeout(ctx context.Context) (context.Context, context.CancelFunc) {
	if r.timeout <= 0 {
		return ctx, func() {}
	}
	return context.WithTimeout(ctx, r.timeout)
}

func (r *RedisRepository) Create(ctx context.Context, input submission.CreateInput) (s submission.Submission, err error) {
	ctx, cancel := r.withTimeout(ctx)
	defer cancel()

	s = submission.Submission{
		ID:        r.idGenerator.GenerateID(),
		Form:      input.Form,
		Status:    submission.StatusNew,
		Metadata:  input.Metadata,
		CreatedAt: input.CreatedAt,
	}
	if err := s.Validate(); err != nil {
		return s, err
	}
	data, err := encodeSubmission(s)
	if err != nil {
		return s, err
	}

	member := redis.Z{Score: score(s.CreatedAt), Member: string(s.ID)}
	day := carbon.Time2Carbon(s.CreatedAt).ToDateString(carbon.UTC)
	_, err = r.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.Set(ctx, recordKey(s.ID), data, 0)
		pipe.ZAdd(ctx, allKey, member)
		pipe.ZAdd(ctx, statusKey(s.Status), member)
		pipe.Incr(ctx, totalKey)
		pipe.Incr(ctx, dailyKey(day))
		pipe.Expire(ctx, dailyKey(day), dailyCounterTTL)
		pipe.Incr(ctx, typeKey(s.StakeholderType()))
		return nil
	})
	if err != nil {
		return s, fmt.Errorf("could not store submission: %w", err)
	}
	return s, nil
}

func (r *RedisRepository) GetByID(ctx context.Context, id submission.ID) (s submission.Submission, err error) {
	ctx, cancel := r.withTimeout(ctx)
	defer cancel()

	data, err := r.client.Get(ctx, recordKey(id)).Bytes()
	if errors.Is(err, redis.Nil) {
		return s, submission.ErrSubmissionDoesNotExist
	}
	if err != nil {
		return s, err
	}
	return decodeSubmission(data)
}

func (r *RedisRepository) List(ctx context.Context, input submission.ListInput) (list submission.List, err error) {
	ctx, cancel := r.withTimeout(ctx)
	defer cancel()

	input = input.Normalized()
	index := allKey
	if input.Status.IsPresent {
		index = statusKey(input.Status.Value)
	}

	var (
		totalCmd *redis.IntCmd
		idsCmd   *redis.StringSliceCmd
	)
	start := int64(input.Offset())
	stop := start + int64(input.Limit) - 1
	_, err = r.client.Pipelined(ctx, func(pipe redis.Pipeliner) error {
		totalCmd = pipe.ZCard(ctx, index)
		idsCmd = pipe.ZRevRange(ctx, index, start, stop)
		return nil
	})
	if err != nil {
		return list, fmt.Errorf("could not read submission index: %w", err)
	}

	list.Pagination = submission.NewPagination(input, totalCmd.Val())
	list.Submissions = make([]submission.Submission, 0, len(idsCmd.Val()))
	if len(idsCmd.Val()) == 0 {
		return list, nil
	}

	keys := make([]string, len(idsCmd.Val()))
	for i, id := range idsCmd.Val() {
		keys[i] = recordKey(submission.ID(id))
	}
	values, err := r.client.MGet(ctx, keys...).Result()
	if err != nil {
		return list, fmt.Errorf("could not read submissions: %w", err)
	}
	for i, value := range values {
		data, ok := value.(string)
		if !ok {
			continue
		}
		s, err := decodeSubmission([]byte(data))
		if err != nil {
			return list, fmt.Errorf("could not decode %s: %w", keys[i], err)
		}
		list.Submissions = append(list.Submissions, s)
	}
	return list, nil
}

func (r *RedisRepository) Stats(ctx context.Context, now time.Time) (stats submission.Stats, err error) {
	ctx, cancel := r.withTimeout(ctx)
	defer cancel()

	today := carbon.Time2Carbon(now)
	days := make([]string, submission.StatsDays)
	for i := range days {
		days[i] = today.SubDays(submission.StatsDays - 1 - i).ToDateString(carbon.UTC)
	}

	var (
		totalCmd  *redis.StringCmd
		dailyCmd  *redis.SliceCmd
		typesCmd  *redis.SliceCmd
		statusCmd = make(map[submission.Status]*redis.IntCmd, len(submission.Statuses))
	)
	typeKeys := make([]string, len(submission.StakeholderTypes))
	for i, t := range submission.StakeholderTypes {
		typeKeys[i] = typeKey(t)
	}
	dailyKeys := make([]string, len(days))
	for i, day := range days {
		dailyKeys[i] = dailyKey(day)
	}

	cmds, err := r.client.Pipelined(ctx, func(pipe redis.Pipeliner) error {
		totalCmd = pipe.Get(ctx, totalKey)
		dailyCmd = pipe.MGet(ctx, dailyKeys...)
		typesCmd = pipe.MGet(ctx, typeKeys...)
		for _, s := range submission.Statuses {
			statusCmd[s] = pipe.ZCard(ctx, statusKey(s))
		}
		return nil
	})
	if err != nil && !errors.Is(err, redis.Nil) {
		return stats, fmt.Errorf("could not read statistics: %w", err)
	}
	for _, cmd := range cmds {
		if err := cmd.Err(); err != nil && !errors.Is(err, redis.Nil) {
			return stats, fmt.Errorf("could not read statistics: %w", err)
		}
	}

	stats.Total, _ = totalCmd.Int64()
	stats.ByStatus = make(map[submission.Status]int64, len(statusCmd))
	for s, cmd := range statusCmd {
		stats.ByStatus[s] = cmd.Val()
	}
	stats.ByStakeholderType = make(map[submission.StakeholderType]int64, len(typeKeys))
	for i, value := range typesCmd.Val() {
		stats.ByStakeholderType[submission.StakeholderTypes[i]] = toInt64(value)
	}
	stats.LastDays = make([]submission.DailyCount, len(days))
	for i, value := range dailyCmd.Val() {
		stats.LastDays[i] = submission.DailyCount{Date: days[i], Count: toInt64(value)}
	}
	stats.Today = stats.LastDays[len(days)-1].Count
	return stats, nil
}

func (r *RedisRepository) UpdateStatus(ctx context.Context, input submission.UpdateStatusInput) (bool, error) {
	ctx, cancel := r.withTimeout(ctx)
	defer cancel()

	key := recordKey(input.ID)
	found := false
	update := func(tx *redis.Tx) error {
		data, err := tx.Get(ctx, key).Bytes()
		if errors.Is(err, redis.Nil) {
			found = false
			return nil
		}
		if err != nil {
			return err
		}
		s, err := decodeSubmission(data)
		if err != nil {
			return err
		}
		found = true

		previous := s.Status
		s.Status = input.Status
		s.UpdatedAt.Value = input.UpdatedAt
		s.UpdatedAt.IsPresent = true
		updated, err := encodeSubmission(s)
		if err != nil {
			return err
		}

		_, err = tx.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
			pipe.Set(ctx, key, updated, 0)
			if previous != s.Status {
				pipe.ZRem(ctx, statusKey(previous), string(s.ID))
				pipe.ZAdd(ctx, statusKey(s.Status), redis.Z{Score: score(s.CreatedAt), Member: string(s.ID)})
			}
			return nil
		})
		return err
	}

	for i := 0; i < updateRetries; i++ {
		err := r.client.Watch(ctx, update, key)
		if errors.Is(err, redis.TxFailedErr) {
			continue
		}
		if err != nil {
			return false, fmt.Errorf("could not update submission status: %w", err)
		}
		return found, nil
	}
	return false, fmt.Errorf("could not update submission status: %w", redis.TxFailedErr)
}

func (r *RedisRepository) Ping(ctx context.Context) error {
	ctx, cancel := r.withTimeout(ctx)
	defer cancel()
	return r.client.Ping(ctx).Err()
}

func toInt64(value interface{}) int64 {
	s, ok := value.(string)
	if !ok {
		return 0
	}
	n, err := strconv.ParseInt(s, 10, 64)
	if err != nil {
		return 0
	}
	return n
}
