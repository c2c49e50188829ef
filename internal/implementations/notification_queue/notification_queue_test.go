package notificationqueue

import (
	"context"
	"kedilabs/internal/core/domain/logging"
	"kedilabs/internal/core/domain/submission"
	sendsubmissionnotifications "kedilabs/internal/core/services/send_submission_notifications"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"
)

type recordingNotifier struct {
	lock    sync.Mutex
	block   chan struct{}
	panicOn submission.ID
	seen    []submission.ID
}

func (n *recordingNotifier) Run(
	ctx context.Context,
	input sendsubmissionnotifications.Input,
) (sendsubmissionnotifications.Result, error) {
	if n.block != nil {
		<-n.block
	}
	if input.Submission.ID == n.panicOn {
		panic("boom")
	}
	n.lock.Lock()
	defer n.lock.Unlock()
	n.seen = append(n.seen, input.Submission.ID)
	return sendsubmissionnotifications.Result{}, nil
}

func (n *recordingNotifier) Seen() []submission.ID {
	n.lock.Lock()
	defer n.lock.Unlock()
	return append([]submission.ID(nil), n.seen...)
}

type testSuite struct {
	suite.Suite
	Logger   *logging.FakeLogger
	Notifier *recordingNotifier
}

func (suite *testSuite) SetupTest() {
	suite.Logger = logging.NewFakeLogger()
	suite.Notifier = &recordingNotifier{}
}

func TestWorkerPool(t *testing.T) {
	suite.Run(t, new(testSuite))
}

func (s *testSuite) TestProcessesEnqueuedSubmissions() {
	pool := NewWorkerPool(s.Logger, s.Notifier, 2, 10)
	pool.Start(context.Background())

	for _, id := range []submission.ID{"a", "b", "c"} {
		s.Nil(pool.Enqueue(context.Background(), submission.Submission{ID: id}))
	}

	s.Nil(pool.Stop(context.Background()))
	s.ElementsMatch([]submission.ID{"a", "b", "c"}, s.Notifier.Seen())
}

func (s *testSuite) TestQueueFull() {
	s.Notifier.block = make(chan struct{})
	pool := NewWorkerPool(s.Logger, s.Notifier, 1, 1)
	pool.Start(context.Background())

	s.Nil(pool.Enqueue(context.Background(), submission.Submission{ID: "a"}))
	s.Eventually(func() bool {
		return pool.Enqueue(context.Background(), submission.Submission{ID: "b"}) == nil
	}, time.Second, 5*time.Millisecond)
	s.ErrorIs(pool.Enqueue(context.Background(), submission.Submission{ID: "c"}), ErrQueueFull)

	close(s.Notifier.block)
	s.Nil(pool.Stop(context.Background()))
	s.ElementsMatch([]submission.ID{"a", "b"}, s.Notifier.Seen())
}

func (s *testSuite) TestEnqueueAfterStop() {
	pool := NewWorkerPool(s.Logger, s.Notifier, 1, 1)
	pool.Start(context.Background())
	s.Nil(pool.Stop(context.Background()))

	s.ErrorIs(pool.Enqueue(context.Background(), submission.Submission{ID: "a"}), ErrQueueClosed)
}

func (s *testSuite) TestRecoversFromPanic() {
	s.Notifier.panicOn = "bad"
	pool := NewWorkerPool(s.Logger, s.Notifier, 1, 10)
	pool.Start(context.Background())

	s.Nil(pool.Enqueue(context.Background(), submission.Submission{ID: "bad"}))
	s.Nil(pool.Enqueue(context.Background(), submission.Submission{ID: "good"}))
	s.Nil(pool.Stop(context.Background()))

	s.Equal([]submission.ID{"good"}, s.Notifier.Seen())
	records := s.Logger.Records(logging.ERROR)
	s.Require().Len(records, 1)
	s.Equal("Notification task panicked.", records[0].Msg)
}
