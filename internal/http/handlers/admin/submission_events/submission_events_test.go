package submissionevents

import (
	"context"
	"errors"
	"kedilabs/internal/core/domain/admin"
	"kedilabs/internal/core/domain/logging"
	s "kedilabs/internal/core/services/get_admin_session"
	events "kedilabs/internal/implementations/submission_events"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/r3labs/sse/v2"
	"github.com/stretchr/testify/assert"
)

type stubService struct {
	err error
}

func (st *stubService) Run(ctx context.Context, input s.Input) (s.Result, error) {
	if st.err != nil {
		return s.Result{}, st.err
	}
	return s.Result{Session: admin.Claims{SessionID: "session-1", UserID: admin.UserID}}, nil
}

func newServer() *sse.Server {
	server := sse.New()
	server.AutoReplay = true
	server.AutoStream = false
	server.CreateStream(events.StreamID)
	return server
}

func TestSubmissionEventsRejectsUnauthenticated(t *testing.T) {
	cases := map[string]struct {
		err            error
		expectedStatus int
	}{
		"unauthenticated": {err: admin.ErrUnauthenticated, expectedStatus: http.StatusUnauthorized},
		"store failure":   {err: errors.New("redis down"), expectedStatus: http.StatusInternalServerError},
	}
	for name, testcase := range cases {
		t.Run(name, func(t *testing.T) {
			server := newServer()
			defer server.Close()
			rr := httptest.NewRecorder()
			New(logging.NewFakeLogger(), server, &stubService{err: testcase.err}).
				ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/api/admin/submissions/events", nil))

			assert.Equal(t, testcase.expectedStatus, rr.Code)
		})
	}
}

func TestSubmissionEventsRejectsUnknownStream(t *testing.T) {
	server := newServer()
	defer server.Close()
	rr := httptest.NewRecorder()
	New(logging.NewFakeLogger(), server, &stubService{}).
		ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/api/admin/submissions/events?stream=other", nil))

	assert.Equal(t, http.StatusBadRequest, rr.Code)
}

func TestSubmissionEventsStreamsPublishedEvents(t *testing.T) {
	server := newServer()
	defer server.Close()
	server.Publish(events.StreamID, &sse.Event{Event: []byte(events.EventCreated), Data: []byte(`{"id":"sub-1"}`)})

	ctx, cancel := context.WithTimeout(context.Background(), 300*time.Millisecond)
	defer cancel()
	req := httptest.NewRequest(http.MethodGet, "/api/admin/submissions/events", nil).WithContext(ctx)
	rr := httptest.NewRecorder()

	New(logging.NewFakeLogger(), server, &stubService{}).ServeHTTP(rr, req)

	assert.Equal(t, "text/event-stream", rr.Header().Get("Content-Type"))
	assert.Contains(t, rr.Body.String(), "event: submission.created")
	assert.Contains(t, rr.Body.String(), `data: {"id":"sub-1"}`)
}
