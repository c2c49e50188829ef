package submissionevents

import (
	"errors"
	"kedilabs/internal/core/domain/admin"
	e "kedilabs/internal/core/domain/errors"
	"kedilabs/internal/core/domain/logging"
	"kedilabs/internal/core/services"
	s "kedilabs/internal/core/services/get_admin_session"
	"kedilabs/internal/http/handlers/response"
	events "kedilabs/internal/implementations/submission_events"
	"net/http"

	"github.com/r3labs/sse/v2"
)

type Handler struct {
	log       logging.Logger
	service   services.Service[s.Input, s.Result]
	sseServer *sse.Server
}

func New(
	log logging.Logger,
	sseServer *sse.Server,
	service services.Service[s.Input, s.Result],
) *Handler {
	if log == nil {
		panic(e.NewNilArgumentError("log"))
	}
	if sseServer == nil {
		panic(e.NewNilArgumentError("sseServer"))
	}
	if service == nil {
		panic(e.NewNilArgumentError("service"))
	}
	return &Handler{log: log, sseServer: sseServer, service: service}
}

func (h *Handler) ServeHTTP(rw http.ResponseWriter, r *http.Request) {
	result, err := h.service.Run(r.Context(), s.Input{})
	if err != nil {
		switch {
		case errors.Is(err, admin.ErrUnauthenticated):
			response.RenderUnauthorized(rw)
		default:
			response.RenderInternalError(rw)
		}
		return
	}

	query := r.URL.Query()
	switch query.Get("stream") {
	case "":
		query.Set("stream", events.StreamID)
		r.URL.RawQuery = query.Encode()
	case events.StreamID:
	default:
		response.RenderError(rw, "Invalid stream", "Unknown event stream", http.StatusBadRequest)
		return
	}

	session := result.Session.SessionID.Short()
	go func() {
		<-r.Context().Done()
		h.log.Info(r.Context(), "Unsubscribed from submission events.", logging.Entry("session", session))
	}()

	h.log.Info(r.Context(), "Subscribed to submission events.", logging.Entry("session", session))
	h.sseServer.ServeHTTP(rw, r)
}
