package logout

import (
	"errors"
	"kedilabs/internal/core/domain/admin"
	e "kedilabs/internal/core/domain/errors"
	"kedilabs/internal/core/services"
	logoutadmin "kedilabs/internal/core/services/log_out_admin"
	"kedilabs/internal/http/handlers/auth"
	"kedilabs/internal/http/handlers/response"
	"net/http"
)

type Handler struct {
	service services.Service[logoutadmin.Input, logoutadmin.Result]
}

func New(service services.Service[logoutadmin.Input, logoutadmin.Result]) *Handler {
	if service == nil {
		panic(e.NewNilArgumentError("service"))
	}
	return &Handler{service: service}
}

type Result struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}

func (h *Handler) ServeHTTP(rw http.ResponseWriter, r *http.Request) {
	_, err := h.service.Run(r.Context(), logoutadmin.Input{})
	switch {
	case errors.Is(err, admin.ErrUnauthenticated):
		auth.ClearSessionCookies(rw)
		response.RenderUnauthorized(rw)
		return
	case err != nil:
		response.RenderInternalError(rw)
		return
	}

	auth.ClearSessionCookies(rw)
	response.Render(rw, Result{Success: true, Message: "Logged out successfully"}, http.StatusOK)
}
