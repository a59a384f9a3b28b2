package http

import (
	"net/http"

	"github.com/cmlabs-hris/shift-scheduler-go/internal/handler/http/middleware"
	"github.com/cmlabs-hris/shift-scheduler-go/internal/handler/http/response"
	"github.com/cmlabs-hris/shift-scheduler-go/internal/pkg/jwt"
)

type AuthHandler interface {
	IssueStreamToken(w http.ResponseWriter, r *http.Request)
}

type authHandlerImpl struct {
	jwtService jwt.Service
}

func NewAuthHandler(jwtService jwt.Service) AuthHandler {
	return &authHandlerImpl{jwtService: jwtService}
}

type streamTokenResponse struct {
	Token     string `json:"token"`
	ExpiresIn int    `json:"expires_in"`
}

// IssueStreamToken exchanges a bearer token for a short-lived token the
// schedule stream accepts as a query parameter.
func (h *authHandlerImpl) IssueStreamToken(w http.ResponseWriter, r *http.Request) {
	token, expiresIn, err := h.jwtService.GenerateSSEToken(middleware.Subject(r.Context()))
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, streamTokenResponse{Token: token, ExpiresIn: expiresIn})
}
