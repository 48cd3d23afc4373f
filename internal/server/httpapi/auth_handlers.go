package httpapi

import (
	"errors"
	"net/http"

	"github.com/dmitrijs2005/seedstock/internal/common"
)

type credentialsRequest struct {
	UserName string `json:"username"`
	Password string `json:"password"`
}

type loginResponse struct {
	Token string `json:"token"`
}

func (s *HTTPServer) register(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var req credentialsRequest
	if err := decodeBody(w, r, &req); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	s.logger.Info(ctx, "Registration request", "username", req.UserName)

	account, err := s.accounts.Register(ctx, req.UserName, req.Password)
	if err != nil {
		switch {
		case errors.Is(err, common.ErrorValidation):
			writeError(w, http.StatusBadRequest, "Username and password are required")
		case errors.Is(err, common.ErrorAlreadyExists):
			writeError(w, http.StatusConflict, "Username already exists")
		default:
			s.logger.Error(ctx, "registration failed", "error", err.Error())
			writeError(w, http.StatusInternalServerError, "Registration failed")
		}
		return
	}

	s.logger.Info(ctx, "Registered", "username", account.UserName, "id", account.ID)
	_ = writeJSON(w, http.StatusCreated, messageResponse{Message: "User registered successfully"})
}

func (s *HTTPServer) login(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var req credentialsRequest
	if err := decodeBody(w, r, &req); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	token, err := s.accounts.Login(ctx, req.UserName, req.Password)
	if err != nil {
		if errors.Is(err, common.ErrorAuthenticationFailed) {
			s.logger.Warn(ctx, "authentication failed", "username", req.UserName)
			writeError(w, http.StatusUnauthorized, "Authentication failed")
			return
		}
		s.logger.Error(ctx, "login failed", "error", err.Error())
		writeError(w, http.StatusInternalServerError, "Login failed")
		return
	}

	_ = writeJSON(w, http.StatusOK, loginResponse{Token: token})
}
