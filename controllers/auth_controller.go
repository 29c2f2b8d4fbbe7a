package controllers

import (
	"net/http"

	"github.com/thatchakomP/pixel-cat-callior/entity"
	"github.com/thatchakomP/pixel-cat-callior/logger"
	"github.com/thatchakomP/pixel-cat-callior/mapper"
	"github.com/thatchakomP/pixel-cat-callior/progression"
	"github.com/thatchakomP/pixel-cat-callior/services"
)

// AuthController serves registration and login.
type AuthController struct {
	auth services.AuthService
}

func NewAuthController(auth services.AuthService) *AuthController {
	return &AuthController{auth: auth}
}

func (c *AuthController) Register(w http.ResponseWriter, r *http.Request) {
	var req entity.RegisterRequest
	if !decode(w, r, &req) {
		return
	}
	user, err := c.auth.Register(r.Context(), req.Email, req.Password)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	logger.Info("Registration succeeded", "user_id", user.ID)
	writeJSON(w, http.StatusCreated, mapper.UserToEntity(user, mapper.UserModelToProfile(user, nil), nil))
}

func (c *AuthController) Login(w http.ResponseWriter, r *http.Request) {
	var req entity.LoginRequest
	if !decode(w, r, &req) {
		return
	}
	user, token, err := c.auth.Login(r.Context(), req.Email, req.Password)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, entity.LoginResponse{
		Token: token,
		User:  mapper.UserToEntity(user, mapper.UserModelToProfile(user, nil), nil),
	})
}

// Goals lists the accepted goal vocabulary for the onboarding form.
func Goals(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, mapper.GoalsToStrings(progression.Goals))
}
