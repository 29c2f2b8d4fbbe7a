package controllers

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/thatchakomP/pixel-cat-callior/entity"
	"github.com/thatchakomP/pixel-cat-callior/models"
	"github.com/thatchakomP/pixel-cat-callior/services"
)

type fakeAuth struct{}

func (fakeAuth) Register(_ context.Context, email, _ string) (*models.User, error) {
	if email == "taken@example.com" {
		return nil, services.ErrEmailTaken
	}
	return &models.User{ID: "u1", Email: email, Password: "hash"}, nil
}

func (fakeAuth) Login(_ context.Context, email, password string) (*models.User, string, error) {
	if password != "whiskers42" {
		return nil, "", services.ErrInvalidCredentials
	}
	return &models.User{ID: "u1", Email: email}, "signed.jwt.token", nil
}

func TestRegister(t *testing.T) {
	t.Parallel()
	c := NewAuthController(fakeAuth{})

	rec := httptest.NewRecorder()
	c.Register(rec, httptest.NewRequest(http.MethodPost, "/api/user/register",
		strings.NewReader(`{"email":"new@example.com","password":"whiskers42"}`)))
	if rec.Code != http.StatusCreated {
		t.Fatalf("status = %d", rec.Code)
	}
	if strings.Contains(rec.Body.String(), "hash") {
		t.Fatal("password hash leaked")
	}

	rec = httptest.NewRecorder()
	c.Register(rec, httptest.NewRequest(http.MethodPost, "/api/user/register",
		strings.NewReader(`{"email":"taken@example.com","password":"whiskers42"}`)))
	if rec.Code != http.StatusConflict {
		t.Fatalf("duplicate status = %d", rec.Code)
	}
}

func TestLogin(t *testing.T) {
	t.Parallel()
	c := NewAuthController(fakeAuth{})

	rec := httptest.NewRecorder()
	c.Login(rec, httptest.NewRequest(http.MethodPost, "/api/auth/login",
		strings.NewReader(`{"email":"a@example.com","password":"whiskers42"}`)))
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
	var resp entity.LoginResponse
	if err := json.NewDecoder(rec.Body).Decode(&resp); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if resp.Token != "signed.jwt.token" || resp.User.ID != "u1" {
		t.Fatalf("resp = %+v", resp)
	}

	rec = httptest.NewRecorder()
	c.Login(rec, httptest.NewRequest(http.MethodPost, "/api/auth/login",
		strings.NewReader(`{"email":"a@example.com","password":"nope"}`)))
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("bad password status = %d", rec.Code)
	}
}
