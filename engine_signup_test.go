package stayauth

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"testing"
)

func TestSignupSuccessReturnsServerMessage(t *testing.T) {
	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/users/signup" {
			t.Errorf("unexpected path %s", r.URL.Path)
		}
		var body SignupRequest
		_ = json.NewDecoder(r.Body).Decode(&body)
		if body.Username != "alice" || body.Email != "alice@example.com" {
			t.Errorf("unexpected payload %+v", body)
		}
		writeTestJSON(w, http.StatusCreated, map[string]any{
			"success": true,
			"message": "account created, check your email",
		})
	})
	engine, _, _ := newTestEngine(t, handler, nil)

	msg, err := engine.Signup(context.Background(), SignupRequest{
		Username: "alice",
		Email:    "alice@example.com",
		Password: "correct-horse",
	})
	if err != nil {
		t.Fatalf("signup failed: %v", err)
	}
	if msg != "account created, check your email" {
		t.Fatalf("expected server message, got %q", msg)
	}

	// Registration never establishes a session on its own.
	if snap := engine.State(); snap.Status != StatusIdle || snap.IsAuthenticated {
		t.Fatalf("expected session untouched by signup, got %+v", snap)
	}
	if got := engine.MetricsSnapshot().Counters[MetricSignupSuccess]; got != 1 {
		t.Fatalf("expected one signup success, got %d", got)
	}
}

func TestSignupRejectionKeepsServerMessage(t *testing.T) {
	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		writeTestJSON(w, http.StatusConflict, map[string]any{
			"success": false,
			"message": "email already registered",
		})
	})
	engine, _, _ := newTestEngine(t, handler, nil)

	_, err := engine.Signup(context.Background(), SignupRequest{
		Username: "alice",
		Email:    "alice@example.com",
		Password: "p",
	})
	if err == nil {
		t.Fatal("expected signup to fail")
	}
	var apiErr *APIError
	if !errors.As(err, &apiErr) || apiErr.Message != "email already registered" {
		t.Fatalf("expected server message preserved, got %v", err)
	}
	if apiErr.HTTPStatus != http.StatusConflict {
		t.Fatalf("expected status 409, got %d", apiErr.HTTPStatus)
	}
	if snap := engine.State(); snap.Status != StatusIdle {
		t.Fatalf("expected session untouched by failed signup, got %s", snap.Status)
	}
	if got := engine.MetricsSnapshot().Counters[MetricSignupFailure]; got != 1 {
		t.Fatalf("expected one signup failure, got %d", got)
	}
}
