package stayauth

import (
	"errors"
	"testing"
)

func TestResolveLoginBareFullSession(t *testing.T) {
	body := []byte(`{"token":"tok-1","user":{"_id":"u1","username":"alice","email":"a@b.c"}}`)

	result, err := resolveLoginPayload(body)
	if err != nil {
		t.Fatalf("resolve failed: %v", err)
	}
	if result.Token != "tok-1" {
		t.Fatalf("expected token tok-1, got %q", result.Token)
	}
	if result.User == nil || result.User.ID != "u1" {
		t.Fatalf("expected user u1, got %+v", result.User)
	}
	if result.TwoFactorRequired {
		t.Fatal("full session must not report a challenge")
	}
}

func TestResolveLoginBareChallenge(t *testing.T) {
	body := []byte(`{"requireTwoFactor":true,"userId":"u1"}`)

	result, err := resolveLoginPayload(body)
	if err != nil {
		t.Fatalf("resolve failed: %v", err)
	}
	if !result.TwoFactorRequired || result.TwoFactorUserID != "u1" {
		t.Fatalf("expected pending challenge for u1, got %+v", result)
	}
	if result.Token != "" || result.User != nil {
		t.Fatal("challenge must not carry credentials")
	}
}

func TestResolveLoginEnvelopedFullSession(t *testing.T) {
	body := []byte(`{"success":true,"data":{"token":"tok-2","user":{"_id":"u2","username":"bob","email":"b@b.c"}}}`)

	result, err := resolveLoginPayload(body)
	if err != nil {
		t.Fatalf("resolve failed: %v", err)
	}
	if result.Token != "tok-2" || result.User == nil || result.User.ID != "u2" {
		t.Fatalf("expected enveloped session to unwrap, got %+v", result)
	}
}

func TestResolveLoginEnvelopedChallenge(t *testing.T) {
	body := []byte(`{"success":true,"data":{"requireTwoFactor":true,"userId":"u3"}}`)

	result, err := resolveLoginPayload(body)
	if err != nil {
		t.Fatalf("resolve failed: %v", err)
	}
	if !result.TwoFactorRequired || result.TwoFactorUserID != "u3" {
		t.Fatalf("expected enveloped challenge to unwrap, got %+v", result)
	}
}

func TestResolveLoginFullSessionWinsOverChallengeFlag(t *testing.T) {
	// A payload carrying both shapes resolves to the higher-priority one.
	body := []byte(`{"token":"tok-1","user":{"_id":"u1","username":"alice","email":"a@b.c"},"requireTwoFactor":true,"userId":"u1"}`)

	result, err := resolveLoginPayload(body)
	if err != nil {
		t.Fatalf("resolve failed: %v", err)
	}
	if result.TwoFactorRequired {
		t.Fatal("expected full session to take priority over the challenge flag")
	}
	if result.Token != "tok-1" {
		t.Fatalf("expected token tok-1, got %q", result.Token)
	}
}

func TestResolveLoginExplicitServerFailure(t *testing.T) {
	body := []byte(`{"success":false,"message":"account suspended","error":"contact support"}`)

	_, err := resolveLoginPayload(body)
	if err == nil {
		t.Fatal("expected a failure")
	}
	var apiErr *APIError
	if !errors.As(err, &apiErr) {
		t.Fatalf("expected *APIError, got %T", err)
	}
	if apiErr.Message != "account suspended" {
		t.Fatalf("expected server message preserved, got %q", apiErr.Message)
	}
	if apiErr.Detail != "contact support" {
		t.Fatalf("expected detail preserved, got %q", apiErr.Detail)
	}
	if !errors.Is(err, ErrServerRejected) {
		t.Fatal("expected ErrServerRejected cause")
	}
}

func TestResolveLoginUnrecognizedShapesFail(t *testing.T) {
	cases := map[string][]byte{
		"empty object":          []byte(`{}`),
		"token without user":    []byte(`{"token":"tok-1"}`),
		"user without token":    []byte(`{"user":{"_id":"u1"}}`),
		"challenge without id":  []byte(`{"requireTwoFactor":true}`),
		"challenge flag false":  []byte(`{"requireTwoFactor":false,"userId":"u1"}`),
		"success with no data":  []byte(`{"success":true}`),
		"double nested data":    []byte(`{"success":true,"data":{"success":true,"data":{"token":"t","user":{"_id":"u"}}}}`),
		"not json at all":       []byte(`<html>gateway timeout</html>`),
		"unrelated fields only": []byte(`{"hello":"world"}`),
	}

	for name, body := range cases {
		_, err := resolveLoginPayload(body)
		if err == nil {
			t.Fatalf("%s: expected failure", name)
		}
		if !errors.Is(err, ErrUnrecognizedResponse) {
			t.Fatalf("%s: expected ErrUnrecognizedResponse, got %v", name, err)
		}
		var apiErr *APIError
		if !errors.As(err, &apiErr) || apiErr.Message != msgUnrecognizedFormat {
			t.Fatalf("%s: expected canonical unrecognized message, got %v", name, err)
		}
	}
}

func TestResolveUserEnvelope(t *testing.T) {
	user, err := resolveUserEnvelope([]byte(`{"success":true,"data":{"_id":"u1","username":"alice","email":"a@b.c"}}`))
	if err != nil {
		t.Fatalf("resolve failed: %v", err)
	}
	if user.ID != "u1" || user.Username != "alice" {
		t.Fatalf("unexpected user %+v", user)
	}

	_, err = resolveUserEnvelope([]byte(`{"success":false,"message":"token expired"}`))
	if err == nil || !errors.Is(err, ErrServerRejected) {
		t.Fatalf("expected server rejection, got %v", err)
	}
	var apiErr *APIError
	if !errors.As(err, &apiErr) || apiErr.Message != "token expired" {
		t.Fatalf("expected server message preserved, got %v", err)
	}

	_, err = resolveUserEnvelope([]byte(`{"data":{"_id":"u1"}}`))
	if err == nil || !errors.Is(err, ErrUnrecognizedResponse) {
		t.Fatalf("expected unrecognized shape, got %v", err)
	}
}

func TestResolveMessageEnvelope(t *testing.T) {
	msg, err := resolveMessageEnvelope([]byte(`{"success":true,"message":"welcome aboard"}`), "ok", "failed")
	if err != nil {
		t.Fatalf("resolve failed: %v", err)
	}
	if msg != "welcome aboard" {
		t.Fatalf("expected server message, got %q", msg)
	}

	msg, err = resolveMessageEnvelope([]byte(`{"success":true}`), "ok", "failed")
	if err != nil {
		t.Fatalf("resolve failed: %v", err)
	}
	if msg != "ok" {
		t.Fatalf("expected default success message, got %q", msg)
	}

	_, err = resolveMessageEnvelope([]byte(`{"success":false}`), "ok", "failed")
	if err == nil {
		t.Fatal("expected failure")
	}
	var apiErr *APIError
	if !errors.As(err, &apiErr) || apiErr.Message != "failed" {
		t.Fatalf("expected default failure message, got %v", err)
	}

	_, err = resolveMessageEnvelope([]byte(`{"message":"no verdict"}`), "ok", "failed")
	if err == nil || !errors.Is(err, ErrUnrecognizedResponse) {
		t.Fatalf("expected unrecognized shape, got %v", err)
	}
}
