package handlers_test

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/clickfit/clickfit/internal/domain/user"
	"github.com/clickfit/clickfit/internal/http/handlers"
)

type fakeAuthenticator struct {
	authFn func(ctx context.Context, email, password string) (user.User, error)
}

func (f *fakeAuthenticator) Authenticate(ctx context.Context, email, password string) (user.User, error) {
	if f.authFn != nil {
		return f.authFn(ctx, email, password)
	}

	return user.User{}, nil
}

func TestLoginHandler(t *testing.T) {
	tests := []struct {
		name           string
		body           string
		authFn         func(ctx context.Context, email, password string) (user.User, error)
		wantStatusCode int
		wantMessage    string
	}{
		{
			name: "success",
			body: `{"email": "a@x.com", "password": "p1"}`,
			authFn: func(ctx context.Context, email, password string) (user.User, error) {
				return sampleUser(1, user.TypeMember), nil
			},
			wantStatusCode: http.StatusOK,
			wantMessage:    "Login successful",
		},
		{
			name: "missing_credentials",
			body: `{"email": "a@x.com"}`,
			authFn: func(ctx context.Context, email, password string) (user.User, error) {
				return user.User{}, user.NewValidationError("Email and password are required")
			},
			wantStatusCode: http.StatusBadRequest,
			wantMessage:    "Email and password are required",
		},
		{
			name: "wrong_password",
			body: `{"email": "a@x.com", "password": "nope"}`,
			authFn: func(ctx context.Context, email, password string) (user.User, error) {
				return user.User{}, user.ErrInvalidCredentials
			},
			wantStatusCode: http.StatusUnauthorized,
			wantMessage:    "Invalid credentials",
		},
		{
			name: "deactivated_account",
			body: `{"email": "a@x.com", "password": "p1"}`,
			authFn: func(ctx context.Context, email, password string) (user.User, error) {
				return user.User{}, user.ErrDeactivated
			},
			wantStatusCode: http.StatusUnauthorized,
			wantMessage:    "Account is deactivated",
		},
		{
			name: "backend_error",
			body: `{"email": "a@x.com", "password": "p1"}`,
			authFn: func(ctx context.Context, email, password string) (user.User, error) {
				return user.User{}, errors.New("db error")
			},
			wantStatusCode: http.StatusInternalServerError,
		},
		{
			name:           "malformed_json",
			body:           `{"email": }`,
			authFn:         nil,
			wantStatusCode: http.StatusBadRequest,
			wantMessage:    "Invalid JSON body",
		},
	}

	for _, tt := range tests {
		tt := tt

		t.Run(tt.name, func(t *testing.T) {
			h := handlers.NewAuthHandler(&fakeAuthenticator{authFn: tt.authFn})
			r := setupRouter(http.MethodPost, "/login", h.Login)

			req := httptest.NewRequest(http.MethodPost, "/login", bytes.NewBufferString(tt.body))
			req.Header.Set("Content-Type", "application/json")

			w := httptest.NewRecorder()
			r.ServeHTTP(w, req)

			if w.Code != tt.wantStatusCode {
				t.Fatalf("got status %d, want %d, body=%s", w.Code, tt.wantStatusCode, w.Body.String())
			}

			if tt.wantMessage != "" {
				var resp struct {
					Message string `json:"message"`
				}

				if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
					t.Fatalf("failed to unmarshal response: %v", err)
				}

				if resp.Message != tt.wantMessage {
					t.Fatalf("got message %q, want %q", resp.Message, tt.wantMessage)
				}
			}
		})
	}
}

func TestLoginHandlerHidesPasswordHash(t *testing.T) {
	h := handlers.NewAuthHandler(&fakeAuthenticator{
		authFn: func(ctx context.Context, email, password string) (user.User, error) {
			u := sampleUser(1, user.TypeMember)
			u.PasswordHash = "$2a$10$notforclients"

			return u, nil
		},
	})

	r := setupRouter(http.MethodPost, "/login", h.Login)

	req := httptest.NewRequest(http.MethodPost, "/login", bytes.NewBufferString(`{"email": "a@x.com", "password": "p1"}`))
	req.Header.Set("Content-Type", "application/json")

	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("got status %d, body=%s", w.Code, w.Body.String())
	}

	if bytes.Contains(w.Body.Bytes(), []byte("notforclients")) {
		t.Fatalf("password hash leaked into response: %s", w.Body.String())
	}
}
