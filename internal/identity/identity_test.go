// Copyright 2024 KNUST Chat Bot Backend Project
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package identity

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

func TestStaticVerifier(t *testing.T) {
	v := StaticVerifier{
		"dev-token": {UID: "uid-1", Email: "dev@example.com", Role: "admin"},
	}

	id, err := v.Verify(context.Background(), "dev-token")
	if err != nil {
		t.Fatalf("Verify: %v", err)
	}
	if id.UID != "uid-1" || id.Role != "admin" {
		t.Errorf("unexpected identity: %+v", id)
	}

	if _, err := v.Verify(context.Background(), "nope"); !errors.Is(err, ErrUnauthenticated) {
		t.Errorf("expected ErrUnauthenticated, got %v", err)
	}
}

func TestFirebaseVerifier(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			t.Errorf("unexpected method %s", r.Method)
		}
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"users":[{"localId":"uid-9","email":"a@b.com","customAttributes":"{\"role\":\"admin\"}"}]}`))
	}))
	defer srv.Close()

	v := NewFirebaseVerifier("key", zap.NewNop())
	v.endpoint = srv.URL

	id, err := v.Verify(context.Background(), "some-token")
	if err != nil {
		t.Fatalf("Verify: %v", err)
	}
	if id.UID != "uid-9" || id.Role != "admin" {
		t.Errorf("unexpected identity: %+v", id)
	}
}

func TestFirebaseVerifierRejected(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, `{"error":{"message":"INVALID_ID_TOKEN"}}`, http.StatusBadRequest)
	}))
	defer srv.Close()

	v := NewFirebaseVerifier("key", zap.NewNop())
	v.endpoint = srv.URL

	if _, err := v.Verify(context.Background(), "bad"); !errors.Is(err, ErrUnauthenticated) {
		t.Errorf("expected ErrUnauthenticated, got %v", err)
	}
}

func TestMiddleware(t *testing.T) {
	gin.SetMode(gin.TestMode)

	v := StaticVerifier{"good": {UID: "uid-1"}}
	r := gin.New()
	r.GET("/protected", Middleware(v, zap.NewNop()), func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"uid": c.GetString(ContextUIDKey)})
	})

	tests := []struct {
		name       string
		authHeader string
		wantStatus int
	}{
		{"missing token", "", http.StatusUnauthorized},
		{"malformed header", "good", http.StatusUnauthorized},
		{"invalid token", "Bearer bad", http.StatusForbidden},
		{"valid token", "Bearer good", http.StatusOK},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/protected", nil)
			if tt.authHeader != "" {
				req.Header.Set("Authorization", tt.authHeader)
			}
			w := httptest.NewRecorder()
			r.ServeHTTP(w, req)
			if w.Code != tt.wantStatus {
				t.Errorf("status = %d, want %d", w.Code, tt.wantStatus)
			}
		})
	}
}
