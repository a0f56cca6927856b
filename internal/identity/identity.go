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

// Package identity verifies caller tokens before the chat core is invoked.
// The production implementation delegates to the Firebase Identity Toolkit;
// a static in-memory verifier serves development and tests.
package identity

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// ErrUnauthenticated signals an invalid, expired or unknown token.
var ErrUnauthenticated = errors.New("invalid or expired token")

// ContextUIDKey is the gin context key under which the verified UID is
// stored for downstream handlers.
const ContextUIDKey = "uid"

// Identity describes a verified caller.
type Identity struct {
	UID   string `json:"uid"`
	Email string `json:"email"`
	Role  string `json:"role"`
}

// Verifier validates a bearer token and resolves the caller.
type Verifier interface {
	Verify(ctx context.Context, token string) (Identity, error)
}

const lookupEndpoint = "https://identitytoolkit.googleapis.com/v1/accounts:lookup"

// FirebaseVerifier resolves ID tokens through the Firebase Identity Toolkit
// REST API.
type FirebaseVerifier struct {
	apiKey   string
	endpoint string
	client   *http.Client
	logger   *zap.Logger
}

// NewFirebaseVerifier builds a verifier using the given web API key.
func NewFirebaseVerifier(apiKey string, logger *zap.Logger) *FirebaseVerifier {
	return &FirebaseVerifier{
		apiKey:   apiKey,
		endpoint: lookupEndpoint,
		client:   &http.Client{Timeout: 10 * time.Second},
		logger:   logger,
	}
}

type lookupResponse struct {
	Users []struct {
		LocalID          string `json:"localId"`
		Email            string `json:"email"`
		CustomAttributes string `json:"customAttributes"`
	} `json:"users"`
}

// Verify calls accounts:lookup with the ID token. Any non-OK upstream answer
// maps to ErrUnauthenticated; transport failures are returned as-is.
func (v *FirebaseVerifier) Verify(ctx context.Context, token string) (Identity, error) {
	body, err := json.Marshal(map[string]string{"idToken": token})
	if err != nil {
		return Identity{}, fmt.Errorf("failed to encode lookup request: %w", err)
	}

	url := fmt.Sprintf("%s?key=%s", v.endpoint, v.apiKey)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return Identity{}, fmt.Errorf("failed to build lookup request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := v.client.Do(req)
	if err != nil {
		return Identity{}, fmt.Errorf("token lookup failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		v.logger.Warn("token lookup rejected", zap.Int("status", resp.StatusCode))
		return Identity{}, ErrUnauthenticated
	}

	var lookup lookupResponse
	if err := json.NewDecoder(resp.Body).Decode(&lookup); err != nil {
		return Identity{}, fmt.Errorf("failed to decode lookup response: %w", err)
	}
	if len(lookup.Users) == 0 {
		return Identity{}, ErrUnauthenticated
	}

	user := lookup.Users[0]
	id := Identity{UID: user.LocalID, Email: user.Email, Role: "user"}
	if user.CustomAttributes != "" {
		var attrs struct {
			Role string `json:"role"`
		}
		if err := json.Unmarshal([]byte(user.CustomAttributes), &attrs); err == nil && attrs.Role != "" {
			id.Role = attrs.Role
		}
	}
	return id, nil
}

// StaticVerifier maps fixed tokens to identities. Intended for development
// and tests only.
type StaticVerifier map[string]Identity

// Verify resolves the token against the static table.
func (s StaticVerifier) Verify(_ context.Context, token string) (Identity, error) {
	id, ok := s[token]
	if !ok {
		return Identity{}, ErrUnauthenticated
	}
	return id, nil
}

// Middleware enforces a Bearer token on a route group. A missing token is
// rejected with 401, a bad one with 403; on success the verified UID is
// stored in the request context.
func Middleware(v Verifier, logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		token := bearerToken(c.GetHeader("Authorization"))
		if token == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Authentication token required"})
			return
		}

		id, err := v.Verify(c.Request.Context(), token)
		if err != nil {
			if !errors.Is(err, ErrUnauthenticated) {
				logger.Error("token verification failed", zap.Error(err))
			}
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "Invalid or expired token"})
			return
		}

		c.Set(ContextUIDKey, id.UID)
		c.Next()
	}
}

func bearerToken(header string) string {
	parts := strings.SplitN(header, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
		return ""
	}
	return strings.TrimSpace(parts[1])
}
