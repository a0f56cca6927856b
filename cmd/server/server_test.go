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

package main

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/officialjwise/knust-chat-bot-backend/internal/catalog"
	"github.com/officialjwise/knust-chat-bot-backend/internal/chat"
	"github.com/officialjwise/knust-chat-bot-backend/internal/config"
	"github.com/officialjwise/knust-chat-bot-backend/internal/fuzzy"
	"github.com/officialjwise/knust-chat-bot-backend/internal/health"
	"github.com/officialjwise/knust-chat-bot-backend/internal/identity"
	"github.com/officialjwise/knust-chat-bot-backend/internal/store"
)

// fakeBot records the last call and returns a scripted response.
type fakeBot struct {
	response string
	err      error
	lastUID  string
	calls    int
}

func (f *fakeBot) HandleMessage(ctx context.Context, message, sender, uid string) (string, error) {
	f.calls++
	f.lastUID = uid
	if strings.TrimSpace(message) == "" {
		return "", chat.ErrEmptyMessage
	}
	return f.response, f.err
}

func newTestServer(t *testing.T, bot messageHandler) (*server, *store.Store) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	st, err := store.New(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("Failed to open store: %v", err)
	}
	t.Cleanup(func() { _ = st.Close() })

	logger := zap.NewNop()
	cat := catalog.Load()
	manager := health.NewManager("knust-chat-bot", "test", logger)
	manager.AddChecker("database", health.DatabaseHealthChecker("sqlite", st.Ping))
	manager.AddChecker("catalog", health.CatalogHealthChecker(cat.Len))

	return &server{
		logger:  logger,
		bot:     bot,
		catalog: cat,
		matcher: fuzzy.NewMatcher(cat),
		store:   st,
		health:  manager,
	}, st
}

func doRequest(router *gin.Engine, method, path, body string, headers map[string]string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, bytes.NewBufferString(body))
	req.Header.Set("Content-Type", "application/json")
	for k, v := range headers {
		req.Header.Set(k, v)
	}
	rr := httptest.NewRecorder()
	router.ServeHTTP(rr, req)
	return rr
}

func decodeBody(t *testing.T, rr *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()
	var body map[string]interface{}
	if err := json.Unmarshal(rr.Body.Bytes(), &body); err != nil {
		t.Fatalf("Failed to decode response body: %v", err)
	}
	return body
}

func TestHandleChat(t *testing.T) {
	bot := &fakeBot{response: "Hello! How can I help you with KNUST admissions?"}
	srv, _ := newTestServer(t, bot)
	router := newRouter(srv, nil)

	rr := doRequest(router, "POST", "/chat", `{"message": "hi", "sender": "user-1"}`, nil)

	if rr.Code != http.StatusOK {
		t.Fatalf("Expected status 200, got %d", rr.Code)
	}
	body := decodeBody(t, rr)
	if body["response"] != bot.response {
		t.Errorf("Expected scripted response, got %v", body["response"])
	}
	if bot.lastUID != "user-1" {
		t.Errorf("Expected uid to fall back to sender, got %s", bot.lastUID)
	}
}

func TestHandleChat_EmptyMessage(t *testing.T) {
	srv, _ := newTestServer(t, &fakeBot{})
	router := newRouter(srv, nil)

	rr := doRequest(router, "POST", "/chat", `{"message": "  ", "sender": "user-1"}`, nil)

	if rr.Code != http.StatusBadRequest {
		t.Errorf("Expected status 400 for empty message, got %d", rr.Code)
	}
}

func TestHandleChat_InvalidJSON(t *testing.T) {
	srv, _ := newTestServer(t, &fakeBot{})
	router := newRouter(srv, nil)

	rr := doRequest(router, "POST", "/chat", `{not json`, nil)

	if rr.Code != http.StatusBadRequest {
		t.Errorf("Expected status 400 for invalid JSON, got %d", rr.Code)
	}
}

func TestHandleChat_UpstreamFailure(t *testing.T) {
	apology := "I apologize, but I'm having trouble processing your request right now. Please try again."
	bot := &fakeBot{response: apology, err: errors.New("model unavailable")}
	srv, _ := newTestServer(t, bot)
	router := newRouter(srv, nil)

	rr := doRequest(router, "POST", "/chat", `{"message": "fees for law", "sender": "user-1"}`, nil)

	if rr.Code != http.StatusInternalServerError {
		t.Fatalf("Expected status 500, got %d", rr.Code)
	}
	body := decodeBody(t, rr)
	if body["response"] != apology {
		t.Errorf("Expected apology in response body, got %v", body["response"])
	}
	if strings.Contains(rr.Body.String(), "model unavailable") {
		t.Error("Raw upstream error must not leak to the client")
	}
}

func TestHandleChat_Authentication(t *testing.T) {
	bot := &fakeBot{response: "ok"}
	srv, _ := newTestServer(t, bot)
	verifier := identity.StaticVerifier{"secret-token": {UID: "verified-user"}}
	router := newRouter(srv, verifier)

	// Missing token
	rr := doRequest(router, "POST", "/chat", `{"message": "hi", "sender": "user-1"}`, nil)
	if rr.Code != http.StatusUnauthorized {
		t.Errorf("Expected status 401 without token, got %d", rr.Code)
	}

	// Invalid token
	rr = doRequest(router, "POST", "/chat", `{"message": "hi", "sender": "user-1"}`, map[string]string{
		"Authorization": "Bearer wrong-token",
	})
	if rr.Code != http.StatusForbidden {
		t.Errorf("Expected status 403 for invalid token, got %d", rr.Code)
	}

	// Valid token; uid comes from the verified identity, not the sender field
	rr = doRequest(router, "POST", "/chat", `{"message": "hi", "sender": "user-1"}`, map[string]string{
		"Authorization": "Bearer secret-token",
	})
	if rr.Code != http.StatusOK {
		t.Errorf("Expected status 200 with valid token, got %d", rr.Code)
	}
	if bot.lastUID != "verified-user" {
		t.Errorf("Expected uid from verified identity, got %s", bot.lastUID)
	}

	// Catalog routes are protected too; only health stays public
	rr = doRequest(router, "GET", "/programs", "", nil)
	if rr.Code != http.StatusUnauthorized {
		t.Errorf("Expected catalog route to require auth, got %d", rr.Code)
	}
	rr = doRequest(router, "GET", "/health", "", nil)
	if rr.Code != http.StatusOK {
		t.Errorf("Expected health to bypass auth, got %d", rr.Code)
	}
}

func TestHandlePrograms(t *testing.T) {
	srv, _ := newTestServer(t, &fakeBot{})
	router := newRouter(srv, nil)

	rr := doRequest(router, "GET", "/programs", "", nil)

	if rr.Code != http.StatusOK {
		t.Fatalf("Expected status 200, got %d", rr.Code)
	}
	body := decodeBody(t, rr)
	count, ok := body["count"].(float64)
	if !ok || count == 0 {
		t.Errorf("Expected non-zero program count, got %v", body["count"])
	}
}

func TestHandleSearchPrograms(t *testing.T) {
	srv, _ := newTestServer(t, &fakeBot{})
	router := newRouter(srv, nil)

	rr := doRequest(router, "GET", "/programs/search?q=computer", "", nil)

	if rr.Code != http.StatusOK {
		t.Fatalf("Expected status 200, got %d", rr.Code)
	}
	if !strings.Contains(rr.Body.String(), "BSc Computer Science") {
		t.Errorf("Expected search results to include BSc Computer Science, got %s", rr.Body.String())
	}
}

func TestHandleSearchPrograms_CollegeFilter(t *testing.T) {
	srv, _ := newTestServer(t, &fakeBot{})
	router := newRouter(srv, nil)

	rr := doRequest(router, "GET", "/programs/search?query=computer&college=College+of+Engineering", "", nil)

	if rr.Code != http.StatusOK {
		t.Fatalf("Expected status 200, got %d", rr.Code)
	}
	if strings.Contains(rr.Body.String(), "BSc Computer Science") {
		t.Errorf("Expected science programmes to be filtered out, got %s", rr.Body.String())
	}
	if !strings.Contains(rr.Body.String(), "BSc Computer Engineering") {
		t.Errorf("Expected engineering programme in results, got %s", rr.Body.String())
	}
}

func TestHandleSearchPrograms_MissingQuery(t *testing.T) {
	srv, _ := newTestServer(t, &fakeBot{})
	router := newRouter(srv, nil)

	rr := doRequest(router, "GET", "/programs/search", "", nil)

	if rr.Code != http.StatusBadRequest {
		t.Errorf("Expected status 400 without query, got %d", rr.Code)
	}
}

func TestHandleCalculateAggregate(t *testing.T) {
	srv, _ := newTestServer(t, &fakeBot{})
	router := newRouter(srv, nil)

	body := `{
		"english": "A1",
		"math": "A1",
		"integratedScience": "A1",
		"electives": [
			{"subject": "Physics", "grade": "A1"},
			{"subject": "Chemistry", "grade": "A1"},
			{"subject": "Elective Mathematics", "grade": "A1"}
		]
	}`
	rr := doRequest(router, "POST", "/calculate-aggregate", body, nil)

	if rr.Code != http.StatusOK {
		t.Fatalf("Expected status 200, got %d", rr.Code)
	}
	resp := decodeBody(t, rr)
	if resp["aggregate"] != float64(6) {
		t.Errorf("Expected aggregate 6, got %v", resp["aggregate"])
	}
}

func TestHandleCalculateAggregate_MissingCore(t *testing.T) {
	srv, _ := newTestServer(t, &fakeBot{})
	router := newRouter(srv, nil)

	rr := doRequest(router, "POST", "/calculate-aggregate", `{"english": "A1"}`, nil)

	if rr.Code != http.StatusBadRequest {
		t.Errorf("Expected status 400 for missing core grades, got %d", rr.Code)
	}
}

func TestHandleRecommend(t *testing.T) {
	srv, st := newTestServer(t, &fakeBot{})
	router := newRouter(srv, nil)

	body := `{
		"english": "A1",
		"math": "A1",
		"integratedScience": "A1",
		"gender": "male",
		"electives": [
			{"subject": "Physics", "grade": "A1"},
			{"subject": "Chemistry", "grade": "A1"},
			{"subject": "Elective Mathematics", "grade": "A1"}
		]
	}`
	rr := doRequest(router, "POST", "/recommend", body, nil)

	if rr.Code != http.StatusOK {
		t.Fatalf("Expected status 200, got %d: %s", rr.Code, rr.Body.String())
	}
	resp := decodeBody(t, rr)
	if resp["aggregate"] != float64(6) {
		t.Errorf("Expected aggregate 6, got %v", resp["aggregate"])
	}
	recs, ok := resp["recommendations"].([]interface{})
	if !ok || len(recs) == 0 {
		t.Fatalf("Expected recommendations, got %v", resp["recommendations"])
	}

	// The result must be persisted for the anonymous caller
	records, err := st.Recommendations(context.Background(), "anonymous", 10)
	if err != nil {
		t.Fatalf("Failed to read persisted recommendations: %v", err)
	}
	if len(records) != 1 {
		t.Errorf("Expected 1 persisted recommendation, got %d", len(records))
	}
}

func TestHandleRecommendations(t *testing.T) {
	srv, st := newTestServer(t, &fakeBot{})
	router := newRouter(srv, nil)

	if err := st.SaveRecommendation(context.Background(), "user-9", 12, map[string]string{"k": "v"}); err != nil {
		t.Fatalf("Failed to seed recommendation: %v", err)
	}

	rr := doRequest(router, "GET", "/recommendations?sender=user-9", "", nil)
	if rr.Code != http.StatusOK {
		t.Fatalf("Expected status 200, got %d", rr.Code)
	}
	body := decodeBody(t, rr)
	if body["count"] != float64(1) {
		t.Errorf("Expected 1 recommendation, got %v", body["count"])
	}

	rr = doRequest(router, "GET", "/recommendations", "", nil)
	if rr.Code != http.StatusBadRequest {
		t.Errorf("Expected status 400 without sender, got %d", rr.Code)
	}
}

func TestHandleChatHistory(t *testing.T) {
	srv, st := newTestServer(t, &fakeBot{})
	router := newRouter(srv, nil)

	if err := st.SaveExchange(context.Background(), "user-7", "hello", "Hello!"); err != nil {
		t.Fatalf("Failed to seed history: %v", err)
	}

	rr := doRequest(router, "GET", "/chat-history?sender=user-7", "", nil)
	if rr.Code != http.StatusOK {
		t.Fatalf("Expected status 200, got %d", rr.Code)
	}
	body := decodeBody(t, rr)
	if body["count"] != float64(1) {
		t.Errorf("Expected 1 history record, got %v", body["count"])
	}

	rr = doRequest(router, "GET", "/chat-history", "", nil)
	if rr.Code != http.StatusBadRequest {
		t.Errorf("Expected status 400 without sender, got %d", rr.Code)
	}
}

func TestFAQLifecycle(t *testing.T) {
	srv, st := newTestServer(t, &fakeBot{})
	router := newRouter(srv, nil)

	// Create twice; second create bumps frequency
	for i := 0; i < 2; i++ {
		rr := doRequest(router, "POST", "/faqs", `{"question": "What is the cutoff for law?", "answer": "06"}`, nil)
		if rr.Code != http.StatusCreated {
			t.Fatalf("Expected status 201, got %d", rr.Code)
		}
	}

	rr := doRequest(router, "GET", "/faqs", "", nil)
	if rr.Code != http.StatusOK {
		t.Fatalf("Expected status 200, got %d", rr.Code)
	}
	body := decodeBody(t, rr)
	if body["count"] != float64(1) {
		t.Fatalf("Expected 1 FAQ, got %v", body["count"])
	}

	faqs, err := st.ListFAQs(context.Background(), 10)
	if err != nil {
		t.Fatalf("Failed to list FAQs: %v", err)
	}
	if faqs[0].Frequency != 2 {
		t.Errorf("Expected frequency 2 after repeat, got %d", faqs[0].Frequency)
	}

	// Fetch and update by ID
	rr = doRequest(router, "GET", "/faqs/1", "", nil)
	if rr.Code != http.StatusOK {
		t.Fatalf("Expected status 200 for get, got %d", rr.Code)
	}
	if !strings.Contains(rr.Body.String(), "What is the cutoff for law?") {
		t.Errorf("Expected stored question in body, got %s", rr.Body.String())
	}
	rr = doRequest(router, "PUT", "/faqs/1", `{"question": "What is the cut-off for LLB?", "answer": "06"}`, nil)
	if rr.Code != http.StatusOK {
		t.Fatalf("Expected status 200 for update, got %d", rr.Code)
	}
	rr = doRequest(router, "GET", "/faqs/999", "", nil)
	if rr.Code != http.StatusNotFound {
		t.Errorf("Expected status 404 for missing FAQ, got %d", rr.Code)
	}

	// Delete it, then deleting again reports not found
	rr = doRequest(router, "DELETE", "/faqs/1", "", nil)
	if rr.Code != http.StatusOK {
		t.Errorf("Expected status 200 for delete, got %d", rr.Code)
	}
	rr = doRequest(router, "DELETE", "/faqs/1", "", nil)
	if rr.Code != http.StatusNotFound {
		t.Errorf("Expected status 404 for missing FAQ, got %d", rr.Code)
	}
	rr = doRequest(router, "DELETE", "/faqs/abc", "", nil)
	if rr.Code != http.StatusBadRequest {
		t.Errorf("Expected status 400 for invalid ID, got %d", rr.Code)
	}
}

func TestFAQValidation(t *testing.T) {
	srv, _ := newTestServer(t, &fakeBot{})
	router := newRouter(srv, nil)

	rr := doRequest(router, "POST", "/faqs", `{"question": "", "answer": "something"}`, nil)
	if rr.Code != http.StatusBadRequest {
		t.Errorf("Expected status 400 for empty question, got %d", rr.Code)
	}
}

func TestHealthEndpoint(t *testing.T) {
	srv, _ := newTestServer(t, &fakeBot{})
	router := newRouter(srv, nil)

	rr := doRequest(router, "GET", "/health", "", nil)
	if rr.Code != http.StatusOK {
		t.Fatalf("Expected status 200, got %d: %s", rr.Code, rr.Body.String())
	}
	body := decodeBody(t, rr)
	if body["status"] != "healthy" {
		t.Errorf("Expected healthy status, got %v", body["status"])
	}
}

func TestBuildVerifier(t *testing.T) {
	logger := zap.NewNop()

	cfg := &config.Config{}
	cfg.Auth.Mode = "none"
	v, err := buildVerifier(cfg, logger)
	if err != nil || v != nil {
		t.Errorf("Expected nil verifier for mode none, got %v, %v", v, err)
	}

	cfg.Auth.Mode = "static"
	cfg.Auth.StaticTokens = map[string]string{"tok": "uid"}
	v, err = buildVerifier(cfg, logger)
	if err != nil || v == nil {
		t.Errorf("Expected static verifier, got %v, %v", v, err)
	}

	cfg.Auth.Mode = "firebase"
	cfg.Auth.FirebaseAPIKey = "key"
	v, err = buildVerifier(cfg, logger)
	if err != nil || v == nil {
		t.Errorf("Expected firebase verifier, got %v, %v", v, err)
	}

	cfg.Auth.Mode = "bogus"
	if _, err = buildVerifier(cfg, logger); err == nil {
		t.Error("Expected error for unknown auth mode")
	}
}
