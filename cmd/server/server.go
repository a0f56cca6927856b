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
	"context"
	"database/sql"
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/officialjwise/knust-chat-bot-backend/internal/admission"
	"github.com/officialjwise/knust-chat-bot-backend/internal/catalog"
	"github.com/officialjwise/knust-chat-bot-backend/internal/chat"
	"github.com/officialjwise/knust-chat-bot-backend/internal/config"
	"github.com/officialjwise/knust-chat-bot-backend/internal/fuzzy"
	"github.com/officialjwise/knust-chat-bot-backend/internal/health"
	"github.com/officialjwise/knust-chat-bot-backend/internal/identity"
	"github.com/officialjwise/knust-chat-bot-backend/internal/store"
)

const (
	defaultHistoryLimit = 20
	defaultFAQLimit     = 10
	maxSearchResults    = 10
)

// messageHandler is the orchestrator surface the chat endpoint needs.
type messageHandler interface {
	HandleMessage(ctx context.Context, message, sender, uid string) (string, error)
}

// server holds the request handlers' shared dependencies.
type server struct {
	cfg     *config.Config
	logger  *zap.Logger
	bot     messageHandler
	catalog *catalog.Catalog
	matcher *fuzzy.Matcher
	store   *store.Store
	health  *health.Manager
}

// chatRequest is the body of POST /chat.
type chatRequest struct {
	Message string `json:"message"`
	Sender  string `json:"sender"`
}

// handleChat answers one user message.
func (s *server) handleChat(c *gin.Context) {
	var req chatRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format"})
		return
	}

	uid := c.GetString(identity.ContextUIDKey)
	if uid == "" {
		uid = req.Sender
	}
	if uid == "" {
		uid = "anonymous"
	}

	response, err := s.bot.HandleMessage(c.Request.Context(), req.Message, req.Sender, uid)
	if err != nil {
		if errors.Is(err, chat.ErrEmptyMessage) {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Message is required"})
			return
		}
		// The orchestrator already substituted an apology; surface it with
		// a failure status so clients can distinguish degraded answers.
		s.logger.Error("Chat handling failed", zap.String("uid", uid), zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"response": response})
		return
	}

	// Every answered question also feeds the FAQ table; a failed FAQ write
	// must not fail an already answered request.
	if err := s.store.UpsertFAQ(c.Request.Context(), req.Message, response); err != nil {
		s.logger.Warn("Failed to record FAQ entry", zap.Error(err))
	}

	c.JSON(http.StatusOK, gin.H{"response": response})
}

// handleChatHistory returns the caller's recent exchanges, newest first.
func (s *server) handleChatHistory(c *gin.Context) {
	uid := c.GetString(identity.ContextUIDKey)
	if uid == "" {
		uid = c.Query("sender")
	}
	if uid == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Sender is required"})
		return
	}

	limit := queryLimit(c, defaultHistoryLimit)
	records, err := s.store.ChatHistory(c.Request.Context(), uid, limit)
	if err != nil {
		s.logger.Error("Failed to load chat history", zap.String("uid", uid), zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load chat history"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"history": records, "count": len(records)})
}

// handlePrograms lists the full programme catalog.
func (s *server) handlePrograms(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"programs": s.catalog.Programs(),
		"count":    s.catalog.Len(),
	})
}

// searchResult is one entry in the programme search response.
type searchResult struct {
	Name    string  `json:"name"`
	College string  `json:"college"`
	Score   float64 `json:"score"`
}

// handleSearchPrograms searches the catalog by approximate name, optionally
// restricted to one college.
func (s *server) handleSearchPrograms(c *gin.Context) {
	query := strings.TrimSpace(c.Query("query"))
	if query == "" {
		query = strings.TrimSpace(c.Query("q"))
	}
	if query == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Query parameter 'query' is required"})
		return
	}
	college := strings.TrimSpace(c.Query("college"))

	matches := s.matcher.Search(query, maxSearchResults)
	results := make([]searchResult, 0, len(matches))
	for _, m := range matches {
		if college != "" && !strings.EqualFold(m.Program.College, college) {
			continue
		}
		results = append(results, searchResult{
			Name:    m.Program.Name,
			College: m.Program.College,
			Score:   m.Score,
		})
	}

	c.JSON(http.StatusOK, gin.H{"query": query, "results": results, "count": len(results)})
}

// recommendRequest is the body of POST /recommend.
type recommendRequest struct {
	admission.Grades
	Gender string `json:"gender"`
}

// handleRecommend suggests programmes for a candidate's WASSCE results and
// persists the outcome for later analytics.
func (s *server) handleRecommend(c *gin.Context) {
	var req recommendRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format"})
		return
	}
	if req.English == "" || req.Math == "" || req.IntegratedScience == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "English, Math and Integrated Science grades are required"})
		return
	}

	result := admission.NewRecommender(s.catalog).Recommend(req.Grades, req.Gender)

	uid := c.GetString(identity.ContextUIDKey)
	if uid == "" {
		uid = "anonymous"
	}
	if err := s.store.SaveRecommendation(c.Request.Context(), uid, result.Aggregate, result); err != nil {
		s.logger.Error("Failed to persist recommendation", zap.String("uid", uid), zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to save recommendation"})
		return
	}

	c.JSON(http.StatusOK, result)
}

// handleRecommendations returns the caller's past recommendation results.
func (s *server) handleRecommendations(c *gin.Context) {
	uid := c.GetString(identity.ContextUIDKey)
	if uid == "" {
		uid = c.Query("sender")
	}
	if uid == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Sender is required"})
		return
	}

	limit := queryLimit(c, defaultHistoryLimit)
	records, err := s.store.Recommendations(c.Request.Context(), uid, limit)
	if err != nil {
		s.logger.Error("Failed to load recommendations", zap.String("uid", uid), zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load recommendations"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"recommendations": records, "count": len(records)})
}

// handleCalculateAggregate computes the best-six aggregate without issuing
// recommendations.
func (s *server) handleCalculateAggregate(c *gin.Context) {
	var grades admission.Grades
	if err := c.ShouldBindJSON(&grades); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format"})
		return
	}
	if grades.English == "" || grades.Math == "" || grades.IntegratedScience == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "English, Math and Integrated Science grades are required"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"aggregate": admission.CalculateAggregate(grades)})
}

// faqRequest is the body of POST /faqs.
type faqRequest struct {
	Question string `json:"question"`
	Answer   string `json:"answer"`
}

// handleListFAQs lists stored questions ordered by frequency.
func (s *server) handleListFAQs(c *gin.Context) {
	limit := queryLimit(c, defaultFAQLimit)
	faqs, err := s.store.ListFAQs(c.Request.Context(), limit)
	if err != nil {
		s.logger.Error("Failed to list FAQs", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to list FAQs"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"faqs": faqs, "count": len(faqs)})
}

// handleGetFAQ fetches one stored question by ID.
func (s *server) handleGetFAQ(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid FAQ ID"})
		return
	}

	faq, err := s.store.GetFAQ(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			c.JSON(http.StatusNotFound, gin.H{"error": "FAQ not found"})
			return
		}
		s.logger.Error("Failed to load FAQ", zap.Int64("id", id), zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load FAQ"})
		return
	}

	c.JSON(http.StatusOK, faq)
}

// handleUpdateFAQ rewrites a stored question by ID.
func (s *server) handleUpdateFAQ(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid FAQ ID"})
		return
	}

	var req faqRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format"})
		return
	}
	if strings.TrimSpace(req.Question) == "" || strings.TrimSpace(req.Answer) == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Question and answer are required"})
		return
	}

	if err := s.store.UpdateFAQ(c.Request.Context(), id, req.Question, req.Answer); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			c.JSON(http.StatusNotFound, gin.H{"error": "FAQ not found"})
			return
		}
		s.logger.Error("Failed to update FAQ", zap.Int64("id", id), zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update FAQ"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"status": "updated"})
}

// handleCreateFAQ records a question and answer. Repeats bump frequency.
func (s *server) handleCreateFAQ(c *gin.Context) {
	var req faqRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format"})
		return
	}
	if strings.TrimSpace(req.Question) == "" || strings.TrimSpace(req.Answer) == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Question and answer are required"})
		return
	}

	if err := s.store.UpsertFAQ(c.Request.Context(), req.Question, req.Answer); err != nil {
		s.logger.Error("Failed to save FAQ", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to save FAQ"})
		return
	}

	c.JSON(http.StatusCreated, gin.H{"status": "saved"})
}

// handleDeleteFAQ removes a stored question by ID.
func (s *server) handleDeleteFAQ(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid FAQ ID"})
		return
	}

	if err := s.store.DeleteFAQ(c.Request.Context(), id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			c.JSON(http.StatusNotFound, gin.H{"error": "FAQ not found"})
			return
		}
		s.logger.Error("Failed to delete FAQ", zap.Int64("id", id), zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete FAQ"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"status": "deleted"})
}

// queryLimit parses the optional limit query parameter with a fallback.
func queryLimit(c *gin.Context, fallback int) int {
	raw := c.Query("limit")
	if raw == "" {
		return fallback
	}
	limit, err := strconv.Atoi(raw)
	if err != nil || limit <= 0 {
		return fallback
	}
	return limit
}
