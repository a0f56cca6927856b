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

// Package main provides the KNUST admissions chatbot HTTP service. It wires
// the programme catalog, message orchestrator, recommendation engine and
// chat history store behind a gin router.
package main

import (
	"fmt"
	"os"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/officialjwise/knust-chat-bot-backend/internal/catalog"
	"github.com/officialjwise/knust-chat-bot-backend/internal/chat"
	"github.com/officialjwise/knust-chat-bot-backend/internal/classifier"
	"github.com/officialjwise/knust-chat-bot-backend/internal/config"
	"github.com/officialjwise/knust-chat-bot-backend/internal/extractor"
	"github.com/officialjwise/knust-chat-bot-backend/internal/fuzzy"
	"github.com/officialjwise/knust-chat-bot-backend/internal/guardrail"
	"github.com/officialjwise/knust-chat-bot-backend/internal/health"
	"github.com/officialjwise/knust-chat-bot-backend/internal/identity"
	"github.com/officialjwise/knust-chat-bot-backend/internal/llm"
	"github.com/officialjwise/knust-chat-bot-backend/internal/respond"
	"github.com/officialjwise/knust-chat-bot-backend/internal/store"
)

const serviceVersion = "1.0.0"

func main() {
	configPath := ""
	if len(os.Args) > 1 {
		configPath = os.Args[1]
	}

	cfg, err := config.Load(configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load configuration: %v\n", err)
		os.Exit(1)
	}

	logger, level, err := buildLogger(cfg.Logging)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to build logger: %v\n", err)
		os.Exit(1)
	}
	defer func() { _ = logger.Sync() }()

	// Hot-reload the log level when the config file changes
	if configPath != "" {
		if err := config.WatchConfig(configPath, func(updated *config.Config) {
			if parsed, perr := zapcore.ParseLevel(updated.Logging.Level); perr == nil {
				level.SetLevel(parsed)
				logger.Info("Log level updated", zap.String("level", updated.Logging.Level))
			}
		}); err != nil {
			logger.Warn("Config hot-reload disabled", zap.Error(err))
		}
	}

	cat := catalog.Load()
	matcher := fuzzy.NewMatcher(cat)

	completer, err := llm.NewClient(cfg.OpenAI.APIKey, cfg.OpenAI.Model, logger)
	if err != nil {
		logger.Fatal("Failed to initialize OpenAI client", zap.Error(err))
	}

	st, err := store.New(cfg.Store.DBPath)
	if err != nil {
		logger.Fatal("Failed to open chat history store", zap.Error(err))
	}
	defer func() { _ = st.Close() }()

	bot := chat.New(
		cat,
		classifier.New(),
		extractor.New(cat, matcher),
		respond.New(cat),
		guardrail.New(cat, matcher),
		completer,
		st,
		logger,
	)

	healthManager := health.NewManager("knust-chat-bot", serviceVersion, logger)
	healthManager.AddChecker("database", health.DatabaseHealthChecker("sqlite", st.Ping))
	healthManager.AddChecker("catalog", health.CatalogHealthChecker(cat.Len))

	verifier, err := buildVerifier(cfg, logger)
	if err != nil {
		logger.Fatal("Failed to configure authentication", zap.Error(err))
	}

	srv := &server{
		cfg:     cfg,
		logger:  logger,
		bot:     bot,
		catalog: cat,
		matcher: matcher,
		store:   st,
		health:  healthManager,
	}

	router := newRouter(srv, verifier)

	logger.Info("Starting chatbot service",
		zap.Int("port", cfg.Server.Port),
		zap.String("model", cfg.OpenAI.Model),
		zap.String("auth_mode", cfg.Auth.Mode),
		zap.Int("programs", cat.Len()))

	if err := router.Run(fmt.Sprintf(":%d", cfg.Server.Port)); err != nil {
		logger.Fatal("Failed to start server", zap.Error(err))
	}
}

// buildLogger constructs a zap logger from the logging configuration. The
// returned atomic level allows live adjustment without rebuilding the logger.
func buildLogger(cfg config.LoggingConfig) (*zap.Logger, zap.AtomicLevel, error) {
	parsed, err := zapcore.ParseLevel(cfg.Level)
	if err != nil {
		return nil, zap.AtomicLevel{}, fmt.Errorf("invalid log level %q: %w", cfg.Level, err)
	}
	level := zap.NewAtomicLevelAt(parsed)

	zapCfg := zap.NewProductionConfig()
	if cfg.Format == "text" {
		zapCfg = zap.NewDevelopmentConfig()
	}
	zapCfg.Level = level
	if cfg.Output != "" {
		zapCfg.OutputPaths = []string{cfg.Output}
	}

	logger, err := zapCfg.Build()
	if err != nil {
		return nil, zap.AtomicLevel{}, err
	}
	return logger, level, nil
}

// buildVerifier selects the token verifier for the configured auth mode.
// A nil verifier disables authentication.
func buildVerifier(cfg *config.Config, logger *zap.Logger) (identity.Verifier, error) {
	switch cfg.Auth.Mode {
	case "firebase":
		return identity.NewFirebaseVerifier(cfg.Auth.FirebaseAPIKey, logger), nil
	case "static":
		tokens := make(identity.StaticVerifier, len(cfg.Auth.StaticTokens))
		for token, uid := range cfg.Auth.StaticTokens {
			tokens[token] = identity.Identity{UID: uid}
		}
		return tokens, nil
	case "none":
		return nil, nil
	default:
		return nil, fmt.Errorf("unknown auth mode: %s", cfg.Auth.Mode)
	}
}

// newRouter builds the gin router. All routes except health require
// authentication when a verifier is configured.
func newRouter(srv *server, verifier identity.Verifier) *gin.Engine {
	router := gin.Default()

	router.GET("/health", gin.WrapF(srv.health.HTTPHandler()))

	protected := router.Group("/")
	if verifier != nil {
		protected.Use(identity.Middleware(verifier, srv.logger))
	}
	protected.POST("/chat", srv.handleChat)
	protected.GET("/chat-history", srv.handleChatHistory)
	protected.GET("/programs", srv.handlePrograms)
	protected.GET("/programs/search", srv.handleSearchPrograms)
	protected.POST("/recommend", srv.handleRecommend)
	protected.GET("/recommendations", srv.handleRecommendations)
	protected.POST("/calculate-aggregate", srv.handleCalculateAggregate)
	protected.GET("/faqs", srv.handleListFAQs)
	protected.GET("/faqs/:id", srv.handleGetFAQ)
	protected.POST("/faqs", srv.handleCreateFAQ)
	protected.PUT("/faqs/:id", srv.handleUpdateFAQ)
	protected.DELETE("/faqs/:id", srv.handleDeleteFAQ)

	return router
}
