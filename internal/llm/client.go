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

// Package llm wraps the OpenAI chat-completion API behind a minimal
// completion interface. Calls are single-attempt: retry policy, if wanted,
// belongs to the caller's boundary, not here.
package llm

import (
	"context"
	"fmt"
	"strings"

	"github.com/sashabaranov/go-openai"
	"go.uber.org/zap"
)

// DefaultModel is used when configuration does not name one.
const DefaultModel = openai.GPT4o

// Completer is the single operation the orchestrator needs from a language
// model: an opaque prompt-to-text function.
type Completer interface {
	Complete(ctx context.Context, systemPrompt, userPrompt string, temperature float32, maxTokens int) (string, error)
}

// Client is the OpenAI-backed Completer.
type Client struct {
	client *openai.Client
	model  string
	logger *zap.Logger
}

// NewClient creates an OpenAI-backed completion client.
func NewClient(apiKey, model string, logger *zap.Logger) (*Client, error) {
	if apiKey == "" {
		return nil, fmt.Errorf("API key is required")
	}
	if !strings.HasPrefix(apiKey, "sk-") {
		return nil, fmt.Errorf("invalid API key format")
	}
	if model == "" {
		model = DefaultModel
	}

	c := &Client{
		client: openai.NewClient(apiKey),
		model:  model,
		logger: logger,
	}
	c.logger.Info("OpenAI client initialized",
		zap.String("model", model),
	)
	return c, nil
}

// Complete issues one chat completion. The upstream error is returned as-is
// for the orchestrator's single catch boundary to convert; no retry, no
// internal timeout.
func (c *Client) Complete(ctx context.Context, systemPrompt, userPrompt string, temperature float32, maxTokens int) (string, error) {
	resp, err := c.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model:       c.model,
		Temperature: temperature,
		MaxTokens:   maxTokens,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleSystem, Content: systemPrompt},
			{Role: openai.ChatMessageRoleUser, Content: userPrompt},
		},
	})
	if err != nil {
		c.logger.Error("chat completion failed",
			zap.String("model", c.model),
			zap.Error(err),
		)
		return "", fmt.Errorf("chat completion: %w", err)
	}
	if len(resp.Choices) == 0 {
		return "", fmt.Errorf("chat completion returned no choices")
	}

	answer := strings.TrimSpace(resp.Choices[0].Message.Content)
	c.logger.Debug("chat completion succeeded",
		zap.String("model", c.model),
		zap.Int("prompt_tokens", resp.Usage.PromptTokens),
		zap.Int("completion_tokens", resp.Usage.CompletionTokens),
	)
	return answer, nil
}
