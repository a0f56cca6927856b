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

// Package chat sequences classification, extraction, deterministic rendering
// and the language-model fallback into a single decision procedure per
// incoming message.
package chat

import (
	"context"
	"errors"
	"strings"

	"go.uber.org/zap"

	"github.com/officialjwise/knust-chat-bot-backend/internal/catalog"
	"github.com/officialjwise/knust-chat-bot-backend/internal/classifier"
	"github.com/officialjwise/knust-chat-bot-backend/internal/extractor"
	"github.com/officialjwise/knust-chat-bot-backend/internal/guardrail"
	"github.com/officialjwise/knust-chat-bot-backend/internal/llm"
	"github.com/officialjwise/knust-chat-bot-backend/internal/respond"
)

// ErrEmptyMessage rejects requests before any classification runs.
var ErrEmptyMessage = errors.New("message is required")

// Completion parameters for the delegated paths.
const (
	completionTemperature = 0.7
	completionMaxTokens   = 500
)

// apologyResponse is the only text a caller sees when an upstream call
// fails. Raw upstream errors never leak to the user.
const apologyResponse = "I'm sorry, I'm having trouble answering that right now. Please try again in a moment."

// fallbackResponse closes the decision procedure when nothing else applied.
const fallbackResponse = "I'm here to help with KNUST admissions. You can ask me about program cut-off points, fees, or admission requirements, for example \"What is the cut-off for BSc Computer Science?\""

const careerSystemPrompt = "You are a KNUST admission assistant. Answer questions about career prospects and course content for KNUST programs. Keep answers factual and encouraging. Only discuss programs offered at KNUST."

const admissionSystemPrompt = "You are a KNUST admission assistant. Only answer questions about admission to KNUST (Kwame Nkrumah University of Science and Technology). Never mention other universities. Never invent programs that KNUST does not offer. If you are unsure, ask the user to name a specific KNUST program."

// Recorder persists a completed exchange. The write is awaited before the
// response is returned so chat history is never silently lost on process
// exit.
type Recorder interface {
	SaveExchange(ctx context.Context, uid, message, response string) error
}

// Orchestrator is the top-level per-message decision procedure. All state is
// request-scoped; the orchestrator itself is immutable after construction and
// safe for concurrent use.
type Orchestrator struct {
	catalog    *catalog.Catalog
	classifier *classifier.Classifier
	extractor  *extractor.Extractor
	generator  *respond.Generator
	guard      *guardrail.Filter
	completer  llm.Completer
	recorder   Recorder
	logger     *zap.Logger
}

// New wires the orchestrator. recorder may be nil for offline use, in which
// case exchanges are not persisted.
func New(
	c *catalog.Catalog,
	cls *classifier.Classifier,
	ext *extractor.Extractor,
	gen *respond.Generator,
	guard *guardrail.Filter,
	completer llm.Completer,
	recorder Recorder,
	logger *zap.Logger,
) *Orchestrator {
	return &Orchestrator{
		catalog:    c,
		classifier: cls,
		extractor:  ext,
		generator:  gen,
		guard:      guard,
		completer:  completer,
		recorder:   recorder,
		logger:     logger,
	}
}

// HandleMessage runs the decision procedure for one message and returns the
// user-facing response. Any upstream failure (language model or store) is
// converted to a fixed apology plus a non-nil error; the caller maps the
// error to a failure status while still showing the apology text.
func (o *Orchestrator) HandleMessage(ctx context.Context, message, sender, uid string) (string, error) {
	if strings.TrimSpace(message) == "" {
		return "", ErrEmptyMessage
	}

	response, err := o.answer(ctx, message)
	if err != nil {
		o.logger.Error("message handling failed",
			zap.String("sender", sender),
			zap.Error(err),
		)
		return apologyResponse, err
	}

	if o.recorder != nil {
		if err := o.recorder.SaveExchange(ctx, uid, message, response); err != nil {
			o.logger.Error("failed to persist exchange",
				zap.String("sender", sender),
				zap.Error(err),
			)
			return apologyResponse, err
		}
	}
	return response, nil
}

// answer walks the fixed state order; the first applicable state terminates
// processing.
func (o *Orchestrator) answer(ctx context.Context, message string) (string, error) {
	cls := o.classifier.Classify(message)

	// Canned check short-circuits everything else.
	if cls.IsCanned {
		o.logger.Debug("canned response", zap.String("message", message))
		return cls.Canned, nil
	}

	program, extracted := o.extractor.ExtractProgramName(message)

	o.logger.Debug("classified message",
		zap.String("program", program),
		zap.Bool("career", cls.IsCareerAcademic),
		zap.Bool("admission", cls.IsAdmissionRelated),
	)

	// Only the model-backed paths run the guard. The canned, dataset and
	// disambiguation paths render catalog text verbatim and cannot name a
	// foreign institution or an unknown programme.
	switch {
	case extracted && cls.IsCareerAcademic:
		return o.careerPath(ctx, message, program)
	case extracted && cls.IsAdmissionRelated:
		return o.datasetPath(message, program), nil
	case !extracted && cls.IsAdmissionRelated:
		if resp, ok := o.disambiguationPath(message); ok {
			return resp, nil
		}
		return o.generalAdmissionPath(ctx, message)
	default:
		return fallbackResponse, nil
	}
}

// careerPath delegates career and curriculum questions to the language model
// with the resolved programme named in the prompt.
func (o *Orchestrator) careerPath(ctx context.Context, message, program string) (string, error) {
	userPrompt := "The user is asking about " + program + " at KNUST. Question: " + message
	text, err := o.completer.Complete(ctx, careerSystemPrompt, userPrompt, completionTemperature, completionMaxTokens)
	if err != nil {
		return "", err
	}
	return o.guard.Apply(text), nil
}

// datasetPath renders the deterministic answer, with optional similar-
// programme and eligibility blocks driven by keywords in the message.
func (o *Orchestrator) datasetPath(message, program string) string {
	p, ok := o.catalog.Lookup(program)
	if !ok {
		return fallbackResponse
	}

	response := o.generator.DatasetResponse(message, p)

	lower := strings.ToLower(message)
	if strings.Contains(lower, "similar") || strings.Contains(lower, "recommend") || strings.Contains(lower, "like") {
		response += o.generator.SimilarBlock(p)
	}
	if wantsEligibility(lower) && mentionsBackground(lower) {
		response += o.generator.EligibilityBlock(message, p)
	}
	return response
}

// disambiguationPath offers a numbered candidate list when the message is
// admission-related but no single programme resolved. A single candidate is
// never offered; the caller falls through to general handling instead.
func (o *Orchestrator) disambiguationPath(message string) (string, bool) {
	suggestions := o.extractor.SuggestProgramMatches(message, extractor.DefaultMaxSuggestions)
	if len(suggestions) < 2 {
		return "", false
	}
	return respond.Disambiguation(suggestions), true
}

// generalAdmissionPath delegates to the language model under the strict
// KNUST-only prompt, then guards the output. If the answer names a
// resolvable programme and the user asked an eligibility-style question, the
// admission details are appended.
func (o *Orchestrator) generalAdmissionPath(ctx context.Context, message string) (string, error) {
	text, err := o.completer.Complete(ctx, admissionSystemPrompt, message, completionTemperature, completionMaxTokens)
	if err != nil {
		return "", err
	}
	response := o.guard.Apply(text)

	if wantsEligibility(strings.ToLower(message)) {
		if program, ok := o.extractor.ExtractProgramName(response); ok {
			response = o.generator.AppendAdmissionDetails(response, program)
		}
	}
	return response, nil
}

func wantsEligibility(lowerMessage string) bool {
	return strings.Contains(lowerMessage, "can i pursue") ||
		strings.Contains(lowerMessage, "can i study") ||
		strings.Contains(lowerMessage, "eligible") ||
		strings.Contains(lowerMessage, "qualify")
}

func mentionsBackground(lowerMessage string) bool {
	phrases := []string{"i studied", "i did", "i offered", "my background", "i read", "with a background"}
	for _, p := range phrases {
		if strings.Contains(lowerMessage, p) {
			return true
		}
	}
	return false
}
