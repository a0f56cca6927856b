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

// Package main provides botctl, a command line tool for inspecting the
// programme catalog and asking the chatbot one-off questions without
// running the HTTP service.
package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/officialjwise/knust-chat-bot-backend/internal/catalog"
	"github.com/officialjwise/knust-chat-bot-backend/internal/chat"
	"github.com/officialjwise/knust-chat-bot-backend/internal/classifier"
	"github.com/officialjwise/knust-chat-bot-backend/internal/extractor"
	"github.com/officialjwise/knust-chat-bot-backend/internal/fuzzy"
	"github.com/officialjwise/knust-chat-bot-backend/internal/guardrail"
	"github.com/officialjwise/knust-chat-bot-backend/internal/llm"
	"github.com/officialjwise/knust-chat-bot-backend/internal/respond"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:          "botctl",
		Short:        "KNUST admissions chatbot command line tools",
		SilenceUsage: true,
	}
	root.AddCommand(newProgramsCmd(), newSearchCmd(), newAskCmd())
	return root
}

// newProgramsCmd lists the programme catalog, optionally filtered by college.
func newProgramsCmd() *cobra.Command {
	var college string

	cmd := &cobra.Command{
		Use:   "programs",
		Short: "List programmes with cut-off points and fees",
		RunE: func(cmd *cobra.Command, _ []string) error {
			cat := catalog.Load()
			count := 0
			for _, p := range cat.Programs() {
				if college != "" && !strings.EqualFold(p.College, college) {
					continue
				}
				fmt.Fprintln(cmd.OutOrStdout(), formatProgram(p))
				count++
			}
			if count == 0 {
				return fmt.Errorf("no programmes found for college %q", college)
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&college, "college", "c", "", "Filter by college name")
	return cmd
}

// newSearchCmd searches the catalog by approximate programme name.
func newSearchCmd() *cobra.Command {
	var limit int

	cmd := &cobra.Command{
		Use:   "search <query>",
		Short: "Search programmes by approximate name",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cat := catalog.Load()
			matcher := fuzzy.NewMatcher(cat)

			query := strings.Join(args, " ")
			matches := matcher.Search(query, limit)
			if len(matches) == 0 {
				return fmt.Errorf("no programmes match %q", query)
			}
			for _, m := range matches {
				fmt.Fprintf(cmd.OutOrStdout(), "%-55s %.3f\n", m.Program.Name, m.Score)
			}
			return nil
		},
	}

	cmd.Flags().IntVarP(&limit, "limit", "n", 10, "Maximum number of results")
	return cmd
}

// newAskCmd answers a single question. Dataset-backed questions work
// offline; career and general admission questions need an OpenAI API key.
func newAskCmd() *cobra.Command {
	var apiKey, model string

	cmd := &cobra.Command{
		Use:   "ask <message>",
		Short: "Ask the chatbot one question",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			logger := zap.NewNop()

			var completer llm.Completer
			if apiKey != "" {
				client, err := llm.NewClient(apiKey, model, logger)
				if err != nil {
					return err
				}
				completer = client
			} else {
				completer = offlineCompleter{}
			}

			bot := newOrchestrator(completer, logger)
			response, err := bot.HandleMessage(context.Background(), strings.Join(args, " "), "botctl", "botctl")
			if response != "" {
				fmt.Fprintln(cmd.OutOrStdout(), response)
			}
			return err
		},
	}

	cmd.Flags().StringVar(&apiKey, "api-key", os.Getenv("OPENAI_API_KEY"), "OpenAI API key")
	cmd.Flags().StringVar(&model, "model", "", "OpenAI model name")
	return cmd
}

// newOrchestrator wires a full message orchestrator with no persistence.
func newOrchestrator(completer llm.Completer, logger *zap.Logger) *chat.Orchestrator {
	cat := catalog.Load()
	matcher := fuzzy.NewMatcher(cat)
	return chat.New(
		cat,
		classifier.New(),
		extractor.New(cat, matcher),
		respond.New(cat),
		guardrail.New(cat, matcher),
		completer,
		nil,
		logger,
	)
}

// offlineCompleter rejects model calls so dataset answers still work
// without credentials.
type offlineCompleter struct{}

func (offlineCompleter) Complete(context.Context, string, string, float32, int) (string, error) {
	return "", errors.New("no OpenAI API key configured, model-backed answers are unavailable")
}

// formatProgram renders one catalog entry for terminal output.
func formatProgram(p catalog.Program) string {
	return fmt.Sprintf("%-55s %-35s cut-off: %s", p.Name, p.College, p.Cutoff.String())
}
