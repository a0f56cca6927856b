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

// Seeds the local chat history database with sample FAQs and demo
// exchanges for development. Run with: go run ./scripts
package main

import (
	"context"
	"log"
	"os"

	"github.com/officialjwise/knust-chat-bot-backend/internal/store"
)

const demoUser = "demo-user"

type seedFAQ struct {
	Question string
	Answer   string
	Repeats  int
}

func main() {
	log.Println("🌱 Starting test data seeding...")

	dbPath := os.Getenv("CHATBOT_DB_PATH")
	if dbPath == "" {
		dbPath = "./chatbot.db"
	}

	st, err := store.New(dbPath)
	if err != nil {
		log.Fatalf("❌ Failed to open database at %s: %v", dbPath, err)
	}
	defer func() { _ = st.Close() }()

	ctx := context.Background()

	faqs := sampleFAQs()
	for _, faq := range faqs {
		for i := 0; i < faq.Repeats; i++ {
			if err := st.UpsertFAQ(ctx, faq.Question, faq.Answer); err != nil {
				log.Fatalf("❌ Failed to seed FAQ %q: %v", faq.Question, err)
			}
		}
	}
	log.Printf("📄 Seeded %d FAQs", len(faqs))

	exchanges := sampleExchanges()
	for _, ex := range exchanges {
		if err := st.SaveExchange(ctx, demoUser, ex[0], ex[1]); err != nil {
			log.Fatalf("❌ Failed to seed chat exchange: %v", err)
		}
	}
	log.Printf("💬 Seeded %d chat exchanges for %s", len(exchanges), demoUser)

	log.Println("✅ Test data seeding completed successfully!")
	log.Printf("📊 Database available at: %s", dbPath)
}

func sampleFAQs() []seedFAQ {
	return []seedFAQ{
		{
			Question: "What is the cut-off point for BSc Computer Science?",
			Answer:   "The cut-off point for BSc Computer Science is 08.",
			Repeats:  3,
		},
		{
			Question: "How much are the fees for LLB?",
			Answer:   "The fees for LLB are GHS 1935.00 for regular admission.",
			Repeats:  2,
		},
		{
			Question: "What are the requirements for BSc Nursing?",
			Answer:   "BSc Nursing requires credit passes in Biology, Chemistry, and Physics or Mathematics (Elective).",
			Repeats:  1,
		},
	}
}

func sampleExchanges() [][2]string {
	return [][2]string{
		{
			"hello",
			"Hello! I'm here to help you with KNUST admission information. You can ask me about program cut-offs, fees, admission requirements, or any other admission-related questions.",
		},
		{
			"what is the cutoff for computer science",
			"**BSc Computer Science - Cut-off Point**\n\n🎯 **Cut-off Point:** 08",
		},
		{
			"how much are the fees for pharmacy",
			"**PharmD (Doctor of Pharmacy) - Fees**\n\n💰 **Fees:** GHS 2576.00",
		},
	}
}
