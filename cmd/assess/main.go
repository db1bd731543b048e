package main

import (
	"bufio"
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"go.uber.org/zap"

	"purpose-finder/internal/assessment"
	"purpose-finder/internal/config"
	"purpose-finder/internal/domain"
	"purpose-finder/internal/llm"
	"purpose-finder/internal/service"
)

// Cuestionario interactivo por terminal: misma pasada que el servidor,
// sin base de datos; el artefacto JSON se escribe a un archivo local.
func main() {
	outPath := flag.String("o", "purposefinder_results.json", "output file for the results artifact")
	flag.Parse()

	if err := godotenv.Load(); err != nil {
		log.Printf("warning: loading .env: %v", err)
	}

	cfg, err := config.LoadConfig()
	if err != nil {
		panic(err)
	}

	logger, _ := zap.NewProduction()
	defer logger.Sync()

	var llmClient llm.LLMClient = llm.NewDisabledClient("llm api key not configured")
	if cfg.LLMAPIKey != "" {
		llmClient = llm.NewHTTPClient(cfg.LLMBaseURL, cfg.LLMAPIKey, cfg.LLMModel, cfg.LLMMaxTokens, cfg.LLMTemperature, logger)
	}

	selector, err := assessment.NewSelector(cfg.RecommendPolicy)
	if err != nil {
		logger.Fatal("recommend policy", zap.Error(err))
	}

	svc := service.NewPurposeService(llmClient, selector, nil, logger)
	reader := bufio.NewReader(os.Stdin)

	fmt.Println("PurposeFinder — discover your life goals")
	fmt.Println("A short, psychology-backed questionnaire. Press Enter to keep the neutral answer (3).")

	name := askLine(reader, "\nYour name (optional): ")
	age := askInt(reader, "Age (optional): ")

	fmt.Println("\nRate each statement from 1 (strongly disagree) to 5 (strongly agree).")
	ratings := make(map[string]int)
	for _, section := range [][]assessment.TraitItems{assessment.BigFiveItems(), assessment.MotivationItems()} {
		for _, ti := range section {
			for _, q := range ti.Questions {
				ratings[q.ID] = askRating(reader, q.Text)
			}
		}
	}

	fmt.Printf("\nSelect up to %d values that matter to you:\n", assessment.MaxValues)
	catalog := assessment.ValuesCatalog()
	for i, v := range catalog {
		fmt.Printf("  %d. %s\n", i+1, v)
	}
	values := askValues(reader, catalog)

	reflection := askLine(reader, "\nWhat activities make you lose track of time? ")

	ctx, cancel := context.WithTimeout(context.Background(), 90*time.Second)
	defer cancel()

	record, err := svc.Evaluate(ctx, domain.AssessmentInput{
		Name:       name,
		Age:        age,
		Ratings:    ratings,
		Values:     values,
		Reflection: reflection,
	})
	if err != nil {
		logger.Fatal("evaluate", zap.Error(err))
	}

	summary := assessment.BuildProfileSummary(
		record.Name, record.Age,
		record.TraitScores, record.MotivationScores,
		record.Domains, record.Values, record.Reflection,
	)

	fmt.Println("\n=== Your profile snapshot ===")
	fmt.Println(summary)
	fmt.Println("=== Purpose & micro-plan ===")
	fmt.Println(record.Purpose)
	if record.Source == domain.PurposeSourceFallback {
		fmt.Println("\n(AI generation unavailable; rule-based suggestions shown.)")
	}

	data, err := json.MarshalIndent(record, "", "  ")
	if err != nil {
		logger.Fatal("marshal results", zap.Error(err))
	}
	if err := os.WriteFile(*outPath, data, 0o644); err != nil {
		logger.Fatal("write results", zap.Error(err))
	}
	fmt.Printf("\nSaved your results to %s\n", *outPath)
}

func askLine(reader *bufio.Reader, prompt string) string {
	fmt.Print(prompt)
	line, _ := reader.ReadString('\n')
	return strings.TrimSpace(line)
}

func askInt(reader *bufio.Reader, prompt string) int {
	raw := askLine(reader, prompt)
	if raw == "" {
		return 0
	}
	n, err := strconv.Atoi(raw)
	if err != nil || n < 0 {
		return 0
	}
	return n
}

func askRating(reader *bufio.Reader, question string) int {
	for {
		raw := askLine(reader, fmt.Sprintf("%s [1-5, Enter=3]: ", question))
		if raw == "" {
			return assessment.NeutralRating
		}
		n, err := strconv.Atoi(raw)
		if err == nil && n >= assessment.MinRating && n <= assessment.MaxRating {
			return n
		}
		fmt.Println("Please answer with a number from 1 to 5.")
	}
}

// askValues acepta números del catálogo o nombres, separados por coma.
// El exceso sobre el tope se trunca en silencio, como en el servidor.
func askValues(reader *bufio.Reader, catalog []string) []string {
	raw := askLine(reader, "Your values (comma-separated numbers or names, Enter=none): ")
	if raw == "" {
		return nil
	}

	var values []string
	for _, part := range strings.Split(raw, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		if idx, err := strconv.Atoi(part); err == nil {
			if idx >= 1 && idx <= len(catalog) {
				values = append(values, catalog[idx-1])
			}
			continue
		}
		for _, v := range catalog {
			if strings.EqualFold(v, part) {
				values = append(values, v)
				break
			}
		}
	}
	return values
}
