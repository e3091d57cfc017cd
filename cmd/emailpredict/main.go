package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"os"
	"strings"

	"github.com/google/uuid"

	"github.com/meridianiq/emailpredict/internal/pkg/pointers"
	"github.com/meridianiq/emailpredict/internal/platform/logger"
	"github.com/meridianiq/emailpredict/internal/platform/shutdown"
	"github.com/meridianiq/emailpredict/internal/predictengine/config"
	"github.com/meridianiq/emailpredict/internal/predictengine/engine"
)

func main() {
	var investorName string
	var firmName string
	var domain string
	var topK int
	flag.StringVar(&investorName, "investor", "", "full investor name (required)")
	flag.StringVar(&firmName, "firm", "", "firm name (required)")
	flag.StringVar(&domain, "domain", "", "explicit email domain; resolved from firm name if omitted")
	flag.IntVar(&topK, "top-k", 0, "number of ranked predictions to return (defaults to config value)")
	flag.Parse()

	if strings.TrimSpace(investorName) == "" || strings.TrimSpace(firmName) == "" {
		fmt.Println("usage: emailpredict -investor \"Jane Doe\" -firm \"Acme Capital\" [-domain acme.com] [-top-k 3]")
		os.Exit(2)
	}

	cfg, err := config.Load()
	if err != nil {
		fmt.Printf("failed to load config: %v\n", err)
		os.Exit(1)
	}

	log, err := logger.New(cfg.Env)
	if err != nil {
		fmt.Printf("failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	defer log.Sync()

	runID := uuid.New().String()
	log = log.With("run_id", runID)

	eng, err := engine.New(*cfg, log)
	if err != nil {
		log.Error("failed to initialize prediction engine", "error", err)
		os.Exit(1)
	}

	ctx, stop := shutdown.NotifyContext(context.Background())
	defer stop()

	var domainPtr *string
	if strings.TrimSpace(domain) != "" {
		domainPtr = pointers.String(domain)
	}

	results, err := eng.Predict(ctx, investorName, firmName, topK, domainPtr)
	if err != nil {
		log.Error("prediction failed", "error", err)
		os.Exit(1)
	}

	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	if err := enc.Encode(results); err != nil {
		log.Error("failed to encode prediction results", "error", err)
		os.Exit(1)
	}
}
