package main

import (
	"encoding/json"
	"flag"
	"os"

	"github.com/fitforge/coach/internal/config"
	"github.com/fitforge/coach/internal/domain"
	"github.com/fitforge/coach/internal/engine"
	"github.com/fitforge/coach/pkg/logger"
)

func main() {
	historyPath := flag.String("history", "", "path to an exercise history JSON snapshot (required)")
	profilePath := flag.String("profile", "", "path to an engine profile YAML file (optional)")
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		os.Exit(1)
	}

	log := logger.New(logger.Config{
		Level:  cfg.LogLevel,
		Pretty: cfg.LogPretty,
	})
	logger.SetGlobalLogger(log)

	if *historyPath == "" {
		log.Error().Msg("-history is required")
		flag.Usage()
		os.Exit(1)
	}

	data, err := os.ReadFile(*historyPath)
	if err != nil {
		log.Error().Err(err).Str("path", *historyPath).Msg("Failed to read history snapshot")
		os.Exit(1)
	}

	var history domain.ExerciseHistory
	if err := json.Unmarshal(data, &history); err != nil {
		log.Error().Err(err).Msg("Failed to parse history snapshot")
		os.Exit(1)
	}

	engineCfg, err := config.LoadProfile(*profilePath)
	if err != nil {
		log.Error().Err(err).Str("path", *profilePath).Msg("Failed to load engine profile")
		os.Exit(1)
	}

	rec, err := engine.New(log).Recommend(history, engineCfg)
	if err != nil {
		log.Error().Err(err).Str("exercise", history.ExerciseID).Msg("Recommendation failed")
		os.Exit(1)
	}

	out, err := json.MarshalIndent(rec, "", "  ")
	if err != nil {
		log.Error().Err(err).Msg("Failed to encode recommendation")
		os.Exit(1)
	}

	os.Stdout.Write(out)
	os.Stdout.Write([]byte("\n"))
}
