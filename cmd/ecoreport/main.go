// Package main is the command-line runner for the echocardiography report
// engine: it recovers the persisted wall motion state, optionally applies a
// pattern or per-segment severities, and prints the composed report.
package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"os"

	"github.com/ecoreport-engine/internal/config"
	"github.com/ecoreport-engine/internal/domain"
	"github.com/ecoreport-engine/internal/service"
	"github.com/ecoreport-engine/internal/store"
)

// studyFile is the on-disk study format: collaborator inputs plus optional
// per-segment severity overrides applied before composing.
type studyFile struct {
	domain.StudyInput
	Segments map[string]int `json:"segments,omitempty"`
}

func main() {
	studyPath := flag.String("study", "", "path to a study JSON file")
	patternID := flag.String("pattern", "", "wall motion pattern to apply before composing")
	reset := flag.Bool("reset", false, "reset the wall motion state before composing")
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}
	if err := cfg.EnsureDataDir(); err != nil {
		log.Fatalf("Failed to create data directory: %v", err)
	}

	logger := cfg.NewLogger()

	kv, err := store.NewSQLiteKV(cfg.StoreDBPath())
	if err != nil {
		log.Fatalf("Failed to open state database: %v", err)
	}
	defer kv.Close()

	motility, err := store.NewMotilityStore(kv, logger)
	if err != nil {
		log.Fatalf("Failed to build motility store: %v", err)
	}

	if *reset {
		if err := motility.Reset(); err != nil {
			log.Fatalf("Failed to reset state: %v", err)
		}
	}
	if *patternID != "" {
		if err := motility.ApplyPattern(domain.PatternID(*patternID)); err != nil {
			log.Fatalf("Failed to apply pattern: %v", err)
		}
	}

	var study studyFile
	if *studyPath != "" {
		raw, err := os.ReadFile(*studyPath)
		if err != nil {
			log.Fatalf("Failed to read study file: %v", err)
		}
		if err := json.Unmarshal(raw, &study); err != nil {
			log.Fatalf("Failed to parse study file: %v", err)
		}
		for key, val := range study.Segments {
			var id int
			if _, err := fmt.Sscanf(key, "%d", &id); err != nil {
				continue
			}
			if err := motility.SetSeverity(id, domain.Severity(val)); err != nil {
				log.Fatalf("Failed to set segment %d: %v", id, err)
			}
		}
	}

	metrics := service.NewMetricsCalculator(logger)
	generator := service.NewReportGenerator(logger, metrics)
	orchestrator := service.NewOrchestrator(logger, metrics, generator)

	archive, err := service.NewArchive(cfg.ArchiveSize, logger)
	if err != nil {
		log.Fatalf("Failed to create report archive: %v", err)
	}

	report := orchestrator.Compose(study.StudyInput, motility.Snapshot())
	archive.Put(report)

	if report.Findings != "" {
		fmt.Println("MOTILIDAD SEGMENTARIA")
		fmt.Print(report.Findings)
		fmt.Println()
	}

	fmt.Println("CONCLUSIONES")
	for _, line := range report.Conclusions {
		fmt.Println(line)
	}

	if report.ECGNote != "" {
		fmt.Println()
		fmt.Println(report.ECGNote)
	}
	for _, warning := range report.Warnings {
		fmt.Println()
		fmt.Println("AVISO: " + warning)
	}
}
