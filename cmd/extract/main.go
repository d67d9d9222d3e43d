// Command extract runs the wait-time extractor over an archive of exported
// posts and writes one observation table per terminal.
//
// Usage:
//
//	go run ./cmd/extract \
//	  -input 'data/raw/*.csv' \
//	  -out-dir data/extracted \
//	  -terminals terminals.yaml \
//	  -workers 8
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log"
	"os"
	"os/signal"
	"path/filepath"
	"runtime"
	"syscall"

	"github.com/couchcryptid/ferry-wait-etl/internal/adapter/csvfile"
	"github.com/couchcryptid/ferry-wait-etl/internal/config"
	"github.com/couchcryptid/ferry-wait-etl/internal/domain"
	"github.com/couchcryptid/ferry-wait-etl/internal/pipeline"
)

func main() {
	if err := run(); err != nil {
		log.Fatal(err)
	}
}

func run() error {
	input := flag.String("input", "", "glob matching archive CSV files (tweet_text, time columns)")
	outDir := flag.String("out-dir", ".", "directory for <terminal>.csv output files")
	terminalsPath := flag.String("terminals", "", "terminals YAML file (default: edmonds/kingston)")
	workers := flag.Int("workers", runtime.GOMAXPROCS(0), "number of concurrent extraction workers")
	flag.Parse()

	if *input == "" {
		flag.Usage()
		return errors.New("missing required flag: -input")
	}

	terminals, err := config.LoadTerminals(*terminalsPath)
	if err != nil {
		return err
	}

	msgs, err := csvfile.LoadMessages(*input)
	if err != nil {
		return fmt.Errorf("load archive: %w", err)
	}
	log.Printf("loaded %d posts", len(msgs))

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	results, err := pipeline.RunBatch(ctx, domain.NewExtractor(terminals), msgs, *workers)
	if err != nil {
		return err
	}

	if err := os.MkdirAll(*outDir, 0o755); err != nil {
		return err
	}
	for _, terminal := range terminals.Names() {
		obs := results[terminal]
		path := filepath.Join(*outDir, terminal+".csv")
		if err := csvfile.WriteFile(path, obs); err != nil {
			return fmt.Errorf("write %s: %w", path, err)
		}
		log.Printf("%s: %d observations (%d unknown) -> %s", terminal, len(obs), countUnknown(obs), path)
	}
	return nil
}

func countUnknown(obs []domain.WaitObservation) int {
	n := 0
	for i := range obs {
		if !obs[i].Known() {
			n++
		}
	}
	return n
}
