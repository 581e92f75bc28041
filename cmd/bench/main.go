package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/aretw0/memo"
	"github.com/aretw0/memo/pkg/core"
)

func main() {
	notes := flag.Int("notes", 20, "Number of memos edited concurrently")
	edits := flag.Int("edits", 200, "Edits per memo")
	interval := flag.Duration("interval", 5*time.Millisecond, "Pause between edits of one memo")
	debounce := flag.Duration("debounce", core.DefaultDebounce, "Flush debounce window")
	keep := flag.Bool("keep", false, "Keep the benchmark data file after running")
	verbose := flag.Bool("verbose", false, "Log flushes")
	flag.Parse()

	benchDir, err := os.MkdirTemp("", "memo_bench_")
	if err != nil {
		panic(err)
	}
	defer func() {
		if !*keep {
			os.RemoveAll(benchDir)
		} else {
			fmt.Printf("Keeping bench dir: %s\n", benchDir)
		}
	}()

	level := slog.LevelWarn
	if *verbose {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))

	ctx := context.Background()
	path := filepath.Join(benchDir, "memos.json")
	svc, err := memo.New(ctx, path,
		memo.WithLogger(logger),
		memo.WithDebounce(*debounce),
	)
	if err != nil {
		panic(err)
	}

	for i := 0; i < *notes; i++ {
		if _, err := svc.Create(ctx, core.Note{ID: fmt.Sprintf("bench-%d", i), Title: "bench"}); err != nil {
			panic(err)
		}
	}

	fmt.Printf("Editing %d memos %d times each (interval %v, debounce %v)...\n", *notes, *edits, *interval, *debounce)
	start := time.Now()

	var wg sync.WaitGroup
	for i := 0; i < *notes; i++ {
		wg.Add(1)
		go func(id string) {
			defer wg.Done()
			for j := 0; j < *edits; j++ {
				content := fmt.Sprintf("edit %d", j)
				if _, err := svc.Update(ctx, id, core.NoteUpdate{Content: &content}); err != nil {
					fmt.Fprintf(os.Stderr, "update %s: %v\n", id, err)
					return
				}
				time.Sleep(*interval)
			}
		}(fmt.Sprintf("bench-%d", i))
	}
	wg.Wait()
	editTime := time.Since(start)

	if err := svc.Quit(ctx); err != nil {
		panic(err)
	}

	stats := svc.Flusher().Stats()
	mutations := *notes + *notes**edits
	fmt.Printf("Mutations:   %d in %v\n", mutations, editTime)
	fmt.Printf("Writes:      %d (%d deferred, %d coalesced, %d failed)\n",
		stats.Writes, stats.Scheduled, stats.Coalesced, stats.Failures)
	if stats.Writes > 0 {
		fmt.Printf("Coalescing:  %.1f mutations per write\n", float64(mutations)/float64(stats.Writes))
	}
}
