package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"sync"

	"github.com/spf13/cobra"

	riptide "github.com/riptide-project/riptide"
)

// runLocal builds an Orchestrator in-process and parses each URL directly,
// without a running riptided, for offline debugging of the extraction core
// itself. Bounded by the same semaphore/WaitGroup fan-out used by the
// streaming server, printing one JSON result line per URL as it completes.
func runLocal(cmd *cobra.Command, urls []string) error {
	orchestrator, err := riptide.New(
		riptide.WithConcurrency(concurrency),
		riptide.WithRequestTimeout(timeout),
	)
	if err != nil {
		return fmt.Errorf("build orchestrator: %w", err)
	}
	defer orchestrator.Close()

	ctx := context.Background()
	sem := make(chan struct{}, concurrency)
	var wg sync.WaitGroup
	var mu sync.Mutex

	for _, u := range urls {
		wg.Add(1)
		sem <- struct{}{}
		go func(url string) {
			defer wg.Done()
			defer func() { <-sem }()

			result, perr := orchestrator.Parse(ctx, url)

			mu.Lock()
			defer mu.Unlock()
			if perr != nil {
				fmt.Fprintf(os.Stderr, "%s: %v\n", url, perr)
				return
			}
			out, err := json.Marshal(result)
			if err != nil {
				fmt.Fprintf(os.Stderr, "%s: encode result: %v\n", url, err)
				return
			}
			fmt.Println(string(out))
		}(u)
	}
	wg.Wait()
	return nil
}
