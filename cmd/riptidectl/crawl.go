package main

import (
	"bufio"
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/spf13/cobra"
)

type crawlRequestBody struct {
	URLs    []string      `json:"urls"`
	Options crawlOptions  `json:"options"`
}

type crawlOptions struct {
	Concurrency int  `json:"concurrency"`
	Stream      bool `json:"stream"`
}

// runCrawl issues a single POST /crawl/stream and prints each NDJSON line
// as it arrives, tagged with the frame's "type" field so the operator can
// follow the stream without decoding it by hand.
func runCrawl(cmd *cobra.Command, urls []string) error {
	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	body, err := json.Marshal(crawlRequestBody{
		URLs:    urls,
		Options: crawlOptions{Concurrency: concurrency, Stream: true},
	})
	if err != nil {
		return fmt.Errorf("encode request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, serverAddr+"/crawl/stream", bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		return fmt.Errorf("request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("server returned %s", resp.Status)
	}

	fmt.Printf("request-id: %s\n", resp.Header.Get("X-Request-ID"))

	scanner := bufio.NewScanner(resp.Body)
	scanner.Buffer(make([]byte, 0, 64*1024), 4*1024*1024)
	for scanner.Scan() {
		line := scanner.Bytes()
		var tagged struct {
			Type string `json:"type"`
		}
		if err := json.Unmarshal(line, &tagged); err != nil {
			fmt.Printf("raw: %s\n", line)
			continue
		}
		fmt.Printf("[%s] %s\n", tagged.Type, line)
	}
	return scanner.Err()
}
