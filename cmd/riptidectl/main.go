// Command riptidectl is a debug CLI for the extraction core: it can issue
// one-shot /crawl/stream requests against a running riptided, printing each
// NDJSON frame as it arrives, or run the pipeline in-process for offline
// debugging without a server.
package main

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"
)

var (
	serverAddr  string
	timeout     time.Duration
	concurrency int
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "riptidectl",
		Short: "RipTide debug CLI",
		Long:  "riptidectl drives the extraction core for local debugging: against a running server's streaming endpoints, or entirely in-process.",
	}

	crawlCmd := &cobra.Command{
		Use:   "crawl [url...]",
		Short: "POST a batch of URLs to a running riptided's /crawl/stream and print each frame",
		Args:  cobra.MinimumNArgs(1),
		RunE:  runCrawl,
	}
	crawlCmd.Flags().StringVar(&serverAddr, "server", "http://localhost:8080", "riptided base URL")
	crawlCmd.Flags().DurationVar(&timeout, "timeout", 60*time.Second, "total request timeout")

	localCmd := &cobra.Command{
		Use:   "local [url...]",
		Short: "Parse URLs in-process, without a running server",
		Args:  cobra.MinimumNArgs(1),
		RunE:  runLocal,
	}
	localCmd.Flags().IntVar(&concurrency, "concurrency", 10, "maximum concurrent requests")
	localCmd.Flags().DurationVar(&timeout, "timeout", 30*time.Second, "timeout per URL")

	versionCmd := &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Println("riptidectl v0.1.0")
		},
	}

	rootCmd.AddCommand(crawlCmd, localCmd, versionCmd)

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
