package main

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"time"

	"github.com/spf13/cobra"
)

var (
	baseURL string
	timeout time.Duration
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "investpipe-cli",
		Short: "InvestPipe CLI tool",
		Long:  `A command line interface for interacting with the InvestPipe API.`,
	}

	rootCmd.PersistentFlags().StringVar(&baseURL, "url", "http://localhost:8080", "Base URL of the InvestPipe API")
	rootCmd.PersistentFlags().DurationVar(&timeout, "timeout", 10*time.Second, "Request timeout")

	// Queue commands
	queueCmd := &cobra.Command{
		Use:   "queue",
		Short: "Queue operations",
	}

	queueStatsCmd := &cobra.Command{
		Use:   "stats",
		Short: "Show queue store counts",
		Run: func(cmd *cobra.Command, args []string) {
			getJSON("/api/v1/queue/stats")
		},
	}

	queueStatusCmd := &cobra.Command{
		Use:   "status [uuid]",
		Short: "Show one queue entry",
		Args:  cobra.ExactArgs(1),
		Run: func(cmd *cobra.Command, args []string) {
			getJSON("/api/v1/queue/status/" + args[0])
		},
	}

	queueCmd.AddCommand(queueStatsCmd, queueStatusCmd)
	rootCmd.AddCommand(queueCmd)

	// Sync commands
	syncCmd := &cobra.Command{
		Use:   "sync",
		Short: "Trigger one reconciliation cycle",
		Run: func(cmd *cobra.Command, args []string) {
			triggerSync()
		},
	}
	rootCmd.AddCommand(syncCmd)

	statsCmd := &cobra.Command{
		Use:   "stats",
		Short: "Show combined queue and portfolio counts",
		Run: func(cmd *cobra.Command, args []string) {
			getJSON("/api/v1/stats")
		},
	}
	rootCmd.AddCommand(statsCmd)

	if err := rootCmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}

func getJSON(path string) {
	client := &http.Client{Timeout: timeout}
	resp, err := client.Get(baseURL + path)
	if err != nil {
		fmt.Printf("Error making request: %v\n", err)
		os.Exit(1)
	}
	defer resp.Body.Close()

	body, _ := io.ReadAll(resp.Body)

	if resp.StatusCode != http.StatusOK {
		fmt.Printf("Request FAILED (Status: %d)\nResponse: %s\n", resp.StatusCode, string(body))
		os.Exit(1)
	}

	printIndented(body)
}

func triggerSync() {
	client := &http.Client{Timeout: timeout}
	resp, err := client.Post(baseURL+"/api/v1/sync", "application/json", nil)
	if err != nil {
		fmt.Printf("Error making request: %v\n", err)
		os.Exit(1)
	}
	defer resp.Body.Close()

	body, _ := io.ReadAll(resp.Body)

	if resp.StatusCode != http.StatusOK {
		fmt.Printf("Sync FAILED (Status: %d)\nResponse: %s\n", resp.StatusCode, string(body))
		os.Exit(1)
	}

	fmt.Printf("Sync completed\n")
	printIndented(body)
}

func printIndented(body []byte) {
	var result map[string]any
	if err := json.Unmarshal(body, &result); err != nil {
		fmt.Printf("Failed to parse response: %v\n", err)
		os.Exit(1)
	}

	out, _ := json.MarshalIndent(result, "", "  ")
	fmt.Println(string(out))
}
