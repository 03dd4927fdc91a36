package main

import (
	"bytes"
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
		Use:   "wipengine-cli",
		Short: "WIP engine CLI tool",
		Long:  `A command line interface for interacting with the WIP engine API.`,
	}

	rootCmd.PersistentFlags().StringVar(&baseURL, "url", "http://localhost:8080", "Base URL of the WIP engine API")
	rootCmd.PersistentFlags().DurationVar(&timeout, "timeout", 10*time.Second, "Request timeout")

	var dimension string
	snapshotCmd := &cobra.Command{
		Use:   "snapshot <kind> <id>",
		Short: "Fetch a WIP balance snapshot for an entity",
		Args:  cobra.ExactArgs(2),
		Run: func(cmd *cobra.Command, args []string) {
			path := fmt.Sprintf("/api/v1/%s/%s/wip", args[0], args[1])
			if dimension != "" {
				path += "?dimension=" + dimension
			}
			get(path)
		},
	}
	snapshotCmd.Flags().StringVar(&dimension, "dimension", "", "Snapshot dimension (overall, service_line, master_service_line)")

	profitabilityCmd := &cobra.Command{
		Use:   "profitability <kind> <id>",
		Short: "Fetch profitability figures for an entity",
		Args:  cobra.ExactArgs(2),
		Run: func(cmd *cobra.Command, args []string) {
			get(fmt.Sprintf("/api/v1/%s/%s/profitability", args[0], args[1]))
		},
	}

	var asOf string
	agingCmd := &cobra.Command{
		Use:   "aging <kind> <id>",
		Short: "Fetch debtor aging buckets for an entity",
		Args:  cobra.ExactArgs(2),
		Run: func(cmd *cobra.Command, args []string) {
			path := fmt.Sprintf("/api/v1/%s/%s/aging", args[0], args[1])
			if asOf != "" {
				path += "?as_of=" + asOf
			}
			get(path)
		},
	}
	agingCmd.Flags().StringVar(&asOf, "as-of", "", "Reference date (YYYY-MM-DD), defaults to today")

	invalidateCmd := &cobra.Command{
		Use:   "invalidate <kind> <id>",
		Short: "Evict every cached entry of an entity",
		Args:  cobra.ExactArgs(2),
		Run: func(cmd *cobra.Command, args []string) {
			invalidate(args[0], args[1])
		},
	}

	cacheHealthCmd := &cobra.Command{
		Use:   "cache-health",
		Short: "Report the distributed cache tier's state",
		Run: func(cmd *cobra.Command, args []string) {
			get("/api/v1/cache/health")
		},
	}

	rootCmd.AddCommand(snapshotCmd, profitabilityCmd, agingCmd, invalidateCmd, cacheHealthCmd)

	if err := rootCmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}

func get(path string) {
	client := &http.Client{Timeout: timeout}
	resp, err := client.Get(baseURL + path)
	if err != nil {
		fmt.Printf("Error making request: %v\n", err)
		os.Exit(1)
	}
	defer resp.Body.Close()

	printResponse(resp)
}

func invalidate(kind, id string) {
	payload, _ := json.Marshal(map[string]string{
		"entity_kind": kind,
		"entity_id":   id,
	})

	client := &http.Client{Timeout: timeout}
	resp, err := client.Post(baseURL+"/api/v1/cache/invalidate", "application/json", bytes.NewReader(payload))
	if err != nil {
		fmt.Printf("Error making request: %v\n", err)
		os.Exit(1)
	}
	defer resp.Body.Close()

	printResponse(resp)
}

func printResponse(resp *http.Response) {
	body, _ := io.ReadAll(resp.Body)

	if resp.StatusCode >= http.StatusBadRequest {
		fmt.Printf("Request FAILED (Status: %d)\nResponse: %s\n", resp.StatusCode, string(body))
		os.Exit(1)
	}

	var pretty bytes.Buffer
	if err := json.Indent(&pretty, body, "", "  "); err != nil {
		fmt.Println(string(body))
		return
	}
	fmt.Println(pretty.String())
}
