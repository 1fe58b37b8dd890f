// Command composer submits a composition request file to the API server and
// follows the render job to completion.
package main

import (
	"bytes"
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"net/http"
	"os"
	"time"

	ansi "github.com/k0kubun/go-ansi"
	"github.com/schollz/progressbar/v3"

	"github.com/clipforge/clip-composer/internal/builder"
	"github.com/clipforge/clip-composer/internal/domain"
	"github.com/clipforge/clip-composer/internal/job"
	"github.com/clipforge/clip-composer/internal/pricing"
)

func main() {
	requestPath := flag.String("request", "", "Path to a composition request JSON file (required)")
	serverURL := flag.String("server", "http://localhost:8080", "Composer API server URL")
	estimateOnly := flag.Bool("estimate", false, "Print the cost/time estimate and exit without submitting")

	flag.Usage = func() {
		fmt.Fprintf(flag.CommandLine.Output(), "Usage of %s:\n", os.Args[0])
		flag.PrintDefaults()
	}
	flag.Parse()

	if *requestPath == "" {
		log.Fatal("Missing required flag: -request")
	}

	data, err := os.ReadFile(*requestPath)
	if err != nil {
		log.Fatal(err)
	}

	var req domain.CompositionRequest
	if err := json.Unmarshal(data, &req); err != nil {
		log.Fatalf("invalid request file: %v", err)
	}
	if err := builder.Validate(&req); err != nil {
		log.Fatalf("composition not ready: %v", err)
	}

	credits, err := pricing.Cost(req.CompositionType, len(req.VideoURLs))
	if err != nil {
		log.Fatal(err)
	}
	estimate, err := pricing.Duration(req.CompositionType, len(req.VideoURLs))
	if err != nil {
		log.Fatal(err)
	}
	fmt.Printf("Type: %s  Clips: %d  Cost: %d credits  Estimated time: %s\n",
		req.CompositionType, len(req.VideoURLs), credits, estimate)

	if *estimateOnly {
		return
	}

	jobID, err := submit(*serverURL, data)
	if err != nil {
		log.Fatal(err)
	}
	fmt.Printf("Submitted job %s\n", jobID)

	if err := follow(*serverURL, jobID); err != nil {
		log.Fatal(err)
	}
}

func submit(serverURL string, body []byte) (string, error) {
	resp, err := http.Post(serverURL+"/api/v1/compositions", "application/json", bytes.NewReader(body))
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	var reply struct {
		Message string `json:"message"`
		JobID   string `json:"jobId"`
		Error   string `json:"error"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&reply); err != nil {
		return "", err
	}
	if resp.StatusCode != http.StatusAccepted {
		return "", fmt.Errorf("submission rejected (%d): %s", resp.StatusCode, reply.Error)
	}
	return reply.JobID, nil
}

func follow(serverURL, jobID string) error {
	bar := progressbar.NewOptions(
		100,
		progressbar.OptionSetWriter(ansi.NewAnsiStdout()),
		progressbar.OptionEnableColorCodes(true),
		progressbar.OptionSetTheme(progressbar.ThemeASCII),
		progressbar.OptionFullWidth(),
		progressbar.OptionSetDescription("[cyan]Rendering...[reset]"),
	)

	for {
		time.Sleep(2 * time.Second)

		status, err := fetchStatus(serverURL, jobID)
		if err != nil {
			// Transient errors retry on the next tick; the server enforces
			// the real failure budget.
			continue
		}

		_ = bar.Set(int(status.Progress))

		switch status.Status {
		case job.StatusCompleted:
			_ = bar.Finish()
			fmt.Printf("\nDone: %s\n", status.OutputVideoURL)
			return nil
		case job.StatusFailed:
			return fmt.Errorf("render failed: %s", status.Error)
		case job.StatusCancelled:
			return fmt.Errorf("job was cancelled")
		}
	}
}

func fetchStatus(serverURL, jobID string) (job.Status, error) {
	resp, err := http.Get(serverURL + "/api/v1/jobs/" + jobID)
	if err != nil {
		return job.Status{}, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return job.Status{}, fmt.Errorf("status check returned %d", resp.StatusCode)
	}

	var status job.Status
	if err := json.NewDecoder(resp.Body).Decode(&status); err != nil {
		return job.Status{}, err
	}
	return status, nil
}
