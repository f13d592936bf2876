package main

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/spf13/cobra"
)

var (
	serverURL string
)

var statusCmd = &cobra.Command{
	Use:   "status [job-id]",
	Short: "Query server status or specific job",
	Long: `Queries the benchmark server for job status information.
If no job-id is provided, lists all jobs.
If job-id is provided, shows detailed status for that job.`,
	RunE: runStatus,
}

func init() {
	statusCmd.Flags().StringVar(&serverURL, "server", "http://localhost:8080", "Server URL")
	rootCmd.AddCommand(statusCmd)
}

func runStatus(cmd *cobra.Command, args []string) error {
	if len(args) == 0 {
		return listJobs(fmt.Sprintf("%s/api/v1/jobs", serverURL))
	}
	return showJob(fmt.Sprintf("%s/api/v1/jobs/%s/status", serverURL, args[0]))
}

type jobSummary struct {
	ID          string     `json:"id"`
	State       string     `json:"state"`
	Stage       string     `json:"stage"`
	Point       int        `json:"point"`
	TotalPoints int        `json:"totalPoints"`
	StartTime   time.Time  `json:"startTime"`
	EndTime     *time.Time `json:"endTime"`
	Error       string     `json:"error"`
	Config      struct {
		Dataset string    `json:"dataset"`
		Cs      []float64 `json:"cs"`
	} `json:"config"`
}

func fetchJSON(url string, into interface{}) error {
	resp, err := http.Get(url)
	if err != nil {
		return fmt.Errorf("failed to reach server: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("failed to read response: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("server returned %s: %s", resp.Status, body)
	}
	return json.Unmarshal(body, into)
}

func listJobs(url string) error {
	var jobs []jobSummary
	if err := fetchJSON(url, &jobs); err != nil {
		return err
	}

	if len(jobs) == 0 {
		fmt.Println("No jobs")
		return nil
	}

	for _, job := range jobs {
		progress := ""
		if job.TotalPoints > 0 {
			progress = fmt.Sprintf(" %d/%d", job.Point, job.TotalPoints)
		}
		fmt.Printf("%s  %-10s %s%s\n", job.ID, job.State, job.Config.Dataset, progress)
	}
	return nil
}

func showJob(url string) error {
	var job jobSummary
	if err := fetchJSON(url, &job); err != nil {
		return err
	}

	fmt.Printf("Job:      %s\n", job.ID)
	fmt.Printf("State:    %s\n", job.State)
	fmt.Printf("Dataset:  %s\n", job.Config.Dataset)
	fmt.Printf("Sweep:    %v\n", job.Config.Cs)
	if job.Stage != "" {
		fmt.Printf("Stage:    %s (%d/%d)\n", job.Stage, job.Point, job.TotalPoints)
	}
	fmt.Printf("Started:  %s\n", job.StartTime.Format(time.RFC3339))
	if job.EndTime != nil {
		fmt.Printf("Finished: %s\n", job.EndTime.Format(time.RFC3339))
	}
	if job.Error != "" {
		fmt.Printf("Error:    %s\n", job.Error)
	}
	return nil
}
