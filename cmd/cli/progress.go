package main

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/spf13/cobra"
)

var progressCmd = &cobra.Command{
	Use:   "progress",
	Short: "Inspect creator journey progress",
	RunE: func(cmd *cobra.Command, args []string) error {
		return showProgress()
	},
}

func showProgress() error {
	body, err := apiRequest("GET", "/api/v1/analytics/progress", nil)
	if err != nil {
		return err
	}

	if output == "json" {
		fmt.Println(string(body))
		return nil
	}

	var resp struct {
		Progress struct {
			TotalCompleted int    `json:"total_completed"`
			CurrentStreak  int    `json:"current_streak"`
			LongestStreak  int    `json:"longest_streak"`
			QualityTrend   string `json:"quality_trend"`
			Projection     struct {
				RemainingTasks          int        `json:"remaining_tasks"`
				AverageTasksPerDay      float64    `json:"average_tasks_per_day"`
				EstimatedCompletionDate *time.Time `json:"estimated_completion_date"`
				Pace                    string     `json:"pace"`
				ActualProgressPct       float64    `json:"actual_progress_pct"`
				ExpectedProgressPct     float64    `json:"expected_progress_pct"`
			} `json:"projection"`
		} `json:"progress"`
	}
	if err := json.Unmarshal(body, &resp); err != nil {
		return fmt.Errorf("failed to parse response: %w", err)
	}

	p := resp.Progress
	fmt.Printf("Completed tasks: %d\n", p.TotalCompleted)
	fmt.Printf("Streak: %d current / %d longest\n", p.CurrentStreak, p.LongestStreak)
	fmt.Printf("Quality trend: %s\n", p.QualityTrend)
	fmt.Printf("Pace: %s (%.1f%% actual vs %.1f%% expected)\n",
		p.Projection.Pace, p.Projection.ActualProgressPct, p.Projection.ExpectedProgressPct)
	if p.Projection.EstimatedCompletionDate != nil {
		fmt.Printf("Estimated completion: %s\n", p.Projection.EstimatedCompletionDate.Format("2006-01-02"))
	} else {
		fmt.Println("Estimated completion: not enough activity to project")
	}
	return nil
}
