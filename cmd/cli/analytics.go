package main

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/spf13/cobra"
)

var (
	periodStart string
	periodEnd   string
	periodType  string
	historyLen  int
)

var analyticsCmd = &cobra.Command{
	Use:   "analytics",
	Short: "Compute and inspect analytics snapshots",
}

var recomputeCmd = &cobra.Command{
	Use:   "recompute",
	Short: "Recompute the analytics snapshot for a period",
	Long: `Recompute the analytics snapshot for the authenticated creator.
Defaults to the trailing 30 days when no period is given.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		return recomputeSnapshot()
	},
}

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "List stored snapshots, newest first",
	RunE: func(cmd *cobra.Command, args []string) error {
		return listHistory()
	},
}

func init() {
	recomputeCmd.Flags().StringVar(&periodStart, "start", "", "Period start (YYYY-MM-DD, default 30 days ago)")
	recomputeCmd.Flags().StringVar(&periodEnd, "end", "", "Period end (YYYY-MM-DD, default today)")
	recomputeCmd.Flags().StringVar(&periodType, "type", "month", "Period type: day, week, month, custom")
	historyCmd.Flags().IntVar(&historyLen, "limit", 10, "Number of snapshots to list")

	analyticsCmd.AddCommand(recomputeCmd)
	analyticsCmd.AddCommand(historyCmd)
}

func recomputeSnapshot() error {
	start := periodStart
	end := periodEnd
	if start == "" {
		start = time.Now().AddDate(0, 0, -30).Format("2006-01-02")
	}
	if end == "" {
		end = time.Now().Format("2006-01-02")
	}

	payload := map[string]any{
		"period": map[string]string{
			"start": start,
			"end":   end,
			"type":  periodType,
		},
	}

	body, err := apiRequest("POST", "/api/v1/analytics", payload)
	if err != nil {
		return err
	}

	if output == "json" {
		fmt.Println(string(body))
		return nil
	}

	var resp struct {
		Snapshot struct {
			ID             string `json:"id"`
			Content struct {
				TotalContent    int `json:"total_content"`
				TotalViews      int `json:"total_views"`
				TotalEngagement int `json:"total_engagement"`
			} `json:"content"`
			Recommendations []struct {
				Title    string `json:"title"`
				Priority int    `json:"priority"`
			} `json:"recommendations"`
		} `json:"snapshot"`
	}
	if err := json.Unmarshal(body, &resp); err != nil {
		return fmt.Errorf("failed to parse response: %w", err)
	}

	fmt.Printf("Snapshot %s recomputed for %s .. %s\n", resp.Snapshot.ID, start, end)
	fmt.Printf("  content: %d  views: %d  engagement: %d\n",
		resp.Snapshot.Content.TotalContent,
		resp.Snapshot.Content.TotalViews,
		resp.Snapshot.Content.TotalEngagement,
	)
	for _, rec := range resp.Snapshot.Recommendations {
		fmt.Printf("  [P%d] %s\n", rec.Priority, rec.Title)
	}
	return nil
}

func listHistory() error {
	body, err := apiRequest("GET", fmt.Sprintf("/api/v1/analytics/history?limit=%d", historyLen), nil)
	if err != nil {
		return err
	}

	if output == "json" {
		fmt.Println(string(body))
		return nil
	}

	var resp struct {
		Snapshots []struct {
			ID          string    `json:"id"`
			PeriodStart time.Time `json:"period_start"`
			PeriodEnd   time.Time `json:"period_end"`
			UpdatedAt   time.Time `json:"updated_at"`
		} `json:"snapshots"`
		Count int `json:"count"`
	}
	if err := json.Unmarshal(body, &resp); err != nil {
		return fmt.Errorf("failed to parse response: %w", err)
	}

	fmt.Printf("%d snapshot(s)\n", resp.Count)
	for _, s := range resp.Snapshots {
		fmt.Printf("  %s  %s .. %s  (computed %s)\n",
			s.ID,
			s.PeriodStart.Format("2006-01-02"),
			s.PeriodEnd.Format("2006-01-02"),
			s.UpdatedAt.Format(time.RFC3339),
		)
	}
	return nil
}
