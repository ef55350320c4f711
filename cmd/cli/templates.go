package main

import (
	"encoding/json"
	"fmt"
	"net/url"

	"github.com/spf13/cobra"
)

var (
	templateContentType string
	templatePlatform    string
)

var templatesCmd = &cobra.Command{
	Use:   "templates",
	Short: "Browse the content template catalog",
	RunE: func(cmd *cobra.Command, args []string) error {
		return listCatalog()
	},
}

func init() {
	templatesCmd.Flags().StringVar(&templateContentType, "content-type", "", "Filter by content type")
	templatesCmd.Flags().StringVar(&templatePlatform, "platform", "", "Filter by platform")
}

func listCatalog() error {
	query := url.Values{}
	if templateContentType != "" {
		query.Set("content_type", templateContentType)
	}
	if templatePlatform != "" {
		query.Set("platform", templatePlatform)
	}

	path := "/api/v1/templates"
	if encoded := query.Encode(); encoded != "" {
		path += "?" + encoded
	}

	body, err := apiRequest("GET", path, nil)
	if err != nil {
		return err
	}

	if output == "json" {
		fmt.Println(string(body))
		return nil
	}

	var resp struct {
		Templates []struct {
			ID               string `json:"id"`
			Name             string `json:"name"`
			ContentType      string `json:"content_type"`
			Platform         string `json:"platform"`
			EstimatedMinutes int    `json:"estimated_minutes"`
		} `json:"templates"`
		Count int `json:"count"`
	}
	if err := json.Unmarshal(body, &resp); err != nil {
		return fmt.Errorf("failed to parse response: %w", err)
	}

	fmt.Printf("%d template(s)\n", resp.Count)
	for _, t := range resp.Templates {
		fmt.Printf("  %-28s %-13s %-8s ~%dm  (%s)\n",
			t.Name, t.ContentType, t.Platform, t.EstimatedMinutes, t.ID)
	}
	return nil
}
