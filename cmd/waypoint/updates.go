package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/pairlane/waypoint/internal/client"
	"github.com/spf13/cobra"
)

var updatesCmd = &cobra.Command{
	Use:     "updates",
	Short:   "List emitted location updates",
	GroupID: "history",
	Args:    cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		req := &client.ListUpdatesRequest{}
		req.Trigger, _ = cmd.Flags().GetString("trigger")
		req.Limit, _ = cmd.Flags().GetInt("limit")
		req.Offset, _ = cmd.Flags().GetInt("offset")

		if v, _ := cmd.Flags().GetString("since"); v != "" {
			ts, err := time.Parse(time.RFC3339, v)
			if err != nil {
				return fmt.Errorf("invalid --since: %w", err)
			}
			req.Since = &ts
		}
		if v, _ := cmd.Flags().GetString("until"); v != "" {
			ts, err := time.Parse(time.RFC3339, v)
			if err != nil {
				return fmt.Errorf("invalid --until: %w", err)
			}
			req.Until = &ts
		}

		resp, err := waypointClient.ListUpdates(context.Background(), req)
		if err != nil {
			return err
		}

		if jsonOutput {
			printUpdateListJSON(resp.Updates)
		} else {
			printUpdateListTable(resp.Updates, resp.Total)
		}
		return nil
	},
}

var latestCmd = &cobra.Command{
	Use:     "latest",
	Short:   "Show the most recent location update",
	GroupID: "history",
	Args:    cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		update, err := waypointClient.LatestUpdate(context.Background())
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}

		if jsonOutput {
			printUpdateJSON(update)
		} else {
			printUpdate(update)
		}
		return nil
	},
}

func init() {
	updatesCmd.Flags().String("trigger", "", "filter by trigger (initial, app_state, manual)")
	updatesCmd.Flags().String("since", "", "only updates emitted at or after this RFC3339 timestamp")
	updatesCmd.Flags().String("until", "", "only updates emitted before this RFC3339 timestamp")
	updatesCmd.Flags().Int("limit", 0, "maximum number of updates to return")
	updatesCmd.Flags().Int("offset", 0, "number of updates to skip")
}
