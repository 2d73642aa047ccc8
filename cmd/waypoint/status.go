package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"
)

var statusCmd = &cobra.Command{
	Use:     "status",
	Short:   "Show the gate's current state",
	GroupID: "gate",
	Args:    cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		snap, err := waypointClient.GateStatus(context.Background())
		if err != nil {
			return err
		}

		if jsonOutput {
			data, err := json.MarshalIndent(snap, "", "  ")
			if err != nil {
				fmt.Fprintf(os.Stderr, "Error marshaling JSON: %v\n", err)
				os.Exit(1)
			}
			fmt.Println(string(data))
			return nil
		}

		fmt.Printf("Last update:           %s\n", formatTimestamp(snap.LastUpdateAt))
		fmt.Printf("Last app-state update: %s\n", formatTimestamp(snap.LastAppStateUpdateAt))
		fmt.Printf("Timer pending:         %v\n", snap.TimerPending)
		fmt.Printf("Request in flight:     %v\n", snap.RequestInFlight)
		return nil
	},
}

func formatTimestamp(t *time.Time) string {
	if t == nil {
		return "never"
	}
	return fmt.Sprintf("%s (%s ago)", t.Format("2006-01-02 15:04:05"), time.Since(*t).Round(time.Second))
}
