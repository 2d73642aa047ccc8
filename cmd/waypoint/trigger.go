package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/user"

	"github.com/pairlane/waypoint/internal/client"
	"github.com/spf13/cobra"
)

var triggerCmd = &cobra.Command{
	Use:     "trigger",
	Short:   "Fire a gate trigger",
	GroupID: "gate",
}

var triggerManualCmd = &cobra.Command{
	Use:   "manual",
	Short: "Request an immediate location update",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		requestedBy, _ := cmd.Flags().GetString("by")
		if requestedBy == "" {
			if u, err := user.Current(); err == nil {
				requestedBy = u.Username
			}
		}

		update, err := waypointClient.TriggerManual(context.Background(), requestedBy)
		if err != nil {
			var apiErr *client.APIError
			if errors.As(err, &apiErr) {
				switch apiErr.StatusCode {
				case http.StatusTooManyRequests:
					fmt.Fprintln(os.Stderr, "update throttled: the last update is too recent")
				case http.StatusConflict:
					fmt.Fprintln(os.Stderr, "a fix request is already in flight")
				case http.StatusServiceUnavailable:
					fmt.Fprintln(os.Stderr, "network unreachable, update skipped")
				default:
					fmt.Fprintf(os.Stderr, "Error: %v\n", apiErr)
				}
				os.Exit(1)
			}
			return err
		}

		if jsonOutput {
			printUpdateJSON(update)
		} else {
			printUpdate(update)
		}
		return nil
	},
}

var triggerForegroundCmd = &cobra.Command{
	Use:   "foreground",
	Short: "Signal an app-foreground transition (debounced)",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := waypointClient.TriggerForeground(context.Background()); err != nil {
			return err
		}
		fmt.Println("foreground evaluation scheduled")
		return nil
	},
}

var triggerStartCmd = &cobra.Command{
	Use:   "start",
	Short: "Signal an app start (delayed initial evaluation)",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := waypointClient.TriggerStart(context.Background()); err != nil {
			return err
		}
		fmt.Println("initial evaluation scheduled")
		return nil
	},
}

func init() {
	triggerManualCmd.Flags().String("by", "", "who requested the update (defaults to the current user)")
	triggerCmd.AddCommand(triggerManualCmd)
	triggerCmd.AddCommand(triggerForegroundCmd)
	triggerCmd.AddCommand(triggerStartCmd)
}
