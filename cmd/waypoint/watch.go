package main

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"os"
	"os/signal"
	"time"

	"github.com/nats-io/nats.go"
	"github.com/pairlane/waypoint/internal/events"
	"github.com/pairlane/waypoint/internal/model"
	"github.com/spf13/cobra"
)

var watchCmd = &cobra.Command{
	Use:     "watch",
	Short:   "Stream location events as they happen",
	GroupID: "history",
	Args:    cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		interval, _ := cmd.Flags().GetDuration("interval")

		ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
		defer stop()

		natsURL := os.Getenv("WAYPOINT_NATS_URL")
		if natsURL == "" {
			natsURL = activeRemoteNATSURL()
		}
		if natsURL != "" {
			return watchNATS(ctx, natsURL)
		}
		return watchPoll(ctx, interval)
	},
}

// watchNATS subscribes to the event bus and prints events as they arrive.
func watchNATS(ctx context.Context, natsURL string) error {
	sub, err := events.NewNATSSubscriber(natsURL,
		nats.DisconnectErrHandler(func(_ *nats.Conn, err error) {
			log.Printf("nats: disconnected: %v", err)
		}),
		nats.ReconnectHandler(func(_ *nats.Conn) {
			log.Printf("nats: reconnected")
		}),
	)
	if err != nil {
		return fmt.Errorf("connecting to NATS: %w", err)
	}
	defer sub.Close()

	ch, cancel, err := sub.Subscribe("waypoint.>")
	if err != nil {
		return fmt.Errorf("subscribing to events: %w", err)
	}
	defer cancel()

	fmt.Println("watching for location events (ctrl-c to stop)")
	for {
		select {
		case <-ctx.Done():
			return nil
		case data, ok := <-ch:
			if !ok {
				return nil
			}
			printEvent(data)
		}
	}
}

// watchPoll falls back to polling the latest update when no event bus is
// configured.
func watchPoll(ctx context.Context, interval time.Duration) error {
	fmt.Printf("no event bus configured, polling every %s (ctrl-c to stop)\n", interval)

	var lastID string
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return nil
		case <-ticker.C:
			update, err := waypointClient.LatestUpdate(ctx)
			if err != nil {
				continue
			}
			if update.ID == lastID {
				continue
			}
			lastID = update.ID
			fmt.Printf("[%s] %s %.5f,%.5f %s\n",
				update.EmittedAt.Format("15:04:05"), update.Trigger,
				update.Latitude, update.Longitude, update.Place)
		}
	}
}

// printEvent renders a raw event payload. Updates get a one-line summary;
// anything else is printed as compact JSON.
func printEvent(data []byte) {
	var updated events.LocationUpdated
	if err := json.Unmarshal(data, &updated); err == nil && updated.Update != nil && updated.Update.ID != "" {
		u := updated.Update
		fmt.Printf("[%s] %s %.5f,%.5f %s\n",
			u.EmittedAt.Format("15:04:05"), u.Trigger, u.Latitude, u.Longitude, u.Place)
		return
	}

	var skipped events.LocationSkipped
	if err := json.Unmarshal(data, &skipped); err == nil && skipped.Reason != "" {
		trigger := skipped.Trigger
		if trigger == "" {
			trigger = model.Trigger("unknown")
		}
		fmt.Printf("[%s] skipped (%s, %s)\n", time.Now().Format("15:04:05"), trigger, skipped.Reason)
		return
	}

	fmt.Printf("[%s] %s\n", time.Now().Format("15:04:05"), data)
}

func init() {
	watchCmd.Flags().Duration("interval", 10*time.Second, "polling interval when no event bus is configured")
}
