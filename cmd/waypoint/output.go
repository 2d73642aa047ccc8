package main

import (
	"encoding/json"
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/pairlane/waypoint/internal/model"
	"github.com/pairlane/waypoint/internal/ui"
)

func printUpdateJSON(update *model.LocationUpdate) {
	data, err := json.MarshalIndent(update, "", "  ")
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error marshaling JSON: %v\n", err)
		return
	}
	fmt.Println(string(data))
}

func printUpdate(update *model.LocationUpdate) {
	fmt.Printf("ID:          %s\n", update.ID)
	fmt.Printf("Coordinates: %.5f, %.5f\n", update.Latitude, update.Longitude)
	if update.Place != "" {
		fmt.Printf("Place:       %s\n", update.Place)
	}
	fmt.Printf("Trigger:     %s\n", ui.RenderTrigger(string(update.Trigger)))
	fmt.Printf("Captured At: %s\n", update.CapturedAt.Format("2006-01-02 15:04:05"))
	fmt.Printf("Emitted At:  %s\n", update.EmittedAt.Format("2006-01-02 15:04:05"))
}

func printUpdateListJSON(updates []*model.LocationUpdate) {
	data, err := json.MarshalIndent(updates, "", "  ")
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error marshaling JSON: %v\n", err)
		return
	}
	fmt.Println(string(data))
}

func printUpdateListTable(updates []*model.LocationUpdate, total int) {
	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tTRIGGER\tLATITUDE\tLONGITUDE\tPLACE\tEMITTED")
	for _, u := range updates {
		place := u.Place
		if len(place) > 40 {
			place = place[:37] + "..."
		}
		fmt.Fprintf(w, "%s\t%s\t%.5f\t%.5f\t%s\t%s\n",
			u.ID,
			u.Trigger,
			u.Latitude,
			u.Longitude,
			place,
			u.EmittedAt.Format("2006-01-02 15:04:05"),
		)
	}
	w.Flush()
	fmt.Printf("\n%d updates (%d total)\n", len(updates), total)
}
