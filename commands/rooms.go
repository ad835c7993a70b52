package commands

import (
	"context"
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"hotel-frontend/config"
	"hotel-frontend/models"
	"hotel-frontend/services"
)

func RoomsCmd() *cobra.Command {
	var criteria services.FilterCriteria
	cmd := &cobra.Command{
		Use:   "rooms",
		Short: "List the backend's rooms through the catalog filters",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load()
			if err != nil {
				return err
			}
			source := services.NewUpstreamRoomSource(services.NewAPIClient(cfg.APIBaseURL, cfg.UpstreamTimeout))
			return listRooms(cmd.Context(), cmd.OutOrStdout(), source, criteria)
		},
	}
	cmd.Flags().StringVar(&criteria.Search, "search", "", "match name or description (case-insensitive)")
	cmd.Flags().StringVar(&criteria.Type, "type", services.FilterAll, "single, double, suite or all")
	cmd.Flags().StringVar(&criteria.Price, "price", services.FilterAll, "budget, mid, luxury or all")
	return cmd
}

func listRooms(ctx context.Context, out io.Writer, source services.RoomSource, criteria services.FilterCriteria) error {
	if ctx == nil {
		ctx = context.Background()
	}
	catalog, err := source.FetchRooms(ctx)
	if err != nil {
		return err
	}
	rooms := services.FilterRooms(catalog, criteria)

	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tNAME\tTYPE\tPRICE\tMAX GUESTS\tAVAILABLE")
	for _, room := range rooms {
		fmt.Fprintf(w, "%s\t%s\t%s\t%.2f\t%d\t%s\n",
			room.ID, room.Name, room.Type, room.Price, services.MaxGuests(room.Type), availability(room))
	}
	if err := w.Flush(); err != nil {
		return err
	}
	if criteria.Active() {
		fmt.Fprintf(out, "%d of %d rooms (filtered)\n", len(rooms), len(catalog))
		return nil
	}
	fmt.Fprintf(out, "%d rooms\n", len(rooms))
	return nil
}

func availability(room models.Room) string {
	if room.Available {
		return "yes"
	}
	return "no"
}
