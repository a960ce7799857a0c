package tracks

import (
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/golangdaddy/rcproam/pkg/config"
	"github.com/golangdaddy/rcproam/pkg/track"
)

func NewTracksCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "tracks",
		Short: "lists the tracks of the catalog",
		RunE: func(cmd *cobra.Command, args []string) error {
			return listTracks(cmd.OutOrStdout(), config.TrackCatalog)
		},
	}
}

func listTracks(w io.Writer, path string) error {
	catalog, err := track.LoadCatalog(path)
	if err != nil {
		return err
	}

	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tNAME\tLAPS\tGRID\tCHECKPOINTS\tSTARTS")
	for i := range catalog.Tracks {
		t, err := catalog.Load(i)
		if err != nil {
			return err
		}
		laps := fmt.Sprint(t.Laps)
		if t.HasLapRange() {
			laps = fmt.Sprintf("%d-%d", t.MinLaps, t.MaxLaps)
		}
		fmt.Fprintf(tw, "%s\t%s\t%s\t%dx%d\t%d\t%d\n",
			t.ID, t.Name, laps, t.Grid.Columns(), t.Grid.Rows(), t.Grid.CheckpointCount(), len(t.Start))
	}
	return tw.Flush()
}
