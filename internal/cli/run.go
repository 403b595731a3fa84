package cli

import (
	"delivery-dispatch-service/internal/domain"
	"delivery-dispatch-service/internal/report"
	"fmt"

	"github.com/spf13/cobra"
)

func newRunCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "run",
		Short: "Schedule every package and print the end-of-day summary",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			res, err := schedule(cmd.Context())
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "Run %s\n", res.RunID)
			for _, p := range res.Packages {
				fmt.Fprintln(out, report.Line(p, domain.EndOfDay))
			}
			fmt.Fprintln(out)

			late := 0
			for _, p := range res.Packages {
				if !p.DeliveredOnTime() {
					late++
				}
			}
			fmt.Fprintf(out, "%d packages delivered, %d late\n", len(res.Packages), late)
			return report.WriteTrucks(out, res.Trucks)
		},
	}
}
