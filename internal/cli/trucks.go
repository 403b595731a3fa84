package cli

import (
	"delivery-dispatch-service/internal/report"

	"github.com/spf13/cobra"
)

func newTrucksCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "trucks",
		Short: "Show mileage and trips for each truck",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			res, err := schedule(cmd.Context())
			if err != nil {
				return err
			}
			return report.WriteTrucks(cmd.OutOrStdout(), res.Trucks)
		},
	}
}
