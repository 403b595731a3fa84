package cli

import (
	"delivery-dispatch-service/internal/domain"
	"delivery-dispatch-service/internal/report"
	"fmt"
	"strconv"

	"github.com/spf13/cobra"
)

func newStatusCmd() *cobra.Command {
	var at string

	cmd := &cobra.Command{
		Use:   "status [package_id]",
		Short: "Show package status at a time of day",
		Long:  "status schedules the day and reports where one package, or every package, stood at the given time.",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			t, err := domain.ParseWallClock(at)
			if err != nil {
				return err
			}

			var id int
			if len(args) == 1 {
				id, err = strconv.Atoi(args[0])
				if err != nil {
					return fmt.Errorf("package id %q: %w", args[0], err)
				}
			}

			res, err := schedule(cmd.Context())
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			if len(args) == 1 {
				p, err := res.Package(id)
				if err != nil {
					return err
				}
				return report.WritePackage(out, p, t)
			}

			for _, p := range res.Packages {
				fmt.Fprintln(out, report.Line(p, t))
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&at, "at", "17:00", "Time of day (HH:MM, 24-hour)")
	return cmd
}
