package cli

import (
	"delivery-dispatch-service/internal/adapters/files"
	"delivery-dispatch-service/internal/adapters/repositories"
	"delivery-dispatch-service/internal/platform/db"
	"errors"
	"fmt"

	"github.com/spf13/cobra"
)

func newSeedCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "seed",
		Short: "Load the package and distance files into the database",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if flagDB == "" {
				return errors.New("seed: --db or DATABASE_URL is required")
			}

			driver := db.DriverFor(flagDB)
			conn, err := db.Open(driver, flagDB)
			if err != nil {
				return err
			}
			defer closeDB(conn)

			nPkgs, nLocs, err := repositories.Import(cmd.Context(), conn, repositories.DialectFor(driver),
				files.NewPackageFile(flagPackages), files.NewDistanceFile(flagDistances))
			if err != nil {
				return err
			}

			logger.Info("seed complete", "packages", nPkgs, "locations", nLocs)
			fmt.Fprintf(cmd.OutOrStdout(), "Seeded %d packages and %d locations\n", nPkgs, nLocs)
			return nil
		},
	}
}
