package main

import (
	"context"
	"database/sql"
	"delivery-dispatch-service/internal/adapters/files"
	"delivery-dispatch-service/internal/adapters/repositories"
	"delivery-dispatch-service/internal/config"
	"delivery-dispatch-service/internal/platform/db"
	"log"
	"os"
	"strings"

	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/joho/godotenv"
	_ "modernc.org/sqlite"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found (using environment variables)")
	}

	databaseURL := os.Getenv("DATABASE_URL")
	if strings.TrimSpace(databaseURL) == "" {
		log.Fatal("DATABASE_URL is required")
	}

	driver := db.DriverFor(databaseURL)
	conn, err := db.Open(driver, databaseURL)
	if err != nil {
		log.Fatal(err)
	}
	defer conn.Close()

	packagesPath := config.Get("PACKAGES_PATH", "data/packages.csv")
	distancesPath := config.Get("DISTANCES_PATH", "data/distances.csv")
	if err := initAndSeed(conn, repositories.DialectFor(driver), packagesPath, distancesPath); err != nil {
		log.Fatal(err)
	}
}

func initAndSeed(conn *sql.DB, dialect repositories.Dialect, packagesPath, distancesPath string) error {
	log.Println("Initializing schema and seeding database...")
	nPkgs, nLocs, err := repositories.Import(
		context.Background(),
		conn,
		dialect,
		files.NewPackageFile(packagesPath),
		files.NewDistanceFile(distancesPath),
	)
	if err != nil {
		return err
	}
	log.Printf("Seeding complete: %d packages, %d locations.", nPkgs, nLocs)

	return nil
}
