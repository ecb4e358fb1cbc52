package main

import (
	"fmt"
	"net"
	"os"

	"github.com/cp-tools/casino-atlas/pkg/server"
	"github.com/cp-tools/casino-atlas/pkg/services/bonus"
	"github.com/cp-tools/casino-atlas/pkg/services/catalog"
	"github.com/cp-tools/casino-atlas/pkg/services/community"
	"github.com/cp-tools/casino-atlas/pkg/services/config"
	"github.com/cp-tools/casino-atlas/pkg/services/report"
	"github.com/cp-tools/casino-atlas/pkg/store/duckdb"
	duckdbactivity "github.com/cp-tools/casino-atlas/pkg/store/duckdb/activity"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
)

var (
	profilePath string
	dbPath      string
)

func main() {
	var rootCmd = &cobra.Command{
		Use:   "web",
		Short: "Start the web server for Casino Atlas",
		RunE:  runServer,
	}

	rootCmd.Flags().StringVarP(&profilePath, "profile", "p", "",
		"Path to the configuration profile (defaults to built-in settings)")
	rootCmd.Flags().StringVar(&dbPath, "db", "casino-atlas.db",
		"Path to the daily activity database")

	if err := rootCmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}

func runServer(cmd *cobra.Command, _ []string) error {
	if err := godotenv.Load(); err != nil {
		fmt.Printf("Error loading .env file: %v\n", err)
	}

	logger := zerolog.New(os.Stdout).With().Timestamp().Logger()

	profile := config.DefaultProfile()
	if profilePath != "" {
		loaded, err := config.LoadProfile(profilePath)
		if err != nil {
			return fmt.Errorf("failed to load profile: %w", err)
		}
		profile = loaded
		logger.Info().Msgf("Configuration found at `%s` successfully loaded.", profilePath)
	}

	db, err := duckdb.NewDB(duckdb.Settings{
		DbPath: dbPath,
	})
	if err != nil {
		return fmt.Errorf("failed to create DuckDB instance: %w", err)
	}
	defer db.Close()

	activityStore, err := duckdbactivity.NewStore(db)
	if err != nil {
		return fmt.Errorf("failed to create activity store: %w", err)
	}

	classifier := community.NewClassifier(profile.Markers())
	evaluator := bonus.NewEvaluator(classifier)
	fileCatalog := catalog.NewFileCatalog(profile.Catalog.Offers, profile.Catalog.Roster)

	reports := report.NewController(
		fileCatalog,
		evaluator,
		activityStore,
		profile.Thresholds(),
		profile.TopCount,
	)

	host := os.Getenv("SERVER_HOST")
	port := os.Getenv("SERVER_PORT")

	if host == "" || port == "" {
		logger.Error().Msgf("Missing server configuration from .env file")
		os.Exit(1)
	}

	api := server.NewWebAPI(logger, server.Config{
		Addr:   net.JoinHostPort(host, port),
		APIKey: os.Getenv("API_KEY"),
		Dependencies: server.Dependencies{
			Reports: reports,
		},
	})

	return api.Start()
}
