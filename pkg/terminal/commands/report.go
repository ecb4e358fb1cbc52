package commands

import (
	"context"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/cp-tools/casino-atlas/pkg/services/report"
	"github.com/cp-tools/casino-atlas/pkg/terminal/export"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
)

type ReportCmd struct {
	profilePath string
	dbPath      string
	filePath    string
	csvPath     string
	reporter    *export.Reporter
	output      io.Writer
}

func NewReportCmd(reporter *export.Reporter, output io.Writer) *cobra.Command {
	rc := &ReportCmd{reporter: reporter, output: output}
	cmd := &cobra.Command{
		Use:   "report",
		Short: "Run the deposit report over a transaction file",
		RunE:  rc.run,
	}

	// Define flags
	cmd.Flags().StringVar(&rc.profilePath, "profile", "", "Path to the configuration profile")
	cmd.Flags().StringVar(&rc.dbPath, "db", "casino-atlas.db", "Path to the daily activity database")
	cmd.Flags().StringVar(&rc.filePath, "file", "", "Path to the transaction report file")
	cmd.Flags().StringVar(&rc.csvPath, "csv", "", "Optional path for a CSV export of the per-player summaries")

	// Mark required flags
	_ = cmd.MarkFlagRequired("file")

	return cmd
}

func (rc *ReportCmd) run(cmd *cobra.Command, args []string) error {
	ctx, cancel := context.WithTimeout(cmd.Context(), 60*time.Second)
	defer cancel()

	logger := zerolog.New(os.Stderr).With().Timestamp().Logger()
	ctx = logger.WithContext(ctx)

	svc, db, err := buildService(rc.profilePath, rc.dbPath)
	if err != nil {
		return err
	}
	defer db.Close()

	file, err := os.Open(rc.filePath)
	if err != nil {
		return fmt.Errorf("failed to open report file: %w", err)
	}
	defer file.Close()

	result, err := svc.Run(ctx, report.RunInput{Source: file})
	if err != nil {
		return fmt.Errorf("report run failed: %w", err)
	}

	if rc.csvPath != "" {
		if err := export.WriteSummariesFile(rc.csvPath, result.Summaries); err != nil {
			return fmt.Errorf("failed to write CSV export: %w", err)
		}
	}

	return rc.reporter.Handle(result.Report)
}
