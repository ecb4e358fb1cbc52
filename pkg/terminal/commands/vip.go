package commands

import (
	"context"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/cp-tools/casino-atlas/pkg/models/domain"
	"github.com/cp-tools/casino-atlas/pkg/terminal/export"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
)

type VIPCmd struct {
	profilePath  string
	dbPath       string
	inactiveDays int
	output       io.Writer
}

// NewVIPCmd groups the roster queries that run against the persisted
// daily activity of the last report run.
func NewVIPCmd(output io.Writer) *cobra.Command {
	vc := &VIPCmd{output: output}
	cmd := &cobra.Command{
		Use:   "vip",
		Short: "Query VIP activity from the last report run",
	}

	cmd.PersistentFlags().StringVar(&vc.profilePath, "profile", "", "Path to the configuration profile")
	cmd.PersistentFlags().StringVar(&vc.dbPath, "db", "casino-atlas.db", "Path to the daily activity database")

	inactive := &cobra.Command{
		Use:   "inactive",
		Short: "List roster members inactive for at least the given number of days",
		RunE:  vc.runInactive,
	}
	inactive.Flags().IntVar(&vc.inactiveDays, "days", 30, "Inactivity threshold in days")

	candidates := &cobra.Command{
		Use:   "candidates",
		Short: "List non-roster players whose volume suggests VIP treatment",
		RunE:  vc.runCandidates,
	}

	cmd.AddCommand(inactive)
	cmd.AddCommand(candidates)

	return cmd
}

func (vc *VIPCmd) runInactive(cmd *cobra.Command, args []string) error {
	return vc.query(cmd, func(ctx context.Context) ([]domain.PlayerSummary, error) {
		svc, db, err := buildService(vc.profilePath, vc.dbPath)
		if err != nil {
			return nil, err
		}
		defer db.Close()
		return svc.InactiveVIPs(ctx, vc.inactiveDays)
	})
}

func (vc *VIPCmd) runCandidates(cmd *cobra.Command, args []string) error {
	return vc.query(cmd, func(ctx context.Context) ([]domain.PlayerSummary, error) {
		svc, db, err := buildService(vc.profilePath, vc.dbPath)
		if err != nil {
			return nil, err
		}
		defer db.Close()
		return svc.VIPCandidates(ctx)
	})
}

func (vc *VIPCmd) query(
	cmd *cobra.Command,
	fn func(ctx context.Context) ([]domain.PlayerSummary, error),
) error {
	ctx, cancel := context.WithTimeout(cmd.Context(), 30*time.Second)
	defer cancel()

	logger := zerolog.New(os.Stderr).With().Timestamp().Logger()
	ctx = logger.WithContext(ctx)

	summaries, err := fn(ctx)
	if err != nil {
		return fmt.Errorf("vip query failed: %w", err)
	}

	return export.WriteSummaries(vc.output, summaries)
}
