package terminal

import (
	"io"
	"os"

	"github.com/cp-tools/casino-atlas/pkg/terminal/commands"
	"github.com/cp-tools/casino-atlas/pkg/terminal/export"

	"github.com/spf13/cobra"
)

// CLI represents the command-line interface
type CLI struct {
	reporter *export.Reporter
	output   io.Writer
	rootCmd  *cobra.Command
}

// Options contain configuration for the CLI
type Options struct {
	Output io.Writer
}

// NewCLI creates a new CLI instance
func NewCLI(opts Options) *CLI {
	if opts.Output == nil {
		opts.Output = os.Stdout
	}

	cli := &CLI{
		reporter: export.NewReporter(opts.Output),
		output:   opts.Output,
	}

	cli.rootCmd = cli.newRootCmd()
	return cli
}

func (cli *CLI) Execute() error {
	return cli.rootCmd.Execute()
}

func (cli *CLI) newRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "casino-atlas",
		Short: "Casino transaction report tool",
	}

	cmd.AddCommand(commands.NewReportCmd(cli.reporter, cli.output))
	cmd.AddCommand(commands.NewVIPCmd(cli.output))

	return cmd
}
