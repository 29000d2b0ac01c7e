// Command formc compiles form descriptions into the classes they bind.
//
// Usage:
//
//	formc generate [path...]       Patch bound classes with their setup methods
//	formc check [path...]          Compile forms without writing classes
//	formc dump FILE.class          Disassemble the methods of a class file
//	formc version                  Print version information
//
// Examples:
//
//	formc generate --classes build/classes ./...
//	formc check --classes build/classes --types hints.yaml ui/login.form.yaml
//	formc dump --method '$$$setupUI$$$' build/classes/demo/Login.class
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
	"github.com/untillpro/goutils/logger"
)

const version = "0.1.0"

var (
	red    = color.New(color.FgRed).SprintFunc()
	yellow = color.New(color.FgYellow).SprintFunc()
	bold   = color.New(color.Bold).SprintFunc()
)

func main() {
	if err := execRootCmd(os.Args); err != nil {
		fmt.Fprintf(os.Stderr, "%s %v\n", red("error:"), err)
		os.Exit(1)
	}
}

func execRootCmd(args []string) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()
	root := newRootCmd()
	root.SetArgs(args[1:])
	return root.ExecuteContext(ctx)
}

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:   "formc",
		Short: "Compile GUI forms into the classes they are bound to",
		PersistentPreRun: func(cmd *cobra.Command, _ []string) {
			if ok, _ := cmd.Flags().GetBool("verbose"); ok {
				logger.SetLogLevel(logger.LogLevelVerbose)
			}
		},
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.PersistentFlags().BoolP("verbose", "v", false, "Verbose output")
	root.AddCommand(
		newGenerateCmd(),
		newCheckCmd(),
		newDumpCmd(),
		newVersionCmd(),
	)
	return root
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:     "version",
		Short:   "Print version information",
		Aliases: []string{"ver"},
		Args:    cobra.NoArgs,
		Run: func(cmd *cobra.Command, _ []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "formc version %s\n", version)
		},
	}
}
