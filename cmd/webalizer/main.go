package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"weblog-analyzer/internal/app"
	"weblog-analyzer/internal/shared/configs"
	"weblog-analyzer/internal/shared/svcerrors"

	"github.com/spf13/cobra"
)

const shutdownTimeout = 10 * time.Second

const codeUsage = "CLI_1000"

func errUsage(cause error) *svcerrors.ServiceError {
	return svcerrors.NewInvalidArgumentError(codeUsage, "invalid usage", cause)
}

var configPath string

var rootCmd = &cobra.Command{
	Use:   "webalizer [flags] [log files...]",
	Short: "Summarize web server logs into monthly usage statistics",
	Long: `webalizer reads CLF, FTP, Squid or W3C logs, keeps a rolling monthly history
and writes a usage report for every month it closes.

Log files may be glob patterns and may be compressed (.gz, .bz2, .zst).
With no files, or "-", the log is read from standard input.

Examples:
  webalizer access.log
  webalizer --incremental --output-dir /var/www/usage "/var/log/nginx/access.log*"
  zcat old.log.gz | webalizer -c webalizer.yml -`,
	SilenceUsage:  true,
	SilenceErrors: true,
	RunE:          run,
}

func init() {
	flags := rootCmd.Flags()
	flags.StringVarP(&configPath, "config", "c", "", "config file (yaml)")

	flags.String("log-level", "", "log level, overrides --verbosity")
	flags.StringP("verbosity", "v", "normal", "diagnostics: quiet, normal or debug")
	flags.BoolP("summary", "T", false, "print the record counts and timing when done")
	flags.StringP("log-type", "F", "clf", "log format: clf, ftp, squid or w3c")
	flags.BoolP("gmt-time", "g", false, "report times in GMT instead of local time")
	flags.Bool("fold-seq-err", false, "fold out of sequence records into the current hour")
	flags.StringP("output-dir", "o", ".", "directory for history, state and reports")
	flags.String("history-name", "webalizer.hist", "history file name")
	flags.String("state-name", "webalizer.current", "incremental state file name")
	flags.Bool("no-report", false, "do not write usage reports")
	flags.BoolP("ignore-history", "i", false, "do not read the history file")
	flags.BoolP("incremental", "p", false, "keep state between runs")
	flags.Bool("ignore-state", false, "do not restore the incremental state")
	flags.IntP("visit-timeout", "m", 1800, "visit timeout in seconds")
	flags.StringP("dns-cache", "D", "", "dns cache file")
	flags.IntP("dns-workers", "N", 0, "number of dns workers, 0 disables lookups")
	flags.Int("status-port", 0, "serve /status, /healthz and /metrics on this port")
	flags.StringP("title", "t", "", "site name used in report titles")
	flags.StringSlice("dump", nil, "tables to dump: sites, urls, referrers, agents, users, search")

	rootCmd.SetFlagErrorFunc(func(_ *cobra.Command, err error) error { return errUsage(err) })
}

func run(cmd *cobra.Command, args []string) error {
	cfg, err := configs.LoadConfig(configPath, cmd.Flags())
	if err != nil {
		return errUsage(err)
	}
	if len(args) > 0 {
		cfg.Input.Files = args
	}

	application, err := app.New(cfg)
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	application.StartServer()
	defer func() {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := application.Shutdown(shutdownCtx); err != nil {
			fmt.Fprintf(os.Stderr, "Status server forced to shutdown: %v\n", err)
		}
	}()

	summary, err := application.Run(ctx)
	if summary != nil && cfg.Log.Summary {
		fmt.Fprintln(cmd.OutOrStdout(), summary.String())
	}
	return err
}

func main() {
	err := rootCmd.Execute()
	if err == nil {
		return
	}
	if !errors.Is(err, app.ErrNoValidRecords) || verbose() {
		fmt.Fprintf(os.Stderr, "webalizer: %v\n", err)
	}
	os.Exit(svcerrors.ExitCodeOf(err))
}

// verbose reports whether the user asked for more than quiet output.
func verbose() bool {
	v, err := rootCmd.Flags().GetString("verbosity")
	return err != nil || v != "quiet"
}
