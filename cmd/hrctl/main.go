// Command hrctl works with the employee Record Store from the terminal:
// listing and summarising employees, exporting them, and previewing how a
// CSV file would import.
package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/JonMunkholm/hrpanel/internal/config"
	"github.com/JonMunkholm/hrpanel/internal/logging"
	"github.com/JonMunkholm/hrpanel/internal/recordstore"
)

var (
	storeURL     string
	storeTimeout time.Duration
	logLevel     string
)

var rootCmd = &cobra.Command{
	Use:           "hrctl",
	Short:         "Employee administration from the command line",
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		logging.Setup(logLevel, "text")
		return nil
	},
}

func init() {
	_ = godotenv.Load()

	storeCfg, logCfg, err := config.LoadRecordStore()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	rootCmd.PersistentFlags().StringVar(&storeURL, "store-url", storeCfg.URL, "Record Store base URL (RECORD_STORE_URL)")
	rootCmd.PersistentFlags().DurationVar(&storeTimeout, "timeout", storeCfg.Timeout, "per-request timeout, 0 for none (RECORD_STORE_TIMEOUT)")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", logCfg.Level, "debug, info, warn or error (LOG_LEVEL)")

	rootCmd.AddCommand(listCmd, summaryCmd, exportCmd, importPreviewCmd)
}

// newStore builds the Record Store client from the persistent flags.
func newStore() (*recordstore.Client, error) {
	return recordstore.New(storeURL, recordstore.WithTimeout(storeTimeout))
}

func main() {
	ctx, cancel := signalContext()
	defer cancel()

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		slog.Debug("command failed", "error", err)
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}

func signalContext() (context.Context, context.CancelFunc) {
	return signal.NotifyContext(context.Background(), os.Interrupt)
}
