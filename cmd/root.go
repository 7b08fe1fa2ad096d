package cmd

import (
	"errors"
	"io/fs"
	"os"

	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"github.com/tebeka/atexit"
)

// Environment variables read after the optional .env file is loaded.
const (
	envLogLevel  = "OSSIM_LOG_LEVEL"
	envRecordDir = "OSSIM_RECORD_DIR"
)

var (
	logLevel  string // Log verbosity level
	recordDir string // Directory for --record databases
)

// rootCmd is the base command for the CLI
var rootCmd = &cobra.Command{
	Use:   "os-sim",
	Short: "Operating-system simulator: CPU scheduling, memory, deadlock and synchronization",
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		level, err := logrus.ParseLevel(logLevel)
		if err != nil {
			logrus.Fatalf("Invalid log level: %s", logLevel)
		}
		logrus.SetLevel(level)
	},
}

// loadDotEnv loads path into the environment without overriding variables
// that are already set. A missing file is not an error.
func loadDotEnv(path string) error {
	if err := godotenv.Load(path); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return err
	}
	return nil
}

func envOr(key, fallback string) string {
	if v, ok := os.LookupEnv(key); ok && v != "" {
		return v
	}
	return fallback
}

// Execute runs the CLI root command
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		atexit.Exit(1)
	}
	atexit.Exit(0)
}

// init sets up persistent flags. Subcommands register themselves in their own files.
func init() {
	if err := loadDotEnv(".env"); err != nil {
		logrus.Warnf("Ignoring .env: %v", err)
	}
	// Fatal exits still run registered atexit handlers (recorder flush).
	logrus.StandardLogger().ExitFunc = atexit.Exit

	rootCmd.PersistentFlags().StringVar(&logLevel, "log", envOr(envLogLevel, "warn"), "Log level (trace, debug, info, warn, error, fatal, panic)")
	rootCmd.PersistentFlags().StringVar(&recordDir, "record-dir", envOr(envRecordDir, "."), "Directory for SQLite recordings written by --record")
}
