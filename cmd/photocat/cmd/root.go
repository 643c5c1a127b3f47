package cmd

import (
	"context"
	"fmt"
	"os"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"photocat/internal/application"
	"photocat/internal/config"
	"photocat/internal/logging"
	"photocat/internal/setup"
)

var (
	cfgFile string
	reset   bool

	v       = config.New()
	cfg     *config.Config
	log     zerolog.Logger
	session *application.Session
)

var rootCmd = &cobra.Command{
	Use:   "photocat",
	Short: "Catalog image files by location, date, content and keywords",
	Long: `photocat keeps a catalog of image files: where they are, when they
were taken, their size, content checksum and EXIF metadata.

Files can be tagged with keywords, and files with identical content are
detected as duplicates. Without a subcommand photocat starts the
interactive shell.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		// Skip initialization for commands that don't touch the catalog
		switch cmd.Name() {
		case "help", "completion", "about":
			return nil
		}
		return openSession(cmd.Context())
	},
	RunE: runShell,
}

// Execute runs the root command
func Execute() {
	err := rootCmd.Execute()
	closeSession()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	flags := rootCmd.PersistentFlags()
	flags.StringVarP(&cfgFile, "config", "c", "", "config file (default ./photocat.yaml or the user config dir)")
	flags.StringP("db", "d", config.DBPath(), "catalog file; .db, .sqlite and .sqlite3 use SQLite")
	flags.String("store", config.StoreAuto, "catalog store: auto, file or sqlite")
	flags.String("log-level", config.DefaultLogLevel, "log level: debug, info, warn or error")
	flags.IntP("workers", "w", config.DefaultWorkers, "files probed in parallel")
	flags.BoolVar(&reset, "reset", false, "start with an empty catalog if the catalog file is corrupt")

	for key, name := range map[string]string{
		"db":        "db",
		"store":     "store",
		"log_level": "log-level",
		"workers":   "workers",
	} {
		if err := v.BindPFlag(key, flags.Lookup(name)); err != nil {
			panic(err)
		}
	}
}

func openSession(ctx context.Context) error {
	var err error
	cfg, err = config.Load(v, cfgFile)
	if err != nil {
		return err
	}
	log = logging.NewConsoleLogger(cfg.LogLevel)

	session, err = setup.OpenSession(ctx, cfg, reset, log)
	if err != nil {
		return err
	}
	log.Debug().Str("db", cfg.DB).Int("files", session.Catalog().Len()).Msg("catalog opened")
	return nil
}

func closeSession() {
	if session == nil {
		return
	}
	if err := session.Close(); err != nil {
		log.Warn().Err(err).Msg("failed to close catalog")
	}
	session = nil
}

// GetSession returns the open catalog session
func GetSession() *application.Session {
	return session
}

// save writes pending changes; batch commands save after every change
func save(cmd *cobra.Command) error {
	saved, err := GetSession().Save(cmd.Context())
	if err != nil {
		return err
	}
	if saved {
		log.Info().Str("db", cfg.DB).Msg("catalog saved")
	}
	return nil
}

func printf(cmd *cobra.Command, format string, a ...any) {
	fmt.Fprintf(cmd.OutOrStdout(), format, a...)
}
