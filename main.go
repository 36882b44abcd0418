package main

import (
	"os"
	"strings"

	"emoplaylist/playlist"

	"github.com/cdfmlr/crud/log"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	var logLevel string

	root := &cobra.Command{
		Use:   "emoplaylist <songs_csv_path> <emotions>",
		Short: "Build playlists of songs by emotion",
		Long: "Filter the songs of a CSV file by emotion and print them as JSON.\n\n" +
			"emotions is a comma-separated list, e.g. 'happy,excited'.",
		Example:      "  emoplaylist data/songs.csv happy,excited",
		Args:         cobra.ExactArgs(2),
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return setLogLevel(logLevel)
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return runQuery(cmd, args[0], splitEmotions(args[1]))
		},
	}

	root.PersistentFlags().StringVar(&logLevel, "log-level", "warn", "log level: debug, info, warn, error")

	root.AddCommand(
		newServeCmd(),
		newImportCmd(),
		newScanCmd(),
		newEmotionsCmd(),
		newConfigCmd(),
	)

	return root
}

func setLogLevel(level string) error {
	if level == "" {
		return nil
	}
	lvl, err := logrus.ParseLevel(level)
	if err != nil {
		return err
	}
	log.Logger.SetLevel(lvl)
	return nil
}

// splitEmotions splits a comma-separated list and trims each item.
func splitEmotions(s string) []string {
	parts := strings.Split(s, ",")
	for i := range parts {
		parts[i] = strings.TrimSpace(parts[i])
	}
	return parts
}

// runQuery loads csvPath and prints the songs matching emotions.
func runQuery(cmd *cobra.Command, csvPath string, emotions []string) error {
	store := playlist.NewStore()
	if _, err := store.LoadFile(csvPath); err != nil {
		return err
	}

	return playlist.WriteJSON(cmd.OutOrStdout(), store.FilterByEmotions(emotions))
}
