package main

import (
	"errors"
	"fmt"
	"path/filepath"

	"emoplaylist/audiolib"
	"emoplaylist/emomusic"
	"emoplaylist/metadata"
	"emoplaylist/playlist"

	"github.com/spf13/cobra"
)

const defaultCatalog = "emoplaylist.db"

// newImportCmd: emoplaylist import <songs_csv_path> --db emoplaylist.db
func newImportCmd() *cobra.Command {
	var dbPath string

	cmd := &cobra.Command{
		Use:   "import <songs_csv_path>",
		Short: "Copy the songs of a CSV file into the catalog",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			store := playlist.NewStore()
			res, err := store.LoadFile(args[0])
			if err != nil {
				return err
			}

			if _, err := metadata.Connect(dbPath); err != nil {
				return err
			}

			created, err := metadata.ImportSongs(cmd.Context(), store.All())
			if err != nil {
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "imported %d of %d songs (%d lines skipped) into %s\n",
				created, res.Count, countMalformed(res.Warnings), dbPath)
			return nil
		},
	}

	cmd.Flags().StringVar(&dbPath, "db", defaultCatalog, "catalog sqlite file")

	return cmd
}

// newScanCmd: emoplaylist scan <dir> --db emoplaylist.db
func newScanCmd() *cobra.Command {
	var (
		dbPath string
		conf   = DefaultConfig().Emomusic
	)

	cmd := &cobra.Command{
		Use:   "scan <audio_dir>",
		Short: "Catalog the audio files of a directory, classifying their lyrics",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if _, err := metadata.Connect(dbPath); err != nil {
				return err
			}

			scanner := audiolib.NewScanner(emomusic.NewClient(conf.Server, conf.Timeout))
			added, err := scanner.AddSongsFromDir(cmd.Context(), args[0])
			if err != nil {
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "added %d songs from %s into %s\n",
				added, filepath.Clean(args[0]), dbPath)
			return nil
		},
	}

	cmd.Flags().StringVar(&dbPath, "db", defaultCatalog, "catalog sqlite file")
	cmd.Flags().StringVar(&conf.Server, "emomusic", conf.Server, "emomusic server url")
	cmd.Flags().DurationVar(&conf.Timeout, "timeout", conf.Timeout, "classifier request timeout")

	return cmd
}

// newEmotionsCmd: emoplaylist emotions <songs_csv_path>
func newEmotionsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "emotions <songs_csv_path>",
		Short: "List the emotions found in a CSV file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			store := playlist.NewStore()
			if _, err := store.LoadFile(args[0]); err != nil {
				return err
			}
			for _, e := range store.AvailableEmotions() {
				fmt.Fprintln(cmd.OutOrStdout(), e)
			}
			return nil
		},
	}
}

// newConfigCmd: emoplaylist config > config.yaml
func newConfigCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "config",
		Short: "Print the default config as yaml",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return DefaultConfig().Write(cmd.OutOrStdout())
		},
	}
}

func countMalformed(warnings []error) int {
	n := 0
	for _, w := range warnings {
		if errors.Is(w, playlist.ErrMalformedLine) {
			n++
		}
	}
	return n
}

