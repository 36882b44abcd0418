package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"emoplaylist/emomusic"
	"emoplaylist/metadata"
	"emoplaylist/murecom"
	"emoplaylist/playlist"

	"github.com/cdfmlr/crud/log"
	"github.com/gin-gonic/gin"
	"github.com/spf13/cobra"
)

func newServeCmd() *cobra.Command {
	var configPath string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP API",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			conf, err := LoadConfig(configPath)
			if err != nil {
				return err
			}
			if !cmd.Flags().Changed("log-level") {
				if err := setLogLevel(conf.LogLevel); err != nil {
					return err
				}
			}
			return serve(conf)
		},
	}

	cmd.Flags().StringVarP(&configPath, "config", "c", "", "yaml config file")

	return cmd
}

// sourceFor picks the store's source from conf, connecting the catalog if configured.
func sourceFor(conf *EmoplaylistConfig) (playlist.Source, bool, error) {
	if conf.Metadata.DB == "" {
		return playlist.FileSource(conf.Songs), false, nil
	}

	db, err := metadata.Connect(conf.Metadata.DB)
	if err != nil {
		return nil, false, err
	}
	if conf.Metadata.LoadFromDB {
		return metadata.NewSource(db, conf.Metadata.DB), true, nil
	}
	return playlist.FileSource(conf.Songs), true, nil
}

func serve(conf *EmoplaylistConfig) error {
	if !conf.Debug {
		gin.SetMode(gin.ReleaseMode)
	}

	src, withCatalog, err := sourceFor(conf)
	if err != nil {
		return err
	}

	store := playlist.NewStore()
	if _, err := store.Load(src); err != nil {
		return err
	}

	classifier := emomusic.NewClient(conf.Emomusic.Server, conf.Emomusic.Timeout)
	reload := func() (playlist.LoadResult, error) {
		return store.Load(src)
	}
	m := murecom.New(store, topKClassifier{classifier, conf.Emomusic}, reload)

	srv := &http.Server{
		Addr:              conf.HttpListenAddr,
		Handler:           MakeRouter(conf, m, withCatalog),
		ReadHeaderTimeout: 15 * time.Second,
	}

	serverErr := make(chan error, 1)
	go func() {
		err := srv.ListenAndServe()
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErr <- err
			return
		}
		serverErr <- nil
	}()

	log.Logger.WithField("addr", conf.HttpListenAddr).
		WithField("songs", store.Len()).
		WithField("source", src.String()).
		Info("serve: listening")

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	select {
	case err := <-serverErr:
		return err
	case <-ctx.Done():
		log.Logger.Info("serve: shutting down")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	}
}

// topKClassifier fills in the configured top_k and threshold
// when a request leaves them out.
type topKClassifier struct {
	emomusic.Classifier
	conf EmomusicConfig
}

func (c topKClassifier) Classify(ctx context.Context, req emomusic.Request) (emomusic.Classification, error) {
	if req.TopK <= 0 {
		req.TopK = c.conf.TopK
	}
	if req.Threshold <= 0 {
		req.Threshold = c.conf.Threshold
	}
	return c.Classifier.Classify(ctx, req)
}
