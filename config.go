package main

import (
	"fmt"
	"io"
	"os"
	"strconv"
	"time"

	"emoplaylist/emomusic"

	"gopkg.in/yaml.v3"
)

const (
	EnvPort  = "PORT"
	EnvSongs = "EMOPLAYLIST_SONGS"
	EnvDebug = "DEBUG"
)

type EmoplaylistConfig struct {
	HttpListenAddr string
	LogLevel       string
	Debug          bool
	Songs          string // CSV source, ignored when Metadata.LoadFromDB
	Metadata       MetadataConfig
	Emomusic       EmomusicConfig
	Cors           CorsConfig
}

type MetadataConfig struct {
	DB         string // empty: no catalog
	LoadFromDB bool
}

type EmomusicConfig struct {
	Server    string
	TopK      int
	Threshold float64
	Timeout   time.Duration
}

type CorsConfig struct {
	AllowOrigins []string
}

// DefaultConfig returns the configuration used when no file is given.
func DefaultConfig() *EmoplaylistConfig {
	return &EmoplaylistConfig{
		HttpListenAddr: ":5000",
		LogLevel:       "info",
		Songs:          "data/songs.csv",
		Emomusic: EmomusicConfig{
			Server:    emomusic.ServerURL(),
			TopK:      emomusic.DefaultTopK,
			Threshold: emomusic.DefaultThreshold,
			Timeout:   10 * time.Second,
		},
		Cors: CorsConfig{
			AllowOrigins: []string{"http://localhost:5173", "http://localhost:3000"},
		},
	}
}

func (c *EmoplaylistConfig) Write(dst io.Writer) error {
	enc := yaml.NewEncoder(dst)
	if err := enc.Encode(c); err != nil {
		return err
	}
	return enc.Close()
}

// ReadConfig decodes a yaml config on top of DefaultConfig.
func ReadConfig(src io.Reader) (*EmoplaylistConfig, error) {
	c := DefaultConfig()
	if err := yaml.NewDecoder(src).Decode(c); err != nil && err != io.EOF {
		return nil, fmt.Errorf("ReadConfig: %w", err)
	}
	c.applyEnv()
	return c, nil
}

// LoadConfig reads the config file at path.
// An empty path means DefaultConfig with env overrides.
func LoadConfig(path string) (*EmoplaylistConfig, error) {
	if path == "" {
		c := DefaultConfig()
		c.applyEnv()
		return c, nil
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("LoadConfig: %w", err)
	}
	defer f.Close()

	return ReadConfig(f)
}

// applyEnv overrides c with env PORT, EMOMUSIC_SERVER, EMOPLAYLIST_SONGS and DEBUG.
func (c *EmoplaylistConfig) applyEnv() {
	if p, ok := os.LookupEnv(EnvPort); ok && p != "" {
		c.HttpListenAddr = ":" + p
	}
	if s, ok := os.LookupEnv(emomusic.EnvEmomusicServer); ok && s != "" {
		c.Emomusic.Server = s
	}
	if s, ok := os.LookupEnv(EnvSongs); ok && s != "" {
		c.Songs = s
	}
	if e, ok := os.LookupEnv(EnvDebug); ok {
		if b, err := strconv.ParseBool(e); err == nil {
			c.Debug = b
		}
	}
}
