// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package main is the entry point for the triz-copilot CLI.
package main

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/pdiddy/triz-copilot/pkg/types"
)

// version is set at build time via ldflags.
var version = "dev"

// logger is built in PersistentPreRunE and shared by all commands.
var logger *zap.Logger

// rootCmd is the base command for the triz-copilot CLI.
var rootCmd = &cobra.Command{
	Use:   "triz-copilot",
	Short: "TRIZ innovation methodology assistant",
	Long: `triz-copilot applies TRIZ (the theory of inventive problem solving) to
engineering problems. It researches a local knowledge base of inventive
principles, contradiction-matrix resolutions, and engineering materials,
then synthesizes evidence-linked solution concepts.

Typical workflow: "ingest" once to build the vector index, then "solve"
per problem. "principle", "matrix", and "materials" give direct access
to the underlying knowledge; "serve" exposes everything over MCP.`,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		verbose, _ := cmd.Flags().GetBool("verbose")
		var err error
		logger, err = newLogger(verbose)
		if err != nil {
			return fmt.Errorf("building logger: %w", err)
		}
		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		if logger != nil {
			_ = logger.Sync()
		}
	},
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().String("config", "", "config file (default: ./triz-copilot.yaml or ~/.config/triz-copilot/config.yaml)")
	rootCmd.PersistentFlags().Bool("verbose", false, "enable debug logging")
}

func initConfig() {
	cfgFile, _ := rootCmd.PersistentFlags().GetString("config")
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.SetConfigName("triz-copilot")
		viper.SetConfigType("yaml")
		viper.AddConfigPath(".")

		home, err := os.UserHomeDir()
		if err == nil {
			viper.AddConfigPath(filepath.Join(home, ".config", "triz-copilot"))
		}
	}

	viper.SetDefault("data_dir", "data")
	viper.SetDefault("embedding.provider", "hash")

	viper.SetEnvPrefix("TRIZ_COPILOT")
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err == nil {
		fmt.Fprintln(os.Stderr, "Using config file:", viper.ConfigFileUsed())
	}
}

// newLogger builds a console logger on stderr so stdout stays clean for
// command output (and for the MCP stdio transport in "serve").
func newLogger(verbose bool) (*zap.Logger, error) {
	cfg := zap.NewProductionConfig()
	cfg.OutputPaths = []string{"stderr"}
	cfg.Encoding = "console"
	cfg.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
	if verbose {
		cfg.Level = zap.NewAtomicLevelAt(zapcore.DebugLevel)
	} else {
		cfg.Level = zap.NewAtomicLevelAt(zapcore.WarnLevel)
	}
	return cfg.Build()
}

// pipelineConfig assembles the full component configuration from viper.
// Unset keys fall back to package defaults; paths default to data_dir.
func pipelineConfig() types.PipelineConfig {
	dataDir := viper.GetString("data_dir")

	vectorPath := viper.GetString("vector.path")
	if vectorPath == "" {
		vectorPath = filepath.Join(dataDir, "vectors.db")
	}
	materialsPath := viper.GetString("materials.path")
	if materialsPath == "" {
		materialsPath = filepath.Join(dataDir, "materials.db")
	}
	sessionDir := viper.GetString("session.storage_dir")
	if sessionDir == "" {
		sessionDir = filepath.Join(dataDir, "sessions")
	}

	return types.PipelineConfig{
		Research: types.ResearchConfig{
			MaxDepth:       viper.GetInt("research.max_depth"),
			PerQueryLimit:  viper.GetInt("research.per_query_limit"),
			PoolCap:        viper.GetInt("research.pool_cap"),
			OverallTimeout: viper.GetDuration("research.overall_timeout"),
			SearchTimeout:  viper.GetDuration("research.search_timeout"),
			MaxInFlight:    viper.GetInt("research.max_in_flight"),
			Collections:    viper.GetStringSlice("research.collections"),
		},
		Embedding: types.EmbeddingConfig{
			Provider:   viper.GetString("embedding.provider"),
			OllamaHost: viper.GetString("embedding.ollama_host"),
			Model:      viper.GetString("embedding.model"),
			Dimensions: viper.GetInt("embedding.dimensions"),
			Timeout:    viper.GetDuration("embedding.timeout"),
		},
		Vector:    types.VectorConfig{Path: vectorPath},
		Materials: types.MaterialsConfig{Path: materialsPath},
		Session: types.SessionConfig{
			StorageDir:  sessionDir,
			CleanupDays: viper.GetInt("session.cleanup_days"),
		},
	}
}

// contextTimeout is the outer bound for one-shot CLI operations that
// are not governed by the research pipeline's own timeout.
const contextTimeout = 2 * time.Minute

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
