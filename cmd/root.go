package cmd

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/pders01/gitcontext/internal/config"
	"github.com/pders01/gitcontext/internal/engine"
	"github.com/pders01/gitcontext/internal/snapshot"
	"github.com/pders01/gitcontext/internal/store"
	"github.com/pders01/gitcontext/internal/summarize"
)

var (
	cfgFile  string
	repoPath string
)

var rootCmd = &cobra.Command{
	Use:   "gitcontext",
	Short: "Version control for AI context",
	Long: `gitcontext tracks the context of AI-assisted development the way
git tracks source: decisions, rejected alternatives and fine-grained
thought/action/result (OTA) logs, organized into branches and commits
under .gitcontext/.

Squash-merging a branch collapses its history into one summary commit,
optionally synthesized by a local or hosted model.`,
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is $HOME/.config/gitcontext/config.toml)")
	rootCmd.PersistentFlags().StringVarP(&repoPath, "repo", "r", ".", "path to the repository")
}

func initConfig() {
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		home, err := os.UserHomeDir()
		if err != nil {
			fmt.Fprintln(os.Stderr, err)
			os.Exit(1)
		}

		configDir := filepath.Join(home, ".config", "gitcontext")
		viper.AddConfigPath(configDir)
		viper.SetConfigType("toml")
		viper.SetConfigName("config")
	}

	viper.SetEnvPrefix("gitcontext")
	viper.AutomaticEnv()

	// Set defaults
	viper.SetDefault("summarizer.provider", "static")
	viper.SetDefault("summarizer.model", "")
	viper.SetDefault("summarizer.ollama_url", summarize.DefaultOllamaURL)
	viper.SetDefault("lock.timeout_ms", 5000)
	viper.SetDefault("snapshot.enabled", true)

	if err := viper.ReadInConfig(); err == nil {
		fmt.Fprintln(os.Stderr, "Using config file:", viper.ConfigFileUsed())
	}
}

// newEngine builds the engine for the configured repository path.
func newEngine() (*engine.Engine, error) {
	root, err := filepath.Abs(repoPath)
	if err != nil {
		return nil, fmt.Errorf("resolve repository path %s: %w", repoPath, err)
	}

	summarizer, err := summarize.New(summarize.Options{
		Provider:  config.GetSummarizerProvider(),
		Model:     config.GetSummarizerModel(),
		OllamaURL: config.GetOllamaURL(),
		APIKey:    config.GetAPIKey(),
	})
	if err != nil {
		return nil, err
	}

	opts := []engine.Option{
		engine.WithSummarizer(summarizer),
		engine.WithLockTimeout(config.GetLockTimeout()),
	}
	if config.SnapshotEnabled() {
		opts = append(opts, engine.WithSnapshotProvider(snapshot.NewGitTree(root)))
	}

	return engine.New(store.New(root), opts...), nil
}
