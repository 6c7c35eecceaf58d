// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package main is the entry point for the research-server CLI. The serve
// command runs the MCP server; the other commands run the same research
// operations from a terminal.
package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/pdiddy/research-server/pkg/types"
)

// version is set at build time via ldflags.
var version = "dev"

// rootCmd is the base command for the research-server CLI.
var rootCmd = &cobra.Command{
	Use:   "research-server",
	Short: "MCP server for discovering arXiv papers",
	Long: `research-server exposes arXiv paper discovery to AI assistants over the
Model Context Protocol. Assistants search papers by topic, look up single
papers, and browse the topics already searched through papers:// resources.

Search results are kept on disk under the papers directory, one
papers_info.json per topic. The search, info, topics, topic and prompt
commands run the same operations from a terminal.`,
	SilenceUsage: true,
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().String("config", "", "config file (default: ./research-server.yaml or ~/.config/research-server/research-server.yaml)")
	rootCmd.PersistentFlags().String("papers-dir", "", "base directory for the topic paper store (default: papers)")
	rootCmd.PersistentFlags().String("log-level", "", "log level: trace, debug, info, warn, error")

	_ = viper.BindPFlag("papers_dir", rootCmd.PersistentFlags().Lookup("papers-dir"))
	_ = viper.BindPFlag("logging.level", rootCmd.PersistentFlags().Lookup("log-level"))
}

func initConfig() {
	cfgFile, _ := rootCmd.PersistentFlags().GetString("config")
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.SetConfigName("research-server")
		viper.SetConfigType("yaml")
		viper.AddConfigPath(".")

		home, err := os.UserHomeDir()
		if err == nil {
			viper.AddConfigPath(filepath.Join(home, ".config", "research-server"))
		}
	}

	setDefaults(types.DefaultConfig())

	viper.SetEnvPrefix("RESEARCH_SERVER")
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err == nil {
		fmt.Fprintln(os.Stderr, "Using config file:", viper.ConfigFileUsed())
	}
}

// setDefaults registers every config key so that environment variables
// resolve for keys absent from the config file.
func setDefaults(d types.Config) {
	viper.SetDefault("papers_dir", d.PapersDir)

	viper.SetDefault("arxiv.timeout", d.Arxiv.Timeout)
	viper.SetDefault("arxiv.user_agent", d.Arxiv.UserAgent)
	viper.SetDefault("arxiv.base_url", d.Arxiv.BaseURL)
	viper.SetDefault("arxiv.request_interval", d.Arxiv.RequestInterval)
	viper.SetDefault("arxiv.burst", d.Arxiv.Burst)

	viper.SetDefault("server.transport", d.Server.Transport)
	viper.SetDefault("server.addr", d.Server.Addr)
	viper.SetDefault("server.stateless", d.Server.Stateless)
	viper.SetDefault("server.shutdown_timeout", d.Server.ShutdownTimeout)

	viper.SetDefault("logging.level", d.Logging.Level)
	viper.SetDefault("logging.format", d.Logging.Format)
	viper.SetDefault("logging.output", d.Logging.Output)

	viper.SetDefault("metrics.enabled", d.Metrics.Enabled)
	viper.SetDefault("metrics.path", d.Metrics.Path)

	viper.SetDefault("history.enabled", d.History.Enabled)
	viper.SetDefault("history.path", d.History.Path)
}

// loadConfig decodes the merged viper settings and validates them.
func loadConfig() (types.Config, error) {
	cfg := types.DefaultConfig()
	if err := viper.Unmarshal(&cfg); err != nil {
		return types.Config{}, fmt.Errorf("decoding config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return types.Config{}, err
	}
	return cfg, nil
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
