package cmd

import (
	"os"

	"github.com/coffemugtester/youtwit/config"
	"github.com/mudler/xlog"
	"github.com/spf13/cobra"
)

var cfg config.Config

var rootCmd = &cobra.Command{
	Use:               "youtwit",
	Short:             "Spend less time on YouTube without missing out on content",
	Long:              "Turns YouTube videos into chaptered transcripts, summaries, quizzes and mind maps.",
	SilenceUsage:      true,
	PersistentPreRunE: setup,
	RunE:              getSummary,
}

func init() {
	flags := rootCmd.PersistentFlags()
	flags.StringP("videoId", "v", "", "The ID or link of the video")
	flags.StringP("file", "f", "", "Read a \"[mm:ss] text\" transcript from a file instead of YouTube")
	flags.BoolP("local", "l", true, "Run local llm or not")
	flags.IntP("chunk-size", "c", 0, "Transcript lines parsed per chunk (default from YOUTWIT_CHUNK_SIZE or 100)")
	flags.String("db", "", "SQLite database path (default from YOUTWIT_DB or youtwit.db)")
	flags.String("log-level", "", "Log level: debug|info|warn|error")
}

// setup loads env files and configuration, then applies flag overrides.
func setup(command *cobra.Command, args []string) error {
	config.LoadEnvFiles(config.DefaultEnvFiles()...)
	cfg = config.Load()

	flags := command.Flags()
	if v, _ := flags.GetInt("chunk-size"); v > 0 {
		cfg.ChunkSize = v
	}
	if v, _ := flags.GetString("db"); v != "" {
		cfg.DBPath = v
	}
	if v, _ := flags.GetString("log-level"); v != "" {
		cfg.LogLevel = v
	}

	xlog.SetLogger(xlog.NewLogger(xlog.LogLevel(cfg.LogLevel), cfg.LogFormat))
	return nil
}

func Execute() error {
	rootCmd.SetOut(os.Stdout)
	return rootCmd.Execute()
}
