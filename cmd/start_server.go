package cmd

import (
	"os"
	"os/signal"
	"syscall"

	"github.com/coffemugtester/youtwit/segment"
	"github.com/coffemugtester/youtwit/server"
	"github.com/coffemugtester/youtwit/store"
	"github.com/spf13/cobra"
)

var startServer = &cobra.Command{
	Use:   "ui",
	Short: "launch ui",
	Long:  "Serves chaptered transcripts over HTTP, with prometheus metrics on /metrics.",
	RunE:  runServer,
}

func init() {
	startServer.Flags().StringP("addr", "a", ":8080", "Listen address")

	rootCmd.AddCommand(startServer)
}

func runServer(command *cobra.Command, args []string) error {
	ctx, stop := signal.NotifyContext(command.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	st, err := store.Open(cfg.DBPath)
	if err != nil {
		return err
	}
	defer st.Close()

	srv := server.New(server.Options{
		Store:        st,
		Orchestrator: segment.NewOrchestrator(segment.Options{CacheSize: cfg.CacheSize}),
		Fetch:        fetchContent,
		ChunkSize:    cfg.ChunkSize,
		Language:     cfg.Languages[0],
	})
	addr, _ := command.Flags().GetString("addr")
	return srv.ListenAndServe(ctx, addr)
}
