package cmd

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/coffemugtester/youtwit/segment"
	"github.com/spf13/cobra"
)

var segmentsCmd = &cobra.Command{
	Use:   "segments",
	Short: "Split a transcript into chaptered segments and store them",
	RunE:  printSegments,
}

func init() {
	segmentsCmd.Flags().Bool("json", false, "Print segments as JSON")
	segmentsCmd.Flags().Bool("chapters", false, "Print only the chapter list")

	rootCmd.AddCommand(segmentsCmd)
}

func printSegments(command *cobra.Command, args []string) error {
	ctx, cancel := context.WithTimeout(command.Context(), 180*time.Second)
	defer cancel()

	_, segs, err := loadSegments(ctx, command)
	if err != nil {
		return err
	}

	out := command.OutOrStdout()
	if asJSON, _ := command.Flags().GetBool("json"); asJSON {
		enc := json.NewEncoder(out)
		enc.SetIndent("", "  ")
		return enc.Encode(segs)
	}

	onlyChapters, _ := command.Flags().GetBool("chapters")
	for _, ch := range segment.GroupChapters(segs) {
		title := ch.Title
		if title == "" {
			title = "Untitled"
		}
		fmt.Fprintf(out, "%s %s\n", ch.Timestamp, title)
		if onlyChapters {
			continue
		}
		for _, s := range ch.Segments {
			fmt.Fprintf(out, "  [%s] %s\n", s.Timestamp, s.Text)
		}
	}
	return nil
}
