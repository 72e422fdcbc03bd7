package cmd

import (
	"context"
	"fmt"
	"time"

	"github.com/atotto/clipboard"
	"github.com/coffemugtester/youtwit/core"
	"github.com/mudler/xlog"
	"github.com/spf13/cobra"
)

func getSummary(command *cobra.Command, args []string) error {
	ctx, cancel := context.WithTimeout(command.Context(), 180*time.Second)
	defer cancel()

	videoID, segs, err := loadSegments(ctx, command)
	if err != nil {
		return err
	}
	llm, err := completer(command)
	if err != nil {
		return err
	}

	local, _ := command.Flags().GetBool("local")
	xlog.Debug("summarizing", "video", videoID, "local", local)
	resp, err := core.Summarize(ctx, llm, segs)
	if err != nil {
		return err
	}

	summary := core.MakeSummary(videoID, resp)
	fmt.Fprint(command.OutOrStdout(), summary)
	if err := clipboard.WriteAll(summary); err != nil {
		xlog.Warn("summary not copied to clipboard", "error", err)
	}
	return nil
}
