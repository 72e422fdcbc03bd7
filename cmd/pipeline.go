package cmd

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/coffemugtester/youtwit/core"
	"github.com/coffemugtester/youtwit/segment"
	"github.com/coffemugtester/youtwit/store"
	"github.com/mudler/xlog"
	"github.com/spf13/cobra"
)

// fetchContent returns the line-format transcript for a video id.
func fetchContent(ctx context.Context, videoID string) (string, error) {
	captions, err := core.GetTranscript(ctx, videoID, cfg.Languages)
	if err != nil {
		return "", err
	}
	return core.FormatTranscript(captions), nil
}

// loadSegments reads or fetches the transcript named by the flags, runs it
// through the segment pipeline and stores the result.
func loadSegments(ctx context.Context, command *cobra.Command) (string, []segment.TranscriptSegment, error) {
	raw, _ := command.Flags().GetString("videoId")
	file, _ := command.Flags().GetString("file")
	videoID := core.VideoID(raw)

	var content string
	switch {
	case file != "":
		data, err := os.ReadFile(file)
		if err != nil {
			return "", nil, fmt.Errorf("failed to read transcript file: %w", err)
		}
		content = string(data)
		if videoID == "" {
			videoID = "file:" + filepath.Base(file)
		}
	case videoID != "":
		var err error
		if content, err = fetchContent(ctx, videoID); err != nil {
			return "", nil, err
		}
	default:
		return "", nil, fmt.Errorf("missing --videoId or --file")
	}

	st, err := store.Open(cfg.DBPath)
	if err != nil {
		return "", nil, err
	}
	defer st.Close()

	t, err := st.SaveTranscript(ctx, videoID, cfg.Languages[0], content)
	if err != nil {
		return "", nil, err
	}

	var skipped []segment.ChunkError
	orch := segment.NewOrchestrator(segment.Options{
		CacheSize:    cfg.CacheSize,
		OnChunkError: func(e segment.ChunkError) { skipped = append(skipped, e) },
	})
	var segs []segment.TranscriptSegment
	for acc := range orch.Process(content, t.ID, cfg.ChunkSize) {
		segs = acc
		fmt.Fprintf(command.ErrOrStderr(), "\rparsed %d segments", len(acc))
	}
	fmt.Fprintln(command.ErrOrStderr())
	if len(skipped) > 0 {
		xlog.Warn("transcript partially parsed", "video", videoID, "error", &segment.PartialError{Failed: skipped})
	}
	if len(segs) == 0 {
		return videoID, nil, fmt.Errorf("no transcript segments for %s", videoID)
	}

	stored, err := st.ReplaceSegments(ctx, t.ID, segs)
	if err != nil {
		return "", nil, err
	}
	xlog.Info("transcript ready", "video", videoID, "segments", len(stored), "chapters", len(segment.GroupChapters(stored)), "skipped_chunks", len(skipped))
	return videoID, stored, nil
}

// completer picks ollama or OpenAI from the --local flag.
func completer(command *cobra.Command) (core.Completer, error) {
	local, _ := command.Flags().GetBool("local")
	if local {
		return &core.Ollama{BaseURL: cfg.OllamaURL, Model: cfg.OllamaModel}, nil
	}
	return core.NewOpenAI(cfg.OpenAIKey, cfg.OpenAIBaseURL, cfg.OpenAIModel)
}
