package core

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/url"
	"os/exec"
	"strings"

	"github.com/coffemugtester/youtwit/segment"
	"github.com/mudler/xlog"
)

// DefaultLanguages are tried in order when fetching captions.
var DefaultLanguages = []string{"en", "es", "de", "pt"}

// VideoID accepts a bare id or any youtube watch / youtu.be URL.
func VideoID(s string) string {
	s = strings.TrimSpace(s)
	u, err := url.Parse(s)
	if err != nil || u.Host == "" {
		if _, after, found := strings.Cut(s, "="); found {
			return after
		}
		return s
	}
	if v := u.Query().Get("v"); v != "" {
		return v
	}
	if strings.HasSuffix(u.Host, "youtu.be") {
		return strings.Trim(u.Path, "/")
	}
	return s
}

// WatchURL is the canonical link for a video.
func WatchURL(videoID string) string {
	return "https://www.youtube.com/watch?v=" + videoID
}

// GetTranscript fetches captions through the youtube_transcript_api CLI.
func GetTranscript(ctx context.Context, videoID string, languages []string) (Captions, error) {
	if len(languages) == 0 {
		languages = DefaultLanguages
	}
	if strings.Index(videoID, "-") == 0 {
		videoID = "\\" + videoID
	}

	// 1) Run the CLI (pipx/pip installed)
	args := append([]string{videoID, "--languages"}, languages...)
	cli := exec.CommandContext(ctx, "youtube_transcript_api", args...)
	var cliStdout, cliStderr bytes.Buffer
	cli.Stdout = &cliStdout
	cli.Stderr = &cliStderr

	xlog.Debug("fetching transcript", "video", videoID, "languages", languages)
	if err := cli.Run(); err != nil {
		return nil, fmt.Errorf("cli error: %w (stderr: %s)", err, strings.TrimSpace(cliStderr.String()))
	}
	rawRepr := cliStdout.Bytes()
	if len(rawRepr) == 0 {
		return nil, fmt.Errorf("empty output from youtube_transcript_api (stderr: %s)", strings.TrimSpace(cliStderr.String()))
	}

	// 2) Normalize Python repr → JSON using stdlib
	py := `import sys, ast, json; print(json.dumps(ast.literal_eval(sys.stdin.read())))`
	norm := exec.CommandContext(ctx, "python3", "-c", py)
	norm.Stdin = bytes.NewReader(rawRepr)
	var normStdout, normStderr bytes.Buffer
	norm.Stdout = &normStdout
	norm.Stderr = &normStderr

	if err := norm.Run(); err != nil {
		return nil, fmt.Errorf("repr→json error: %w (stderr: %s, raw: %.200s)",
			err, strings.TrimSpace(normStderr.String()), string(rawRepr))
	}

	return DecodeCaptions(normStdout.Bytes())
}

// DecodeCaptions accepts a single caption list or a list of lists and
// returns the first list.
func DecodeCaptions(jsonBytes []byte) (Captions, error) {
	var out Captions
	if err := json.Unmarshal(jsonBytes, &out); err == nil {
		return out, nil
	}
	var batches []Captions
	if err := json.Unmarshal(jsonBytes, &batches); err == nil {
		if len(batches) == 0 {
			return nil, fmt.Errorf("no transcripts in response")
		}
		return batches[0], nil
	}

	return nil, fmt.Errorf("unexpected JSON shape; sample: %.200s", string(jsonBytes))
}

// FormatTranscript renders captions as "[mm:ss] text" lines, the format
// segment.LineParser reads. Empty captions are dropped.
func FormatTranscript(captions Captions) string {
	var sb strings.Builder
	for _, c := range captions {
		text := strings.Join(strings.Fields(c.Text), " ")
		if text == "" {
			continue
		}
		ms := int64(c.Start * 1000)
		fmt.Fprintf(&sb, "[%s] %s\n", segment.TimestampFromMillis(ms), text)
	}
	return sb.String()
}

// TranscriptToString joins the text of all segments, chapter titles become headings.
func TranscriptToString(segs []segment.TranscriptSegment) string {
	var sb strings.Builder
	for _, s := range segs {
		if s.IsChapterStart {
			fmt.Fprintf(&sb, "\n## %s (%s)\n", s.Title(), s.Timestamp)
			if s.Title() == s.Text {
				continue
			}
		}
		sb.WriteString(s.Text)
		sb.WriteString(" ")
	}
	return strings.TrimSpace(sb.String())
}
