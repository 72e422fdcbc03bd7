package segment

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

// Parser turns transcript text into ordered segments.
type Parser interface {
	Parse(content string, transcriptID int64) ([]TranscriptSegment, error)
}

// ParserFunc adapts a plain function to Parser.
type ParserFunc func(content string, transcriptID int64) ([]TranscriptSegment, error)

func (f ParserFunc) Parse(content string, transcriptID int64) ([]TranscriptSegment, error) {
	return f(content, transcriptID)
}

// lineRe matches "[mm:ss] text", "mm:ss text", "[h:mm:ss] text" and the
// chapter form "# [mm:ss] Title".
var lineRe = regexp.MustCompile(`^(#\s*)?\[?(?:(\d+):)?(\d+):([0-5]\d)(?:\]\s*|\s+)(\S.*)$`)

// LineParser parses the line format produced by core.FormatTranscript.
// Lines that do not match are skipped.
type LineParser struct{}

func (LineParser) Parse(content string, transcriptID int64) ([]TranscriptSegment, error) {
	segments := []TranscriptSegment{}
	if strings.TrimSpace(content) == "" {
		return segments, nil
	}

	for _, line := range strings.Split(content, "\n") {
		seg, ok := ParseLine(line)
		if !ok {
			continue
		}
		seg.TranscriptID = transcriptID
		segments = append(segments, seg)
	}
	return segments, nil
}

// ParseLine parses one transcript line. ok is false for malformed lines.
func ParseLine(line string) (seg TranscriptSegment, ok bool) {
	m := lineRe.FindStringSubmatch(strings.TrimSpace(line))
	if m == nil {
		return seg, false
	}

	var hours, minutes, seconds int64
	var err error
	if m[2] != "" {
		if hours, err = strconv.ParseInt(m[2], 10, 64); err != nil {
			return seg, false
		}
	}
	if minutes, err = strconv.ParseInt(m[3], 10, 64); err != nil {
		return seg, false
	}
	seconds, _ = strconv.ParseInt(m[4], 10, 64)
	// minutes roll over into hours, so they must stay below 60 when hours are given
	if m[2] != "" && minutes >= 60 {
		return seg, false
	}

	text := strings.TrimSpace(m[5])
	if text == "" {
		return seg, false
	}

	totalMinutes := hours*60 + minutes
	seg = TranscriptSegment{
		Timestamp:       FormatTimestamp(totalMinutes, seconds),
		TimestampMillis: (totalMinutes*60 + seconds) * 1000,
		Text:            text,
	}
	if m[1] != "" {
		title := text
		seg.IsChapterStart = true
		seg.ChapterTitle = &title
	}
	return seg, true
}

// FormatTimestamp renders the display timestamp, minutes are not wrapped into hours.
func FormatTimestamp(minutes, seconds int64) string {
	return fmt.Sprintf("%02d:%02d", minutes, seconds)
}

// TimestampFromMillis renders the display timestamp for an offset.
func TimestampFromMillis(ms int64) string {
	total := ms / 1000
	return FormatTimestamp(total/60, total%60)
}
