package segment

import (
	"strings"
)

const (
	// ChapterGapMillis is the silence after which a new chapter is inferred.
	ChapterGapMillis = 30000
	// MinSegmentsForChapters is the segment count at or below which nothing is inferred.
	MinSegmentsForChapters = 3
	introductionTitle      = "Introduction"
	maxTitleRunes          = 50
)

// InferChapters marks synthetic chapter starts on segments that have none.
// Externally supplied chapters are never overwritten. The input is not modified.
func InferChapters(segments []TranscriptSegment) []TranscriptSegment {
	for _, s := range segments {
		if s.IsChapterStart {
			return segments
		}
	}
	if len(segments) <= MinSegmentsForChapters {
		return segments
	}

	out := make([]TranscriptSegment, len(segments))
	copy(out, segments)

	markChapter(&out[0], introductionTitle)
	for i := 1; i < len(out); i++ {
		gap := out[i].TimestampMillis - out[i-1].TimestampMillis
		if gap > ChapterGapMillis {
			markChapter(&out[i], chapterTitle(out[i].Text))
		}
	}
	return out
}

func markChapter(s *TranscriptSegment, title string) {
	s.IsChapterStart = true
	s.ChapterTitle = &title
}

// chapterTitle keeps the first 50 characters of the text.
func chapterTitle(text string) string {
	runes := []rune(text)
	if len(runes) > maxTitleRunes {
		runes = runes[:maxTitleRunes]
	}
	return strings.TrimSpace(string(runes))
}

// GroupChapters splits segments at chapter starts. Segments before the first
// chapter start land in an untitled leading chapter.
func GroupChapters(segments []TranscriptSegment) []Chapter {
	var chapters []Chapter
	for _, s := range segments {
		if s.IsChapterStart || len(chapters) == 0 {
			chapters = append(chapters, Chapter{
				Title:     s.Title(),
				Timestamp: s.Timestamp,
			})
		}
		last := &chapters[len(chapters)-1]
		last.Segments = append(last.Segments, s)
	}
	return chapters
}
