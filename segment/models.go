// Package segment turns raw transcript text into timestamped segments,
// infers chapters and streams results chunk by chunk with a per-instance cache.
package segment

// TranscriptSegment is a single timestamped unit of transcript text.
type TranscriptSegment struct {
	ID              int64   `json:"id"`
	TranscriptID    int64   `json:"transcript_id"`
	Timestamp       string  `json:"timestamp"` // mm:ss
	TimestampMillis int64   `json:"timestamp_millis"`
	Text            string  `json:"text"`
	IsChapterStart  bool    `json:"is_chapter_start"`
	ChapterTitle    *string `json:"chapter_title,omitempty"` // set only on chapter starts
	OrderIndex      int     `json:"order_index"`             // assigned by the store
}

// Title returns the chapter title or "" for regular segments.
func (s TranscriptSegment) Title() string {
	if s.ChapterTitle == nil {
		return ""
	}
	return *s.ChapterTitle
}

// Chapter groups the segments between two chapter starts.
type Chapter struct {
	Title     string
	Timestamp string
	Segments  []TranscriptSegment
}
