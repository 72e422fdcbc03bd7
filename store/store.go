// Package store persists transcripts and their segments in SQLite.
package store

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/coffemugtester/youtwit/segment"
	"github.com/mudler/xlog"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
	"gorm.io/gorm/logger"
)

// ErrNotFound is returned when a transcript does not exist.
var ErrNotFound = errors.New("transcript not found")

type Transcript struct {
	ID        int64  `gorm:"primaryKey"`
	VideoID   string `gorm:"uniqueIndex;not null"`
	Language  string
	Content   string
	CreatedAt time.Time
	UpdatedAt time.Time
}

// Segment is the row form of segment.TranscriptSegment.
type Segment struct {
	ID              int64 `gorm:"primaryKey"`
	TranscriptID    int64 `gorm:"index:idx_segment_order,priority:1;not null"`
	OrderIndex      int   `gorm:"index:idx_segment_order,priority:2"`
	Timestamp       string
	TimestampMillis int64
	Text            string
	IsChapterStart  bool
	ChapterTitle    *string
}

func (Segment) TableName() string { return "transcript_segments" }

type Store struct {
	db *gorm.DB
}

// Open opens (and migrates) the SQLite database at path.
func Open(path string) (*Store, error) {
	db, err := gorm.Open(sqlite.Open(path), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to open database %s: %w", path, err)
	}
	if err := db.AutoMigrate(&Transcript{}, &Segment{}); err != nil {
		return nil, fmt.Errorf("failed to migrate database: %w", err)
	}
	xlog.Debug("database ready", "path", path)
	return &Store{db: db}, nil
}

func (s *Store) Close() error {
	sqlDB, err := s.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}

// SaveTranscript inserts or updates the transcript of a video.
func (s *Store) SaveTranscript(ctx context.Context, videoID, language, content string) (*Transcript, error) {
	t := Transcript{VideoID: videoID, Language: language, Content: content}
	err := s.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "video_id"}},
		DoUpdates: clause.AssignmentColumns([]string{"language", "content", "updated_at"}),
	}).Create(&t).Error
	if err != nil {
		return nil, fmt.Errorf("failed to save transcript %s: %w", videoID, err)
	}
	// the upsert does not report the existing id back
	return s.TranscriptByVideo(ctx, videoID)
}

func (s *Store) TranscriptByVideo(ctx context.Context, videoID string) (*Transcript, error) {
	var t Transcript
	err := s.db.WithContext(ctx).Where("video_id = ?", videoID).First(&t).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("error fetching transcript %s: %w", videoID, err)
	}
	return &t, nil
}

// ReplaceSegments stores segs as the segments of a transcript, assigning
// order indexes and ids. Previously stored segments are removed.
func (s *Store) ReplaceSegments(ctx context.Context, transcriptID int64, segs []segment.TranscriptSegment) ([]segment.TranscriptSegment, error) {
	rows := make([]Segment, len(segs))
	for i, seg := range segs {
		rows[i] = Segment{
			TranscriptID:    transcriptID,
			OrderIndex:      i,
			Timestamp:       seg.Timestamp,
			TimestampMillis: seg.TimestampMillis,
			Text:            seg.Text,
			IsChapterStart:  seg.IsChapterStart,
			ChapterTitle:    seg.ChapterTitle,
		}
	}

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("transcript_id = ?", transcriptID).Delete(&Segment{}).Error; err != nil {
			return err
		}
		if len(rows) == 0 {
			return nil
		}
		return tx.CreateInBatches(rows, 200).Error
	})
	if err != nil {
		return nil, fmt.Errorf("failed to store segments of transcript %d: %w", transcriptID, err)
	}
	xlog.Debug("stored segments", "transcript", transcriptID, "count", len(rows))
	return toSegments(rows), nil
}

// Segments returns the stored segments of a transcript in order.
func (s *Store) Segments(ctx context.Context, transcriptID int64) ([]segment.TranscriptSegment, error) {
	var rows []Segment
	err := s.db.WithContext(ctx).
		Where("transcript_id = ?", transcriptID).
		Order("order_index").
		Find(&rows).Error
	if err != nil {
		return nil, fmt.Errorf("error fetching segments of transcript %d: %w", transcriptID, err)
	}
	return toSegments(rows), nil
}

// DeleteTranscript removes a transcript and its segments.
func (s *Store) DeleteTranscript(ctx context.Context, transcriptID int64) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("transcript_id = ?", transcriptID).Delete(&Segment{}).Error; err != nil {
			return err
		}
		res := tx.Delete(&Transcript{}, transcriptID)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return ErrNotFound
		}
		return nil
	})
}

func toSegments(rows []Segment) []segment.TranscriptSegment {
	out := make([]segment.TranscriptSegment, len(rows))
	for i, r := range rows {
		out[i] = segment.TranscriptSegment{
			ID:              r.ID,
			TranscriptID:    r.TranscriptID,
			Timestamp:       r.Timestamp,
			TimestampMillis: r.TimestampMillis,
			Text:            r.Text,
			IsChapterStart:  r.IsChapterStart,
			ChapterTitle:    r.ChapterTitle,
			OrderIndex:      r.OrderIndex,
		}
	}
	return out
}
