package store_test

import (
	"context"
	"path/filepath"

	"github.com/coffemugtester/youtwit/segment"
	. "github.com/coffemugtester/youtwit/store"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

var _ = Describe("Store", func() {
	var (
		s   *Store
		ctx context.Context
	)

	BeforeEach(func() {
		ctx = context.Background()
		var err error
		s, err = Open(filepath.Join(GinkgoT().TempDir(), "youtwit.db"))
		Expect(err).ToNot(HaveOccurred())
		DeferCleanup(s.Close)
	})

	It("upserts transcripts by video id", func() {
		first, err := s.SaveTranscript(ctx, "abc", "en", "[00:00] one")
		Expect(err).ToNot(HaveOccurred())
		Expect(first.ID).ToNot(BeZero())

		second, err := s.SaveTranscript(ctx, "abc", "de", "[00:00] eins")
		Expect(err).ToNot(HaveOccurred())
		Expect(second.ID).To(Equal(first.ID))
		Expect(second.Content).To(Equal("[00:00] eins"))
		Expect(second.Language).To(Equal("de"))

		other, err := s.SaveTranscript(ctx, "xyz", "en", "")
		Expect(err).ToNot(HaveOccurred())
		Expect(other.ID).ToNot(Equal(first.ID))
	})

	It("reports missing transcripts", func() {
		_, err := s.TranscriptByVideo(ctx, "missing")
		Expect(err).To(MatchError(ErrNotFound))
	})

	It("assigns order indexes and ids to segments", func() {
		t, err := s.SaveTranscript(ctx, "abc", "en", "")
		Expect(err).ToNot(HaveOccurred())

		segs, err := segment.NewOrchestrator(segment.Options{}).ProcessAll(
			"[00:00] a\n[00:10] b\n[00:20] c\n[01:30] d", t.ID, 100)
		Expect(err).ToNot(HaveOccurred())

		stored, err := s.ReplaceSegments(ctx, t.ID, segs)
		Expect(err).ToNot(HaveOccurred())
		Expect(stored).To(HaveLen(4))
		for i, seg := range stored {
			Expect(seg.OrderIndex).To(Equal(i))
			Expect(seg.ID).ToNot(BeZero())
			Expect(seg.TranscriptID).To(Equal(t.ID))
		}

		loaded, err := s.Segments(ctx, t.ID)
		Expect(err).ToNot(HaveOccurred())
		Expect(loaded).To(Equal(stored))
		Expect(loaded[0].Title()).To(Equal("Introduction"))
		Expect(loaded[1].ChapterTitle).To(BeNil())
		Expect(loaded[3].Title()).To(Equal("d"))
	})

	It("replaces previously stored segments", func() {
		t, _ := s.SaveTranscript(ctx, "abc", "en", "")
		_, err := s.ReplaceSegments(ctx, t.ID, []segment.TranscriptSegment{{Text: "old"}, {Text: "older"}})
		Expect(err).ToNot(HaveOccurred())

		_, err = s.ReplaceSegments(ctx, t.ID, []segment.TranscriptSegment{{Text: "new"}})
		Expect(err).ToNot(HaveOccurred())

		loaded, err := s.Segments(ctx, t.ID)
		Expect(err).ToNot(HaveOccurred())
		Expect(loaded).To(HaveLen(1))
		Expect(loaded[0].Text).To(Equal("new"))
	})

	It("deletes transcripts with their segments", func() {
		t, _ := s.SaveTranscript(ctx, "abc", "en", "")
		_, _ = s.ReplaceSegments(ctx, t.ID, []segment.TranscriptSegment{{Text: "a"}})

		Expect(s.DeleteTranscript(ctx, t.ID)).To(Succeed())
		loaded, err := s.Segments(ctx, t.ID)
		Expect(err).ToNot(HaveOccurred())
		Expect(loaded).To(BeEmpty())
		Expect(s.DeleteTranscript(ctx, t.ID)).To(MatchError(ErrNotFound))
	})
})
