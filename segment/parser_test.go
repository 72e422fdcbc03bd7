package segment_test

import (
	. "github.com/coffemugtester/youtwit/segment"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

var _ = Describe("LineParser", func() {
	var p LineParser

	It("returns an empty, non-nil list for blank input", func() {
		for _, in := range []string{"", "   ", "\n\t\n"} {
			segs, err := p.Parse(in, 7)
			Expect(err).ToNot(HaveOccurred())
			Expect(segs).ToNot(BeNil())
			Expect(segs).To(BeEmpty())
		}
	})

	It("parses bracketed and bare timestamps", func() {
		segs, err := p.Parse("[00:12] Hello world\n01:05 second line", 7)
		Expect(err).ToNot(HaveOccurred())
		Expect(segs).To(HaveLen(2))

		Expect(segs[0].TranscriptID).To(Equal(int64(7)))
		Expect(segs[0].Timestamp).To(Equal("00:12"))
		Expect(segs[0].TimestampMillis).To(Equal(int64(12000)))
		Expect(segs[0].Text).To(Equal("Hello world"))
		Expect(segs[0].IsChapterStart).To(BeFalse())
		Expect(segs[0].ChapterTitle).To(BeNil())

		Expect(segs[1].Timestamp).To(Equal("01:05"))
		Expect(segs[1].TimestampMillis).To(Equal(int64(65000)))
	})

	It("folds hours into the minutes of the display timestamp", func() {
		seg, ok := ParseLine("[1:02:03] later on")
		Expect(ok).To(BeTrue())
		Expect(seg.Timestamp).To(Equal("62:03"))
		Expect(seg.TimestampMillis).To(Equal(int64(3723000)))
	})

	It("reads externally supplied chapter starts", func() {
		seg, ok := ParseLine("# [01:30] Getting started")
		Expect(ok).To(BeTrue())
		Expect(seg.IsChapterStart).To(BeTrue())
		Expect(seg.Title()).To(Equal("Getting started"))
		Expect(seg.Text).To(Equal("Getting started"))
	})

	DescribeTable("skips malformed lines",
		func(line string) {
			_, ok := ParseLine(line)
			Expect(ok).To(BeFalse())
		},
		Entry("no timestamp", "just some words"),
		Entry("seconds out of range", "[00:75] nope"),
		Entry("minutes out of range with hours", "[1:75:00] nope"),
		Entry("no text", "[00:12]"),
		Entry("blank", "   "),
		Entry("glued text without bracket", "00:12text"),
	)

	It("keeps good lines around malformed ones", func() {
		segs, err := p.Parse("[00:01] a\ngarbage\n\n[00:02] b\r\n[00:99] c", 1)
		Expect(err).ToNot(HaveOccurred())
		Expect(segs).To(HaveLen(2))
		Expect(segs[0].Text).To(Equal("a"))
		Expect(segs[1].Text).To(Equal("b"))
	})

	It("renders timestamps from milliseconds", func() {
		Expect(TimestampFromMillis(0)).To(Equal("00:00"))
		Expect(TimestampFromMillis(65999)).To(Equal("01:05"))
		Expect(TimestampFromMillis(3723000)).To(Equal("62:03"))
	})
})
