package segment_test

import (
	. "github.com/coffemugtester/youtwit/segment"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

var _ = Describe("Cache", func() {
	It("fingerprints content as 32 hex characters", func() {
		Expect(Fingerprint("hello")).To(HaveLen(32))
		Expect(Fingerprint("hello")).To(Equal(Fingerprint("hello")))
		Expect(Fingerprint("hello")).ToNot(Equal(Fingerprint("hello!")))
	})

	It("keys by transcript id and content", func() {
		Expect(CacheKey(1, "x")).ToNot(Equal(CacheKey(2, "x")))
		Expect(CacheKey(1, "x")).ToNot(Equal(CacheKey(1, "y")))
	})

	It("stores and returns segments", func() {
		c := NewCache(0)
		c.Put(1, "content", segmentsAt(0, 1000))

		got, ok := c.Get(1, "content")
		Expect(ok).To(BeTrue())
		Expect(got).To(HaveLen(2))

		_, ok = c.Get(2, "content")
		Expect(ok).To(BeFalse())
	})

	It("never stores empty lists", func() {
		c := NewCache(0)
		c.Put(1, "", nil)
		c.Put(1, "", []TranscriptSegment{})
		Expect(c.Len()).To(BeZero())
	})

	It("hands out copies", func() {
		c := NewCache(0)
		c.Put(1, "content", segmentsAt(0, 1000))

		got, _ := c.Get(1, "content")
		got[0].Text = "changed"

		again, _ := c.Get(1, "content")
		Expect(again[0].Text).ToNot(Equal("changed"))
	})

	It("clears everything", func() {
		c := NewCache(0)
		c.Put(1, "a", segmentsAt(0))
		c.Put(2, "b", segmentsAt(0))
		Expect(c.Len()).To(Equal(2))

		c.Clear()
		Expect(c.Len()).To(BeZero())
		_, ok := c.Get(1, "a")
		Expect(ok).To(BeFalse())
	})

	It("evicts the least recently used entry when bounded", func() {
		c := NewCache(2)
		c.Put(1, "a", segmentsAt(0))
		c.Put(2, "b", segmentsAt(0))
		_, _ = c.Get(1, "a")
		c.Put(3, "c", segmentsAt(0))

		Expect(c.Len()).To(Equal(2))
		_, ok := c.Get(2, "b")
		Expect(ok).To(BeFalse())
		_, ok = c.Get(1, "a")
		Expect(ok).To(BeTrue())

		c.Clear()
		Expect(c.Len()).To(BeZero())
	})
})
