package cmd

import (
	"bytes"
	"encoding/json"
	"io"
	"os"
	"path/filepath"

	"github.com/coffemugtester/youtwit/segment"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

const fileTranscript = `[00:00] welcome back
[00:05] today we bake
not a caption line
[00:10] bread
[01:00] kneading the dough
`

var _ = Describe("segments command", func() {
	var dir, file string

	run := func(args ...string) (string, error) {
		var out bytes.Buffer
		rootCmd.SetOut(&out)
		rootCmd.SetErr(io.Discard)
		rootCmd.SetArgs(args)
		err := rootCmd.Execute()
		return out.String(), err
	}

	BeforeEach(func() {
		dir = GinkgoT().TempDir()
		file = filepath.Join(dir, "talk.txt")
		Expect(os.WriteFile(file, []byte(fileTranscript), 0644)).To(Succeed())
		GinkgoT().Setenv("YOUTWIT_DB", filepath.Join(dir, "cmd.db"))
	})

	It("prints the chapter list", func() {
		out, err := run("segments", "-f", file, "-c", "2", "--chapters", "--json=false")
		Expect(err).ToNot(HaveOccurred())
		Expect(out).To(Equal("00:00 Introduction\n01:00 kneading the dough\n"))
	})

	It("prints stored segments as JSON", func() {
		out, err := run("segments", "-f", file, "--json", "--chapters=false")
		Expect(err).ToNot(HaveOccurred())

		var segs []segment.TranscriptSegment
		Expect(json.Unmarshal([]byte(out), &segs)).To(Succeed())
		Expect(segs).To(HaveLen(4))
		Expect(segs[3].OrderIndex).To(Equal(3))
		Expect(segs[3].ID).ToNot(BeZero())
	})

	It("needs a video or a file", func() {
		_, err := run("segments", "-f", "", "-v", "")
		Expect(err).To(MatchError(ContainSubstring("missing --videoId or --file")))
	})
})
