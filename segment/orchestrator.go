package segment

import (
	"errors"
	"fmt"
	"iter"
	"slices"
	"strings"

	"github.com/mudler/xlog"
)

// DefaultChunkSize is the number of lines parsed per chunk.
const DefaultChunkSize = 100

// ChunkError reports a chunk whose parse failed and was skipped.
type ChunkError struct {
	TranscriptID int64
	Index        int // chunk number, zero based
	FirstLine    int // zero based line offset of the chunk
	Err          error
}

func (e ChunkError) Error() string {
	return fmt.Sprintf("transcript %d: chunk %d (line %d): %v", e.TranscriptID, e.Index, e.FirstLine, e.Err)
}

func (e ChunkError) Unwrap() error { return e.Err }

// PartialError is returned by ProcessAll when some chunks were skipped.
type PartialError struct {
	Failed []ChunkError
}

func (e *PartialError) Error() string {
	return fmt.Sprintf("%d transcript chunk(s) skipped, first: %v", len(e.Failed), e.Failed[0])
}

func (e *PartialError) Unwrap() []error {
	errs := make([]error, len(e.Failed))
	for i, f := range e.Failed {
		errs[i] = f
	}
	return errs
}

// Options configures an Orchestrator.
type Options struct {
	// Parser defaults to LineParser.
	Parser Parser
	// CacheSize bounds the cache; zero keeps every transcript.
	CacheSize int
	// OnChunkError is called for every skipped chunk.
	OnChunkError func(ChunkError)
}

// Orchestrator parses transcripts chunk by chunk and owns the result cache.
type Orchestrator struct {
	parser       Parser
	cache        *Cache
	onChunkError func(ChunkError)
}

func NewOrchestrator(opts Options) *Orchestrator {
	p := opts.Parser
	if p == nil {
		p = LineParser{}
	}
	return &Orchestrator{
		parser:       p,
		cache:        NewCache(opts.CacheSize),
		onChunkError: opts.OnChunkError,
	}
}

// Cache exposes the orchestrator's cache, mostly so callers can Clear it.
func (o *Orchestrator) Cache() *Cache {
	return o.cache
}

// Process returns a lazy sequence of accumulated results. Every chunk that
// yields segments produces the full accumulation so far; the last item is
// the chapter-annotated transcript, which is cached once every chunk has
// been parsed. A cache hit yields the cached list once. Stopping early skips
// the remaining chunks and the cache write.
func (o *Orchestrator) Process(content string, transcriptID int64, chunkSize int) iter.Seq[[]TranscriptSegment] {
	return o.process(content, transcriptID, chunkSize, nil)
}

// ProcessAll drains Process and returns the final list. The error is a
// *PartialError when chunks were skipped; the segments are still valid.
func (o *Orchestrator) ProcessAll(content string, transcriptID int64, chunkSize int) ([]TranscriptSegment, error) {
	var failed []ChunkError
	result := []TranscriptSegment{}
	for segs := range o.process(content, transcriptID, chunkSize, func(e ChunkError) { failed = append(failed, e) }) {
		result = segs
	}
	if len(failed) > 0 {
		return result, &PartialError{Failed: failed}
	}
	return result, nil
}

func (o *Orchestrator) process(content string, transcriptID int64, chunkSize int, collect func(ChunkError)) iter.Seq[[]TranscriptSegment] {
	if chunkSize < 1 {
		chunkSize = DefaultChunkSize
	}

	return func(yield func([]TranscriptSegment) bool) {
		if cached, ok := o.cache.Get(transcriptID, content); ok {
			xlog.Debug("transcript served from cache", "transcript", transcriptID, "segments", len(cached))
			yield(cached)
			return
		}

		lines := strings.Split(content, "\n")
		var acc []TranscriptSegment

		for i, start := 0, 0; start < len(lines); i, start = i+1, start+chunkSize {
			end := min(start+chunkSize, len(lines))
			segs, err := o.parser.Parse(strings.Join(lines[start:end], "\n"), transcriptID)
			if err != nil {
				o.skip(ChunkError{TranscriptID: transcriptID, Index: i, FirstLine: start, Err: err}, collect)
				continue
			}
			if len(segs) == 0 {
				continue
			}
			acc = append(acc, segs...)
			if !yield(slices.Clone(acc)) {
				return
			}
		}

		if len(acc) == 0 {
			return
		}
		final := InferChapters(acc)
		// every chunk has been parsed, the result is complete
		o.cache.Put(transcriptID, content, final)
		yield(slices.Clone(final))
	}
}

func (o *Orchestrator) skip(e ChunkError, collect func(ChunkError)) {
	xlog.Warn("skipping transcript chunk", "transcript", e.TranscriptID, "chunk", e.Index, "line", e.FirstLine, "error", e.Err)
	if o.onChunkError != nil {
		o.onChunkError(e)
	}
	if collect != nil {
		collect(e)
	}
}

// IsPartial reports whether err carries skipped chunks.
func IsPartial(err error) bool {
	var pe *PartialError
	return errors.As(err, &pe)
}
