// Package server renders transcripts, chapters and segments as HTML pages.
package server

import (
	"context"
	"errors"
	"html/template"
	"net/http"
	"strings"
	"time"

	"github.com/coffemugtester/youtwit/core"
	"github.com/coffemugtester/youtwit/segment"
	"github.com/coffemugtester/youtwit/store"
	"github.com/mudler/xlog"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var tpl = template.Must(template.New("index").Parse(`
<!doctype html>
<html lang="en">
<head><meta charset="utf-8"><title>youtwit{{with .VideoID}} · {{.}}{{end}}</title></head>
<body>
  <h1>youtwit</h1>
  <form action="/video" method="get">
    <input name="v" placeholder="YouTube link or video id" value="{{.VideoID}}">
    <button type="submit">Open</button>
  </form>
  {{with .Error}}<p class="error">{{.}}</p>{{end}}
  {{if .VideoID}}
  <p><a href="{{.WatchURL}}">{{.WatchURL}}</a> · {{.SegmentCount}} segments</p>
  {{range .Chapters}}
  <section>
    <h2>{{.Timestamp}} {{if .Title}}{{.Title}}{{else}}Untitled{{end}}</h2>
    {{range .Segments}}<p><b>{{.Timestamp}}</b> {{.Text}}</p>
    {{end}}
  </section>
  {{end}}
  {{end}}
</body>
</html>`))

type page struct {
	VideoID      string
	WatchURL     string
	Error        string
	SegmentCount int
	Chapters     []segment.Chapter
}

// FetchFunc returns the raw line-format transcript of a video.
type FetchFunc func(ctx context.Context, videoID string) (string, error)

type Options struct {
	Store        *store.Store
	Orchestrator *segment.Orchestrator
	Fetch        FetchFunc
	ChunkSize    int
	Language     string
	FetchTimeout time.Duration
}

type Server struct {
	opts     Options
	registry *prometheus.Registry

	processed   prometheus.Counter
	cacheHits   prometheus.Counter
	chunkErrors prometheus.Counter
	fetchErrors prometheus.Counter
}

func New(opts Options) *Server {
	if opts.FetchTimeout == 0 {
		opts.FetchTimeout = 180 * time.Second
	}
	s := &Server{
		opts:     opts,
		registry: prometheus.NewRegistry(),
		processed: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "youtwit_transcripts_processed_total",
			Help: "Transcripts run through the segment pipeline.",
		}),
		cacheHits: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "youtwit_segment_cache_hits_total",
			Help: "Transcripts answered from the segment cache.",
		}),
		chunkErrors: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "youtwit_chunk_errors_total",
			Help: "Transcript chunks skipped because they failed to parse.",
		}),
		fetchErrors: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "youtwit_fetch_errors_total",
			Help: "Transcript downloads that failed.",
		}),
	}
	s.registry.MustRegister(s.processed, s.cacheHits, s.chunkErrors, s.fetchErrors)
	return s
}

func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /{$}", s.index)
	mux.HandleFunc("GET /video", s.video)
	mux.Handle("GET /metrics", promhttp.HandlerFor(s.registry, promhttp.HandlerOpts{}))
	return mux
}

func (s *Server) index(w http.ResponseWriter, r *http.Request) {
	s.render(w, http.StatusOK, page{})
}

func (s *Server) video(w http.ResponseWriter, r *http.Request) {
	videoID := core.VideoID(r.URL.Query().Get("v"))
	if videoID == "" {
		http.Redirect(w, r, "/", http.StatusSeeOther)
		return
	}
	p := page{VideoID: videoID, WatchURL: core.WatchURL(videoID)}

	segs, err := s.segments(r.Context(), videoID)
	if err != nil {
		xlog.Error("failed to load video", "video", videoID, "error", err)
		p.Error = err.Error()
		s.render(w, http.StatusBadGateway, p)
		return
	}
	p.SegmentCount = len(segs)
	p.Chapters = segment.GroupChapters(segs)
	s.render(w, http.StatusOK, p)
}

// segments returns the chapter-annotated segments of a video, fetching and
// storing the transcript the first time it is seen.
func (s *Server) segments(ctx context.Context, videoID string) ([]segment.TranscriptSegment, error) {
	t, err := s.opts.Store.TranscriptByVideo(ctx, videoID)
	if errors.Is(err, store.ErrNotFound) {
		fetchCtx, cancel := context.WithTimeout(ctx, s.opts.FetchTimeout)
		defer cancel()
		content, ferr := s.opts.Fetch(fetchCtx, videoID)
		if ferr != nil {
			s.fetchErrors.Inc()
			return nil, ferr
		}
		t, err = s.opts.Store.SaveTranscript(ctx, videoID, s.opts.Language, content)
	}
	if err != nil {
		return nil, err
	}

	if _, ok := s.opts.Orchestrator.Cache().Get(t.ID, t.Content); ok {
		s.cacheHits.Inc()
	}
	segs, err := s.opts.Orchestrator.ProcessAll(t.Content, t.ID, s.opts.ChunkSize)
	if err != nil {
		var pe *segment.PartialError
		if !errors.As(err, &pe) {
			return nil, err
		}
		s.chunkErrors.Add(float64(len(pe.Failed)))
	}
	s.processed.Inc()

	if stored, err := s.opts.Store.ReplaceSegments(ctx, t.ID, segs); err == nil {
		segs = stored
	} else {
		xlog.Warn("segments not persisted", "video", videoID, "error", err)
	}
	return segs, nil
}

func (s *Server) render(w http.ResponseWriter, status int, p page) {
	var sb strings.Builder
	if err := tpl.Execute(&sb, p); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	_, _ = w.Write([]byte(sb.String()))
}

// ListenAndServe serves until ctx is done.
func (s *Server) ListenAndServe(ctx context.Context, addr string) error {
	srv := &http.Server{Addr: addr, Handler: s.Handler(), ReadHeaderTimeout: 10 * time.Second}
	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = srv.Shutdown(shutdownCtx)
	}()
	xlog.Info("listening", "url", "http://"+displayAddr(addr))
	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

func displayAddr(addr string) string {
	if strings.HasPrefix(addr, ":") {
		return "localhost" + addr
	}
	return addr
}
