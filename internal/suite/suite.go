// Package suite drives repetition tester sessions over candidate operations.
//
// Sessions run round-robin: every round starts a new wave on each session in
// turn, so a candidate that got a lucky (or unlucky) machine state in one
// round gets another chance in the next. A session that errors drops out;
// the others keep running.
package suite

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"sync"
	"time"

	"github.com/cwbudde/algo-prof/internal/candidates"
	"github.com/cwbudde/algo-prof/internal/profile"
	"github.com/cwbudde/algo-prof/internal/reptest"
	"github.com/cwbudde/algo-prof/internal/results"
	"golang.org/x/sync/errgroup"
)

// ErrParallelProfile is returned by RunParallel when the runner has a
// profiler. A profiler must only be used from one goroutine.
var ErrParallelProfile = errors.New("suite: zone profiling needs a sequential run")

// Config controls a Runner.
type Config struct {
	Frequency uint64
	TryFor    time.Duration
	// Rounds is the number of waves per session. 0 runs until an error or
	// until the context is canceled.
	Rounds      int
	NewMinimums bool
	PageFaults  bool

	Out    io.Writer
	ErrOut io.Writer

	// Clock replaces the tick source of every tester and the profiler.
	Clock func() uint64
}

// Session is one candidate with its parameters and tester.
type Session struct {
	Name      string
	Candidate candidates.Candidate
	Params    *candidates.Params
	Tester    *reptest.Tester
	// Region is the cache region of a cache sweep session.
	Region int

	out *output
}

// Runner owns a set of sessions.
type Runner struct {
	cfg      Config
	sessions []*Session
	mu       sync.Mutex
	prof     *profile.Profiler
}

// New creates an empty runner. prof receives one zone per session covering
// its waves in sequential runs; it may be nil.
func New(cfg Config, prof *profile.Profiler) *Runner {
	if cfg.Out == nil {
		cfg.Out = io.Discard
	}

	if cfg.ErrOut == nil {
		cfg.ErrOut = io.Discard
	}

	return &Runner{cfg: cfg, prof: prof}
}

// Add registers a session for c. Its name carries the allocation mode prefix.
func (r *Runner) Add(c candidates.Candidate, p *candidates.Params) *Session {
	s := &Session{
		Name:      p.Alloc.Prefix() + c.Name,
		Candidate: c,
		Params:    p,
		out:       &output{mu: &r.mu, w: r.cfg.Out},
	}

	opts := []reptest.Option{
		reptest.WithNewMinimums(r.cfg.NewMinimums),
		reptest.WithReporter(reptest.MultiReporter{
			reptest.NewTextReporter(s.out, &lockedWriter{mu: &r.mu, w: r.cfg.ErrOut}),
			logReporter{name: s.Name},
		}),
	}

	if r.cfg.Clock != nil {
		opts = append(opts, reptest.WithClock(r.cfg.Clock))
	}

	if !r.cfg.PageFaults {
		opts = append(opts, reptest.WithPageFaultCounter(nil))
	}

	s.Tester = reptest.New(uint64(p.Size), r.cfg.Frequency, opts...)
	r.sessions = append(r.sessions, s)

	return s
}

// Sessions returns the registered sessions in order.
func (r *Runner) Sessions() []*Session { return r.sessions }

// Run executes the rounds sequentially. Errored sessions are skipped in
// later rounds. Run returns the context error when canceled, otherwise the
// joined session errors.
func (r *Runner) Run(ctx context.Context) error {
	if r.prof != nil {
		for i, s := range r.sessions {
			if err := r.prof.Register(s.Name, i); err != nil {
				return fmt.Errorf("register zone for %s: %w", s.Name, err)
			}
		}

		r.prof.Start()
		defer r.prof.Stop()
	}

	for round := 0; r.cfg.Rounds == 0 || round < r.cfg.Rounds; round++ {
		active := 0

		for i, s := range r.sessions {
			if s.Tester.HasError() {
				continue
			}

			if err := ctx.Err(); err != nil {
				return err
			}

			active++

			fmt.Fprintf(r.cfg.Out, "\n--- %s ---\n", s.Name)

			zone := r.prof.Begin(s.Name, i, 0)
			r.wave(s)
			zone.End()
		}

		if active == 0 {
			break
		}
	}

	return r.Err()
}

// RunParallel runs every session on its own goroutine. Output is buffered
// per wave and written whole, so waves do not interleave. Sessions must not
// share Params. An errored session stops without affecting the others.
func (r *Runner) RunParallel(ctx context.Context) error {
	if r.prof != nil {
		return ErrParallelProfile
	}

	var g errgroup.Group

	for _, s := range r.sessions {
		s.out.buffered = true

		g.Go(func() error {
			for round := 0; r.cfg.Rounds == 0 || round < r.cfg.Rounds; round++ {
				if err := ctx.Err(); err != nil {
					return err
				}

				r.wave(s)
				s.out.flush(fmt.Sprintf("\n--- %s ---\n", s.Name))

				if s.Tester.HasError() {
					return nil
				}
			}

			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return err
	}

	return r.Err()
}

// Err joins the errors of every failed session, each prefixed with the
// session name. It is nil when no session failed.
func (r *Runner) Err() error {
	var errs []error

	for _, s := range r.sessions {
		if err := s.Tester.Err(); err != nil {
			errs = append(errs, fmt.Errorf("%s: %w", s.Name, err))
		}
	}

	return errors.Join(errs...)
}

// wave runs one wave of s. Failures stay on the session's tester.
func (r *Runner) wave(s *Session) {
	s.Tester.NewWave(uint64(s.Params.Size), r.cfg.Frequency, r.cfg.TryFor)
	s.Candidate.Run(s.Tester, s.Params)
}

// Results summarizes every session.
func (r *Runner) Results() []results.Result {
	out := make([]results.Result, len(r.sessions))
	for i, s := range r.sessions {
		out[i] = results.FromTester(s.Name, s.Tester)
	}

	return out
}

type output struct {
	mu       *sync.Mutex
	w        io.Writer
	buf      bytes.Buffer
	buffered bool
}

func (o *output) Write(p []byte) (int, error) {
	if o.buffered {
		return o.buf.Write(p)
	}

	return o.w.Write(p)
}

func (o *output) flush(header string) {
	o.mu.Lock()
	defer o.mu.Unlock()

	io.WriteString(o.w, header)
	o.buf.WriteTo(o.w)
}

type lockedWriter struct {
	mu *sync.Mutex
	w  io.Writer
}

func (l *lockedWriter) Write(p []byte) (int, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	return l.w.Write(p)
}
