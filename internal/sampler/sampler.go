// Package sampler drives probes on a fixed interval and feeds each target's
// latencies through its own running median filter.
package sampler

import (
	"context"
	"fmt"
	"log/slog"
	"math"
	"time"

	"golang.org/x/time/rate"

	"median-probe/internal/medianfilter"
	"median-probe/internal/probe"
)

// Window is the per-target filter: latencies in microseconds with a 64-bit sum.
type Window = medianfilter.Filter[int32, int64]

// Snapshot is the window state after a successful sample, in microseconds.
type Snapshot = medianfilter.Stats[int32, int64]

// Config controls sampling.
type Config struct {
	WindowSize     int
	Interval       time.Duration
	Timeout        time.Duration
	BurstThreshold int
	Probe          probe.Options
}

// Result is the outcome of probing one target once.
type Result struct {
	Target  Target
	OK      bool
	Latency time.Duration
	Err     error

	// Window is only meaningful when OK is true.
	Window Snapshot

	ConsecutiveFailures int
	// BurstEnded is the length of the failure burst this success ended, or 0.
	BurstEnded int
}

type state struct {
	target           Target
	probe            probe.Func
	window           *Window
	consecutiveFails int
	warn             *rate.Limiter
}

// Sampler owns every target's window. Tick and Run must not be called
// concurrently.
type Sampler struct {
	cfg     Config
	states  []*state
	observe func(Result)
}

// New resolves a probe for every target. observe is called with each result
// from the sampling goroutine and may be nil.
func New(cfg Config, targets []Target, observe func(Result)) (*Sampler, error) {
	if len(targets) == 0 {
		return nil, fmt.Errorf("no targets")
	}
	if cfg.Interval <= 0 {
		return nil, fmt.Errorf("interval must be positive, got %s", cfg.Interval)
	}
	if cfg.BurstThreshold < 1 {
		cfg.BurstThreshold = 1
	}

	s := &Sampler{cfg: cfg, observe: observe}
	for _, t := range targets {
		fn := t.Probe
		if fn == nil {
			var err error
			fn, err = probe.ForKind(t.Kind, cfg.Probe)
			if err != nil {
				return nil, fmt.Errorf("target %s: %w", t, err)
			}
		}
		s.states = append(s.states, &state{
			target: t,
			probe:  fn,
			warn:   rate.NewLimiter(rate.Every(time.Minute), 3),
		})
	}
	return s, nil
}

// Run ticks every cfg.Interval until ctx is done.
func (s *Sampler) Run(ctx context.Context) {
	ticker := time.NewTicker(s.cfg.Interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			s.Tick(ctx)
		}
	}
}

// Tick probes every target once, in order.
func (s *Sampler) Tick(ctx context.Context) []Result {
	results := make([]Result, 0, len(s.states))
	for _, st := range s.states {
		if ctx.Err() != nil {
			break
		}
		res := s.sample(ctx, st)
		if s.observe != nil {
			s.observe(res)
		}
		results = append(results, res)
	}
	return results
}

func (s *Sampler) sample(ctx context.Context, st *state) Result {
	ok, latency, err := st.probe(ctx, st.target.Addr, s.cfg.Timeout)
	res := Result{Target: st.target, OK: ok, Latency: latency, Err: err}

	if !ok {
		st.consecutiveFails++
		res.ConsecutiveFailures = st.consecutiveFails
		if st.warn.Allow() {
			slog.Warn("probe failed",
				"target", st.target.String(),
				"error", err,
				"timeout", probe.IsTimeout(err),
				"consecutive_failures", st.consecutiveFails,
			)
		}
		return res
	}

	if st.consecutiveFails >= s.cfg.BurstThreshold {
		res.BurstEnded = st.consecutiveFails
		slog.Warn("probe failure burst ended",
			"target", st.target.String(),
			"consecutive_failures", st.consecutiveFails,
		)
	}
	st.consecutiveFails = 0

	us := micros(latency)
	if st.window == nil {
		st.window = medianfilter.New[int32, int64](s.cfg.WindowSize, us)
		slog.Debug("window created",
			"target", st.target.String(),
			"capacity", st.window.Capacity(),
			"seed_us", us,
		)
	} else {
		st.window.Insert(us)
	}
	res.Window = st.window.Stats()
	return res
}

func micros(d time.Duration) int32 {
	us := d.Microseconds()
	switch {
	case us < 0:
		return 0
	case us > math.MaxInt32:
		return math.MaxInt32
	}
	return int32(us)
}
