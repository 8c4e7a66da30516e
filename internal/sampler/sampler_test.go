package sampler

import (
	"context"
	"errors"
	"math"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"median-probe/internal/probe"
)

// step is one scripted probe outcome; zero latency means failure.
type step time.Duration

func scripted(steps ...step) probe.Func {
	i := 0
	return func(context.Context, string, time.Duration) (bool, time.Duration, error) {
		s := steps[i%len(steps)]
		i++
		if s == 0 {
			return false, 0, errors.New("unreachable")
		}
		return true, time.Duration(s), nil
	}
}

func ms(n int) step { return step(time.Duration(n) * time.Millisecond) }

func newTestSampler(t *testing.T, cfg Config, fn probe.Func) *Sampler {
	t.Helper()
	if cfg.Interval == 0 {
		cfg.Interval = time.Millisecond
	}
	s, err := New(cfg, []Target{{Kind: probe.KindTCP, Addr: "gw", Probe: fn}}, nil)
	require.NoError(t, err)
	return s
}

func TestSampler_TracksRunningMedian(t *testing.T) {
	s := newTestSampler(t, Config{WindowSize: 3, BurstThreshold: 2},
		scripted(ms(10), ms(50), ms(20), ms(30)))
	ctx := context.Background()

	want := []struct {
		median, min, max int32
	}{
		{10000, 10000, 10000},
		{10000, 10000, 50000},
		{20000, 10000, 50000},
		{30000, 20000, 50000},
	}

	for i, w := range want {
		res := s.Tick(ctx)
		require.Len(t, res, 1)
		require.True(t, res[0].OK)
		assert.Equal(t, w.median, res[0].Window.Median, "tick %d", i)
		assert.Equal(t, w.min, res[0].Window.Min, "tick %d", i)
		assert.Equal(t, w.max, res[0].Window.Max, "tick %d", i)
	}
}

func TestSampler_FailureBursts(t *testing.T) {
	s := newTestSampler(t, Config{WindowSize: 5, BurstThreshold: 2},
		scripted(0, 0, ms(5), 0, ms(5), 0, 0, 0, ms(7)))
	ctx := context.Background()

	var got []Result
	for i := 0; i < 9; i++ {
		got = append(got, s.Tick(ctx)...)
	}

	assert.Equal(t, 1, got[0].ConsecutiveFailures)
	assert.Equal(t, 2, got[1].ConsecutiveFailures)
	assert.Zero(t, got[0].Window, "no window before the first success")
	assert.Equal(t, 2, got[2].BurstEnded)
	assert.Equal(t, 1, got[3].ConsecutiveFailures)
	assert.Zero(t, got[4].BurstEnded, "single failure is not a burst")
	assert.Equal(t, 3, got[7].ConsecutiveFailures)
	assert.Equal(t, 3, got[8].BurstEnded)
	assert.Equal(t, int32(5000), got[8].Window.Median)
	assert.Equal(t, int32(7000), got[8].Window.Max)
}

func TestSampler_ObserveSeesEveryResult(t *testing.T) {
	var seen []Result
	s, err := New(Config{WindowSize: 3, Interval: time.Second}, []Target{
		{Kind: probe.KindTCP, Addr: "a", Probe: scripted(ms(1))},
		{Kind: probe.KindDNS, Addr: "b", Probe: scripted(0)},
	}, func(r Result) { seen = append(seen, r) })
	require.NoError(t, err)

	res := s.Tick(context.Background())
	assert.Equal(t, res, seen)
	assert.Equal(t, "tcp:a", seen[0].Target.String())
	assert.False(t, seen[1].OK)
}

func TestSampler_RunStopsOnCancel(t *testing.T) {
	var ticks atomic.Int32
	ctx, cancel := context.WithCancel(context.Background())

	s, err := New(Config{WindowSize: 3, Interval: time.Millisecond},
		[]Target{{Kind: probe.KindTCP, Addr: "a", Probe: scripted(ms(1))}},
		func(Result) {
			if ticks.Add(1) == 5 {
				cancel()
			}
		})
	require.NoError(t, err)

	done := make(chan struct{})
	go func() {
		s.Run(ctx)
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(5 * time.Second):
		t.Fatal("Run did not return after cancel")
	}
	assert.GreaterOrEqual(t, ticks.Load(), int32(5))
}

func TestNew_Errors(t *testing.T) {
	tests := []struct {
		name    string
		cfg     Config
		targets []Target
	}{
		{"no targets", Config{Interval: time.Second}, nil},
		{"zero interval", Config{}, []Target{{Kind: probe.KindTCP, Addr: "a"}}},
		{"unknown kind", Config{Interval: time.Second}, []Target{{Kind: "smtp", Addr: "a"}}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := New(tt.cfg, tt.targets, nil)
			assert.Error(t, err)
		})
	}
}

func TestParseTarget(t *testing.T) {
	tests := []struct {
		in      string
		want    Target
		wantErr bool
	}{
		{"tcp:1.1.1.1:443", Target{Kind: probe.KindTCP, Addr: "1.1.1.1:443"}, false},
		{"1.1.1.1:53", Target{Kind: probe.KindTCP, Addr: "1.1.1.1:53"}, false},
		{"gateway.lan", Target{Kind: probe.KindTCP, Addr: "gateway.lan"}, false},
		{"dns:example.com", Target{Kind: probe.KindDNS, Addr: "example.com"}, false},
		{"ICMP:10.0.0.1", Target{Kind: probe.KindICMP, Addr: "10.0.0.1"}, false},
		{"http:https://example.com/health", Target{Kind: probe.KindHTTP, Addr: "https://example.com/health"}, false},
		{"https://example.com", Target{Kind: probe.KindHTTP, Addr: "https://example.com"}, false},
		{"dns:", Target{}, true},
		{"  ", Target{}, true},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseTarget(tt.in)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestParseTargets(t *testing.T) {
	got, err := ParseTargets([]string{"dns:a", "b:80"})
	require.NoError(t, err)
	assert.Len(t, got, 2)

	_, err = ParseTargets([]string{"dns:a", "icmp:"})
	assert.Error(t, err)
}

func TestMicros(t *testing.T) {
	assert.Equal(t, int32(0), micros(-time.Second))
	assert.Equal(t, int32(1500), micros(1500*time.Microsecond))
	assert.Equal(t, int32(math.MaxInt32), micros(time.Hour))
}
