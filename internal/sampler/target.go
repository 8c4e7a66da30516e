package sampler

import (
	"fmt"
	"strings"

	"median-probe/internal/probe"
)

// Target is one probe destination.
type Target struct {
	Kind probe.Kind
	Addr string

	// Probe overrides the implementation looked up from Kind.
	Probe probe.Func
}

func (t Target) String() string {
	return string(t.Kind) + ":" + t.Addr
}

// ParseTarget accepts "kind:addr". URLs become http targets and anything
// without a known kind prefix is probed over tcp.
func ParseTarget(s string) (Target, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return Target{}, fmt.Errorf("empty target")
	}
	if strings.HasPrefix(s, "http://") || strings.HasPrefix(s, "https://") {
		return Target{Kind: probe.KindHTTP, Addr: s}, nil
	}

	if prefix, rest, ok := strings.Cut(s, ":"); ok {
		if kind, err := probe.ParseKind(prefix); err == nil {
			if rest == "" {
				return Target{}, fmt.Errorf("target %q: missing address", s)
			}
			return Target{Kind: kind, Addr: rest}, nil
		}
	}
	return Target{Kind: probe.KindTCP, Addr: s}, nil
}

// ParseTargets parses every entry and fails on the first bad one.
func ParseTargets(entries []string) ([]Target, error) {
	out := make([]Target, 0, len(entries))
	for _, e := range entries {
		t, err := ParseTarget(e)
		if err != nil {
			return nil, err
		}
		out = append(out, t)
	}
	return out, nil
}
