// Package probe measures round-trip latency to network targets. Every probe
// kind reports whether the target answered, how long it took and the error
// that made it fail, if any.
package probe

import (
	"context"
	"errors"
	"fmt"
	"net"
	"strings"
	"time"
)

// Kind names a probe implementation.
type Kind string

const (
	KindTCP  Kind = "tcp"
	KindHTTP Kind = "http"
	KindDNS  Kind = "dns"
	KindICMP Kind = "icmp"
)

// Func probes target once and returns success, latency and any error.
type Func func(ctx context.Context, target string, timeout time.Duration) (bool, time.Duration, error)

// Options tunes probe kinds that need more than a target and a timeout.
type Options struct {
	// ICMPPrivileged selects raw ICMP sockets instead of unprivileged UDP pings.
	ICMPPrivileged bool
}

// ParseKind maps a case-insensitive name to a Kind.
func ParseKind(s string) (Kind, error) {
	switch k := Kind(strings.ToLower(strings.TrimSpace(s))); k {
	case KindTCP, KindHTTP, KindDNS, KindICMP:
		return k, nil
	default:
		return "", fmt.Errorf("unknown probe kind %q", s)
	}
}

// ForKind returns the probe implementation for kind.
func ForKind(kind Kind, opts Options) (Func, error) {
	switch kind {
	case KindTCP:
		return TCP, nil
	case KindHTTP:
		return HTTP, nil
	case KindDNS:
		return DNS, nil
	case KindICMP:
		return ICMP(opts.ICMPPrivileged), nil
	default:
		return nil, fmt.Errorf("unknown probe kind %q", kind)
	}
}

// IsTimeout reports whether err is a context deadline or a network timeout.
func IsTimeout(err error) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, context.DeadlineExceeded) {
		return true
	}
	var ne net.Error
	if errors.As(err, &ne) {
		return ne.Timeout()
	}
	return false
}
