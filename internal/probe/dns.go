package probe

import (
	"context"
	"fmt"
	"net"
	"time"
)

// DNS resolves domain with the system resolver.
func DNS(ctx context.Context, domain string, timeout time.Duration) (bool, time.Duration, error) {
	resolver := &net.Resolver{}

	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	start := time.Now()
	addrs, err := resolver.LookupHost(ctx, domain)
	latency := time.Since(start)

	if err != nil {
		return false, latency, fmt.Errorf("dns lookup %s: %w", domain, err)
	}
	if len(addrs) == 0 {
		return false, latency, fmt.Errorf("dns lookup %s: no addresses", domain)
	}
	return true, latency, nil
}
