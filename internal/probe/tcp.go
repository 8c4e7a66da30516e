package probe

import (
	"context"
	"fmt"
	"net"
	"time"
)

const defaultTCPPort = "443"

// TCP dials target and closes the connection as soon as it is established.
// A target without a port is dialed on 443.
func TCP(ctx context.Context, target string, timeout time.Duration) (bool, time.Duration, error) {
	addr := target
	if _, _, err := net.SplitHostPort(target); err != nil {
		addr = net.JoinHostPort(target, defaultTCPPort)
	}

	d := net.Dialer{Timeout: timeout}
	start := time.Now()
	conn, err := d.DialContext(ctx, "tcp", addr)
	latency := time.Since(start)

	if err != nil {
		return false, 0, fmt.Errorf("tcp dial %s: %w", addr, err)
	}
	conn.Close()
	return true, latency, nil
}
