package probe

import (
	"context"
	"fmt"
	"time"

	probing "github.com/prometheus-community/pro-bing"
)

// ICMP returns a probe that sends a single echo request and reports its
// round-trip time.
func ICMP(privileged bool) Func {
	return func(ctx context.Context, target string, timeout time.Duration) (bool, time.Duration, error) {
		pinger, err := probing.NewPinger(target)
		if err != nil {
			return false, 0, fmt.Errorf("icmp resolve %s: %w", target, err)
		}
		pinger.Count = 1
		pinger.Timeout = timeout
		pinger.SetPrivileged(privileged)

		errCh := make(chan error, 1)
		go func() {
			errCh <- pinger.Run()
		}()

		select {
		case err = <-errCh:
		case <-ctx.Done():
			pinger.Stop()
			<-errCh
			return false, 0, ctx.Err()
		}
		if err != nil {
			return false, 0, fmt.Errorf("icmp ping %s: %w", target, err)
		}

		st := pinger.Statistics()
		if st.PacketsRecv == 0 {
			return false, 0, fmt.Errorf("icmp ping %s: %w", target, context.DeadlineExceeded)
		}
		return true, st.AvgRtt, nil
	}
}
