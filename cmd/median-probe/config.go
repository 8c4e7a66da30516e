package main

import (
	"fmt"
	"log/slog"
	"os"
	"strconv"
	"strings"
	"time"

	"median-probe/internal/probe"
	"median-probe/internal/sampler"
)

type Config struct {
	MetricsAddr string
	LogLevel    slog.Level
	Targets     []sampler.Target
	Sampler     sampler.Config
}

func loadConfig() (Config, error) {
	cfg := Config{
		MetricsAddr: envString("METRICS_ADDR", ":9095"),
		Sampler: sampler.Config{
			WindowSize:     envInt("WINDOW_SIZE", 15),
			Interval:       envDuration("SAMPLE_INTERVAL", time.Second),
			Timeout:        envDuration("PROBE_TIMEOUT", 2*time.Second),
			BurstThreshold: envInt("BURST_THRESHOLD", 2),
			Probe: probe.Options{
				ICMPPrivileged: envBool("ICMP_PRIVILEGED", false),
			},
		},
	}

	if err := cfg.LogLevel.UnmarshalText([]byte(envString("LOG_LEVEL", "info"))); err != nil {
		return Config{}, fmt.Errorf("parse LOG_LEVEL: %w", err)
	}

	entries := envList("PROBE_TARGETS")
	if len(entries) == 0 {
		return Config{}, fmt.Errorf("PROBE_TARGETS is required")
	}
	targets, err := sampler.ParseTargets(entries)
	if err != nil {
		return Config{}, fmt.Errorf("parse PROBE_TARGETS: %w", err)
	}
	cfg.Targets = targets

	return cfg, nil
}

func envString(key, defaultVal string) string {
	if v := strings.TrimSpace(os.Getenv(key)); v != "" {
		return v
	}
	return defaultVal
}

func envInt(key string, defaultVal int) int {
	if v := strings.TrimSpace(os.Getenv(key)); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return defaultVal
}

func envBool(key string, defaultVal bool) bool {
	if v := strings.TrimSpace(os.Getenv(key)); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			return b
		}
	}
	return defaultVal
}

func envDuration(key string, defaultVal time.Duration) time.Duration {
	if v := strings.TrimSpace(os.Getenv(key)); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			return d
		}
	}
	return defaultVal
}

func envList(key string) []string {
	v := strings.TrimSpace(os.Getenv(key))
	if v == "" {
		return nil
	}
	parts := strings.Split(v, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if t := strings.TrimSpace(p); t != "" {
			out = append(out, t)
		}
	}
	return out
}
