package main

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

// formatMillis renders a millisecond timeline position as m:ss.mmm.
func formatMillis(ms int64) string {
	if ms < 0 {
		ms = 0
	}
	d := time.Duration(ms) * time.Millisecond
	minutes := int64(d / time.Minute)
	seconds := int64(d/time.Second) % 60
	millis := ms % 1000
	return fmt.Sprintf("%d:%02d.%03d", minutes, seconds, millis)
}

// parseMillis accepts either a bare millisecond count or a m:ss[.mmm]
// position and returns milliseconds.
func parseMillis(arg string) (int64, error) {
	arg = strings.TrimSpace(arg)
	if arg == "" {
		return 0, fmt.Errorf("position is required")
	}

	if !strings.Contains(arg, ":") {
		ms, err := strconv.ParseInt(arg, 10, 64)
		if err != nil {
			return 0, fmt.Errorf("invalid position %q", arg)
		}
		return ms, nil
	}

	parts := strings.SplitN(arg, ":", 2)
	minutes, err := strconv.ParseInt(parts[0], 10, 64)
	if err != nil || minutes < 0 {
		return 0, fmt.Errorf("invalid position %q", arg)
	}
	secPart := parts[1]
	millis := int64(0)
	if dot := strings.Index(secPart, "."); dot >= 0 {
		frac := secPart[dot+1:]
		secPart = secPart[:dot]
		for len(frac) < 3 {
			frac += "0"
		}
		frac = frac[:3]
		millis, err = strconv.ParseInt(frac, 10, 64)
		if err != nil {
			return 0, fmt.Errorf("invalid position %q", arg)
		}
	}
	seconds, err := strconv.ParseInt(secPart, 10, 64)
	if err != nil || seconds < 0 || seconds > 59 {
		return 0, fmt.Errorf("invalid position %q", arg)
	}
	return minutes*60_000 + seconds*1000 + millis, nil
}
