package transcript

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

// FormatTime renders whole seconds as "H:MM:SS", or "M:SS" below an hour.
func FormatTime(seconds int) string {
	h := seconds / 3600
	m := seconds % 3600 / 60
	s := seconds % 60

	if h > 0 {
		return fmt.Sprintf("%d:%02d:%02d", h, m, s)
	}
	return fmt.Sprintf("%d:%02d", m, s)
}

// TimeToSeconds parses "SS", "M:SS" or "H:MM:SS".
func TimeToSeconds(ts string) (int, error) {
	parts := strings.Split(strings.TrimSpace(ts), ":")
	if len(parts) > 3 {
		return 0, fmt.Errorf("invalid timestamp %q", ts)
	}

	var total int
	for _, part := range parts {
		n, err := strconv.Atoi(part)
		if err != nil || n < 0 {
			return 0, fmt.Errorf("invalid timestamp %q", ts)
		}
		total = total*60 + n
	}
	return total, nil
}

var timestampLine = regexp.MustCompile(`^(\d{1,2}):(\d{2})$`)

// Truncate keeps the timestamp and text lines of a rendered transcript whose
// most recent timestamp lies within [start, end] seconds. Blank lines are
// dropped. An empty transcript or a zero range returns text unchanged.
func Truncate(text string, start, end int) string {
	if text == "" || (start == 0 && end == 0) {
		return text
	}

	var (
		kept    []string
		current int
	)

	for _, line := range strings.Split(text, "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}

		if m := timestampLine.FindStringSubmatch(line); m != nil {
			minutes, _ := strconv.Atoi(m[1])
			seconds, _ := strconv.Atoi(m[2])
			current = minutes*60 + seconds
		}

		if current >= start && current <= end {
			kept = append(kept, line)
		}
	}

	return strings.Join(kept, "\n")
}
