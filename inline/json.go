package inline

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"
	"sync"

	"github.com/vidclip-cli/vidclip/log"
	"github.com/vidclip-cli/vidclip/progress"
)

// WriteJSON writes v as one compact JSON document followed by a newline.
func WriteJSON(w io.Writer, v any) error {
	return json.NewEncoder(w).Encode(v)
}

// EventWriter returns a Sink writing each event as one JSON line.
func EventWriter(w io.Writer) progress.Sink {
	var mu sync.Mutex
	encoder := json.NewEncoder(w)

	return func(e progress.Event) {
		mu.Lock()
		defer mu.Unlock()

		if err := encoder.Encode(e); err != nil {
			log.Warnf("write event: %v", err)
		}
	}
}

// TextWriter returns a Sink writing each event as a human readable line.
func TextWriter(w io.Writer) progress.Sink {
	var mu sync.Mutex

	return func(e progress.Event) {
		mu.Lock()
		defer mu.Unlock()

		_, _ = fmt.Fprintln(w, Describe(e))
	}
}

// Describe renders an event on a single line, e.g. "downloading 42.5% 1.21MiB/s ETA 00:07".
func Describe(e progress.Event) string {
	parts := []string{string(e.Status)}

	if percent, ok := e.Percent.Get(); ok {
		parts = append(parts, fmt.Sprintf("%.1f%%", percent))
	}
	if speed, ok := e.Speed.Get(); ok {
		parts = append(parts, speed)
	}
	if eta, ok := e.ETA.Get(); ok {
		parts = append(parts, "ETA "+eta)
	}
	if e.Message != "" {
		parts = append(parts, e.Message)
	}

	return strings.Join(parts, " ")
}
