package progress

import (
	"math"
	"strconv"
	"strings"

	"github.com/samber/lo"
	"github.com/samber/mo"
)

// downloadMarker prefixes every extractor progress line.
const downloadMarker = "[download]"

// ParseLine reads a progress line such as
//
//	[download]  42.5% of 10.00MiB at 1.21MiB/s ETA 00:07
//
// ok is false when the line lacks the download marker or a percent sign.
// A percentage that is not a finite number is left absent.
func ParseLine(line string) (p Progress, ok bool) {
	line = strings.TrimSpace(line)
	if !strings.Contains(line, downloadMarker) || !strings.Contains(line, "%") {
		return Progress{}, false
	}

	tokens := strings.Fields(line)

	if tok, found := lo.Find(tokens, func(t string) bool { return strings.HasSuffix(t, "%") }); found {
		v, err := strconv.ParseFloat(strings.TrimRight(tok, "%"), 64)
		if err == nil && !math.IsNaN(v) && !math.IsInf(v, 0) {
			p.Percent = mo.Some(v)
		}
	}

	if tok, found := lo.Find(tokens, func(t string) bool { return strings.HasSuffix(t, "/s") }); found {
		p.Speed = mo.Some(tok)
	}

	for i := len(tokens) - 1; i >= 0; i-- {
		if isClock(tokens[i]) {
			p.ETA = mo.Some(tokens[i])
			break
		}
	}

	return p, true
}

func isClock(token string) bool {
	return strings.Trim(token, "0123456789:") == ""
}

// Translator returns a stderr line callback that publishes a Downloading event
// for every progress line and ignores everything else.
func Translator(jobID string, publish func(Event)) func(line string) {
	return func(line string) {
		if p, ok := ParseLine(line); ok {
			publish(Downloading(jobID, p))
		}
	}
}
