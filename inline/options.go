package inline

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/samber/lo"
	"github.com/samber/mo"
	"github.com/vidclip-cli/vidclip/media"
)

// FormatPicker chooses one format from a video's list.
type FormatPicker func([]media.Format) mo.Option[media.Format]

// ParseFormatPicker understands "best", "worst", "first", "last" and
// "index:N"; anything else is taken as an exact format ID.
func ParseFormatPicker(description string) (FormatPicker, error) {
	switch description {
	case "best":
		return extreme(func(a, b media.Format) bool { return pixels(a) > pixels(b) }), nil
	case "worst":
		return extreme(func(a, b media.Format) bool { return pixels(a) < pixels(b) }), nil
	case "first":
		return func(formats []media.Format) mo.Option[media.Format] {
			return mo.TupleToOption(lo.First(formats))
		}, nil
	case "last":
		return func(formats []media.Format) mo.Option[media.Format] {
			return mo.TupleToOption(lo.Last(formats))
		}, nil
	}

	if raw, ok := strings.CutPrefix(description, "index:"); ok {
		idx, err := strconv.ParseUint(raw, 10, 16)
		if err != nil {
			return nil, fmt.Errorf("invalid index: %s", raw)
		}
		return func(formats []media.Format) mo.Option[media.Format] {
			if uint64(len(formats)) <= idx {
				return mo.None[media.Format]()
			}
			return mo.Some(formats[idx])
		}, nil
	}

	if description == "" {
		return nil, fmt.Errorf("empty format picker")
	}

	return func(formats []media.Format) mo.Option[media.Format] {
		return mo.TupleToOption(lo.Find(formats, func(f media.Format) bool {
			return f.FormatID == description
		}))
	}, nil
}

// IsSelector reports whether description picks by position or quality
// rather than naming a format ID.
func IsSelector(description string) bool {
	switch description {
	case "best", "worst", "first", "last":
		return true
	}
	return strings.HasPrefix(description, "index:")
}

// extreme picks among formats carrying video, using better to compare them.
func extreme(better func(a, b media.Format) bool) FormatPicker {
	return func(formats []media.Format) mo.Option[media.Format] {
		video := lo.Filter(formats, func(f media.Format, _ int) bool { return pixels(f) > 0 })
		if len(video) == 0 {
			return mo.None[media.Format]()
		}
		return mo.Some(lo.MaxBy(video, better))
	}
}

// pixels is the frame area of a "WxH" resolution, 0 for audio-only formats.
func pixels(f media.Format) int {
	w, h, ok := strings.Cut(f.Resolution, "x")
	if !ok {
		return 0
	}
	width, err1 := strconv.Atoi(w)
	height, err2 := strconv.Atoi(h)
	if err1 != nil || err2 != nil {
		return 0
	}
	return width * height
}
