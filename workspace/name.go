package workspace

import (
	"path/filepath"
	"strings"
	"unicode"

	"github.com/samber/lo"
	"github.com/vidclip-cli/vidclip/media"
)

const (
	maxNameLength = 100

	// fallbackName is used when nothing of the requested name survives sanitization.
	fallbackName = "video"
)

// SanitizeName turns a human title into a lowercase, underscore separated
// file stem with a kind suffix, e.g. "My Video - Part 1" -> "my_video_part_1_full".
func SanitizeName(name string, kind media.Kind) string {
	return SanitizeStem(name) + "_" + kind.Suffix()
}

// SanitizeStem is SanitizeName without the kind suffix. It is capped at 100 runes.
// Only ASCII letters are lowercased; other letters and numerals are kept as they are.
func SanitizeStem(name string) string {
	mapped := strings.Map(func(r rune) rune {
		if !isAlphanumeric(r) {
			return '_'
		}
		if 'A' <= r && r <= 'Z' {
			return r + ('a' - 'A')
		}
		return r
	}, name)

	stem := strings.Join(lo.Compact(strings.Split(mapped, "_")), "_")

	if runes := []rune(stem); len(runes) > maxNameLength {
		stem = strings.TrimRight(string(runes[:maxNameLength]), "_")
	}

	if stem == "" {
		stem = fallbackName
	}

	return stem
}

func isAlphanumeric(r rune) bool {
	return unicode.IsLetter(r) || unicode.IsNumber(r) || unicode.Is(unicode.Other_Alphabetic, r)
}

// ResolveFinalPath is where the encoder writes the finished artifact.
func ResolveFinalPath(baseDir, name string, kind media.Kind) string {
	return filepath.Join(baseDir, SanitizeName(name, kind)+".mp4")
}
