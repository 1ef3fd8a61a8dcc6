// Package transcript fetches automatic captions and renders them as
// timestamped plain text.
package transcript

import (
	"bytes"
	"context"
	"encoding/xml"
	"errors"
	"fmt"
	"io"
	"math"
	"strconv"
	"strings"

	"github.com/spf13/viper"
	"github.com/vidclip-cli/vidclip/fault"
	"github.com/vidclip-cli/vidclip/key"
	"github.com/vidclip-cli/vidclip/where"
	"github.com/vidclip-cli/vidclip/workspace"
	"github.com/vidclip-cli/vidclip/ytdlp"
)

// Fetch downloads the automatic captions of videoID in the configured
// language and renders them with Parse.
func Fetch(ctx context.Context, client *ytdlp.Client, videoID string) (string, error) {
	scratch, err := workspace.Create(where.Temp())
	if err != nil {
		return "", err
	}
	defer scratch.Destroy()

	data, err := client.Captions(ctx, scratch.Path, videoID, viper.GetString(key.TranscriptLanguage))
	if err != nil {
		return "", err
	}

	return Parse(data)
}

type textNode struct {
	Start string `xml:"start,attr"`
	Text  string `xml:",chardata"`
}

// Parse renders every <text start="…"> element of an srv1 caption document
// as a "M:SS" line followed by its text, entries separated by newlines.
func Parse(data []byte) (string, error) {
	decoder := xml.NewDecoder(bytes.NewReader(data))

	var entries []string
	for {
		token, err := decoder.Token()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return "", fmt.Errorf("%w: caption document: %v", fault.ErrParse, err)
		}

		start, ok := token.(xml.StartElement)
		if !ok || start.Name.Local != "text" {
			continue
		}

		var node textNode
		if err := decoder.DecodeElement(&node, &start); err != nil {
			return "", fmt.Errorf("%w: caption entry: %v", fault.ErrParse, err)
		}

		seconds, err := strconv.ParseFloat(node.Start, 64)
		if err != nil {
			seconds = 0
		}

		text := strings.ReplaceAll(strings.ReplaceAll(node.Text, "\n", " "), "  ", " ")
		entries = append(entries, Timestamp(seconds)+"\n"+text)
	}

	return strings.Join(entries, "\n"), nil
}

// Timestamp renders an offset as minutes and rounded seconds, e.g. 65.4 -> "1:05".
func Timestamp(seconds float64) string {
	minutes := math.Floor(seconds / 60)
	rest := math.Round(math.Mod(seconds, 60))
	return fmt.Sprintf("%d:%02d", int(minutes), int(rest))
}
