package ytdlp

import (
	"context"

	"github.com/vidclip-cli/vidclip/internal/cache"
	"github.com/vidclip-cli/vidclip/log"
	"github.com/vidclip-cli/vidclip/media"
)

// CachedMetadata is Metadata backed by the on-disk metadata cache. Passing
// useCache=false forces a fresh extraction, which still refreshes the cache.
func (c *Client) CachedMetadata(ctx context.Context, url string, useCache bool) (*media.Video, error) {
	k := cache.GenerateKey(url)

	if useCache && cache.Enabled() {
		var video media.Video
		if cache.Read(k, &video) {
			log.Debugf("metadata cache hit for %s", url)
			return &video, nil
		}
	}

	video, err := c.Metadata(ctx, url)
	if err != nil {
		return nil, err
	}

	if cache.Enabled() {
		if err := cache.Write(k, video); err != nil {
			log.Warnf("caching metadata of %s: %v", url, err)
		}
	}
	return video, nil
}
