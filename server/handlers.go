package server

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/vidclip-cli/vidclip/fault"
	"github.com/vidclip-cli/vidclip/log"
	"github.com/vidclip-cli/vidclip/media"
	"github.com/vidclip-cli/vidclip/pipeline"
	"github.com/vidclip-cli/vidclip/progress"
	"github.com/vidclip-cli/vidclip/transcript"
	"github.com/vidclip-cli/vidclip/youtube"
)

type handler struct {
	server *Server
}

// statusOf maps a failure kind to the HTTP status reported for it.
func statusOf(err error) int {
	switch {
	case errors.Is(err, fault.ErrInvalidJob):
		return http.StatusBadRequest
	case errors.Is(err, fault.ErrNoUsableOutput), errors.Is(err, fault.ErrParse):
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}

func fail(c echo.Context, err error) error {
	status := statusOf(err)
	if status >= http.StatusInternalServerError {
		log.Errorf("%s %s: %v", c.Request().Method, c.Request().URL.Path, err)
	}
	return c.JSON(status, map[string]string{"error": err.Error()})
}

func (h *handler) videoURL(c echo.Context) (string, error) {
	url := c.QueryParam("url")
	if err := pipeline.Validator.Var(url, "required,url"); err != nil {
		return "", fmt.Errorf("%w: url: %v", fault.ErrInvalidJob, err)
	}
	return url, nil
}

func (h *handler) Metadata() echo.HandlerFunc {
	return func(c echo.Context) error {
		url, err := h.videoURL(c)
		if err != nil {
			return fail(c, err)
		}

		video, err := h.server.extractor.CachedMetadata(c.Request().Context(), url, true)
		if err != nil {
			return fail(c, err)
		}
		return c.JSON(http.StatusOK, video)
	}
}

// Transcript accepts either a bare video ID or a URL-encoded watch URL.
func (h *handler) Transcript() echo.HandlerFunc {
	return func(c echo.Context) error {
		param := c.Param("id")
		id := youtube.ExtractVideoID(param).OrElse(param)
		if err := pipeline.Validator.Var(id, "len=11"); err != nil {
			return c.JSON(http.StatusBadRequest, map[string]string{"error": "Invalid video id"})
		}

		text, err := transcript.Fetch(c.Request().Context(), h.server.extractor, id)
		if err != nil {
			return fail(c, err)
		}
		return c.JSON(http.StatusOK, map[string]string{"transcript": text})
	}
}

func (h *handler) Stream() echo.HandlerFunc {
	return func(c echo.Context) error {
		url, err := h.videoURL(c)
		if err != nil {
			return fail(c, err)
		}

		stream, err := h.server.extractor.StreamingURL(c.Request().Context(), url)
		if err != nil {
			return fail(c, err)
		}
		return c.JSON(http.StatusOK, stream)
	}
}

// CreateDownload accepts a Request body. A start or end time turns it into a clip.
func (h *handler) CreateDownload() echo.HandlerFunc {
	return func(c echo.Context) error {
		req := pipeline.Request{}
		if err := c.Bind(&req); err != nil {
			return c.JSON(http.StatusBadRequest, map[string]string{"error": "Invalid request payload"})
		}

		req.Kind = media.KindFull
		if req.Start != "" || req.End != "" {
			req.Kind = media.KindClip
		}

		job, err := pipeline.NewJob(req)
		if err != nil {
			return fail(c, err)
		}

		h.server.start(job)
		return c.JSON(http.StatusAccepted, map[string]string{"job_id": job.ID})
	}
}

// Download reports the latest event of a job. A job that has not
// published anything yet is reported as processing.
func (h *handler) Download() echo.HandlerFunc {
	return func(c echo.Context) error {
		id := c.Param("id")
		f, ok := h.server.jobs.get(id)
		if !ok {
			return c.JSON(http.StatusNotFound, map[string]string{"error": "Unknown job"})
		}

		return c.JSON(http.StatusOK, f.latest().OrElse(progress.Processing(id)))
	}
}

// Events streams a job's events as server-sent events, replaying the ones
// already published, and ends after the terminal event.
func (h *handler) Events() echo.HandlerFunc {
	return func(c echo.Context) error {
		f, ok := h.server.jobs.get(c.Param("id"))
		if !ok {
			return c.JSON(http.StatusNotFound, map[string]string{"error": "Unknown job"})
		}

		res := c.Response()
		res.Header().Set(echo.HeaderContentType, "text/event-stream")
		res.Header().Set(echo.HeaderCacheControl, "no-cache")
		res.Header().Set(echo.HeaderConnection, "keep-alive")
		res.WriteHeader(http.StatusOK)

		ctx := c.Request().Context()
		var sent int
		for {
			events, next, changed := f.since(sent)
			sent = next
			for _, e := range events {
				data, err := json.Marshal(e)
				if err != nil {
					return err
				}
				if _, err := fmt.Fprintf(res, "event: %s\ndata: %s\n\n", e.Status, data); err != nil {
					return err
				}

				if e.Status.IsTerminal() {
					res.Flush()
					return nil
				}
			}
			res.Flush()

			select {
			case <-changed:
			case <-ctx.Done():
				return nil
			}
		}
	}
}
