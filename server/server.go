// Package server exposes metadata, transcript, streaming and download
// operations over a local HTTP API.
package server

import (
	"context"
	"errors"
	"net/http"
	"sync"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/sirupsen/logrus"
	"github.com/vidclip-cli/vidclip/log"
	"github.com/vidclip-cli/vidclip/pipeline"
	"github.com/vidclip-cli/vidclip/process"
	"github.com/vidclip-cli/vidclip/ytdlp"
)

const (
	maxHeaderBytes  = 1 << 20
	shutdownTimeout = 5 * time.Second
)

// Server owns the echo instance and every job started through it.
type Server struct {
	echo      *echo.Echo
	extractor *ytdlp.Client
	pipeline  *pipeline.Pipeline
	jobs      *registry

	// jobsCtx outlives requests; it is cancelled on shutdown.
	jobsCtx    context.Context
	cancelJobs context.CancelFunc
	running    sync.WaitGroup

	// OnFinish, when set, is called once per job after its terminal event.
	OnFinish func(job *pipeline.Job, output string, err error)
}

// New returns a server running the configured tools through runner.
func New(runner process.Runner) *Server {
	ctx, cancel := context.WithCancel(context.Background())

	s := &Server{
		echo:       echo.New(),
		extractor:  ytdlp.New(runner),
		pipeline:   pipeline.New(runner),
		jobs:       newRegistry(finishedTTL),
		jobsCtx:    ctx,
		cancelJobs: cancel,
	}

	s.echo.HideBanner = true
	s.echo.HidePort = true
	s.echo.Use(middleware.Recover())
	s.echo.Use(middleware.RequestLoggerWithConfig(middleware.RequestLoggerConfig{
		LogMethod: true,
		LogURI:    true,
		LogStatus: true,
		LogValuesFunc: func(_ echo.Context, v middleware.RequestLoggerValues) error {
			log.WithFields(logrus.Fields{
				"method": v.Method,
				"uri":    v.URI,
				"status": v.Status,
			}).Debug("request")
			return nil
		},
	}))

	s.MapHandlers(s.echo)
	return s
}

// Handler returns the HTTP handler serving the API.
func (s *Server) Handler() http.Handler {
	return s.echo
}

// Run listens on addr until ctx is done, then shuts down gracefully,
// cancelling running jobs and waiting for their cleanup.
func (s *Server) Run(ctx context.Context, addr string) error {
	server := &http.Server{
		Addr:              addr,
		MaxHeaderBytes:    maxHeaderBytes,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errs := make(chan error, 1)
	go func() {
		log.Infof("listening on %s", addr)
		if err := s.echo.StartServer(server); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errs <- err
		}
		close(errs)
	}()

	select {
	case err := <-errs:
		s.cancelJobs()
		return err
	case <-ctx.Done():
	}

	log.Info("shutting down server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	s.cancelJobs()
	err := s.echo.Shutdown(shutdownCtx)
	s.running.Wait()
	return err
}

// MapHandlers registers every API route on e.
func (s *Server) MapHandlers(e *echo.Echo) {
	h := &handler{server: s}

	api := e.Group("/api")
	api.GET("/metadata", h.Metadata())
	api.GET("/transcript/:id", h.Transcript())
	api.GET("/stream", h.Stream())

	downloads := api.Group("/downloads")
	downloads.POST("", h.CreateDownload())
	downloads.GET("/:id", h.Download())
	downloads.GET("/:id/events", h.Events())
}

// start runs job in the background, recording its events under its ID.
func (s *Server) start(job *pipeline.Job) {
	f := s.jobs.add(job.ID)

	s.running.Add(1)
	go func() {
		defer s.running.Done()

		output, err := s.pipeline.Run(s.jobsCtx, job, f.publish)
		if s.OnFinish != nil {
			s.OnFinish(job, output, err)
		}
	}()
}
