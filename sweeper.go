package binsweep

import (
	"context"
	"errors"
	"net/http"
	"sync"
	"sync/atomic"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/semaphore"
)

// Job is a single bin lookup waiting to be sent.
type Job struct {
	Bin string
	URL string
}

// Summary counts what a sweep did.
type Summary struct {
	Sent      int64
	Succeeded int64
	Failed    int64
}

// Sweeper looks up every candidate the enumerator generates.
// It uses the producer-consumer pattern: candidates are streamed into a job queue and each job is sent from its own goroutine
// without waiting for earlier lookups to finish.
type Sweeper struct {
	*Config

	waitGroup sync.WaitGroup
	inFlight  *semaphore.Weighted

	sent      atomic.Int64
	succeeded atomic.Int64
	failed    atomic.Int64
}

// NewSweeper returns a Sweeper for config, filling in a default client and a no-op logger where they are missing.
func NewSweeper(config *Config) *Sweeper {
	if config.Client == nil {
		config.Client = &Client{Client: &http.Client{}}
	}

	if config.Logger == nil {
		config.Logger = zap.NewNop()
	}

	sweeper := &Sweeper{Config: config}
	if config.MaxConcurrentRequests > 0 {
		sweeper.inFlight = semaphore.NewWeighted(config.MaxConcurrentRequests)
	}
	return sweeper
}

// RequestCount returns how many lookups a full sweep sends.
func (s *Sweeper) RequestCount() int {
	return s.Enumerator.Count()
}

// GenerateJobs begins generating lookup jobs from the enumerator and sends them into the returned channel in candidate order.
// The channel is closed once every candidate has been queued or ctx is done.
func (s *Sweeper) GenerateJobs(ctx context.Context) <-chan *Job {
	jobs := make(chan *Job)

	go func(jobs chan<- *Job) {
		defer close(jobs)
		for bin := range s.Enumerator.Stream(ctx) {
			job := &Job{Bin: bin, URL: s.Endpoint.URLFor(bin)}
			select {
			case jobs <- job:
			case <-ctx.Done():
				return
			}
		}
	}(jobs)

	return jobs
}

// ProcessJobs dispatches lookups as they're received over the channel, then waits for every dispatched lookup to resolve.
func (s *Sweeper) ProcessJobs(ctx context.Context, jobs <-chan *Job) {
	for job := range jobs {
		if ctx.Err() != nil {
			break
		}

		if s.RequestDelay > 0 {
			select {
			case <-time.After(s.RequestDelay):
			case <-ctx.Done():
				continue
			}
		}

		s.dispatch(ctx, job)
	}

	s.Wait()
}

// Sweep runs the full sweep and returns once every lookup has completed or failed.
// The returned Summary only counts the lookups of this sweep.
func (s *Sweeper) Sweep(ctx context.Context) Summary {
	s.sent.Store(0)
	s.succeeded.Store(0)
	s.failed.Store(0)

	s.ProcessJobs(ctx, s.GenerateJobs(ctx))
	return s.Summary()
}

// Lookup sends a lookup for a single bin in the background and returns immediately.
// It only blocks when MaxConcurrentRequests lookups are already in flight.
func (s *Sweeper) Lookup(ctx context.Context, bin string) {
	s.dispatch(ctx, &Job{Bin: bin, URL: s.Endpoint.URLFor(bin)})
}

// Wait blocks until every dispatched lookup has completed or failed.
func (s *Sweeper) Wait() {
	s.waitGroup.Wait()
}

// Summary returns the counters of lookups so far.
func (s *Sweeper) Summary() Summary {
	return Summary{
		Sent:      s.sent.Load(),
		Succeeded: s.succeeded.Load(),
		Failed:    s.failed.Load(),
	}
}

func (s *Sweeper) dispatch(ctx context.Context, job *Job) {
	if s.inFlight != nil {
		if err := s.inFlight.Acquire(ctx, 1); err != nil {
			s.Logger.Debug("Lookup not sent", zap.String("bin", job.Bin), zap.Error(err))
			return
		}
	}

	s.sent.Add(1)
	s.waitGroup.Add(1)
	go s.lookupWorker(ctx, job)
}

func (s *Sweeper) lookupWorker(ctx context.Context, job *Job) {
	defer s.waitGroup.Done()
	if s.inFlight != nil {
		defer s.inFlight.Release(1)
	}

	result, err := s.lookup(ctx, job)
	if err != nil {
		var lookupErr *LookupError
		if !errors.As(err, &lookupErr) {
			lookupErr = &LookupError{Bin: job.Bin, URL: job.URL, Cause: err}
		}
		s.fail(lookupErr)
		return
	}

	s.succeeded.Add(1)
	s.Logger.Info("Bin found", zap.String("bin", result.Bin), zap.Int("bytes", len(result.Body)))

	for _, plugin := range s.Plugins {
		// Each plugin gets its own copy of the body.
		resp, err := result.Response.CloneBody()
		if err != nil {
			s.Logger.Error("Error cloning response for plugin", zap.String("plugin", plugin.Name()), zap.Error(err))
			continue
		}

		s.runPlugin(plugin, &Result{
			Bin:      result.Bin,
			URL:      result.URL,
			Body:     result.Body,
			Request:  result.Request,
			Response: resp,
		})
	}
}

// lookup sends the request and only returns a Result for a 200.
func (s *Sweeper) lookup(ctx context.Context, job *Job) (*Result, error) {
	req, err := NewRequest(ctx, job.URL)
	if err != nil {
		return nil, &LookupError{Bin: job.Bin, URL: job.URL, Cause: err}
	}

	resp, err := s.Client.Do(req)
	if err != nil {
		return nil, &LookupError{Bin: job.Bin, URL: job.URL, Cause: err}
	}

	body, err := resp.ReadBody()
	if err != nil {
		return nil, &LookupError{Bin: job.Bin, URL: job.URL, StatusCode: resp.StatusCode, Cause: err}
	}

	if resp.StatusCode != http.StatusOK {
		return nil, &LookupError{Bin: job.Bin, URL: job.URL, StatusCode: resp.StatusCode, Cause: ErrUnexpectedStatus}
	}

	return &Result{
		Bin:      job.Bin,
		URL:      job.URL,
		Body:     body,
		Request:  req,
		Response: resp,
	}, nil
}

func (s *Sweeper) fail(failure *LookupError) {
	s.failed.Add(1)

	fields := []zap.Field{
		zap.String("bin", failure.Bin),
		zap.Int("status", failure.StatusCode),
		zap.Error(failure.Cause),
	}
	if s.FailurePolicy == ReportFailures {
		s.Logger.Warn("Lookup failed", fields...)
	} else {
		s.Logger.Debug("Lookup failed", fields...)
	}

	for _, plugin := range s.Plugins {
		if listener, ok := plugin.(FailureListener); ok {
			listener.OnFailure(failure)
		}
	}
}

func (s *Sweeper) runPlugin(plugin Plugin, result *Result) {
	err := plugin.OnSuccess(result)
	if err != nil {
		s.Logger.Error("Error running plugin", zap.String("plugin", plugin.Name()), zap.Error(err))
	}
}
