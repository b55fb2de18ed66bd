package app

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"sync"
	"time"

	"github.com/vk/shaderbuild/internal/build"
)

// progress tracks a running build for the status endpoint.
type progress struct {
	mu       sync.Mutex
	state    string
	total    int
	counts   map[build.Status]int
	lastErr  string
	started  time.Time
	finished time.Time
}

// statusReport is the JSON body served at /status.
type statusReport struct {
	State    string `json:"state"`
	Jobs     int    `json:"jobs"`
	Compiled int    `json:"compiled"`
	Skipped  int    `json:"skipped"`
	Failed   int    `json:"failed"`
	Error    string `json:"error,omitempty"`
	Elapsed  string `json:"elapsed"`
}

func (p *progress) begin(total int) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.state = "running"
	p.total = total
	p.counts = make(map[build.Status]int)
	p.started = time.Now()
}

func (p *progress) record(_ build.Job, status build.Status) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.counts[status]++
}

func (p *progress) finish(err error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.state = "done"
	if err != nil {
		p.state = "aborted"
		p.lastErr = err.Error()
	}
	p.finished = time.Now()
}

func (p *progress) report() statusReport {
	p.mu.Lock()
	defer p.mu.Unlock()

	state := p.state
	if state == "" {
		state = "idle"
	}
	end := p.finished
	if end.IsZero() {
		end = time.Now()
	}
	var elapsed time.Duration
	if !p.started.IsZero() {
		elapsed = end.Sub(p.started).Round(time.Millisecond)
	}

	return statusReport{
		State:    state,
		Jobs:     p.total,
		Compiled: p.counts[build.StatusCompiled],
		Skipped:  p.counts[build.StatusSkipped],
		Failed:   p.counts[build.StatusFailed],
		Error:    p.lastErr,
		Elapsed:  elapsed.String(),
	}
}

// healthHandler reports that the process is alive.
func (a *App) healthHandler(w http.ResponseWriter, r *http.Request) {
	a.logger.Debug("Health check endpoint hit.", "remote_addr", r.RemoteAddr, "path", r.URL.Path)
	w.WriteHeader(http.StatusOK)
	fmt.Fprintln(w, "OK")
}

// statusHandler serves the build progress as JSON.
func (a *App) statusHandler(w http.ResponseWriter, r *http.Request) {
	a.logger.Debug("Status endpoint hit.", "remote_addr", r.RemoteAddr, "path", r.URL.Path)
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(a.progress.report()); err != nil {
		a.logger.Error("Failed to write status response.", "error", err)
	}
}

// statusMux routes the status server's endpoints.
func (a *App) statusMux() *http.ServeMux {
	mux := http.NewServeMux()
	mux.HandleFunc("/health", a.healthHandler)
	mux.HandleFunc("/status", a.statusHandler)
	return mux
}

// startStatusServer runs the status HTTP server in the background.
func (a *App) startStatusServer(port int) {
	a.logger.Debug("Configuring status server.")
	addr := fmt.Sprintf(":%d", port)

	srv := &http.Server{
		Addr:              addr,
		Handler:           a.statusMux(),
		ReadHeaderTimeout: 5 * time.Second,
	}
	a.httpServer = srv

	go func() {
		a.logger.Info("🩺 Status server starting", "address", fmt.Sprintf("http://localhost%s/status", addr))
		// ListenAndServe returns ErrServerClosed on graceful shutdown.
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			a.logger.Error("Status server failed unexpectedly", "error", err)
		}
	}()
}

// closeStatusServer shuts the status server down, waiting up to five seconds.
func (a *App) closeStatusServer(ctx context.Context) {
	if a.httpServer == nil {
		a.logger.Debug("Status server was not running.")
		return
	}

	ctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), 5*time.Second)
	defer cancel()

	a.logger.Debug("Shutting down status server...")
	if err := a.httpServer.Shutdown(ctx); err != nil {
		a.logger.Error("Status server shutdown failed", "error", err)
		return
	}
	a.logger.Debug("Status server shut down gracefully.")
}
