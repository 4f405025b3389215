package report

import (
	"context"
	"fmt"
	"html/template"
	"net/http"
	"time"

	"github.com/mdforge/mdforge/internal/ports"
)

const dashboardTemplate = `<!DOCTYPE html>
<html lang="en">
<head>
<meta charset="UTF-8">
<meta name="viewport" content="width=device-width, initial-scale=1.0">
<meta http-equiv="refresh" content="30">
<title>mdforge dashboard</title>
<style>
body { font-family: -apple-system, "Segoe UI", Roboto, sans-serif; margin: 0; padding: 2em; background: #f0f2f5; color: #333; }
.container { max-width: 1100px; margin: 0 auto; }
h1 { color: #2c3e50; }
.card { background: white; border-radius: 8px; padding: 1.5em; margin-bottom: 1.5em; box-shadow: 0 2px 8px rgba(0,0,0,0.08); }
.card h2 { margin-top: 0; color: #3867d6; border-bottom: 2px solid #eee; padding-bottom: 0.4em; }
pre { background: #2d3748; color: #e2e8f0; padding: 1em; border-radius: 6px; overflow-x: auto; white-space: pre-wrap; word-wrap: break-word; max-height: 400px; overflow-y: auto; font-size: 0.85em; }
.path { background: #e3f2fd; border: 1px solid #2196f3; padding: 6px; border-radius: 4px; font-family: monospace; }
.meta { color: #6c757d; font-size: 0.9em; font-style: italic; }
</style>
</head>
<body>
<div class="container">
<h1>mdforge dashboard</h1>
{{if .ServerIP}}<p>Share path: <span class="path">\\{{.ServerIP}}\{{.ShareName}}</span></p>{{end}}
<div class="card"><h2>Array</h2><pre>{{.ArrayStatus}}</pre></div>
<div class="card"><h2>Disks</h2>{{range .Disks}}<h3>{{.Device}}</h3><pre>{{.Summary}}</pre>{{end}}</div>
<div class="card"><h2>Usage</h2><pre>{{.Usage}}</pre></div>
<div class="card"><h2>Virus scan</h2><pre>{{.ScanLog}}</pre></div>
<p class="meta">generated {{.GeneratedAt.Format "2006-01-02 15:04:05"}}, refreshes every 30s</p>
</div>
</body>
</html>
`

// Server serves the read-only HTML dashboard.
type Server struct {
	collector *Collector
	log       ports.Logger
	addr      string
	tmpl      *template.Template
}

// NewServer creates a dashboard server listening on the given port.
func NewServer(collector *Collector, port int, log ports.Logger) *Server {
	return &Server{
		collector: collector,
		log:       log,
		addr:      fmt.Sprintf(":%d", port),
		tmpl:      template.Must(template.New("dashboard").Parse(dashboardTemplate)),
	}
}

// Handler returns the dashboard's HTTP handler.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/", func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/" {
			http.NotFound(w, r)
			return
		}

		report := s.collector.Collect(r.Context())
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		if err := s.tmpl.Execute(w, report); err != nil {
			s.log.Error(r.Context(), "dashboard render failed", ports.F("error", err))
		}
	})
	return mux
}

// ListenAndServe serves the dashboard until the context is canceled.
func (s *Server) ListenAndServe(ctx context.Context) error {
	server := &http.Server{
		Addr:              s.addr,
		Handler:           s.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		errCh <- server.ListenAndServe()
	}()

	s.log.Info(ctx, "dashboard listening", ports.F("addr", s.addr))

	select {
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		return server.Shutdown(shutdownCtx)
	case err := <-errCh:
		return err
	}
}
