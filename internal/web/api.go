package web

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"sync"

	"github.com/phyten/findx/internal/engine"
	"github.com/phyten/findx/internal/engine/opts"
	"github.com/phyten/findx/internal/highlight"
	"github.com/phyten/findx/internal/progress"
)

// SearchHandler runs one search under root per request and answers with the JSON
// result. The root is fixed by the server; queries cannot widen it.
func SearchHandler(root string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if !allowMethod(w, r) {
			return
		}
		o, err := searchOptions(root, r)
		if err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		res, err := engine.Run(r.Context(), o)
		if err != nil {
			http.Error(w, err.Error(), http.StatusInternalServerError)
			return
		}
		setSecurityHeaders(w.Header())
		w.Header().Set("Content-Type", "application/json; charset=utf-8")
		_ = encodeJSON(w, res)
	}
}

// StreamHandler is SearchHandler over Server-Sent Events: "progress" events while
// the search runs, then a single "result" or "error" event.
func StreamHandler(root string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if !allowMethod(w, r) {
			return
		}
		o, err := searchOptions(root, r)
		if err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		flusher, ok := w.(http.Flusher)
		if !ok {
			http.Error(w, "streaming unsupported", http.StatusInternalServerError)
			return
		}
		setSecurityHeaders(w.Header())
		w.Header().Set("Content-Type", "text/event-stream; charset=utf-8")
		w.Header().Set("Cache-Control", "no-cache")
		w.Header().Set("Connection", "keep-alive")
		w.WriteHeader(http.StatusOK)

		sse := &eventWriter{w: w, flusher: flusher}
		o.ProgressObserver = sse
		res, err := engine.Run(r.Context(), o)
		if err != nil {
			sse.send("error", err.Error())
			return
		}
		sse.send("result", res)
	}
}

func searchOptions(root string, r *http.Request) (engine.Options, error) {
	o, err := opts.ApplyWebQueryToOptions(opts.Defaults(root), r.URL.Query())
	if err != nil {
		return o, err
	}
	if strings.TrimSpace(o.Term) == "" {
		return o, fmt.Errorf("missing query parameter q")
	}
	if err := opts.NormalizeAndValidate(&o); err != nil {
		return o, err
	}
	o.Marker = highlight.Plain
	o.Progress = false
	return o, nil
}

func allowMethod(w http.ResponseWriter, r *http.Request) bool {
	if r.Method == http.MethodGet || r.Method == http.MethodHead {
		return true
	}
	w.Header().Set("Allow", "GET, HEAD")
	http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
	return false
}

// eventWriter publishes progress snapshots as SSE events. Workers publish
// concurrently, so writes are serialized.
type eventWriter struct {
	mu      sync.Mutex
	w       io.Writer
	flusher http.Flusher
}

func (e *eventWriter) Publish(s progress.Snapshot) { e.send("progress", s) }
func (e *eventWriter) Done(s progress.Snapshot)    { e.send("progress", s) }

func (e *eventWriter) send(event string, payload any) {
	e.mu.Lock()
	defer e.mu.Unlock()
	var data string
	if s, ok := payload.(string); ok {
		data = strings.ReplaceAll(s, "\n", " ")
	} else {
		var buf strings.Builder
		if err := encodeJSON(&buf, payload); err != nil {
			return
		}
		data = strings.TrimSuffix(buf.String(), "\n")
	}
	if _, err := fmt.Fprintf(e.w, "event: %s\ndata: %s\n\n", event, data); err != nil {
		return
	}
	e.flusher.Flush()
}

func encodeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetEscapeHTML(false)
	return enc.Encode(v)
}
