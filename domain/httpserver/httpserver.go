/*
File    : gomixvm/domain/httpserver/httpserver.go
Author  : Akash Maji
Contact : akashmaji(@iisc.ac.in)
*/

// Package httpserver gives the parsed-but-inert `server { route ... }`
// block (spec.md §4.2/§4.3) a real backing collaborator. The compiler
// still lowers server/route to nothing; a go-mix program that wants an
// actual listener calls these natives directly, grounded on the teacher's
// std/http.go create_server/handle_server/start_server trio and
// main/main.go's net.Listen REPL-over-TCP mode.
package httpserver

import (
	"fmt"
	"net/http"
	"sync"

	"github.com/akashmaji946/gomixvm/internal/golog"
	"github.com/akashmaji946/gomixvm/value"
)

// Registry owns the route table and the one listener a go-mix program may
// start. Routes registered before __server_listen take effect; routes
// registered after are rejected, matching net/http's own "can't register
// after Serve" behavior for the mux it wraps.
type Registry struct {
	mu       sync.Mutex
	mux      *http.ServeMux
	started  bool
	listener func() error
}

// NewRegistry returns an empty route table bound to a fresh ServeMux.
func NewRegistry() *Registry {
	return &Registry{mux: http.NewServeMux()}
}

// Natives returns __server_route and __server_listen for registration.
func (r *Registry) Natives() map[string]value.NativeFn {
	return map[string]value.NativeFn{
		"__server_route":  r.route,
		"__server_listen": r.listen,
	}
}

// route(method, path, body) registers a handler that always answers with
// body (a string) for that method+path pair. Real first-class functions
// are a non-goal (spec.md Non-goals), so the handler argument is the
// literal response text rather than a callable — the closest faithful
// realization of `respond expr` inside a route body.
func (r *Registry) route(args []value.Value) (value.Value, error) {
	if len(args) != 3 {
		return value.Nil(), fmt.Errorf("__server_route expects 3 arguments (method, path, body)")
	}
	method := args[0].AsString()
	path := args[1].AsString()
	body := args[2].AsString()

	r.mu.Lock()
	defer r.mu.Unlock()
	if r.started {
		return value.Nil(), fmt.Errorf("__server_route: server already listening")
	}
	r.mux.HandleFunc(path, func(w http.ResponseWriter, req *http.Request) {
		if req.Method != method {
			http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
			return
		}
		w.Write([]byte(body))
	})
	return value.Nil(), nil
}

// listen(port) starts the listener on a background goroutine and returns
// immediately, generalizing the teacher's goroutine-per-connection pattern
// to a single goroutine-per-server. Errors surface later via the server
// log, not the native's return value, since ListenAndServe blocks for the
// process lifetime.
func (r *Registry) listen(args []value.Value) (value.Value, error) {
	if len(args) != 1 {
		return value.Nil(), fmt.Errorf("__server_listen expects 1 argument (port)")
	}
	port := args[0].AsInt()

	r.mu.Lock()
	if r.started {
		r.mu.Unlock()
		return value.Nil(), fmt.Errorf("__server_listen: already listening")
	}
	r.started = true
	mux := r.mux
	r.mu.Unlock()

	addr := fmt.Sprintf(":%d", port)
	go func() {
		if err := http.ListenAndServe(addr, mux); err != nil {
			golog.Errorf("httpserver: listener on %s stopped: %v", addr, err)
		}
	}()
	return value.Nil(), nil
}
