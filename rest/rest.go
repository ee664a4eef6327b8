// Package rest implements the REST listener referenced by spec.md §1/§5/§6,
// started by cmd/coredb's serve command (the www::serve platform call in
// platform/www is not wired to it): a narrow HTTP surface
// over namespace-resolved dataframes. It lives outside the evaluator
// because starting a listener needs a long-lived *http.Server, not an
// expression result, matching the machine package's special-case comment
// for www::serve (machine/machine.go).
package rest

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"

	"github.com/sirupsen/logrus"

	"github.com/solidcoredata/coredb/dataframe"
	"github.com/solidcoredata/coredb/namespace"
	"github.com/solidcoredata/coredb/rpc"
)

// Server exposes dataframes rooted at Home over HTTP.
type Server struct {
	Home     string
	Resolver *namespace.Resolver
}

// New builds a Server rooted at home, with its own namespace resolver
// (mirrors machine.NewEnv's construction of one resolver per home).
func New(home string) *Server {
	return &Server{Home: home, Resolver: namespace.NewResolver(home)}
}

// Handler returns the server's routes: a liveness probe backed by
// rpc.ConfigService's contract, and a read-only table projection.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/alive", s.handleAlive)
	mux.HandleFunc("/table/", s.handleTable)
	return mux
}

var _ rpc.ConfigService = (*aliveService)(nil)

// aliveService adapts Server to rpc.ConfigService so the HTTP handler and
// any future non-HTTP transport (e.g. an in-process RPC client) share one
// Alive implementation.
type aliveService struct{}

func (aliveService) Alive(ctx context.Context, req *rpc.AliveRequest) (*rpc.AliveResponse, error) {
	return &rpc.AliveResponse{}, nil
}

func (s *Server) handleAlive(w http.ResponseWriter, r *http.Request) {
	resp, err := aliveService{}.Alive(r.Context(), &rpc.AliveRequest{})
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(resp)
}

// handleTable serves GET /table/<db>.<schema>.<name> as a JSON array of
// row objects, using the same per-field projection tools::to_json uses
// (platform/tools/tools.go).
func (s *Server) handleTable(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}
	path := strings.TrimPrefix(r.URL.Path, "/table/")
	ns, err := namespace.Parse(path)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	handle, err := s.Resolver.Resolve(ns, func() (interface{}, error) {
		return dataframe.Open(s.Home, ns)
	})
	if err != nil {
		http.Error(w, err.Error(), http.StatusNotFound)
		return
	}
	df := handle.(*dataframe.Dataframe)
	rows, err := df.Rows()
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	columns := df.Columns()
	out := make([]map[string]json.RawMessage, len(rows))
	for i, row := range rows {
		obj := make(map[string]json.RawMessage, len(columns))
		for j, c := range columns {
			raw, err := row.Fields[j].ToJSON()
			if err != nil {
				http.Error(w, err.Error(), http.StatusInternalServerError)
				return
			}
			obj[c.Name] = raw
		}
		out[i] = obj
	}
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(out); err != nil {
		logrus.WithError(err).Warn("failed writing table response")
	}
}

// Serve runs the REST listener until ctx is cancelled, then shuts it down
// gracefully. Suitable to run as one of internal/start.RunAll's goroutines.
func Serve(ctx context.Context, addr, home string) error {
	srv := &http.Server{Addr: addr, Handler: New(home).Handler()}
	errCh := make(chan error, 1)
	go func() { errCh <- srv.ListenAndServe() }()
	select {
	case <-ctx.Done():
		logrus.WithField("addr", addr).Info("stopping REST listener")
		return srv.Shutdown(context.Background())
	case err := <-errCh:
		if err == http.ErrServerClosed {
			return nil
		}
		return err
	}
}
