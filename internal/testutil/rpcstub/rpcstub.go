// Package rpcstub provides an in-process JSON-RPC server for tests. It lets
// blockchain-level tests run against a real ethclient connection without a
// node: register a result per RPC method and dial the server's URL.
package rpcstub

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync"
)

// Handler computes the JSON-RPC result for one method call.
type Handler func(params []json.RawMessage) (any, error)

// Server is a stub JSON-RPC endpoint. Unregistered methods respond with a
// method-not-found error, which surfaces through ethclient as a regular RPC
// error.
type Server struct {
	mu       sync.Mutex
	handlers map[string]Handler
	calls    map[string]int
	srv      *httptest.Server
}

// New starts a stub server. Callers must Close it.
func New() *Server {
	s := &Server{
		handlers: make(map[string]Handler),
		calls:    make(map[string]int),
	}
	s.srv = httptest.NewServer(http.HandlerFunc(s.serve))
	return s
}

// URL returns the endpoint to dial.
func (s *Server) URL() string { return s.srv.URL }

// Close shuts the server down.
func (s *Server) Close() { s.srv.Close() }

// Handle registers a dynamic handler for method.
func (s *Server) Handle(method string, h Handler) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.handlers[method] = h
}

// Result registers a static result for method.
func (s *Server) Result(method string, result any) {
	s.Handle(method, func([]json.RawMessage) (any, error) {
		return result, nil
	})
}

// Calls reports how many times method has been invoked.
func (s *Server) Calls(method string) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.calls[method]
}

type rpcRequest struct {
	ID     json.RawMessage   `json:"id"`
	Method string            `json:"method"`
	Params []json.RawMessage `json:"params"`
}

type rpcError struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

type rpcResponse struct {
	JSONRPC string          `json:"jsonrpc"`
	ID      json.RawMessage `json:"id"`
	Result  any             `json:"result,omitempty"`
	Error   *rpcError       `json:"error,omitempty"`
}

func (s *Server) serve(w http.ResponseWriter, r *http.Request) {
	var raw json.RawMessage
	if err := json.NewDecoder(r.Body).Decode(&raw); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	w.Header().Set("Content-Type", "application/json")

	// Batch requests arrive as a JSON array.
	if len(raw) > 0 && raw[0] == '[' {
		var reqs []rpcRequest
		if err := json.Unmarshal(raw, &reqs); err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		resps := make([]rpcResponse, len(reqs))
		for i, req := range reqs {
			resps[i] = s.dispatch(req)
		}
		_ = json.NewEncoder(w).Encode(resps)
		return
	}

	var req rpcRequest
	if err := json.Unmarshal(raw, &req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	_ = json.NewEncoder(w).Encode(s.dispatch(req))
}

func (s *Server) dispatch(req rpcRequest) rpcResponse {
	s.mu.Lock()
	s.calls[req.Method]++
	h, ok := s.handlers[req.Method]
	s.mu.Unlock()

	resp := rpcResponse{JSONRPC: "2.0", ID: req.ID}
	if !ok {
		resp.Error = &rpcError{Code: -32601, Message: "method not found: " + req.Method}
		return resp
	}
	result, err := h(req.Params)
	if err != nil {
		resp.Error = &rpcError{Code: -32000, Message: err.Error()}
		return resp
	}
	resp.Result = result
	return resp
}
