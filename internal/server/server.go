// Package server exposes expression evaluation over HTTP and WebSocket.
//
// POST /v1/eval evaluates a single expression. GET /v1/session upgrades to a
// WebSocket carrying a calculator session: each successful evaluation becomes
// the session's current value, so % and x chain like a desk calculator.
package server

import (
	"bufio"
	"encoding/json"
	"errors"
	"math"
	"net"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"sync"
	"syscall"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"github.com/rs/zerolog"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"github.com/gnomonic/reckon"
)

// Server is the reckon evaluation service.
type Server struct {
	addr     string
	mux      *http.ServeMux
	logger   zerolog.Logger
	upgrader websocket.Upgrader
	degrees  bool // angle mode for requests that do not pick one

	mu       sync.Mutex
	sessions int // open WebSocket sessions
}

// NewServer creates a server with all routes registered. degrees picks the
// default angle mode; individual requests and sessions may override it.
func NewServer(addr string, degrees bool, logger zerolog.Logger) *Server {
	s := &Server{
		addr:    addr,
		mux:     http.NewServeMux(),
		logger:  logger,
		degrees: degrees,
		upgrader: websocket.Upgrader{
			CheckOrigin: func(r *http.Request) bool { return true },
		},
	}
	s.registerRoutes()
	return s
}

func (s *Server) registerRoutes() {
	s.mux.HandleFunc("GET /health", s.handleHealth)
	s.mux.HandleFunc("POST /v1/eval", s.handleEval)
	s.mux.HandleFunc("GET /v1/session", s.handleSession)
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok", "service": "reckon"})
}

// evalRequest is the body of POST /v1/eval. Radians and Current distinguish
// absent from zero, so a request can leave either at the server default.
type evalRequest struct {
	Expression string   `json:"expression"`
	Radians    *bool    `json:"radians,omitempty"`
	Current    *float64 `json:"current,omitempty"`
}

// evalResponse reports a successful evaluation. Expression is the normalized
// input, the string any error spans would index into. Current is only set on
// session replies, where the value just became the session's current value.
type evalResponse struct {
	Value      jsonFloat  `json:"value"`
	Expression string     `json:"expression"`
	Current    *jsonFloat `json:"current,omitempty"`
}

// errorDTO is the wire form of a ParseError or EvalError. Position and
// Length index the normalized expression; Position is -1 when no single
// input run is responsible.
type errorDTO struct {
	Type       string `json:"type"` // "parse" or "eval"
	Kind       string `json:"kind"`
	Message    string `json:"message"`
	Expression string `json:"expression"`
	Position   int    `json:"position"`
	Length     int    `json:"length"`
}

type errorResponse struct {
	Error   errorDTO `json:"error"`
	Session string   `json:"session,omitempty"`
}

func (s *Server) handleEval(w http.ResponseWriter, r *http.Request) {
	var req evalRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "malformed request body"})
		return
	}

	_, span := otel.Tracer("reckon").Start(r.Context(), "eval",
		trace.WithAttributes(attribute.Int("expression.length", len(req.Expression))))
	defer span.End()

	v, err := reckon.Eval(req.Expression, s.evalOpts(req.Radians, req.Current)...)
	if err != nil {
		status, body := errorBody(err, "")
		writeJSON(w, status, body)
		return
	}

	writeJSON(w, http.StatusOK, evalResponse{
		Value:      jsonFloat(v),
		Expression: reckon.Normalize(req.Expression),
	})
}

// evalOpts translates request fields into evaluation options, falling back
// to the server's angle mode when the request does not pick one.
func (s *Server) evalOpts(radians *bool, current *float64) []reckon.Option {
	useRadians := !s.degrees
	if radians != nil {
		useRadians = *radians
	}
	opts := make([]reckon.Option, 0, 2)
	if useRadians {
		opts = append(opts, reckon.Radians())
	} else {
		opts = append(opts, reckon.Degrees())
	}
	if current != nil {
		opts = append(opts, reckon.Current(*current))
	}
	return opts
}

// errorBody maps an Eval error to a status code and response body. Parse
// errors are the client's syntax (400); eval errors are well-formed input
// that cannot be computed (422).
func errorBody(err error, session string) (int, errorResponse) {
	var parseErr *reckon.ParseError
	if errors.As(err, &parseErr) {
		return http.StatusBadRequest, errorResponse{Session: session, Error: errorDTO{
			Type:       "parse",
			Kind:       parseErr.Kind.String(),
			Message:    parseErr.Error(),
			Expression: parseErr.Expr,
			Position:   parseErr.Pos,
			Length:     parseErr.Len,
		}}
	}
	var evalErr *reckon.EvalError
	if errors.As(err, &evalErr) {
		return http.StatusUnprocessableEntity, errorResponse{Session: session, Error: errorDTO{
			Type:       "eval",
			Kind:       evalErr.Kind.String(),
			Message:    evalErr.Error(),
			Expression: evalErr.Expr,
			Position:   evalErr.Pos,
			Length:     evalErr.Len,
		}}
	}
	return http.StatusInternalServerError, errorResponse{Session: session, Error: errorDTO{
		Type:     "internal",
		Message:  err.Error(),
		Position: -1,
	}}
}

// sessionMessage is one client frame on a session socket. Expression is a
// pointer so that sending "" asks for an evaluation (and gets the empty
// error) while omitting the field makes a pure control message.
type sessionMessage struct {
	Expression *string `json:"expression,omitempty"`
	Radians    *bool   `json:"radians,omitempty"`
	Clear      bool    `json:"clear,omitempty"`
}

// sessionState is sent on connect and in reply to control messages.
// Current is null while the session has no current value.
type sessionState struct {
	Session string     `json:"session"`
	Radians bool       `json:"radians"`
	Current *jsonFloat `json:"current"`
}

// trackSession adjusts the open-session count and returns the new value.
func (s *Server) trackSession(delta int) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.sessions += delta
	return s.sessions
}

func (s *Server) handleSession(w http.ResponseWriter, r *http.Request) {
	conn, err := s.upgrader.Upgrade(w, r, nil)
	if err != nil {
		s.logger.Error().Err(err).Msg("websocket upgrade failed")
		return
	}
	defer func() { _ = conn.Close() }()

	id := uuid.New().String()
	radians := !s.degrees
	current := math.NaN()

	s.logger.Debug().Str("session", id).Str("remote", r.RemoteAddr).
		Int("active", s.trackSession(1)).Msg("session opened")
	defer func() {
		s.logger.Debug().Str("session", id).Int("active", s.trackSession(-1)).Msg("session closed")
	}()

	if err := conn.WriteJSON(sessionState{Session: id, Radians: radians, Current: optFloat(current)}); err != nil {
		return
	}

	for {
		_, data, err := conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				s.logger.Debug().Err(err).Str("session", id).Msg("session read error")
			}
			return
		}

		var msg sessionMessage
		if err := json.Unmarshal(data, &msg); err != nil {
			s.logger.Warn().Err(err).Str("session", id).Msg("invalid session message")
			_ = conn.WriteJSON(errorResponse{Session: id, Error: errorDTO{
				Type:     "request",
				Message:  "malformed message",
				Position: -1,
			}})
			continue
		}

		if msg.Radians != nil {
			radians = *msg.Radians
		}
		if msg.Clear {
			current = math.NaN()
		}
		if msg.Expression == nil {
			_ = conn.WriteJSON(sessionState{Session: id, Radians: radians, Current: optFloat(current)})
			continue
		}

		opts := make([]reckon.Option, 0, 2)
		if radians {
			opts = append(opts, reckon.Radians())
		} else {
			opts = append(opts, reckon.Degrees())
		}
		if !math.IsNaN(current) {
			opts = append(opts, reckon.Current(current))
		}

		v, err := reckon.Eval(*msg.Expression, opts...)
		if err != nil {
			_, body := errorBody(err, id)
			_ = conn.WriteJSON(body)
			continue
		}

		// The result is the next current value. A NaN result clears it,
		// matching Current's treatment of NaN as absent.
		current = v
		_ = conn.WriteJSON(evalResponse{
			Value:      jsonFloat(v),
			Expression: reckon.Normalize(*msg.Expression),
			Current:    optFloat(current),
		})
	}
}

// ListenAndServe starts the HTTP server with graceful shutdown.
func (s *Server) ListenAndServe() error {
	handler := otelhttp.NewHandler(s.loggingMiddleware(s.mux), "reckon")

	srv := &http.Server{
		Addr:         s.addr,
		Handler:      handler,
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 60 * time.Second,
		IdleTimeout:  120 * time.Second,
	}

	// Graceful shutdown on signal
	go func() {
		sigCh := make(chan os.Signal, 1)
		signal.Notify(sigCh, syscall.SIGTERM, syscall.SIGINT)
		sig := <-sigCh
		s.logger.Info().Str("signal", sig.String()).Msg("shutting down")
		srv.Close()
	}()

	// Resolve addr for log output
	host, port, _ := net.SplitHostPort(s.addr)
	if host == "" {
		host = "localhost"
	}

	// TLS support via environment variables
	certFile := os.Getenv("RECKON_TLS_CERT")
	keyFile := os.Getenv("RECKON_TLS_KEY")
	if certFile != "" && keyFile != "" {
		s.logger.Info().Msgf("reckon listening on https://%s:%s", host, port)
		return srv.ListenAndServeTLS(certFile, keyFile)
	}

	s.logger.Info().Msgf("reckon listening on http://%s:%s", host, port)
	return srv.ListenAndServe()
}

func (s *Server) loggingMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		rw := &responseWriter{ResponseWriter: w, status: 200}
		next.ServeHTTP(rw, r)
		s.logger.Debug().
			Str("method", r.Method).
			Str("path", r.URL.Path).
			Int("status", rw.status).
			Dur("dur", time.Since(start)).
			Msg("request")
	})
}

type responseWriter struct {
	http.ResponseWriter
	status int
}

func (rw *responseWriter) WriteHeader(code int) {
	rw.status = code
	rw.ResponseWriter.WriteHeader(code)
}

// Hijack exposes the underlying connection through the logging wrapper so
// the session route can upgrade to WebSocket.
func (rw *responseWriter) Hijack() (net.Conn, *bufio.ReadWriter, error) {
	hj, ok := rw.ResponseWriter.(http.Hijacker)
	if !ok {
		return nil, nil, errors.New("hijacking not supported")
	}
	return hj.Hijack()
}

// writeJSON marshals v as JSON and writes it to w.
func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

// jsonFloat marshals non-finite values as their FormatFloat strings ("NaN",
// "+Inf", "-Inf"), which encoding/json otherwise rejects. Overflowing
// exponents make such results reachable without an evaluation error.
type jsonFloat float64

func (f jsonFloat) MarshalJSON() ([]byte, error) {
	v := float64(f)
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return json.Marshal(strconv.FormatFloat(v, 'g', -1, 64))
	}
	return json.Marshal(v)
}

// optFloat is v as a nullable JSON field, with NaN (no current value) as nil.
func optFloat(v float64) *jsonFloat {
	if math.IsNaN(v) {
		return nil
	}
	f := jsonFloat(v)
	return &f
}
