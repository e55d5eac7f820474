// Copyright (c) 2026 H0llyW00dzZ All rights reserved.
//
// By accessing or using this software, you agree to be bound by the terms
// of the License Agreement, which you can find at LICENSE files.

package server

import (
	"context"
	"crypto/tls"
	"errors"
	"fmt"
	"net"
	"net/http"
	"sync"
	"time"

	"github.com/H0llyW00dzZ/jssl-server/src/internal/negotiate"
	"github.com/H0llyW00dzZ/jssl-server/src/internal/tlsctx"
	"github.com/H0llyW00dzZ/jssl-server/src/logger"
	"github.com/H0llyW00dzZ/jssl-server/src/version"
)

// DefaultAddr is used when the builder is given no address.
const DefaultAddr = ":9999"

// readHeaderTimeout bounds slow clients after the handshake.
const readHeaderTimeout = 10 * time.Second

var (
	// ErrBind indicates that the listening socket could not be opened.
	ErrBind = errors.New("server: cannot bind")

	// ErrAlreadyStarted indicates a second call to Start.
	ErrAlreadyStarted = errors.New("server: already started")

	// ErrNoContext indicates a Build without TLS server state.
	ErrNoContext = errors.New("server: TLS context is required")
)

// State is a position in the server lifecycle.
type State int

const (
	StateCreated State = iota
	StateStarting
	StateRunning
	StateStopping
	StateStopped
)

// String returns the state name.
func (s State) String() string {
	switch s {
	case StateCreated:
		return "created"
	case StateStarting:
		return "starting"
	case StateRunning:
		return "running"
	case StateStopping:
		return "stopping"
	case StateStopped:
		return "stopped"
	default:
		return fmt.Sprintf("State(%d)", int(s))
	}
}

// Dependencies holds everything a Server is built from.
//
// This struct is used internally by Builder and should not be instantiated directly.
type Dependencies struct {
	Addr    string
	Context *tlsctx.Context
	Policy  negotiate.Policy
	Handler http.Handler
	Logger  logger.Logger
}

// Builder constructs a Server using a fluent interface.
type Builder struct{ deps Dependencies }

// NewBuilder creates a Builder with no dependencies configured.
func NewBuilder() *Builder { return &Builder{} }

// WithAddr sets the listen address in host:port form.
// An empty host listens on all interfaces; port 0 picks a free port.
func (b *Builder) WithAddr(addr string) *Builder {
	b.deps.Addr = addr
	return b
}

// WithContext sets the TLS server state. It is required.
func (b *Builder) WithContext(ctx *tlsctx.Context) *Builder {
	b.deps.Context = ctx
	return b
}

// WithPolicy sets the per-connection negotiation policy.
//
// Parameters:
//   - policy: Strategy choosing the protocol version of each handshake
//
// Returns:
//   - The Builder instance for method chaining
//
// Without a policy the server uses [negotiate.AllowListPolicy] over the TLS
// context given to WithContext.
func (b *Builder) WithPolicy(policy negotiate.Policy) *Builder {
	b.deps.Policy = policy
	return b
}

// WithHandler replaces the response handler. Without one the server answers
// with [ResponseHandler] for the running application version.
func (b *Builder) WithHandler(h http.Handler) *Builder {
	b.deps.Handler = h
	return b
}

// WithLogger sets the destination of connection and lifecycle events.
func (b *Builder) WithLogger(l logger.Logger) *Builder {
	b.deps.Logger = l
	return b
}

// Build creates the Server. No socket is opened until Start.
//
// Returns:
//   - A Server in StateCreated
//   - ErrNoContext when WithContext was not called
func (b *Builder) Build() (*Server, error) {
	d := b.deps
	if d.Context == nil {
		return nil, ErrNoContext
	}
	if d.Addr == "" {
		d.Addr = DefaultAddr
	}
	if d.Logger == nil {
		d.Logger = logger.Discard()
	}
	if d.Policy == nil {
		d.Policy = negotiate.AllowListPolicy{Context: d.Context}
	}
	if d.Handler == nil {
		d.Handler = NewResponseHandler(version.AppName, version.Version, d.Logger)
	}

	return &Server{
		deps: d,
		http: &http.Server{
			Handler:           d.Handler,
			ErrorLog:          logger.StdLog(d.Logger),
			ReadHeaderTimeout: readHeaderTimeout,
		},
		done: make(chan struct{}),
	}, nil
}

// Server is the diagnostic HTTPS endpoint.
//
// All methods are safe for concurrent use.
type Server struct {
	deps Dependencies
	http *http.Server

	mu       sync.Mutex
	state    State
	ln       net.Listener
	serveErr error

	done     chan struct{}
	doneOnce sync.Once
}

// Start binds the listening socket and begins accepting connections on a
// separate goroutine.
//
// Parameters:
//   - ctx: Bounds the bind only; cancel it later to have Run stop the server
//
// Returns:
//   - nil once the server is Running
//   - ErrBind wrapping the network error when the address is unavailable;
//     the server is then Stopped and holds no resources
//   - ErrAlreadyStarted when Start was called before
func (s *Server) Start(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.state != StateCreated {
		return ErrAlreadyStarted
	}
	s.state = StateStarting

	var lc net.ListenConfig
	ln, err := lc.Listen(ctx, "tcp", s.deps.Addr)
	if err != nil {
		s.state = StateStopped
		s.closeDone()
		return fmt.Errorf("%w %s: %w", ErrBind, s.deps.Addr, err)
	}

	cfg := s.deps.Context.Base()
	cfg.GetConfigForClient = negotiate.Hook(s.deps.Context, s.deps.Policy, s.deps.Logger)

	s.ln = ln
	s.state = StateRunning

	s.deps.Logger.Printf("Listening on %s", ln.Addr())
	s.deps.Logger.Printf("Enabled protocols: %s", s.deps.Context.Protocols())

	go s.serve(tls.NewListener(ln, cfg))
	return nil
}

func (s *Server) serve(ln net.Listener) {
	err := s.http.Serve(ln)
	if err != nil && !errors.Is(err, http.ErrServerClosed) {
		s.mu.Lock()
		s.serveErr = err
		s.mu.Unlock()
		s.deps.Logger.Printf("Accept loop failed: %v", err)
	}
	s.closeDone()
}

// Stop closes the listener and waits up to grace for in-flight exchanges,
// then closes whatever connections remain.
//
// Only the first call does any work; later calls return nil immediately. A
// server that was never started moves straight to StateStopped.
func (s *Server) Stop(grace time.Duration) error {
	s.mu.Lock()
	switch s.state {
	case StateStopping, StateStopped:
		s.mu.Unlock()
		return nil
	case StateCreated:
		s.state = StateStopped
		s.mu.Unlock()
		s.closeDone()
		return nil
	}
	s.state = StateStopping
	s.mu.Unlock()

	ctx, cancel := context.WithTimeout(context.Background(), grace)
	defer cancel()

	var err error
	if shutdownErr := s.http.Shutdown(ctx); shutdownErr != nil {
		s.deps.Logger.Printf("Grace period of %s elapsed, closing remaining connections", grace)
		err = s.http.Close()
	}
	<-s.done

	s.mu.Lock()
	s.state = StateStopped
	s.mu.Unlock()

	s.deps.Logger.Println("Server stopped")
	return err
}

// Run starts the server, blocks until ctx is done or the accept loop fails,
// and stops it with the given grace period.
//
// Returns:
//   - The Start error, if any
//   - The accept loop failure, if that ended the run
//   - Otherwise the Stop result, nil on a clean shutdown
func (s *Server) Run(ctx context.Context, grace time.Duration) error {
	if err := s.Start(ctx); err != nil {
		return err
	}

	select {
	case <-ctx.Done():
		s.deps.Logger.Println("Shutting down")
	case <-s.done:
	}

	stopErr := s.Stop(grace)
	if err := s.Err(); err != nil {
		return err
	}
	return stopErr
}

// Addr returns the bound address, or nil before a successful Start.
func (s *Server) Addr() net.Addr {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.ln == nil {
		return nil
	}
	return s.ln.Addr()
}

// State returns the current lifecycle state.
func (s *Server) State() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

// Done is closed once the server has stopped accepting connections, whether
// through Stop, a bind failure or an accept loop failure.
func (s *Server) Done() <-chan struct{} { return s.done }

// Err returns the accept loop failure, if any.
func (s *Server) Err() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.serveErr
}

func (s *Server) closeDone() {
	s.doneOnce.Do(func() { close(s.done) })
}
