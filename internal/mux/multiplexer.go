package mux

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"sync"
	"time"

	"github.com/soheilhy/cmux"

	"docsense/internal/config"
	"docsense/internal/grpc/server"
	"docsense/internal/logging"
)

// Multiplexer serves gRPC and HTTP on one listener, routing by protocol
type Multiplexer struct {
	logger     logging.Logger
	grpcServer *server.Server
	httpServer *http.Server

	mux      cmux.CMux
	listener net.Listener

	ctx    context.Context
	cancel context.CancelFunc
	wg     sync.WaitGroup
}

// NewMultiplexer wraps httpHandler and grpcServer behind a single port
func NewMultiplexer(cfg *config.Config, grpcServer *server.Server, httpHandler http.Handler, logger logging.Logger) *Multiplexer {
	if logger == nil {
		logger = logging.GetGlobalLogger()
	}
	ctx, cancel := context.WithCancel(context.Background())

	return &Multiplexer{
		logger:     logger,
		grpcServer: grpcServer,
		ctx:        ctx,
		cancel:     cancel,
		httpServer: &http.Server{
			Handler:           httpHandler,
			ReadTimeout:       cfg.Server.ReadTimeout,
			WriteTimeout:      cfg.Server.WriteTimeout,
			ReadHeaderTimeout: 5 * time.Second,
			IdleTimeout:       cfg.Server.IdleTimeout,
		},
	}
}

// Start binds address and begins serving both protocols
func (m *Multiplexer) Start(address string) error {
	listener, err := net.Listen("tcp", address)
	if err != nil {
		return fmt.Errorf("failed to listen on %s: %w", address, err)
	}
	m.listener = listener
	m.mux = cmux.New(listener)

	// grpc-go clients wait for the server SETTINGS frame before sending
	// headers, so the matcher has to send it
	grpcListener := m.mux.MatchWithWriters(
		cmux.HTTP2MatchHeaderFieldSendSettings("content-type", "application/grpc"),
	)
	httpListener := m.mux.Match(cmux.HTTP1Fast())

	addr := listener.Addr().String()
	fields := map[string]interface{}{"address": addr}

	m.wg.Add(3)
	go func() {
		defer m.wg.Done()
		if err := m.grpcServer.Start(grpcListener); err != nil && !isClosed(err) {
			m.logger.Error("gRPC server failed", map[string]interface{}{"error": err.Error()})
		}
	}()
	go func() {
		defer m.wg.Done()
		m.logger.Info("Starting HTTP server", fields)
		if err := m.httpServer.Serve(httpListener); err != nil && err != http.ErrServerClosed && !isClosed(err) {
			m.logger.Error("HTTP server failed", map[string]interface{}{"error": err.Error()})
		}
	}()
	go func() {
		defer m.wg.Done()
		if err := m.mux.Serve(); err != nil && !isClosed(err) {
			m.logger.Error("Multiplexer failed", map[string]interface{}{"error": err.Error()})
		}
	}()

	m.logger.Info("Multiplexer started successfully", fields)
	return nil
}

func isClosed(err error) bool {
	return errors.Is(err, net.ErrClosed) || errors.Is(err, cmux.ErrListenerClosed)
}

// Stop drains HTTP, then gRPC, then closes the shared listener
func (m *Multiplexer) Stop(ctx context.Context) error {
	m.logger.Info("Stopping multiplexer...")
	m.cancel()

	var firstErr error
	if err := m.httpServer.Shutdown(ctx); err != nil {
		m.logger.Error("HTTP server shutdown failed", map[string]interface{}{"error": err.Error()})
		firstErr = err
	}
	m.grpcServer.Stop()
	if m.listener != nil {
		m.listener.Close()
	}

	done := make(chan struct{})
	go func() {
		m.wg.Wait()
		close(done)
	}()

	select {
	case <-done:
		m.logger.Info("Multiplexer stopped gracefully")
	case <-ctx.Done():
		m.logger.Warn("Multiplexer shutdown timed out")
		if firstErr == nil {
			firstErr = ctx.Err()
		}
	}
	return firstErr
}

// Wait blocks until every server goroutine has returned
func (m *Multiplexer) Wait() {
	m.wg.Wait()
}

// IsHealthy reports whether the multiplexer is still accepting connections
func (m *Multiplexer) IsHealthy() bool {
	return m.ctx.Err() == nil && m.listener != nil
}

// Address is the bound listener address, useful when started on port 0
func (m *Multiplexer) Address() string {
	if m.listener != nil {
		return m.listener.Addr().String()
	}
	return ""
}
