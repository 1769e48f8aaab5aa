package mockdesk

import (
	"context"
	"errors"
	"net"
	"net/http"

	"github.com/rs/zerolog"

	"github.com/agentstation/personsync/pkg/constants"
)

// Serve serves s on listener until ctx is cancelled, then shuts down
// gracefully within constants.ShutdownTimeout.
func (s *Server) Serve(ctx context.Context, listener net.Listener, logger *zerolog.Logger) error {
	server := &http.Server{
		Handler:           recovery(logger)(requestLogger(logger)(s.Handler())),
		ReadHeaderTimeout: constants.ReadHeaderTimeout,
	}

	serverErr := make(chan error, 1)
	go func() {
		logger.Info().Str("addr", listener.Addr().String()).Msg("Mock server starting")
		if err := server.Serve(listener); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErr <- err
		}
		close(serverErr)
	}()

	select {
	case err := <-serverErr:
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), constants.ShutdownTimeout)
		defer cancel()

		if err := server.Shutdown(shutdownCtx); err != nil {
			return err
		}
		logger.Info().Msg("Mock server stopped gracefully")
		return nil
	}
}

// ListenAndServe listens on addr and calls Serve.
func (s *Server) ListenAndServe(ctx context.Context, addr string, logger *zerolog.Logger) error {
	listener, err := net.Listen("tcp", addr)
	if err != nil {
		return err
	}
	return s.Serve(ctx, listener, logger)
}
