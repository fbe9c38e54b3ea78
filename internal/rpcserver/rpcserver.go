// Package rpcserver runs pyrrust as a long-lived daemon exposing gRPC
// health checking, so an IDE or build system can supervise a `pyrrust
// serve` process the way it would any other long-running compiler backend.
// Its only gRPC surface is the pre-generated health service shipped inside
// `google.golang.org/grpc/health`, consumed without hand-authoring any
// `.proto`.
package rpcserver

import (
	"context"
	"fmt"
	"net"

	"google.golang.org/grpc"
	"google.golang.org/grpc/health"
	healthpb "google.golang.org/grpc/health/grpc_health_v1"

	"github.com/funvibe/pyrrust/internal/cache"
)

// Server is a daemon process that exposes gRPC health checking to its
// supervisor. It translates no files itself; it holds the translation
// cache only to close it on shutdown.
type Server struct {
	grpcServer *grpc.Server
	health     *health.Server
	cache      *cache.Cache
}

// New builds a Server backed by the given translation cache. cache may be
// nil when the daemon runs without persistence.
func New(c *cache.Cache) *Server {
	grpcServer := grpc.NewServer()
	healthServer := health.NewServer()
	healthpb.RegisterHealthServer(grpcServer, healthServer)

	healthServer.SetServingStatus("pyrrust", healthpb.HealthCheckResponse_SERVING)

	return &Server{grpcServer: grpcServer, health: healthServer, cache: c}
}

// Serve listens on addr and blocks until ctx is cancelled, at which point
// it marks the health service NOT_SERVING and stops the gRPC server.
func (s *Server) Serve(ctx context.Context, addr string) error {
	lis, err := net.Listen("tcp", addr)
	if err != nil {
		return fmt.Errorf("rpcserver: listen on %q: %w", addr, err)
	}

	errc := make(chan error, 1)
	go func() { errc <- s.grpcServer.Serve(lis) }()

	select {
	case err := <-errc:
		return err
	case <-ctx.Done():
		s.health.SetServingStatus("pyrrust", healthpb.HealthCheckResponse_NOT_SERVING)
		s.grpcServer.GracefulStop()
		if s.cache != nil {
			s.cache.Close()
		}
		return nil
	}
}
