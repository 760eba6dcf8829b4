package grpc

import (
	"github.com/Abdurahmanit/GroupProject/storefront-service/internal/middleware"
	"github.com/Abdurahmanit/GroupProject/storefront-service/internal/platform/logger"
	"google.golang.org/grpc"
	"google.golang.org/grpc/health"
	"google.golang.org/grpc/health/grpc_health_v1"
	"google.golang.org/grpc/reflection"
)

// Server is the operational gRPC endpoint: the standard health service and
// reflection. The storefront API itself is served over HTTP.
type Server struct {
	*grpc.Server
	Health *health.Server
}

// NewGRPCServer creates the server with tracing and logging installed.
func NewGRPCServer(appLogger *logger.Logger) *Server {
	server := grpc.NewServer(
		grpc.StatsHandler(middleware.GRPCStatsHandler()),
		grpc.ChainUnaryInterceptor(middleware.LoggingInterceptor(appLogger.Named("gRPC"))),
	)

	reflection.Register(server)

	healthServer := health.NewServer()
	grpc_health_v1.RegisterHealthServer(server, healthServer)
	// Serving status is set by the caller once dependencies are up.

	return &Server{Server: server, Health: healthServer}
}

// SetServing flips the overall and per-service health status.
func (s *Server) SetServing(serviceName string, serving bool) {
	st := grpc_health_v1.HealthCheckResponse_NOT_SERVING
	if serving {
		st = grpc_health_v1.HealthCheckResponse_SERVING
	}
	s.Health.SetServingStatus("", st)
	s.Health.SetServingStatus(serviceName, st)
}
