package middleware

import (
	"context"
	"time"

	"github.com/Abdurahmanit/GroupProject/storefront-service/internal/platform/logger"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"
	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/health/grpc_health_v1"
	"google.golang.org/grpc/status"
)

// LoggingInterceptor logs unary gRPC calls. Health probes are only logged
// when they fail.
func LoggingInterceptor(log *logger.Logger) grpc.UnaryServerInterceptor {
	return func(ctx context.Context, req interface{}, info *grpc.UnaryServerInfo, handler grpc.UnaryHandler) (interface{}, error) {
		start := time.Now()
		resp, err := handler(ctx, req)

		code := status.Code(err)
		if code == codes.OK && info.FullMethod == grpc_health_v1.Health_Check_FullMethodName {
			return resp, err
		}

		sc := trace.SpanFromContext(ctx).SpanContext()
		fields := []zap.Field{
			zap.String("method", info.FullMethod),
			zap.Duration("duration", time.Since(start)),
			zap.String("code", code.String()),
			zap.String("trace_id", sc.TraceID().String()),
			zap.String("span_id", sc.SpanID().String()),
		}
		switch code {
		case codes.OK:
			log.Debug("gRPC call completed", fields...)
		case codes.Internal, codes.Unknown, codes.DataLoss, codes.Unavailable:
			log.Error("gRPC call failed", append(fields, zap.Error(err))...)
		default:
			log.Warn("gRPC call rejected", append(fields, zap.Error(err))...)
		}
		return resp, err
	}
}
