package interceptors

import (
	"context"
	"time"

	"google.golang.org/grpc"
	"google.golang.org/grpc/metadata"
	"google.golang.org/grpc/status"

	"docsense/internal/logging"
	"docsense/pkg/utils"
)

// requestID reuses the caller's x-request-id metadata when present
func requestID(ctx context.Context) string {
	if md, ok := metadata.FromIncomingContext(ctx); ok {
		if ids := md.Get("x-request-id"); len(ids) > 0 && ids[0] != "" {
			return ids[0]
		}
	}
	return utils.GenerateRequestID()
}

func logCompletion(logger logging.Logger, kind, method, id string, start time.Time, err error) {
	fields := map[string]interface{}{
		"request_id": id,
		"method":     method,
		"elapsed_ms": time.Since(start).Milliseconds(),
		"code":       status.Code(err).String(),
	}
	if err != nil {
		fields["error"] = err.Error()
		logger.Error("grpc."+kind+".failed", fields)
		return
	}
	logger.Debug("grpc."+kind+".ok", fields)
}

// LoggingInterceptor logs every unary call once it completes
func LoggingInterceptor(logger logging.Logger) grpc.UnaryServerInterceptor {
	return func(
		ctx context.Context,
		req interface{},
		info *grpc.UnaryServerInfo,
		handler grpc.UnaryHandler,
	) (interface{}, error) {
		start := time.Now()
		id := requestID(ctx)
		resp, err := handler(ctx, req)
		logCompletion(logger, "unary", info.FullMethod, id, start, err)
		return resp, err
	}
}

// StreamLoggingInterceptor logs every stream once it ends
func StreamLoggingInterceptor(logger logging.Logger) grpc.StreamServerInterceptor {
	return func(
		srv interface{},
		ss grpc.ServerStream,
		info *grpc.StreamServerInfo,
		handler grpc.StreamHandler,
	) error {
		start := time.Now()
		id := requestID(ss.Context())
		err := handler(srv, ss)
		logCompletion(logger, "stream", info.FullMethod, id, start, err)
		return err
	}
}
