package grpc

import (
	"context"
	"time"

	"google.golang.org/grpc/health"
	healthpb "google.golang.org/grpc/health/grpc_health_v1"

	"blog-service/pkg/logger"
)

// ServiceName is the gRPC health service name reported for the blog service.
const ServiceName = "blog.v1.BlogService"

// Pinger reports whether a backing dependency is reachable.
type Pinger func(ctx context.Context) error

// HealthServer wraps the standard health service and keeps its status in
// sync with database reachability.
type HealthServer struct {
	*health.Server
	ping     Pinger
	interval time.Duration
}

// NewHealthServer creates a health server. Call Watch to start probing.
func NewHealthServer(ping Pinger, interval time.Duration) *HealthServer {
	if interval <= 0 {
		interval = 10 * time.Second
	}
	return &HealthServer{Server: health.NewServer(), ping: ping, interval: interval}
}

// Refresh probes once and updates both the overall and the named service status.
func (s *HealthServer) Refresh(ctx context.Context) healthpb.HealthCheckResponse_ServingStatus {
	status := healthpb.HealthCheckResponse_SERVING
	if s.ping != nil {
		if err := s.ping(ctx); err != nil {
			logger.WithContext(ctx).Warnf("health: database unreachable error=%v", err)
			status = healthpb.HealthCheckResponse_NOT_SERVING
		}
	}
	s.SetServingStatus("", status)
	s.SetServingStatus(ServiceName, status)
	return status
}

// Watch probes until ctx is done, then marks the service as not serving.
func (s *HealthServer) Watch(ctx context.Context) {
	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	s.probe(ctx)
	for {
		select {
		case <-ctx.Done():
			s.Shutdown()
			return
		case <-ticker.C:
			s.probe(ctx)
		}
	}
}

func (s *HealthServer) probe(ctx context.Context) {
	probeCtx, cancel := context.WithTimeout(ctx, s.interval/2)
	defer cancel()
	s.Refresh(probeCtx)
}
