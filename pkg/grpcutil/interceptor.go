package grpcutil

import (
	"context"
	"strings"

	"github.com/google/uuid"
	"google.golang.org/grpc"
	"google.golang.org/grpc/metadata"

	"blog-service/pkg/logger"
	"blog-service/pkg/reqctx"
)

// UnaryServerRequestIDInterceptor 从 metadata 读取请求 ID（缺失时生成），并写入 context。
func UnaryServerRequestIDInterceptor(ctx context.Context, req interface{}, info *grpc.UnaryServerInfo, handler grpc.UnaryHandler) (interface{}, error) {
	id := ""
	if md, ok := metadata.FromIncomingContext(ctx); ok {
		if vals := md.Get(strings.ToLower(reqctx.HeaderRequestID)); len(vals) > 0 {
			id = vals[0]
		}
	}
	if id == "" {
		id = uuid.NewString()
	}
	ctx = reqctx.WithRequestID(ctx, id)
	resp, err := handler(ctx, req)
	if err != nil {
		logger.WithContext(ctx).Warnf("grpc call failed method=%s error=%v", info.FullMethod, err)
	}
	return resp, err
}
