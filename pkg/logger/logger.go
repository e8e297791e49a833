package logger

import (
	"context"
	"io"
	"os"
	"strings"
	"sync"

	"github.com/sirupsen/logrus"
	"gopkg.in/natefinch/lumberjack.v2"

	"blog-service/pkg/config"
	"blog-service/pkg/reqctx"
)

// Logger 包装 logrus，并持有需要在退出时关闭的输出。
type Logger struct {
	*logrus.Logger
	closer io.Closer
}

var (
	globalMu     sync.RWMutex
	globalLogger = &Logger{Logger: logrus.StandardLogger()}
)

// NewLogger 根据配置创建日志实例。
func NewLogger(cfg *config.Config) *Logger {
	l := logrus.New()

	level, err := logrus.ParseLevel(cfg.Log.Level)
	if err != nil {
		level = logrus.InfoLevel
	}
	l.SetLevel(level)

	if strings.EqualFold(cfg.Log.Format, "json") {
		l.SetFormatter(&logrus.JSONFormatter{TimestampFormat: "2006-01-02 15:04:05.000"})
	} else {
		l.SetFormatter(&logrus.TextFormatter{FullTimestamp: true, TimestampFormat: "2006-01-02 15:04:05.000"})
	}

	out := &Logger{Logger: l}
	var rotating *lumberjack.Logger
	if cfg.Log.Output == "file" || cfg.Log.Output == "both" {
		filename := cfg.Log.Filename
		if filename == "" {
			filename = "logs/blog-service.log"
		}
		rotating = &lumberjack.Logger{
			Filename:   filename,
			MaxSize:    cfg.Log.MaxSize,
			MaxAge:     cfg.Log.MaxAge,
			MaxBackups: cfg.Log.MaxBackups,
			Compress:   cfg.Log.Compress,
		}
		out.closer = rotating
	}
	switch {
	case rotating != nil && cfg.Log.Output == "both":
		l.SetOutput(io.MultiWriter(os.Stdout, rotating))
	case rotating != nil:
		l.SetOutput(rotating)
	default:
		l.SetOutput(os.Stdout)
	}
	return out
}

// Close 关闭文件输出。
func (l *Logger) Close() {
	if l == nil || l.closer == nil {
		return
	}
	_ = l.closer.Close()
}

// SetGlobalLogger 设置全局日志实例。
func SetGlobalLogger(l *Logger) {
	if l == nil {
		return
	}
	globalMu.Lock()
	defer globalMu.Unlock()
	globalLogger = l
}

// L 返回全局日志实例。
func L() *Logger {
	globalMu.RLock()
	defer globalMu.RUnlock()
	return globalLogger
}

// WithContext 返回带有请求 ID 的日志条目。
func WithContext(ctx context.Context) *logrus.Entry {
	entry := logrus.NewEntry(L().Logger)
	if id := reqctx.RequestID(ctx); id != "" {
		entry = entry.WithField("request_id", id)
	}
	return entry
}

func Debugf(format string, args ...interface{}) { L().Debugf(format, args...) }
func Infof(format string, args ...interface{})  { L().Infof(format, args...) }
func Warnf(format string, args ...interface{})  { L().Warnf(format, args...) }
func Errorf(format string, args ...interface{}) { L().Errorf(format, args...) }

// Fatal 记录日志后退出进程。
func Fatal(msg string) { L().Fatal(msg) }
