package logger

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

// GormLogger 将 gorm 的日志转发到 logrus。
type GormLogger struct {
	level         gormlogger.LogLevel
	slowThreshold time.Duration
}

// NewGormLogger 根据配置的级别名创建 gorm 日志适配器。
func NewGormLogger(level string) *GormLogger {
	return &GormLogger{level: parseGormLevel(level), slowThreshold: time.Second}
}

func parseGormLevel(level string) gormlogger.LogLevel {
	switch level {
	case "silent":
		return gormlogger.Silent
	case "error":
		return gormlogger.Error
	case "info":
		return gormlogger.Info
	default:
		return gormlogger.Warn
	}
}

func (g *GormLogger) LogMode(level gormlogger.LogLevel) gormlogger.Interface {
	cp := *g
	cp.level = level
	return &cp
}

func (g *GormLogger) Info(ctx context.Context, msg string, args ...interface{}) {
	if g.level >= gormlogger.Info {
		WithContext(ctx).Infof(msg, args...)
	}
}

func (g *GormLogger) Warn(ctx context.Context, msg string, args ...interface{}) {
	if g.level >= gormlogger.Warn {
		WithContext(ctx).Warnf(msg, args...)
	}
}

func (g *GormLogger) Error(ctx context.Context, msg string, args ...interface{}) {
	if g.level >= gormlogger.Error {
		WithContext(ctx).Errorf(msg, args...)
	}
}

func (g *GormLogger) Trace(ctx context.Context, begin time.Time, fc func() (string, int64), err error) {
	if g.level <= gormlogger.Silent {
		return
	}
	elapsed := time.Since(begin)
	switch {
	case err != nil && g.level >= gormlogger.Error && !errors.Is(err, gorm.ErrRecordNotFound):
		sql, rows := fc()
		WithContext(ctx).WithField("elapsed", elapsed).Errorf("gorm: %v sql=%s rows=%d", err, sql, rows)
	case elapsed > g.slowThreshold && g.level >= gormlogger.Warn:
		sql, rows := fc()
		WithContext(ctx).WithField("elapsed", elapsed).Warnf("gorm: slow query sql=%s rows=%d", sql, rows)
	case g.level >= gormlogger.Info:
		sql, rows := fc()
		WithContext(ctx).WithField("elapsed", elapsed).Debugf("gorm: sql=%s rows=%d", sql, rows)
	}
}
