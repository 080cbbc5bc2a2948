package logger

import (
	"time"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// InitLogger 初始化全局日志，未初始化前使用zap默认的nop logger
func InitLogger(level, name, logPath string, maxAge, rotationTime time.Duration, rotationSize uint32, dsn string) {
	l, err := newZap(name, level, logPath, maxAge, rotationTime, rotationSize, dsn)
	if err != nil {
		panic(err)
	}
	zap.ReplaceGlobals(l)

	// 将标准库log重定向到zap
	if _, err := zap.RedirectStdLogAt(l, zapcore.ErrorLevel); err != nil {
		panic(err)
	}
}

func Debugf(template string, args ...interface{}) {
	zap.S().Debugf(template, args...)
}

func Infof(template string, args ...interface{}) {
	zap.S().Infof(template, args...)
}

func Warnf(template string, args ...interface{}) {
	zap.S().Warnf(template, args...)
}

func Warn(args ...interface{}) {
	zap.S().Warn(args...)
}

func Errorf(template string, args ...interface{}) {
	zap.S().Errorf(template, args...)
}

func Sync() {
	_ = zap.L().Sync()
}
