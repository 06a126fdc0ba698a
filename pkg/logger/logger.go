// Package logger provides zap logger construction
// Package logger 提供 zap 日志器构建
package logger

import (
	"os"
	"path/filepath"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Config logger configuration
// Config 日志配置
type Config struct {
	// Level log level, see zapcore.ParseLevel // 日志级别，参见 zapcore.ParseLevel
	Level string
	// File log file path, empty writes to stderr only // 日志文件路径，为空时仅输出到 stderr
	File string
	// Production enables JSON output // 是否启用 JSON 输出
	Production bool
}

// NewLogger creates a zap logger from config
// NewLogger 根据配置创建 zap 日志器
func NewLogger(c Config) (*zap.Logger, error) {
	level, err := zapcore.ParseLevel(c.Level)
	if err != nil {
		level = zapcore.WarnLevel
	}

	encoderConfig := zap.NewProductionEncoderConfig()
	encoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder

	var encoder zapcore.Encoder
	if c.Production {
		encoder = zapcore.NewJSONEncoder(encoderConfig)
	} else {
		encoderConfig.EncodeLevel = zapcore.CapitalColorLevelEncoder
		encoder = zapcore.NewConsoleEncoder(encoderConfig)
	}

	syncers := []zapcore.WriteSyncer{zapcore.AddSync(os.Stderr)}

	if c.File != "" {
		if err := os.MkdirAll(filepath.Dir(c.File), 0o755); err != nil {
			return nil, err
		}
		f, err := os.OpenFile(c.File, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
		if err != nil {
			return nil, err
		}
		syncers = append(syncers, zapcore.AddSync(f))
	}

	core := zapcore.NewCore(encoder, zapcore.NewMultiWriteSyncer(syncers...), level)
	return zap.New(core, zap.AddCaller()), nil
}
