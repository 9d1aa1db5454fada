package logger

import (
	"os"
	"time"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"gopkg.in/natefinch/lumberjack.v2"
)

// Log discards everything until InitLogger runs.
var Log = zap.NewNop()

const (
	fileBufferSize    = 256 << 10
	fileFlushInterval = 5 * time.Second
)

// Config is the log section of the workshop config file. Rotation settings
// only apply when Filename is set.
type Config struct {
	Level      string `mapstructure:"level"`
	Filename   string `mapstructure:"filename"`
	MaxSize    int    `mapstructure:"max_size"`
	MaxBackups int    `mapstructure:"max_backups"`
	MaxAge     int    `mapstructure:"max_age"`
	Compress   bool   `mapstructure:"compress"`
}

// InitLogger replaces Log and the zap globals. Entries always go to stdout as
// JSON; with a Filename they are also appended to a rotated file.
func InitLogger(cfg *Config) error {
	level := new(zapcore.Level)
	if err := level.UnmarshalText([]byte(cfg.Level)); err != nil {
		return err
	}

	Log = zap.New(zapcore.NewCore(jsonEncoder(), outputs(cfg), level), zap.AddCaller())
	zap.ReplaceGlobals(Log)
	return nil
}

// Named scopes the global logger to one component, e.g. "executor".
func Named(component string) *zap.Logger {
	return Log.Named(component)
}

func jsonEncoder() zapcore.Encoder {
	ec := zap.NewProductionEncoderConfig()
	ec.EncodeTime = zapcore.ISO8601TimeEncoder
	ec.EncodeLevel = zapcore.CapitalLevelEncoder
	return zapcore.NewJSONEncoder(ec)
}

func outputs(cfg *Config) zapcore.WriteSyncer {
	stdout := zapcore.AddSync(os.Stdout)
	if cfg.Filename == "" {
		return stdout
	}

	file := &zapcore.BufferedWriteSyncer{
		WS: zapcore.AddSync(&lumberjack.Logger{
			Filename:   cfg.Filename,
			MaxSize:    cfg.MaxSize,
			MaxBackups: cfg.MaxBackups,
			MaxAge:     cfg.MaxAge,
			Compress:   cfg.Compress,
		}),
		Size:          fileBufferSize,
		FlushInterval: fileFlushInterval,
	}
	return zapcore.NewMultiWriteSyncer(stdout, file)
}

// Sync flushes the file buffer. Call it before the process exits.
func Sync() {
	_ = Log.Sync()
}
