package logger

import (
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"gopkg.in/natefinch/lumberjack.v2"
)

// Sink writes diagnostic dump lines through a zap logger, one entry per line.
type Sink struct {
	log   *zap.Logger
	level zapcore.Level
}

// NewSink returns a sink writing to log at the given level name.
// A nil log writes to the global logger.
func NewSink(log *zap.Logger, level string) *Sink {
	if log == nil {
		log = Log
	}
	return &Sink{log: log.WithOptions(zap.WithCaller(false)), level: parseLevel(level)}
}

// LogMessage writes msg if the sink's level is enabled.
func (s *Sink) LogMessage(msg string) {
	if ce := s.log.Check(s.level, msg); ce != nil {
		ce.Write()
	}
}

// FileSink is a Sink backed by its own rotated file. Lines are written
// without time or level so the file reads as a plain dump.
type FileSink struct {
	Sink
	writer *lumberjack.Logger
}

// NewFileSink opens a dump file with the rotation settings of cfg.
func NewFileSink(cfg FileConfig) *FileSink {
	writer := newRotatingWriter(cfg)
	encoder := zapcore.NewConsoleEncoder(zapcore.EncoderConfig{
		MessageKey: "msg",
		LineEnding: zapcore.DefaultLineEnding,
	})
	core := zapcore.NewCore(encoder, zapcore.AddSync(writer), zapcore.DebugLevel)
	return &FileSink{
		Sink:   Sink{log: zap.New(core), level: zapcore.InfoLevel},
		writer: writer,
	}
}

// Close flushes and closes the dump file.
func (s *FileSink) Close() error {
	_ = s.log.Sync()
	return s.writer.Close()
}
