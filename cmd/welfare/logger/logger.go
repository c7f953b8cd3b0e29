package logger

import (
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/rs/zerolog"
	"gopkg.in/natefinch/lumberjack.v2"
)

// Options controls where and how verbosely the application logs.
type Options struct {
	Level      string    // debug, info, warn, error
	FilePath   string    // Optional log file, rotated by size
	MaxSizeMB  int       // Max size in MB before rotation
	MaxBackups int       // Max number of old log files to retain
	Out        io.Writer // Console output, defaults to stdout
}

// New creates a console logger, teeing to a rotated file when FilePath is set.
// The returned closer releases the log file.
func New(opts Options) (zerolog.Logger, func() error, error) {
	out := opts.Out
	if out == nil {
		out = os.Stdout
	}
	consoleWriter := zerolog.NewConsoleWriter(func(w *zerolog.ConsoleWriter) {
		w.Out = out
	})

	var writer io.Writer = consoleWriter
	closer := func() error { return nil }

	if opts.FilePath != "" {
		if err := os.MkdirAll(filepath.Dir(opts.FilePath), os.ModePerm); err != nil {
			return zerolog.Nop(), nil, err
		}
		if opts.MaxSizeMB == 0 {
			opts.MaxSizeMB = 50
		}
		if opts.MaxBackups == 0 {
			opts.MaxBackups = 3
		}
		lj := &lumberjack.Logger{
			Filename:   opts.FilePath,
			MaxSize:    opts.MaxSizeMB,
			MaxBackups: opts.MaxBackups,
			LocalTime:  true,
		}
		writer = zerolog.MultiLevelWriter(consoleWriter, lj)
		closer = lj.Close
	}

	log := zerolog.New(writer).
		Level(ParseLevel(opts.Level)).
		With().
		Timestamp().
		Caller().
		Logger()

	return log, closer, nil
}

// ParseLevel maps a level name to a zerolog level, defaulting to info.
func ParseLevel(s string) zerolog.Level {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "debug":
		return zerolog.DebugLevel
	case "warn", "warning":
		return zerolog.WarnLevel
	case "error":
		return zerolog.ErrorLevel
	default:
		return zerolog.InfoLevel
	}
}
