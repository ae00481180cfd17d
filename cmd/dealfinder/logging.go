package main

import (
	"io"
	"os"
	"path/filepath"

	"github.com/Spoonthedogl/vinted-deal-finger/internal/config"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"golang.org/x/term"
	"gopkg.in/natefinch/lumberjack.v2"
)

// setupLogging logs everything at the configured level to a rotated file and
// only warnings and errors to stderr, so log lines don't bury command output.
func setupLogging(cfg *config.Config) io.Closer {
	zerolog.TimeFieldFormat = zerolog.TimeFormatUnix

	level, err := zerolog.ParseLevel(cfg.LogLevel)
	if err != nil || level == zerolog.NoLevel {
		level = zerolog.InfoLevel
	}
	zerolog.SetGlobalLevel(level)

	logPath := cfg.LogFile
	if !filepath.IsAbs(logPath) {
		logPath = filepath.Join(config.Dir(), logPath)
	}
	logFile := &lumberjack.Logger{
		Filename:   logPath,
		MaxSize:    5, // megabytes
		MaxBackups: 3,
		MaxAge:     28, // days
	}

	consoleWriter := zerolog.ConsoleWriter{
		Out:     os.Stderr,
		NoColor: !term.IsTerminal(int(os.Stderr.Fd())),
	}
	fileWriter := zerolog.ConsoleWriter{Out: logFile, NoColor: true}

	log.Logger = log.Output(zerolog.MultiLevelWriter(
		&zerolog.FilteredLevelWriter{
			Writer: zerolog.LevelWriterAdapter{Writer: consoleWriter},
			Level:  zerolog.WarnLevel,
		},
		fileWriter,
	))

	log.Debug().Str("logFile", logPath).Str("level", level.String()).Msg("logging to file")
	return logFile
}
