package server

import (
	"fmt"
	"io"

	"github.com/labstack/gommon/log"
	"github.com/rs/zerolog"
)

func newLogger(w io.Writer) *zerolog.Logger {
	loggerStruct := zerolog.New(
		zerolog.ConsoleWriter{
			Out:         w,
			TimeFormat:  "02 Jan 06 15:04:05 MST",
			FieldsOrder: []string{"status", "method", "uri", "error", "request_id", "latency", "size"},
		},
	).
		With().
		Timestamp().
		Logger()
	return &loggerStruct
}

// gommonLogger satisfies echo.Logger on top of zerolog.
type gommonLogger struct {
	logger *zerolog.Logger
	w      io.Writer
	level  log.Lvl
	prefix string
}

func newGommonLogger(logger *zerolog.Logger, loggerWriter io.Writer) *gommonLogger {
	return &gommonLogger{
		logger: logger,
		w:      loggerWriter,
		level:  gommonLevels[logger.GetLevel()],
	}
}

var gommonLevels = map[zerolog.Level]log.Lvl{
	zerolog.NoLevel:    log.OFF,
	zerolog.Disabled:   log.OFF,
	zerolog.TraceLevel: log.DEBUG,
	zerolog.DebugLevel: log.DEBUG,
	zerolog.InfoLevel:  log.INFO,
	zerolog.WarnLevel:  log.WARN,
	zerolog.ErrorLevel: log.ERROR,
	zerolog.FatalLevel: log.ERROR,
	zerolog.PanicLevel: log.ERROR,
}

var zerologLevels = map[log.Lvl]zerolog.Level{
	log.OFF:   zerolog.Disabled,
	log.DEBUG: zerolog.DebugLevel,
	log.INFO:  zerolog.InfoLevel,
	log.WARN:  zerolog.WarnLevel,
	log.ERROR: zerolog.ErrorLevel,
}

func (l *gommonLogger) Output() io.Writer {
	return l.w
}

func (l *gommonLogger) SetOutput(w io.Writer) {
	l.w = w
	newLogger := l.logger.Output(w)
	l.logger = &newLogger
}

func (l *gommonLogger) Level() log.Lvl {
	return l.level
}

func (l *gommonLogger) SetLevel(level log.Lvl) {
	zlevel, ok := zerologLevels[level]
	if !ok {
		zlevel = zerolog.TraceLevel
	}
	l.level = level
	newLogger := l.logger.Level(zlevel)
	l.logger = &newLogger
}

func (l *gommonLogger) Prefix() string {
	return l.prefix
}

func (l *gommonLogger) SetPrefix(prefix string) {
	l.prefix = prefix
	newLogger := l.logger.With().Str("prefix", prefix).Logger()
	l.logger = &newLogger
}

func (l *gommonLogger) SetHeader(header string) {
	// Unsupported
}

func (l *gommonLogger) Print(i ...any) {
	l.Info(i...)
}

func (l *gommonLogger) Printf(format string, i ...any) {
	l.Infof(format, i...)
}

func (l *gommonLogger) Printj(j log.JSON) {
	l.Infoj(j)
}

func (l *gommonLogger) Debug(i ...any) {
	l.logger.Debug().Msg(fmt.Sprint(i...))
}

func (l *gommonLogger) Debugf(format string, i ...any) {
	l.logger.Debug().Msgf(format, i...)
}

func (l *gommonLogger) Debugj(j log.JSON) {
	logJson(l.logger.Debug(), j)
}

func (l *gommonLogger) Info(i ...any) {
	l.logger.Info().Msg(fmt.Sprint(i...))
}

func (l *gommonLogger) Infof(format string, i ...any) {
	l.logger.Info().Msgf(format, i...)
}

func (l *gommonLogger) Infoj(j log.JSON) {
	logJson(l.logger.Info(), j)
}

func (l *gommonLogger) Warn(i ...any) {
	l.logger.Warn().Msg(fmt.Sprint(i...))
}

func (l *gommonLogger) Warnf(format string, i ...any) {
	l.logger.Warn().Msgf(format, i...)
}

func (l *gommonLogger) Warnj(j log.JSON) {
	logJson(l.logger.Warn(), j)
}

func (l *gommonLogger) Error(i ...any) {
	l.logger.Error().Msg(fmt.Sprint(i...))
}

func (l *gommonLogger) Errorf(format string, i ...any) {
	l.logger.Error().Msgf(format, i...)
}

func (l *gommonLogger) Errorj(j log.JSON) {
	logJson(l.logger.Error(), j)
}

func (l *gommonLogger) Fatal(i ...any) {
	l.logger.Fatal().Msg(fmt.Sprint(i...))
}

func (l *gommonLogger) Fatalf(format string, i ...any) {
	l.logger.Fatal().Msgf(format, i...)
}

func (l *gommonLogger) Fatalj(j log.JSON) {
	logJson(l.logger.Fatal(), j)
}

func (l *gommonLogger) Panic(i ...any) {
	l.logger.Panic().Msg(fmt.Sprint(i...))
}

func (l *gommonLogger) Panicf(format string, i ...any) {
	l.logger.Panic().Msgf(format, i...)
}

func (l *gommonLogger) Panicj(j log.JSON) {
	logJson(l.logger.Panic(), j)
}

func logJson(event *zerolog.Event, j log.JSON) {
	for k, v := range j {
		event = event.Interface(k, v)
	}

	event.Msg("")
}
