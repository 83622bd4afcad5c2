package logger

import (
	"io"
	"os"
	"strings"

	"github.com/sirupsen/logrus"
	"gopkg.in/natefinch/lumberjack.v2"
)

// Logger define a interface para logging estruturado.
// A aplicação (Handler, Service, Repository) deve depender apenas desta interface.
type Logger interface {
	Debug(msg string, fields map[string]interface{})
	Info(msg string, fields map[string]interface{})
	Warn(msg string, fields map[string]interface{})
	Error(msg string, err error)
	Fatal(msg string, err error)
}

// Options controla o destino dos logs. Sem File, escreve apenas no stderr.
type Options struct {
	Level      string
	File       string
	MaxSizeMB  int
	MaxBackups int
}

// LogrusLogger é a implementação concreta da interface Logger sobre o logrus,
// com saída JSON e rotação de arquivo opcional.
type LogrusLogger struct {
	entry *logrus.Logger
}

// NewLogger cria um Logger que escreve JSON no stderr.
// Esta função é chamada no main.go e nos testes.
func NewLogger(level string) Logger {
	return NewLoggerWithOptions(Options{Level: level})
}

// NewLoggerWithOptions cria o Logger, adicionando o arquivo rotacionado quando configurado.
func NewLoggerWithOptions(opts Options) Logger {
	l := logrus.New()

	level, err := logrus.ParseLevel(strings.ToLower(opts.Level))
	if err != nil {
		level = logrus.InfoLevel // Default to info
	}
	l.SetLevel(level)

	l.SetFormatter(&logrus.JSONFormatter{
		TimestampFormat: "2006-01-02T15:04:05.000Z07:00",
		FieldMap: logrus.FieldMap{
			logrus.FieldKeyTime: "timestamp",
			logrus.FieldKeyMsg:  "message",
		},
	})

	writers := []io.Writer{os.Stderr}
	if opts.File != "" {
		maxSize := opts.MaxSizeMB
		if maxSize <= 0 {
			maxSize = 10
		}
		writers = append(writers, &lumberjack.Logger{
			Filename:   opts.File,
			MaxSize:    maxSize, // Em megabytes
			MaxBackups: opts.MaxBackups,
			MaxAge:     28, // dias
			Compress:   true,
		})
	}
	l.SetOutput(io.MultiWriter(writers...))

	return &LogrusLogger{entry: l}
}

// NewNopLogger descarta tudo. Útil em testes de handler.
func NewNopLogger() Logger {
	l := logrus.New()
	l.SetOutput(io.Discard)
	return &LogrusLogger{entry: l}
}

// Implementações da Interface Logger

func (l *LogrusLogger) Debug(msg string, fields map[string]interface{}) {
	l.entry.WithFields(logrus.Fields(fields)).Debug(msg)
}

func (l *LogrusLogger) Info(msg string, fields map[string]interface{}) {
	l.entry.WithFields(logrus.Fields(fields)).Info(msg)
}

func (l *LogrusLogger) Warn(msg string, fields map[string]interface{}) {
	l.entry.WithFields(logrus.Fields(fields)).Warn(msg)
}

func (l *LogrusLogger) Error(msg string, err error) {
	l.entry.WithError(err).Error(msg)
}

// Fatal registra e encerra o processo (logrus chama os.Exit(1)).
func (l *LogrusLogger) Fatal(msg string, err error) {
	l.entry.WithError(err).Fatal(msg)
}
