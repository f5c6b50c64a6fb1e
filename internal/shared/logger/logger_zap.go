// Package logger содержит общий логгер для server и agent.
//
// Пакет предоставляет Zap-логгер, настроенный на запись в файл с ротацией
// (lumberjack) и удобный метод для логирования HTTP-запросов.
package logger

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"gopkg.in/natefinch/lumberjack.v2"
)

// HTTPLogger представляет обёртку над zap.Logger для логирования HTTP-событий.
//
// Встраивание *zap.Logger позволяет использовать все методы zap напрямую.
type HTTPLogger struct {
	*zap.Logger
}

// Options описывает куда и в каком виде писать логи.
type Options struct {
	// Level: debug|info|warn|error
	Level string
	// Format: console|json
	Format string
	// File: путь к файлу логов, ротация через lumberjack
	File string
	// Stdout: дублировать логи в stdout
	Stdout bool

	MaxSizeMB  int
	MaxBackups int
	MaxAgeDays int
}

// DefaultOptions возвращает настройки по умолчанию: runtime/logs/http.log, info, console.
func DefaultOptions() Options {
	return Options{
		Level:      "info",
		Format:     "console",
		File:       filepath.Join("runtime", "logs", "http.log"),
		MaxSizeMB:  100, // MB ≈ ~300 000 строк
		MaxBackups: 10,
		MaxAgeDays: 30,
	}
}

// NewHTTPLogger создаёт файловый zap-логгер с настройками по умолчанию.
//
// Логи записываются в файл runtime/logs/http.log.
// Формат времени: "HH:MM:SS DD.MM.YYYY".
func NewHTTPLogger() *HTTPLogger {
	l, err := New(DefaultOptions())
	if err != nil {
		return NewNop()
	}
	return l
}

// NewNop возвращает логгер, который ничего не пишет (для тестов и CLI).
func NewNop() *HTTPLogger {
	return &HTTPLogger{Logger: zap.NewNop()}
}

// New создаёт логгер по переданным опциям.
//
// Для файлов включена ротация (MaxSize/MaxBackups/MaxAge) и сжатие архивов.
func New(opts Options) (*HTTPLogger, error) {
	level, err := zapcore.ParseLevel(strings.ToLower(strings.TrimSpace(opts.Level)))
	if err != nil {
		return nil, fmt.Errorf("bad log level %q: %w", opts.Level, err)
	}

	encoderCfg := zap.NewProductionEncoderConfig()
	encoderCfg.TimeKey = "ts"
	encoderCfg.EncodeTime = customTimeEncoder

	var encoder zapcore.Encoder
	switch strings.ToLower(opts.Format) {
	case "", "console":
		encoder = zapcore.NewConsoleEncoder(encoderCfg)
	case "json":
		encoder = zapcore.NewJSONEncoder(encoderCfg)
	default:
		return nil, fmt.Errorf("bad log format %q", opts.Format)
	}

	var sinks []zapcore.WriteSyncer
	if opts.File != "" {
		if err := os.MkdirAll(filepath.Dir(opts.File), 0755); err != nil {
			return nil, fmt.Errorf("create log dir: %w", err)
		}
		// lumberjack отвечает за ротацию файлов
		sinks = append(sinks, zapcore.AddSync(&lumberjack.Logger{
			Filename:   opts.File,
			MaxSize:    opts.MaxSizeMB,
			MaxBackups: opts.MaxBackups,
			MaxAge:     opts.MaxAgeDays,
			Compress:   true,
		}))
	}
	if opts.Stdout {
		sinks = append(sinks, zapcore.Lock(os.Stdout))
	}
	if len(sinks) == 0 {
		return NewNop(), nil
	}

	core := zapcore.NewCore(encoder, zapcore.NewMultiWriteSyncer(sinks...), level)
	logger := zap.New(core, zap.AddCaller(), zap.AddCallerSkip(1))

	return &HTTPLogger{Logger: logger}, nil
}

// LogRequest записывает структурированный лог об HTTP-запросе.
//
// method и uri: параметры запроса,
// status - HTTP-статус ответа,
// responseSize: размер ответа в байтах,
// duration: длительность обработки запроса в миллисекундах.
func (logger *HTTPLogger) LogRequest(method, uri string, status, responseSize int, duration float64) {
	logger.Info("HTTP request",
		zap.String("method", method),
		zap.String("uri", uri),
		zap.Int("status", status),
		zap.Int("response_size", responseSize),
		zap.Float64("duration_ms", duration),
	)
}

// customTimeEncoder форматирует время для логов в виде "HH:MM:SS DD.MM.YYYY".
func customTimeEncoder(t time.Time, enc zapcore.PrimitiveArrayEncoder) {
	enc.AppendString(t.Format("15:04:05 02.01.2006"))
}
