package utils

import (
	"os"
	"strings"
	"sync"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// logger.go - структурированное логирование на базе zap
//
// Назначение:
// Единая точка инициализации логгера для всех компонентов:
// ядро принятия решений, клиент Kraken, диспетчер уведомлений, HTTP API.
//
// Уровни: debug, info, warn, error, fatal.
// Форматы: json (production), text (development).

// LogConfig - конфигурация логгера
type LogConfig struct {
	Level       string // debug, info, warn, error, fatal
	Format      string // json или text
	Output      string // путь к файлу; пусто = stderr
	Development bool   // режим разработки (caller в логах)
}

// Logger оборачивает zap.Logger и добавляет доменные helpers
type Logger struct {
	*zap.Logger
	sugar *zap.SugaredLogger
}

// parseLevel преобразует строковый уровень в zapcore.Level
// Неизвестные значения трактуются как info
func parseLevel(level string) zapcore.Level {
	switch strings.ToLower(level) {
	case "debug":
		return zapcore.DebugLevel
	case "info":
		return zapcore.InfoLevel
	case "warn", "warning":
		return zapcore.WarnLevel
	case "error":
		return zapcore.ErrorLevel
	case "fatal":
		return zapcore.FatalLevel
	default:
		return zapcore.InfoLevel
	}
}

// InitLogger создает настроенный логгер
//
// При невозможности открыть файл вывода происходит fallback на stderr,
// без паники - логгер должен быть доступен всегда.
func InitLogger(cfg LogConfig) *Logger {
	encoderCfg := zap.NewProductionEncoderConfig()
	encoderCfg.TimeKey = "timestamp"
	encoderCfg.EncodeTime = zapcore.ISO8601TimeEncoder

	var encoder zapcore.Encoder
	if strings.ToLower(cfg.Format) == "text" {
		encoderCfg.EncodeLevel = zapcore.CapitalLevelEncoder
		encoder = zapcore.NewConsoleEncoder(encoderCfg)
	} else {
		encoder = zapcore.NewJSONEncoder(encoderCfg)
	}

	var sink zapcore.WriteSyncer = zapcore.AddSync(os.Stderr)
	if cfg.Output != "" {
		file, err := os.OpenFile(cfg.Output, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
		if err == nil {
			sink = zapcore.AddSync(file)
		}
		// при ошибке остаемся на stderr
	}

	core := zapcore.NewCore(encoder, sink, parseLevel(cfg.Level))

	var opts []zap.Option
	if cfg.Development {
		opts = append(opts, zap.Development(), zap.AddCaller())
	}

	zl := zap.New(core, opts...)
	return &Logger{
		Logger: zl,
		sugar:  zl.Sugar(),
	}
}

// ============================================================
// Глобальный логгер
// ============================================================

var (
	globalLogger *Logger
	globalMu     sync.RWMutex
)

// InitGlobalLogger инициализирует и устанавливает глобальный логгер
func InitGlobalLogger(cfg LogConfig) *Logger {
	logger := InitLogger(cfg)
	SetGlobalLogger(logger)
	return logger
}

// SetGlobalLogger устанавливает глобальный логгер
func SetGlobalLogger(logger *Logger) {
	globalMu.Lock()
	defer globalMu.Unlock()
	globalLogger = logger
}

// GetGlobalLogger возвращает глобальный логгер,
// создавая логгер по умолчанию при первом обращении
func GetGlobalLogger() *Logger {
	globalMu.RLock()
	if globalLogger != nil {
		defer globalMu.RUnlock()
		return globalLogger
	}
	globalMu.RUnlock()

	globalMu.Lock()
	defer globalMu.Unlock()
	if globalLogger == nil {
		globalLogger = InitLogger(LogConfig{Level: "info", Format: "json"})
	}
	return globalLogger
}

// L - краткий доступ к глобальному логгеру
func L() *Logger {
	return GetGlobalLogger()
}

// ============================================================
// Методы Logger
// ============================================================

// With возвращает новый логгер с дополнительными полями
func (l *Logger) With(fields ...zap.Field) *Logger {
	zl := l.Logger.With(fields...)
	return &Logger{Logger: zl, sugar: zl.Sugar()}
}

// Sugar возвращает SugaredLogger для printf-style логирования
func (l *Logger) Sugar() *zap.SugaredLogger {
	return l.sugar
}

// WithComponent добавляет имя компонента (engine, kraken, notify, api)
func (l *Logger) WithComponent(name string) *Logger {
	return l.With(zap.String("component", name))
}

// WithPair добавляет торговую пару
func (l *Logger) WithPair(pair string) *Logger {
	return l.With(zap.String("pair", pair))
}

// WithOrderID добавляет идентификатор ордера
func (l *Logger) WithOrderID(orderID string) *Logger {
	return l.With(zap.String("order_id", orderID))
}

// WithTaskID добавляет идентификатор задачи уведомления
func (l *Logger) WithTaskID(taskID string) *Logger {
	return l.With(zap.String("task_id", taskID))
}

// ============================================================
// Глобальные функции логирования
// ============================================================

func Debug(msg string, fields ...zap.Field) { GetGlobalLogger().Logger.Debug(msg, fields...) }
func Info(msg string, fields ...zap.Field)  { GetGlobalLogger().Logger.Info(msg, fields...) }
func Warn(msg string, fields ...zap.Field)  { GetGlobalLogger().Logger.Warn(msg, fields...) }
func Error(msg string, fields ...zap.Field) { GetGlobalLogger().Logger.Error(msg, fields...) }
func Fatal(msg string, fields ...zap.Field) { GetGlobalLogger().Logger.Fatal(msg, fields...) }

func Debugf(template string, args ...interface{}) { GetGlobalLogger().sugar.Debugf(template, args...) }
func Infof(template string, args ...interface{})  { GetGlobalLogger().sugar.Infof(template, args...) }
func Warnf(template string, args ...interface{})  { GetGlobalLogger().sugar.Warnf(template, args...) }
func Errorf(template string, args ...interface{}) { GetGlobalLogger().sugar.Errorf(template, args...) }

// ============================================================
// Конструкторы доменных полей
// ============================================================

// PairField - торговая пара (например KAVAEUR)
func PairField(pair string) zap.Field { return zap.String("pair", pair) }

// OrderIDField - идентификатор ордера на бирже
func OrderIDField(id string) zap.Field { return zap.String("order_id", id) }

// TaskIDField - идентификатор задачи уведомления
func TaskIDField(id string) zap.Field { return zap.String("task_id", id) }

// PriceField - текущая цена
func PriceField(price float64) zap.Field { return zap.Float64("price", price) }

// StopPriceField - цена срабатывания стоп-лосса
func StopPriceField(price float64) zap.Field { return zap.Float64("stop_price", price) }

// BenefitField - нереализованная прибыль в процентах
func BenefitField(pct float64) zap.Field { return zap.Float64("benefit_pct", pct) }

// QuantityField - объём позиции (десятичная строка биржи)
func QuantityField(qty string) zap.Field { return zap.String("quantity", qty) }

// AttemptField - номер попытки (retry, poll)
func AttemptField(n int) zap.Field { return zap.Int("attempt", n) }

// Переэкспорт стандартных конструкторов zap,
// чтобы вызывающим пакетам не импортировать zap напрямую
var (
	String   = zap.String
	Int      = zap.Int
	Int64    = zap.Int64
	Float64  = zap.Float64
	Bool     = zap.Bool
	Err      = zap.Error
	Any      = zap.Any
	Duration = zap.Duration
)
