package utils

import (
	"bytes"
	"encoding/json"
	"os"
	"strings"
	"testing"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// ============================================================
// Тесты InitLogger
// ============================================================

func TestInitLogger_Defaults(t *testing.T) {
	// Пустая конфигурация - применяются значения по умолчанию
	logger := InitLogger(LogConfig{})

	if logger == nil {
		t.Fatal("InitLogger returned nil")
	}
	if logger.Logger == nil {
		t.Fatal("Logger.Logger is nil")
	}
	if logger.sugar == nil {
		t.Fatal("Logger.sugar is nil")
	}
}

func TestInitLogger_AllLevels(t *testing.T) {
	levels := []string{"debug", "info", "warn", "warning", "error", "fatal", "invalid"}

	for _, level := range levels {
		t.Run(level, func(t *testing.T) {
			logger := InitLogger(LogConfig{Level: level})
			if logger == nil {
				t.Fatalf("InitLogger returned nil for level %s", level)
			}
		})
	}
}

func TestInitLogger_FileOutput(t *testing.T) {
	tmpFile, err := os.CreateTemp("", "logger_test_*.log")
	if err != nil {
		t.Fatalf("Failed to create temp file: %v", err)
	}
	defer os.Remove(tmpFile.Name())
	tmpFile.Close()

	logger := InitLogger(LogConfig{
		Level:  "info",
		Format: "json",
		Output: tmpFile.Name(),
	})

	logger.Info("Test message", zap.String("pair", "KAVAEUR"))
	logger.Sync()

	content, err := os.ReadFile(tmpFile.Name())
	if err != nil {
		t.Fatalf("Failed to read log file: %v", err)
	}
	if len(content) == 0 {
		t.Error("Log file is empty")
	}

	// Запись должна быть валидным JSON
	var logEntry map[string]interface{}
	if err := json.Unmarshal(content, &logEntry); err != nil {
		t.Errorf("Log entry is not valid JSON: %v", err)
	}
}

func TestInitLogger_InvalidFileOutput(t *testing.T) {
	// Несуществующая директория - fallback на stderr, без паники
	logger := InitLogger(LogConfig{
		Level:  "info",
		Output: "/nonexistent/directory/log.txt",
	})

	if logger == nil {
		t.Fatal("InitLogger returned nil for invalid output")
	}
}

// ============================================================
// Тесты глобального логгера
// ============================================================

func TestGlobalLogger(t *testing.T) {
	globalMu.Lock()
	globalLogger = nil
	globalMu.Unlock()

	logger := GetGlobalLogger()
	if logger == nil {
		t.Fatal("GetGlobalLogger returned nil")
	}

	logger2 := GetGlobalLogger()
	if logger != logger2 {
		t.Error("GetGlobalLogger returned different loggers")
	}

	logger3 := L()
	if logger != logger3 {
		t.Error("L() returned different logger")
	}
}

func TestInitGlobalLogger(t *testing.T) {
	logger := InitGlobalLogger(LogConfig{Level: "debug", Format: "text"})
	if logger == nil {
		t.Fatal("InitGlobalLogger returned nil")
	}

	if GetGlobalLogger() != logger {
		t.Error("Global logger was not set")
	}
}

// ============================================================
// Тесты parseLevel
// ============================================================

func TestParseLevel(t *testing.T) {
	tests := []struct {
		input    string
		expected zapcore.Level
	}{
		{"debug", zapcore.DebugLevel},
		{"DEBUG", zapcore.DebugLevel},
		{"info", zapcore.InfoLevel},
		{"warn", zapcore.WarnLevel},
		{"warning", zapcore.WarnLevel},
		{"error", zapcore.ErrorLevel},
		{"fatal", zapcore.FatalLevel},
		{"invalid", zapcore.InfoLevel}, // default
		{"", zapcore.InfoLevel},        // default
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			result := parseLevel(tt.input)
			if result != tt.expected {
				t.Errorf("parseLevel(%q) = %v, want %v", tt.input, result, tt.expected)
			}
		})
	}
}

// ============================================================
// Тесты методов Logger
// ============================================================

func TestLogger_WithHelpers(t *testing.T) {
	logger := InitLogger(LogConfig{Level: "info"})

	tests := []struct {
		name   string
		helper func() *Logger
	}{
		{"WithComponent", func() *Logger { return logger.WithComponent("engine") }},
		{"WithPair", func() *Logger { return logger.WithPair("KAVAEUR") }},
		{"WithOrderID", func() *Logger { return logger.WithOrderID("OABC12-XYZ") }},
		{"WithTaskID", func() *Logger { return logger.WithTaskID("task-42") }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			newLogger := tt.helper()
			if newLogger == nil {
				t.Fatalf("%s returned nil", tt.name)
			}
			if newLogger == logger {
				t.Errorf("%s should return a new logger", tt.name)
			}
		})
	}
}

// ============================================================
// Тесты конструкторов полей
// ============================================================

func TestFieldConstructors(t *testing.T) {
	var buf bytes.Buffer

	core := zapcore.NewCore(
		zapcore.NewJSONEncoder(zapcore.EncoderConfig{
			MessageKey: "message",
			LevelKey:   "level",
		}),
		zapcore.AddSync(&buf),
		zapcore.InfoLevel,
	)
	testLogger := &Logger{
		Logger: zap.New(core),
		sugar:  zap.New(core).Sugar(),
	}

	testLogger.Info("test",
		PairField("KAVAEUR"),
		OrderIDField("OABC12-XYZ"),
		TaskIDField("task-42"),
		PriceField(3.5),
		StopPriceField(3.43),
		BenefitField(16.67),
		QuantityField("1500"),
		AttemptField(3),
	)

	testLogger.Sync()
	output := buf.String()

	expectedFields := []string{
		"pair", "KAVAEUR",
		"order_id", "OABC12-XYZ",
		"task_id", "task-42",
		"price", "3.5",
		"stop_price", "3.43",
		"benefit_pct", "16.67",
		"quantity", "1500",
		"attempt", "3",
	}

	for _, field := range expectedFields {
		if !strings.Contains(output, field) {
			t.Errorf("Field %q not found in output: %s", field, output)
		}
	}
}

func TestGlobalLoggingFunctions(t *testing.T) {
	var buf bytes.Buffer

	core := zapcore.NewCore(
		zapcore.NewJSONEncoder(zapcore.EncoderConfig{
			MessageKey: "message",
			LevelKey:   "level",
		}),
		zapcore.AddSync(&buf),
		zapcore.DebugLevel,
	)
	testLogger := &Logger{
		Logger: zap.New(core),
		sugar:  zap.New(core).Sugar(),
	}
	SetGlobalLogger(testLogger)

	Debug("debug message")
	Info("info message")
	Warn("warn message")
	Error("error message")
	Infof("info %s %d", "fmt", 2)

	testLogger.Sync()
	output := buf.String()

	for _, want := range []string{"debug message", "info message", "warn message", "error message", "info fmt 2"} {
		if !strings.Contains(output, want) {
			t.Errorf("%q not found in output", want)
		}
	}
}
