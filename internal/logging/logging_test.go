package logging

import (
	"testing"

	"go.uber.org/zap/zapcore"
)

func TestParseLevel(t *testing.T) {
	tests := []struct {
		input string
		want  zapcore.Level
	}{
		{"debug", zapcore.DebugLevel},
		{"info", zapcore.InfoLevel},
		{"warn", zapcore.WarnLevel},
		{"warning", zapcore.WarnLevel},
		{"error", zapcore.ErrorLevel},
		{"WARN", zapcore.WarnLevel},
		{"", zapcore.InfoLevel},
		{"bogus", zapcore.InfoLevel},
	}
	for _, tt := range tests {
		if got := parseLevel(tt.input); got != tt.want {
			t.Errorf("parseLevel(%q) = %v, want %v", tt.input, got, tt.want)
		}
	}
}

func TestNew(t *testing.T) {
	logger, err := New(Config{Level: "debug", Development: true})
	if err != nil {
		t.Fatalf("new logger: %v", err)
	}
	logger.Info("test message", "key", "value")
	logger.Debug("odd pair is tolerated", "dangling")
}

func TestToFieldsSkipsMalformedPairs(t *testing.T) {
	fields := toFields([]any{"a", 1, 2, "not-a-key", "b", "x", "trailing"})
	if len(fields) != 2 {
		t.Errorf("fields = %d, want 2 (a and b)", len(fields))
	}
}
