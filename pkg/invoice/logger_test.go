package invoice

import (
	"bytes"
	"strings"
	"testing"
)

func TestLogger(t *testing.T) {
	tests := []struct {
		name           string
		level          LogLevel
		setupFunc      func(*Logger)
		expectedOutput []string
		notExpected    []string
	}{
		{
			name:  "debug level shows all messages",
			level: LogDebug,
			setupFunc: func(l *Logger) {
				l.Debug("debug message")
				l.Info("info message")
				l.Warn("warn message")
				l.Error("error message")
			},
			expectedOutput: []string{"[DEBUG] debug message", "[INFO] info message", "[WARN] warn message", "[ERROR] error message"},
		},
		{
			name:  "info level hides debug messages",
			level: LogInfo,
			setupFunc: func(l *Logger) {
				l.Debug("debug message")
				l.Info("info message")
			},
			expectedOutput: []string{"[INFO] info message"},
			notExpected:    []string{"[DEBUG]"},
		},
		{
			name:  "off level shows nothing",
			level: LogOff,
			setupFunc: func(l *Logger) {
				l.Error("error message")
			},
			notExpected: []string{"[ERROR]"},
		},
		{
			name:  "structured fields are sorted",
			level: LogInfo,
			setupFunc: func(l *Logger) {
				l.WithFields(LogFields{"part": "word/document.xml", "invoice": "abc"}).Info("filled")
			},
			expectedOutput: []string{"[INFO] filled invoice=abc part=word/document.xml"},
		},
		{
			name:  "substitution trace",
			level: LogDebug,
			setupFunc: func(l *Logger) {
				l.DebugSubstitution("word/footer1.xml", "[Date]", "Issued on [Date]", "Issued on 15/08/2025")
			},
			expectedOutput: []string{`Replaced "[Date]" in word/footer1.xml paragraph: "Issued on [Date]" -> "Issued on 15/08/2025"`},
		},
		{
			name:  "substitution trace needs debug",
			level: LogInfo,
			setupFunc: func(l *Logger) {
				l.DebugSubstitution("word/document.xml", "[Name]", "a", "b")
			},
			notExpected: []string{"Replaced"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			logger := NewLogger(&buf, tt.level)

			tt.setupFunc(logger)

			output := buf.String()
			for _, expected := range tt.expectedOutput {
				if !strings.Contains(output, expected) {
					t.Errorf("Expected output to contain %q.\nOutput: %s", expected, output)
				}
			}
			for _, notExpected := range tt.notExpected {
				if strings.Contains(output, notExpected) {
					t.Errorf("Expected output NOT to contain %q.\nOutput: %s", notExpected, output)
				}
			}
		})
	}
}

func TestLogger_ChildSharesLevel(t *testing.T) {
	var buf bytes.Buffer
	parent := NewLogger(&buf, LogInfo)
	child := parent.WithField("invoice", "x")

	child.Info("first")
	if !strings.Contains(buf.String(), "first invoice=x") {
		t.Errorf("child output = %q", buf.String())
	}

	parent.Info("plain")
	if strings.Contains(buf.String(), "plain invoice=x") {
		t.Error("child fields leaked into parent")
	}
}

func TestGlobalLogger(t *testing.T) {
	original := GetLogger()
	defer SetLogger(original)

	var buf bytes.Buffer
	SetLogger(NewLogger(&buf, LogDebug))

	Debug("test debug")
	Info("test info")
	Warn("test warn")
	Error("test error")
	WithField("k", "v").Info("with field")

	output := buf.String()
	for _, want := range []string{
		"[DEBUG] test debug",
		"[INFO] test info",
		"[WARN] test warn",
		"[ERROR] test error",
		"with field k=v",
	} {
		if !strings.Contains(output, want) {
			t.Errorf("Expected output to contain %q.\nOutput: %s", want, output)
		}
	}
}

func TestParseLogLevel(t *testing.T) {
	tests := map[string]LogLevel{
		"debug":   LogDebug,
		"DEBUG":   LogDebug,
		"info":    LogInfo,
		"warn":    LogWarn,
		"error":   LogError,
		"off":     LogOff,
		"verbose": LogInfo,
		"":        LogInfo,
	}
	for input, want := range tests {
		if got := ParseLogLevel(input); got != want {
			t.Errorf("ParseLogLevel(%q) = %v, want %v", input, got, want)
		}
	}
}
