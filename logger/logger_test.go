package logger

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"go.uber.org/zap/zapcore"
)

func TestInitialize(t *testing.T) {
	tests := []struct {
		name       string
		jsonOutput bool
	}{
		{name: "JSON output mode", jsonOutput: true},
		{name: "Console output mode", jsonOutput: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			Logger = nil
			JSONOutput = false

			if err := Initialize(tt.jsonOutput); err != nil {
				t.Fatalf("Initialize() error = %v", err)
			}
			if Logger == nil {
				t.Error("Initialize() did not set global Logger")
			}
			if JSONOutput != tt.jsonOutput {
				t.Errorf("Initialize() JSONOutput = %v, want %v", JSONOutput, tt.jsonOutput)
			}
		})
	}
}

func TestInitializeWithOptions_File(t *testing.T) {
	path := filepath.Join(t.TempDir(), "otml.log")
	if err := os.WriteFile(path, []byte("stale content\n"), 0644); err != nil {
		t.Fatal(err)
	}

	if err := InitializeWithOptions(Options{JSON: true, Verbosity: VerbosityInfo, File: path}); err != nil {
		t.Fatalf("InitializeWithOptions() error = %v", err)
	}
	Infow("table loaded", FieldSymbol, "b", FieldCount, 2)
	Debugw("hidden at info level")
	Cleanup()

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("expected log file to remain: %v", err)
	}
	content := string(data)
	if strings.Contains(content, "stale content") {
		t.Error("log file should be truncated on initialize")
	}
	if !strings.Contains(content, `"symbol":"b"`) {
		t.Errorf("log file missing structured field, got %q", content)
	}
	if strings.Contains(content, "hidden at info level") {
		t.Error("debug message should be filtered at info verbosity")
	}
}

func TestCleanup_RemovesEmptyLogFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "empty.log")

	if err := InitializeWithOptions(Options{Verbosity: VerbosityUser, File: path}); err != nil {
		t.Fatalf("InitializeWithOptions() error = %v", err)
	}
	Infow("filtered at warn level")
	Cleanup()

	if _, err := os.Stat(path); !os.IsNotExist(err) {
		t.Errorf("expected empty log file to be removed, stat err = %v", err)
	}
}

func TestInitializeWithOptions_ReinitializeReleasesPreviousFile(t *testing.T) {
	dir := t.TempDir()
	first := filepath.Join(dir, "first.log")
	second := filepath.Join(dir, "second.log")

	if err := InitializeWithOptions(Options{Verbosity: VerbosityInfo, File: first}); err != nil {
		t.Fatalf("InitializeWithOptions() error = %v", err)
	}
	Infow("written to first")
	if err := InitializeWithOptions(Options{Verbosity: VerbosityInfo, File: second}); err != nil {
		t.Fatalf("InitializeWithOptions() error = %v", err)
	}
	if logHandle == nil || logHandle.Name() != second {
		t.Fatalf("expected handle for %s, got %v", second, logHandle)
	}
	Infow("written to second")
	Cleanup()

	if logHandle != nil {
		t.Error("Cleanup() should close and clear the log file handle")
	}
	firstData, err := os.ReadFile(first)
	if err != nil {
		t.Fatalf("expected first log file to remain: %v", err)
	}
	if !strings.Contains(string(firstData), "written to first") || strings.Contains(string(firstData), "written to second") {
		t.Errorf("first log file has wrong content: %q", firstData)
	}
	secondData, err := os.ReadFile(second)
	if err != nil {
		t.Fatalf("expected second log file to remain: %v", err)
	}
	if !strings.Contains(string(secondData), "written to second") {
		t.Errorf("second log file missing entry: %q", secondData)
	}

	// nothing reaches the closed file after Cleanup
	Infow("after cleanup")
	secondData, _ = os.ReadFile(second)
	if strings.Contains(string(secondData), "after cleanup") {
		t.Error("logger still writes to the file after Cleanup()")
	}
}

func TestInitializeWithOptions_ReinitializeRemovesEmptyPreviousFile(t *testing.T) {
	dir := t.TempDir()
	first := filepath.Join(dir, "first.log")
	second := filepath.Join(dir, "second.log")

	if err := InitializeWithOptions(Options{Verbosity: VerbosityUser, File: first}); err != nil {
		t.Fatalf("InitializeWithOptions() error = %v", err)
	}
	if err := InitializeWithOptions(Options{Verbosity: VerbosityUser, File: second}); err != nil {
		t.Fatalf("InitializeWithOptions() error = %v", err)
	}
	if _, err := os.Stat(first); !os.IsNotExist(err) {
		t.Errorf("expected empty first log file to be removed on re-initialize, stat err = %v", err)
	}
	Cleanup()
	if _, err := os.Stat(second); !os.IsNotExist(err) {
		t.Errorf("expected empty second log file to be removed, stat err = %v", err)
	}
}

func TestCleanup_NilLogger(t *testing.T) {
	defer func() {
		if r := recover(); r != nil {
			t.Errorf("Cleanup() panicked unexpectedly: %v", r)
		}
	}()
	Logger = nil
	Cleanup()
	Infow("no-op")
	Warnw("no-op")
	Errorw("no-op")
	Debugw("no-op")
}

func TestVerbosityToLevel(t *testing.T) {
	tests := []struct {
		verbosity int
		want      zapcore.Level
	}{
		{-1, zapcore.WarnLevel},
		{VerbosityUser, zapcore.WarnLevel},
		{VerbosityInfo, zapcore.InfoLevel},
		{VerbosityDebug, zapcore.DebugLevel},
		{VerbosityTrace, zapcore.DebugLevel},
		{7, zapcore.DebugLevel},
	}
	for _, tt := range tests {
		if got := VerbosityToLevel(tt.verbosity); got != tt.want {
			t.Errorf("VerbosityToLevel(%d) = %v, want %v", tt.verbosity, got, tt.want)
		}
	}
}

func TestLevelName(t *testing.T) {
	if got := LevelName(VerbosityDebug); got != "Debug (-vv)" {
		t.Errorf("LevelName(2) = %q", got)
	}
	if got := LevelName(9); got != "Trace (-vvv+)" {
		t.Errorf("LevelName(9) = %q", got)
	}
	if got := LevelName(-2); got != "Unknown" {
		t.Errorf("LevelName(-2) = %q", got)
	}
}

func TestShouldOutput(t *testing.T) {
	tests := []struct {
		name      string
		verbosity int
		category  OutputCategory
		want      bool
	}{
		{"results always shown", VerbosityUser, OutputResults, true},
		{"progress hidden by default", VerbosityUser, OutputProgress, false},
		{"progress at -v", VerbosityInfo, OutputProgress, true},
		{"reload at -v", VerbosityInfo, OutputReload, true},
		{"config hidden at -v", VerbosityInfo, OutputConfig, false},
		{"dump at -vvv", VerbosityTrace, OutputDataDump, true},
		{"unknown category needs trace", VerbosityDebug, OutputCategory(99), false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ShouldOutput(tt.verbosity, tt.category); got != tt.want {
				t.Errorf("ShouldOutput(%d, %s) = %v, want %v", tt.verbosity, CategoryName(tt.category), got, tt.want)
			}
		})
	}
}
