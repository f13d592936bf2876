package svmstruct

import (
	"errors"
	"testing"
)

func TestParseRuntime(t *testing.T) {
	output := "Reading training examples...done\n" +
		"Optimizing...\n" +
		"Runtime in cpu-seconds: 0.42\n" +
		"Final epsilon on KKT-Conditions: 0.00100\n"

	seconds, err := parseRuntime(output)
	if err != nil {
		t.Fatalf("parseRuntime failed: %v", err)
	}
	if seconds != 0.42 {
		t.Errorf("Expected 0.42, got %v", seconds)
	}
}

func TestParseRuntimeMissingLine(t *testing.T) {
	_, err := parseRuntime("Optimizing...\ndone\n")
	if err == nil {
		t.Fatal("Expected error when runtime line is absent")
	}

	var parseErr *ParseError
	if !errors.As(err, &parseErr) {
		t.Errorf("Expected *ParseError, got %T", err)
	}
}

func TestParseRuntimeMalformed(t *testing.T) {
	_, err := parseRuntime("Runtime in cpu-seconds: banana\n")
	if err == nil {
		t.Fatal("Expected error for non-numeric runtime")
	}

	var parseErr *ParseError
	if !errors.As(err, &parseErr) {
		t.Fatalf("Expected *ParseError, got %T", err)
	}
	if parseErr.Line == "" {
		t.Error("Expected the offending line in the parse error")
	}
}

func TestParseRuntimeLeadingWhitespace(t *testing.T) {
	seconds, err := parseRuntime("  Runtime in cpu-seconds: 1.5\n")
	if err != nil {
		t.Fatalf("parseRuntime failed: %v", err)
	}
	if seconds != 1.5 {
		t.Errorf("Expected 1.5, got %v", seconds)
	}
}
