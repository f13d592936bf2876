package svmstruct

import (
	"strconv"
	"strings"
)

// runtimePrefix starts the banner line of the learn tool that carries
// its self-reported CPU time, formatted as "<label>: <float>".
const runtimePrefix = "Runtime in cpu-seconds"

// ParseError reports that the learn tool's output did not contain a
// usable runtime figure. It is a distinct type so callers can tell a
// protocol drift (the tool changed its banner) apart from process or
// I/O failures.
type ParseError struct {
	Line   string // offending line, empty if none matched
	Reason string
}

func (e *ParseError) Error() string {
	if e.Line != "" {
		return "svmstruct: runtime parse: " + e.Reason + " in line " + strconv.Quote(e.Line)
	}
	return "svmstruct: runtime parse: " + e.Reason
}

// parseRuntime extracts the self-reported CPU time from the learn
// tool's combined output. The original tool prints the figure at a
// fixed line offset from the end; matching on the line prefix instead
// keeps the same contract while failing loudly when the banner is
// missing or malformed rather than defaulting to zero.
func parseRuntime(output string) (float64, error) {
	for _, line := range strings.Split(output, "\n") {
		trimmed := strings.TrimSpace(line)
		if !strings.HasPrefix(trimmed, runtimePrefix) {
			continue
		}

		_, after, ok := strings.Cut(trimmed, ":")
		if !ok {
			return 0, &ParseError{Line: trimmed, Reason: "no ':' separator"}
		}
		seconds, err := strconv.ParseFloat(strings.TrimSpace(after), 64)
		if err != nil {
			return 0, &ParseError{Line: trimmed, Reason: "non-numeric runtime"}
		}
		return seconds, nil
	}
	return 0, &ParseError{Reason: "no '" + runtimePrefix + "' line in learn output"}
}
