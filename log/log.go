package log

import (
	"fmt"
	"io"
	"os"
	"strings"
)

type logLevel int

const (
	SilentLevel logLevel = iota
	MajorLevel
	MinorLevel
	DebugLevel
)

var (
	majorPrefix = ""        // Prepended to each output line. Not currently
	minorPrefix = "  "      // configurable as nothing has needed that yet.
	debugPrefix = "   Dbg:"

	out   io.Writer
	level logLevel
)

func init() {
	out = os.Stdout
}

func (t logLevel) String() string {
	switch t {
	case MajorLevel:
		return "Major"
	case MinorLevel:
		return "Minor"
	case DebugLevel:
		return "Debug"
	}

	return "Silent"
}

// SetOut changes the logging output to the supplied io.Writer. The default is
// os.Stdout. The supplied io.Writer must never be nil.
func SetOut(w io.Writer) {
	if w == nil {
		panic("log.SetOut() called with a nil io.Writer")
	}
	out = w
}

// Out returns the current io.Writer for specialist logger functions which are not
// controlled by log levels. The return value will never be nil.
func Out() io.Writer {
	return out
}

// SetLevel sets the current logging level.
func SetLevel(l logLevel) {
	level = l
}

// Level returns the current logging level.
func Level() logLevel {
	return level
}

// IfMajor returns true if Major logging is written to the output stream. The If*
// functions exist for callers which want to avoid evaluating expensive log arguments
// when the output would be discarded anyway.
func IfMajor() bool {
	return level >= MajorLevel
}

func IfMinor() bool {
	return level >= MinorLevel
}

func IfDebug() bool {
	return level >= DebugLevel
}

// Majorf is an approximate fmt.Printf equivalent. Output is only generated if the
// level is >= Major. A newline is always appended so the caller should not supply
// one. Each line of a multi-line string is prefixed with the level prefix.
func Majorf(format string, a ...interface{}) (n int, err error) {
	if level >= MajorLevel {
		return printLines(fmt.Sprintf(format, a...), majorPrefix)
	}

	return 0, nil
}

// Major is a fmt.Print like interface. Output is only generated if the level is >=
// Major.
func Major(a ...interface{}) (n int, err error) {
	if level >= MajorLevel {
		return printLines(fmt.Sprint(a...), majorPrefix)
	}

	return 0, nil
}

// Minorf is a fmt.Printf equivalent which only generates output if the level is >=
// Minor.
func Minorf(format string, a ...interface{}) (n int, err error) {
	if level >= MinorLevel {
		return printLines(fmt.Sprintf(format, a...), minorPrefix)
	}

	return 0, nil
}

// Minor is a fmt.Print like interface which only generates output if the level is >=
// Minor.
func Minor(a ...interface{}) (n int, err error) {
	if level >= MinorLevel {
		return printLines(fmt.Sprint(a...), minorPrefix)
	}

	return 0, nil
}

// Debugf is a fmt.Printf equivalent which only generates output if the level is >=
// Debug.
func Debugf(format string, a ...interface{}) (n int, err error) {
	if level >= DebugLevel {
		return printLines(fmt.Sprintf(format, a...), debugPrefix)
	}

	return 0, nil
}

// Debug is a fmt.Print like interface which only generates output if the level is >=
// Debug.
func Debug(a ...interface{}) (n int, err error) {
	if level >= DebugLevel {
		return printLines(fmt.Sprint(a...), debugPrefix)
	}

	return 0, nil
}

// printLines writes each line of the (possibly multi-line) string to the output
// stream with the supplied prefix. Trailing newlines are trimmed first so excess
// newlines from the caller not render as empty prefixed lines.
func printLines(lines, prefix string) (int, error) {
	lines = strings.TrimRight(lines, "\n")
	var total int
	for _, line := range strings.Split(lines, "\n") {
		n, err := fmt.Fprintf(out, "%s%s\n", prefix, line)
		total += n
		if err != nil {
			return total, err
		}
	}

	return total, nil
}
