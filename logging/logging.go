// Package logging builds the zerolog logger used across holocron.
//
// Console output is level-tagged (DEBUG, INFO, WARNING, ERROR, CRITICAL) and
// each whole line is painted in its level colour, then reset.
package logging

import (
	"bytes"
	"io"
	"os"
	"strings"
	"sync"
	"time"

	"github.com/fatih/color"
	"github.com/mattn/go-isatty"
	"github.com/rs/zerolog"

	"github.com/s0up4200/holocron/config"
)

// New configures a zerolog logger writing to out
func New(cfg config.LoggingConfig, out io.Writer) zerolog.Logger {
	level := ParseLevel(cfg.Level)

	if cfg.Format == "json" {
		return zerolog.New(out).Level(level).With().Timestamp().Logger()
	}

	w := newLevelColorWriter(out, colorEnabled(cfg.Color, out))
	return zerolog.New(w).Level(level).With().Timestamp().Logger()
}

// ParseLevel maps a config level name to a zerolog level, defaulting to info
func ParseLevel(name string) zerolog.Level {
	switch strings.ToLower(name) {
	case "debug":
		return zerolog.DebugLevel
	case "warn":
		return zerolog.WarnLevel
	case "error":
		return zerolog.ErrorLevel
	default:
		return zerolog.InfoLevel
	}
}

// colorEnabled resolves the auto|always|never setting
func colorEnabled(mode string, out io.Writer) bool {
	switch mode {
	case "always":
		return true
	case "never":
		return false
	}

	f, ok := out.(*os.File)
	if !ok {
		return false
	}
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}

var levelTags = map[string]string{
	zerolog.LevelTraceValue: "TRACE",
	zerolog.LevelDebugValue: "DEBUG",
	zerolog.LevelInfoValue:  "INFO",
	zerolog.LevelWarnValue:  "WARNING",
	zerolog.LevelErrorValue: "ERROR",
	zerolog.LevelFatalValue: "CRITICAL",
	zerolog.LevelPanicValue: "CRITICAL",
}

var palette = map[zerolog.Level]*color.Color{
	zerolog.TraceLevel: color.New(color.Faint, color.FgCyan),
	zerolog.DebugLevel: color.New(color.Faint, color.FgCyan),
	zerolog.InfoLevel:  color.New(color.Bold, color.FgGreen),
	zerolog.WarnLevel:  color.New(color.Bold, color.FgYellow),
	zerolog.ErrorLevel: color.New(color.Bold, color.FgRed),
	zerolog.FatalLevel: color.New(color.Bold, color.FgMagenta),
	zerolog.PanicLevel: color.New(color.Bold, color.FgMagenta),
}

func init() {
	// Colour is decided per writer, not by fatih/color's global tty check
	for _, c := range palette {
		c.EnableColor()
	}
}

// levelColorWriter renders events with a ConsoleWriter and paints each
// finished line with the colour of its level.
type levelColorWriter struct {
	mu      sync.Mutex
	out     io.Writer
	buf     bytes.Buffer
	console zerolog.ConsoleWriter
	color   bool
}

func newLevelColorWriter(out io.Writer, enableColor bool) *levelColorWriter {
	w := &levelColorWriter{out: out, color: enableColor}
	w.console = zerolog.ConsoleWriter{
		Out:        &w.buf,
		NoColor:    true,
		TimeFormat: time.RFC3339,
		FormatLevel: func(i any) string {
			s, _ := i.(string)
			if tag, ok := levelTags[s]; ok {
				return tag
			}
			return strings.ToUpper(s)
		},
	}
	return w
}

// Write handles events that carry no level
func (w *levelColorWriter) Write(p []byte) (int, error) {
	return w.WriteLevel(zerolog.NoLevel, p)
}

// WriteLevel implements zerolog.LevelWriter
func (w *levelColorWriter) WriteLevel(level zerolog.Level, p []byte) (int, error) {
	w.mu.Lock()
	defer w.mu.Unlock()

	w.buf.Reset()
	if _, err := w.console.Write(p); err != nil {
		return 0, err
	}

	line := strings.TrimRight(w.buf.String(), "\n")
	if c, ok := palette[level]; ok && w.color {
		line = c.Sprint(line)
	}

	if _, err := io.WriteString(w.out, line+"\n"); err != nil {
		return 0, err
	}
	return len(p), nil
}
