package logger

import (
	"encoding/json"
	"io"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

// Event names, stored in the "msg" field of each line.
const (
	EventSessionStart      = "session_start"
	EventRunCommand        = "run_command"
	EventInvalidInvocation = "invalid_invocation"
	EventSessionEnd        = "session_end"
)

// Logger captures interaction events for the interpreter.
type Logger struct {
	log *logrus.Logger
}

// NewJSONLinesLogger creates a Logger that exports events in newline
// delimited JSON object format.
func NewJSONLinesLogger(w io.Writer) *Logger {
	log := logrus.New()
	log.SetOutput(w)
	log.SetLevel(logrus.InfoLevel)
	log.SetFormatter(&logrus.JSONFormatter{
		TimestampFormat: time.RFC3339Nano,
	})

	return &Logger{log: log}
}

// NewNopLogger creates a Logger that discards all events.
func NewNopLogger() *Logger {
	return NewJSONLinesLogger(io.Discard)
}

// NewSession creates a logger with attached session ID.
func (l *Logger) NewSession() *SessionLogger {
	id := uuid.NewString()
	return &SessionLogger{
		id:    id,
		entry: l.log.WithField("session_id", id),
	}
}

// SessionLogger logs events with a shared session ID.
type SessionLogger struct {
	id    string
	entry *logrus.Entry
}

// ID returns the session ID.
func (s *SessionLogger) ID() string {
	return s.id
}

// SessionStart records the start of an interactive or -c session.
func (s *SessionLogger) SessionStart(dir string, interactive bool) {
	s.entry.WithFields(logrus.Fields{
		"dir":         dir,
		"interactive": interactive,
	}).Info(EventSessionStart)
}

// RunCommand records a finished command.
func (s *SessionLogger) RunCommand(args []string, builtin bool, status int) {
	s.entry.WithFields(logrus.Fields{
		"command": args,
		"builtin": builtin,
		"status":  status,
	}).Info(EventRunCommand)
}

// LogInvalidInvocation records a command that was called incorrectly.
func (s *SessionLogger) LogInvalidInvocation(args []string, err error) {
	s.entry.WithFields(logrus.Fields{
		"command": args,
	}).WithError(err).Warn(EventInvalidInvocation)
}

// SessionEnd records the end of a session.
func (s *SessionLogger) SessionEnd(status int) {
	s.entry.WithField("status", status).Info(EventSessionEnd)
}

// LogEntry is a single parsed event.
type LogEntry struct {
	Time      time.Time `json:"time"`
	Level     string    `json:"level"`
	Event     string    `json:"msg"`
	SessionID string    `json:"session_id"`

	Dir         string   `json:"dir,omitempty"`
	Interactive bool     `json:"interactive,omitempty"`
	Command     []string `json:"command,omitempty"`
	Builtin     bool     `json:"builtin,omitempty"`
	Status      int      `json:"status,omitempty"`
	Error       string   `json:"error,omitempty"`
}

// ReadJSONLinesLog parses a newline delimited JSON log.
func ReadJSONLinesLog(r io.Reader, handler func(le *LogEntry)) error {
	decoder := json.NewDecoder(r)
	for decoder.More() {
		var logEntry LogEntry
		if err := decoder.Decode(&logEntry); err != nil {
			return err
		}

		handler(&logEntry)
	}
	return nil
}
