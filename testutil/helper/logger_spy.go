package helper

import (
	"sync"
)

// Log levels recorded by the LoggerSpy.
const (
	LevelDebug = "DEBUG"
	LevelInfo  = "INFO"
	LevelWarn  = "WARN"
	LevelError = "ERROR"
)

// SpyLogEntry is one captured log call.
type SpyLogEntry struct {
	Level   string
	Message string
	Args    []any
}

// LoggerSpy captures log calls for testing. It implements the generation
// library's Logger interface, args follow the slog alternating key/value
// convention.
type LoggerSpy struct {
	entries []SpyLogEntry
	mu      sync.Mutex
}

// NewLoggerSpy creates an empty LoggerSpy.
func NewLoggerSpy() *LoggerSpy {
	return &LoggerSpy{
		entries: make([]SpyLogEntry, 0),
	}
}

// Debug implements the Logger interface.
func (s *LoggerSpy) Debug(msg string, args ...any) {
	s.record(LevelDebug, msg, args)
}

// Info implements the Logger interface.
func (s *LoggerSpy) Info(msg string, args ...any) {
	s.record(LevelInfo, msg, args)
}

// Warn implements the Logger interface.
func (s *LoggerSpy) Warn(msg string, args ...any) {
	s.record(LevelWarn, msg, args)
}

// Error implements the Logger interface.
func (s *LoggerSpy) Error(msg string, args ...any) {
	s.record(LevelError, msg, args)
}

func (s *LoggerSpy) record(level string, msg string, args []any) {
	s.mu.Lock()
	defer s.mu.Unlock()

	argsCopy := make([]any, len(args))
	copy(argsCopy, args)

	s.entries = append(s.entries, SpyLogEntry{
		Level:   level,
		Message: msg,
		Args:    argsCopy,
	})
}

// EntryCount returns the number of captured log calls.
func (s *LoggerSpy) EntryCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()

	return len(s.entries)
}

// Entries returns a copy of all captured log calls.
func (s *LoggerSpy) Entries() []SpyLogEntry {
	s.mu.Lock()
	defer s.mu.Unlock()

	entries := make([]SpyLogEntry, len(s.entries))
	copy(entries, s.entries)

	return entries
}

// Reset clears all captured log calls.
func (s *LoggerSpy) Reset() {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.entries = s.entries[:0]
}

// HasLog checks if a log call with the given level and message was
// captured.
func (s *LoggerSpy) HasLog(level string, message string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, entry := range s.entries {
		if entry.Level == level && entry.Message == message {
			return true
		}
	}

	return false
}

// CountLogs returns how many log calls with the given level and message
// were captured.
func (s *LoggerSpy) CountLogs(level string, message string) int {
	s.mu.Lock()
	defer s.mu.Unlock()

	count := 0

	for _, entry := range s.entries {
		if entry.Level == level && entry.Message == message {
			count++
		}
	}

	return count
}

// AttrValue returns the value of the given attribute key on the first log
// call matching level and message, and whether it was present.
func (s *LoggerSpy) AttrValue(level string, message string, key string) (any, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, entry := range s.entries {
		if entry.Level != level || entry.Message != message {
			continue
		}

		for i := 0; i+1 < len(entry.Args); i += 2 {
			if entry.Args[i] == key {
				return entry.Args[i+1], true
			}
		}
	}

	return nil, false
}

// HasLogWithAttr checks if a log call with the given level and message
// carries the given attribute key.
func (s *LoggerSpy) HasLogWithAttr(level string, message string, key string) bool {
	_, found := s.AttrValue(level, message, key)

	return found
}
