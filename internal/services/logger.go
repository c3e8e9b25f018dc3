// File: internal/services/logger.go
package services

import (
	"encoding/json"
	"fmt"
	"log"
	"os"
	"strings"
	"time"
)

// Logger defines the common logging interface used by all services.
type Logger interface {
	Info(msg string, keysAndValues ...interface{})
	Error(msg string, keysAndValues ...interface{})
	Debug(msg string, keysAndValues ...interface{})
	Warn(msg string, keysAndValues ...interface{})
}

// LogLevel represents logging severity.
type LogLevel int

const (
	LogLevelDebug LogLevel = iota
	LogLevelInfo
	LogLevelWarn
	LogLevelError
)

func (l LogLevel) String() string {
	switch l {
	case LogLevelDebug:
		return "DEBUG"
	case LogLevelInfo:
		return "INFO"
	case LogLevelWarn:
		return "WARN"
	case LogLevelError:
		return "ERROR"
	default:
		return "UNKNOWN"
	}
}

// ProductionLogger is a structured logger writing one line per entry, JSON in
// production and human-readable otherwise.
type ProductionLogger struct {
	logger     *log.Logger
	level      LogLevel
	service    string
	structured bool
}

// NewProductionLogger creates a production-ready logger for a named service.
func NewProductionLogger(service string) *ProductionLogger {
	return &ProductionLogger{
		logger:     log.New(os.Stdout, "", 0),
		level:      LogLevelInfo,
		service:    service,
		structured: true,
	}
}

// SetLevel updates the logging level.
func (p *ProductionLogger) SetLevel(level LogLevel) {
	p.level = level
}

// SetStructured toggles JSON output.
func (p *ProductionLogger) SetStructured(structured bool) {
	p.structured = structured
}

func (p *ProductionLogger) Info(msg string, keysAndValues ...interface{}) {
	if p.level > LogLevelInfo {
		return
	}
	p.log(LogLevelInfo, msg, keysAndValues...)
}

func (p *ProductionLogger) Error(msg string, keysAndValues ...interface{}) {
	p.log(LogLevelError, msg, keysAndValues...)
}

func (p *ProductionLogger) Debug(msg string, keysAndValues ...interface{}) {
	if p.level > LogLevelDebug {
		return
	}
	p.log(LogLevelDebug, msg, keysAndValues...)
}

func (p *ProductionLogger) Warn(msg string, keysAndValues ...interface{}) {
	if p.level > LogLevelWarn {
		return
	}
	p.log(LogLevelWarn, msg, keysAndValues...)
}

func (p *ProductionLogger) log(level LogLevel, msg string, keysAndValues ...interface{}) {
	timestamp := time.Now().UTC().Format(time.RFC3339)

	if p.structured {
		entry := map[string]interface{}{
			"timestamp": timestamp,
			"level":     level.String(),
			"service":   p.service,
			"message":   msg,
		}
		if len(keysAndValues) > 1 {
			fields := make(map[string]interface{})
			for i := 0; i < len(keysAndValues)-1; i += 2 {
				if key, ok := keysAndValues[i].(string); ok {
					fields[key] = keysAndValues[i+1]
				}
			}
			if len(fields) > 0 {
				entry["fields"] = fields
			}
		}
		jsonBytes, _ := json.Marshal(entry)
		p.logger.Println(string(jsonBytes))
		return
	}

	var kv strings.Builder
	for i := 0; i < len(keysAndValues)-1; i += 2 {
		kv.WriteString(fmt.Sprintf(" %v=%v", keysAndValues[i], keysAndValues[i+1]))
	}
	p.logger.Printf("[%s] %s [%s] %s%s", timestamp, level.String(), p.service, msg, kv.String())
}

// NoOpLogger discards everything; used in tests.
type NoOpLogger struct{}

func (n *NoOpLogger) Info(msg string, keysAndValues ...interface{})  {}
func (n *NoOpLogger) Error(msg string, keysAndValues ...interface{}) {}
func (n *NoOpLogger) Debug(msg string, keysAndValues ...interface{}) {}
func (n *NoOpLogger) Warn(msg string, keysAndValues ...interface{})  {}

// NewLogger builds a logger from GO_ENV and LOG_LEVEL.
func NewLogger(service string) Logger {
	env := os.Getenv("GO_ENV")
	if env == "test" {
		return &NoOpLogger{}
	}

	logger := NewProductionLogger(service)
	switch strings.ToUpper(os.Getenv("LOG_LEVEL")) {
	case "DEBUG":
		logger.SetLevel(LogLevelDebug)
	case "WARN":
		logger.SetLevel(LogLevelWarn)
	case "ERROR":
		logger.SetLevel(LogLevelError)
	}
	logger.SetStructured(env == "production")
	return logger
}
