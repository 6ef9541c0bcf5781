// Copyright Safing ICS Technologies GmbH. Use of this source code is governed by the AGPL license that can be found in the LICENSE file.

package log

import (
	"errors"
	"io"
	"os"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"github.com/tevino/abool"
)

// concept
/*
- Logging function:
  - check if level is active
  - send data to backend via big buffered channel
- Backend:
  - wait until there are logs to write
  - write logs to the configured output (stderr by default)
- Channel overbuffering protection:
  - if buffer is full, lines are dropped and counted
*/

// Severity describes a log level.
type Severity uint32

type logLine struct {
	msg       string
	level     Severity
	timestamp time.Time
	file      string
	line      int
}

// Log Levels.
const (
	TraceLevel    Severity = 1
	DebugLevel    Severity = 2
	InfoLevel     Severity = 3
	WarningLevel  Severity = 4
	ErrorLevel    Severity = 5
	CriticalLevel Severity = 6
)

var (
	logBuffer   chan *logLine
	logsWaiting = make(chan struct{}, 1)

	logLevelInt = uint32(InfoLevel)
	logLevel    = &logLevelInt

	outputLock sync.Mutex
	output     io.Writer = os.Stderr

	started        = abool.NewBool(false)
	shutdownSignal chan struct{}
	shutdownDone   chan struct{}

	droppedLines uint64

	// ErrAlreadyStarted is returned by Start if logging is already running.
	ErrAlreadyStarted = errors.New("logging already started")
)

func init() {
	logBuffer = make(chan *logLine, 1024)
}

// SetLogLevel sets a new log level.
func SetLogLevel(level Severity) {
	atomic.StoreUint32(logLevel, uint32(level))
}

// GetLogLevel returns the current log level.
func GetLogLevel() Severity {
	return Severity(atomic.LoadUint32(logLevel))
}

// SetOutput sets the writer log lines are written to.
func SetOutput(w io.Writer) {
	outputLock.Lock()
	defer outputLock.Unlock()

	output = w
}

// ParseLevel returns the level severity of a log level name.
func ParseLevel(level string) Severity {
	switch strings.ToLower(level) {
	case "trace":
		return TraceLevel
	case "debug":
		return DebugLevel
	case "info":
		return InfoLevel
	case "warning":
		return WarningLevel
	case "error":
		return ErrorLevel
	case "critical":
		return CriticalLevel
	}
	return 0
}

// DroppedLines returns the number of log lines that were dropped because the buffer was full.
func DroppedLines() uint64 {
	return atomic.LoadUint64(&droppedLines)
}

// Start starts the logging writer. Lines logged before Start are kept in the
// buffer and written once the writer runs.
func Start() error {
	if !started.SetToIf(false, true) {
		return ErrAlreadyStarted
	}

	shutdownSignal = make(chan struct{})
	shutdownDone = make(chan struct{})
	go writer()

	return nil
}

// Shutdown writes all buffered lines and stops the writer.
func Shutdown() {
	if !started.SetToIf(true, false) {
		return
	}

	close(shutdownSignal)
	<-shutdownDone
}
