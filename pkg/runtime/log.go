package runtime

import (
	"bufio"
	"fmt"
	"os"
	"sync"
)

// LogPath is the default event log file, truncated at startup.
const LogPath = "schedule_log.csv"

// eventLog appends scheduler events to a CSV file and keeps them in memory
// for later inspection. If the file cannot be opened, file logging is
// disabled and only the in-memory trace is kept.
type eventLog struct {
	mu    sync.Mutex
	f     *os.File
	w     *bufio.Writer
	trace []Event
}

// newEventLog opens (and truncates) the log file at path. An empty path
// disables file logging.
func newEventLog(path string) *eventLog {
	l := &eventLog{}
	if path == "" {
		return l
	}
	f, err := os.Create(path)
	if err != nil {
		fmt.Fprintf(os.Stderr, "greenthread: failed to open log: %v\n", err)
		return l
	}
	l.f = f
	l.w = bufio.NewWriter(f)
	fmt.Fprintf(l.w, "t_us,event,tid,info\n")
	return l
}

func (l *eventLog) record(e Event) {
	l.mu.Lock()
	l.trace = append(l.trace, e)
	if l.w != nil {
		fmt.Fprintf(l.w, "%d,%s,%d,%s\n", e.TimeUS, e.Kind, e.TID, e.Info)
	}
	l.mu.Unlock()
}

func (l *eventLog) flush() {
	l.mu.Lock()
	if l.w != nil {
		if err := l.w.Flush(); err != nil {
			fmt.Fprintf(os.Stderr, "greenthread: failed to flush log: %v\n", err)
		}
	}
	l.mu.Unlock()
}

// events returns a snapshot of the recorded trace.
func (l *eventLog) events() []Event {
	l.mu.Lock()
	defer l.mu.Unlock()
	out := make([]Event, len(l.trace))
	copy(out, l.trace)
	return out
}
