package candidate

import (
	"github.com/banshee-data/refline/internal/monitoring"
)

// LogWriters holds the io.Writers for each logging stream.
type LogWriters = monitoring.LogWriters

var logs = monitoring.NewStreams("[candidate] ")

// SetLogWriters configures all three logging streams at once.
// Pass nil for any writer to disable that stream.
func SetLogWriters(w LogWriters) {
	logs.SetWriters(w)
}

func opsf(format string, args ...interface{})   { logs.Opsf(format, args...) }
func diagf(format string, args ...interface{})  { logs.Diagf(format, args...) }
func tracef(format string, args ...interface{}) { logs.Tracef(format, args...) }
