package reporters

import (
	"fmt"
	"io"
	"sync"

	"runwaydl/pkg/runwaydl"
)

// NewMachineReporter returns a ProgressReporter that writes the line protocol
// consumed by GUI front ends:
//
//	PROGRESS:<label>:<completed>:<total>
//	ERROR:<message>
//
// plus bare informational lines.
func NewMachineReporter(w io.Writer) runwaydl.ProgressReporter {
	var mutex sync.Mutex

	return runwaydl.NewEventReporter(func(event runwaydl.Event) {
		mutex.Lock()
		defer mutex.Unlock()

		switch event.Kind {
		case runwaydl.EventProgress:
			fmt.Fprintf(w, "PROGRESS:%s:%d:%d\n", event.Label, event.Completed, event.Total)
		case runwaydl.EventError:
			fmt.Fprintf(w, "ERROR:%s\n", event.Message)
		default:
			fmt.Fprintln(w, event.Message)
		}
	})
}
