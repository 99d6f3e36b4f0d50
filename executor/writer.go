package executor

import (
	"sync"

	"github.com/pkg/errors"
)

// sharedWriter reassembles per-(replicate, generation) strings submitted
// out of order by concurrent workers into strictly generation-ordered,
// replicate-ordered rows, and forwards each completed row to sink as
// soon as every replicate has supplied it.
//
// A deque of per-step buckets, a lowest/highest step watermark, and one
// mutex guarding all three.
type sharedWriter struct {
	mu sync.Mutex

	replicates  int
	lowestStep  int
	highestStep int
	started     bool

	buckets []([]string) // buckets[step-lowestStep][replicateID]
	present [][]bool     // present[step-lowestStep][replicateID]
	filled  []int        // number of present entries per bucket

	emit func(step int, row []string) error
}

func newSharedWriter(replicates int, emit func(step int, row []string) error) *sharedWriter {
	return &sharedWriter{replicates: replicates, emit: emit}
}

// submit records line for (replicateID, step) and flushes every row at
// the front of the buffer that is now complete. A step below lowestStep
// is a fatal ordering violation: it can only mean a worker resubmitted
// a generation already flushed, a logic bug.
func (w *sharedWriter) submit(line string, replicateID, step int) error {
	w.mu.Lock()
	defer w.mu.Unlock()

	if !w.started {
		w.started = true
		w.lowestStep = step
		w.highestStep = step - 1
	}

	if step < w.lowestStep {
		return errors.Errorf("executor: writer received step %d below lowestStep %d (replicate %d)", step, w.lowestStep, replicateID)
	}

	for step > w.highestStep {
		w.buckets = append(w.buckets, make([]string, w.replicates))
		w.present = append(w.present, make([]bool, w.replicates))
		w.filled = append(w.filled, 0)
		w.highestStep++
	}

	idx := step - w.lowestStep
	if !w.present[idx][replicateID] {
		w.present[idx][replicateID] = true
		w.filled[idx]++
	}
	w.buckets[idx][replicateID] = line

	for len(w.buckets) > 0 && w.filled[0] == w.replicates {
		row := w.buckets[0]
		flushedStep := w.lowestStep

		w.buckets = w.buckets[1:]
		w.present = w.present[1:]
		w.filled = w.filled[1:]
		w.lowestStep++

		if err := w.emit(flushedStep, row); err != nil {
			return err
		}
	}

	return nil
}
