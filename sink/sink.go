// Package sink implements the line-oriented result writer: one
// tab-separated row per generation, in strictly ascending generation
// order, followed by one final row carrying the allele-identifier
// header.
package sink

import (
	"bufio"
	"fmt"
	"io"
	"strings"
)

// Sink accepts complete, already generation-ordered rows from the
// executor's shared writer and formats them onto w.
type Sink struct {
	w         *bufio.Writer
	stepWidth int
}

// New wraps w. generations is used only to compute the left-padding
// width for the stepIndex column: when generations > 998, every step is
// left-padded with spaces to the width of generations+1 (the header
// row's step), so numeric columns stay aligned.
func New(w io.Writer, generations int) *Sink {
	s := &Sink{w: bufio.NewWriter(w)}
	if generations > 998 {
		s.stepWidth = len(fmt.Sprintf("%d", generations+1))
	}
	return s
}

// WriteRow writes one line: step, then columns, tab-separated.
func (s *Sink) WriteRow(step int, columns []string) error {
	stepStr := fmt.Sprintf("%d", step)
	if pad := s.stepWidth - len(stepStr); pad > 0 {
		stepStr = strings.Repeat(" ", pad) + stepStr
	}

	if _, err := s.w.WriteString(stepStr); err != nil {
		return err
	}
	for _, c := range columns {
		if _, err := s.w.WriteString("\t"); err != nil {
			return err
		}
		if _, err := s.w.WriteString(c); err != nil {
			return err
		}
	}
	_, err := s.w.WriteString("\n")
	return err
}

// Flush pushes any buffered output to the underlying writer.
func (s *Sink) Flush() error {
	return s.w.Flush()
}
