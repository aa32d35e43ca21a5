// Package monitor follows the counter lines a board prints on its console and
// reports missed counts and the interval between lines.
package monitor

import (
	"bytes"
	"context"
	"io"
	"strconv"
	"strings"
	"time"
)

// Observation is the result of one console line
type Observation struct {
	Line      string
	Numeric   bool          // Line is a counter value
	Value     uint32        // Counter value when Numeric
	Gap       uint32        // Counter values skipped since the previous one
	Restarted bool          // Counter went back to 1, the board was reset
	Interval  time.Duration // Time since the previous counter line
	Drift     time.Duration // Interval minus the expected period
}

// Monitor tracks consecutive counter lines
type Monitor struct {
	expect time.Duration

	seen   bool
	last   uint32
	lastAt time.Time

	Lines  uint64 // Counter lines seen
	Missed uint64 // Sum of all gaps
	Resets uint64 // Restarts detected

	// Follow keeps Run reading past EOF until ctx is done. Serial ports
	// report a read timeout with no data as io.EOF.
	Follow bool
}

// followPoll is the pause after an empty EOF read in follow mode
const followPoll = 10 * time.Millisecond

// New creates a monitor expecting one counter line per period.
// A zero period disables drift reporting.
func New(period time.Duration) *Monitor {
	return &Monitor{expect: period}
}

// Observe processes one line received at time at
func (m *Monitor) Observe(line string, at time.Time) Observation {
	line = strings.TrimSpace(line)
	obs := Observation{Line: line}

	value, err := strconv.ParseUint(line, 10, 32)
	if err != nil {
		return obs
	}
	obs.Numeric = true
	obs.Value = uint32(value)
	m.Lines++

	if m.seen {
		obs.Interval = at.Sub(m.lastAt)
		if m.expect > 0 {
			obs.Drift = obs.Interval - m.expect
		}

		switch {
		case obs.Value == m.last+1:
			// In sequence, including the wrap from 2^32-1 to 0
		case obs.Value == 1 || obs.Value <= m.last:
			// The firmware seeds its counter with 1 after reset
			obs.Restarted = true
			m.Resets++
		default:
			obs.Gap = obs.Value - m.last - 1
			m.Missed += uint64(obs.Gap)
		}
	}

	m.seen = true
	m.last = obs.Value
	m.lastAt = at
	return obs
}

// Run reads lines from r until EOF or ctx is done and reports each one.
// Reads returning no data are retried. In follow mode EOF is retried too.
func (m *Monitor) Run(ctx context.Context, r io.Reader, report func(Observation)) error {
	buf := make([]byte, 256)
	var line []byte

	for {
		if err := ctx.Err(); err != nil {
			return err
		}

		n, err := r.Read(buf)
		data := buf[:n]
		for len(data) > 0 {
			i := bytes.IndexByte(data, '\n')
			if i < 0 {
				line = append(line, data...)
				break
			}
			line = append(line, data[:i]...)
			report(m.Observe(string(line), time.Now()))
			line = line[:0]
			data = data[i+1:]
		}

		if err == io.EOF && m.Follow {
			if n == 0 {
				select {
				case <-ctx.Done():
					return ctx.Err()
				case <-time.After(followPoll):
				}
			}
			continue
		}
		if err == io.EOF {
			if len(bytes.TrimSpace(line)) > 0 {
				report(m.Observe(string(line), time.Now()))
			}
			return nil
		}
		if err != nil {
			return err
		}
	}
}
