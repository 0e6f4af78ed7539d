// Package explorer browses recorded exploration traces, interactively on
// the terminal or over HTTP.
package explorer

import (
	"encoding/json"
	"fmt"

	"github.com/interleave-dev/interleave/explore"
	"github.com/interleave-dev/interleave/util"
)

type Explorer struct {
	TracesFile string
	Traces     []*explore.TraceLog
}

// NewExplorer loads the trace logs recorded in the given JSONL file.
func NewExplorer(tracesFile string) (*Explorer, error) {
	e := &Explorer{
		TracesFile: tracesFile,
		Traces:     make([]*explore.TraceLog, 0),
	}
	lines, err := util.ReadLines(tracesFile)
	if err != nil {
		return nil, fmt.Errorf("reading traces file: %w", err)
	}
	for i, line := range lines {
		trace := &explore.TraceLog{}
		if err := json.Unmarshal([]byte(line), trace); err != nil {
			return nil, fmt.Errorf("parsing trace %d: %w", i, err)
		}
		e.Traces = append(e.Traces, trace)
	}
	return e, nil
}

// Summary aggregates the loaded traces.
type Summary struct {
	Traces            int `json:"traces"`
	DistinctSchedules int `json:"distinct_schedules"`
	Deadlocks         int `json:"deadlocks"`
	Violations        int `json:"violations"`
	Aborted           int `json:"aborted"`
}

func (e *Explorer) Summary() Summary {
	s := Summary{Traces: len(e.Traces)}
	distinct := make(map[string]bool)
	for _, t := range e.Traces {
		distinct[t.Hash()] = true
		if t.Deadlock {
			s.Deadlocks++
		}
		if !t.InvariantHolds {
			s.Violations++
		}
		if t.Aborted {
			s.Aborted++
		}
	}
	s.DistinctSchedules = len(distinct)
	return s
}

// DistinctSchedules maps each schedule, printed as text, to the number of
// traces that produced it.
func (e *Explorer) DistinctSchedules() map[string]int {
	schedules := make(map[string]int)
	for _, t := range e.Traces {
		schedules[fmt.Sprint(t.Schedule)] += 1
	}
	return schedules
}

func (e *Explorer) formatTrace(i int) string {
	t := e.Traces[i]
	out := fmt.Sprintf("Execution %d\nSchedule: %v\n", t.Execution, t.Schedule)
	for _, ev := range t.Events {
		out += fmt.Sprintf("  thread %d: %s %d\n", ev.Thread, ev.Op, ev.Target)
	}
	if t.Deadlock {
		out += "Outcome: deadlock\n"
	} else if t.Aborted {
		out += fmt.Sprintf("Outcome: aborted (%s)\n", t.AbortReason)
	} else if t.InvariantHolds {
		out += "Outcome: invariant holds\n"
	} else {
		out += "Outcome: invariant violated\n"
	}
	if t.Err != "" {
		out += fmt.Sprintf("Error: %s\n", t.Err)
	}
	return out
}
