package explore

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"

	"github.com/interleave-dev/interleave/util"
)

// EventRecord is one observable event inside a trace log.
type EventRecord struct {
	Thread int    `json:"thread"`
	Op     string `json:"op"`
	Target uint64 `json:"target"`
}

// TraceLog records one execution: the schedule, the reported events and
// the outcome.
type TraceLog struct {
	Execution      int           `json:"execution"`
	Schedule       []int         `json:"schedule"`
	Events         []EventRecord `json:"events"`
	Deadlock       bool          `json:"deadlock"`
	Aborted        bool          `json:"aborted"`
	AbortReason    string        `json:"abort_reason,omitempty"`
	InvariantHolds bool          `json:"invariant_holds"`
	Err            string        `json:"error,omitempty"`
}

// Hash identifies the schedule of this trace.
func (t *TraceLog) Hash() string {
	sum := sha256.Sum256([]byte(fmt.Sprint(t.Schedule)))
	return hex.EncodeToString(sum[:])
}

// Failure is one execution that violated the invariant or deadlocked.
type Failure struct {
	Execution int   `json:"execution"`
	Trace     []int `json:"trace"`
	Deadlock  bool  `json:"deadlock"`
}

// Result summarizes an exploration.
type Result struct {
	// PropertyHolds is true when no execution violated the invariant or
	// deadlocked.
	PropertyHolds bool
	// ExecutionsExplored counts the executions run.
	ExecutionsExplored int
	// Counterexample is the schedule of the first failing execution.
	Counterexample []int
	Failures       []Failure
	Deadlocks      int
	// Incomplete is set when exploration stopped at a limit rather than
	// exhausting the tree.
	Incomplete bool
	Traces     []*TraceLog
}

// Recorder appends trace logs to a JSONL file.
type Recorder struct {
	path string
}

func NewRecorder(path string) *Recorder {
	return &Recorder{path: path}
}

func (r *Recorder) Record(trace *TraceLog) error {
	bs, err := json.Marshal(trace)
	if err != nil {
		return err
	}
	return util.AppendToFile(r.path, string(bs))
}
