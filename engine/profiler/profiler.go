//go:build profile

package profiler

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/exec"
	"path/filepath"
	"sync"
	"time"
)

// Viewer is the command Dump launches on the written file.
var Viewer = "speedscope"

var ErrEmpty = errors.New("profiler: nothing recorded")

var std Recorder

// Init arms the package recorder with room for capacity scope edges.
func Init(capacity int) { std.Reset(capacity) }

// Start opens a named scope; call the returned func to close it.
func Start(name string) func() { return std.Start(name) }

// Dump writes the package recorder to the temp directory and opens it in
// Viewer. A viewer that fails to start is only logged.
func Dump() (string, error) {
	path := filepath.Join(os.TempDir(), "panes.profile.speedscope.json")
	if err := std.WriteFile(path); err != nil {
		return "", err
	}
	cmd := exec.Command(Viewer, path)
	cmd.SysProcAttr = hideWindowAttr()
	if err := cmd.Start(); err != nil {
		slog.Warn("profiler: viewer did not start", "viewer", Viewer, "path", path, "err", err)
	}
	return path, nil
}

// edge is one scope boundary.
type edge struct {
	at   int64 // ns
	name int32
	open bool
}

// Recorder keeps the newest scope edges in a fixed ring. The zero value
// records nothing until Reset.
type Recorder struct {
	mu    sync.Mutex
	ring  []edge
	n     uint64
	names []string
	ids   map[string]int32
}

func (r *Recorder) Reset(capacity int) {
	if capacity <= 0 {
		capacity = 1 << 20
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	r.ring = make([]edge, capacity)
	r.n = 0
	r.names = r.names[:0]
	r.ids = map[string]int32{}
}

func (r *Recorder) Start(name string) func() {
	r.mu.Lock()
	if r.ring == nil {
		r.mu.Unlock()
		return func() {}
	}
	id, ok := r.ids[name]
	if !ok {
		id = int32(len(r.names))
		r.ids[name] = id
		r.names = append(r.names, name)
	}
	start := time.Now().UnixNano()
	r.push(edge{at: start, name: id, open: true})
	r.mu.Unlock()

	return func() {
		end := max(time.Now().UnixNano(), start)
		r.mu.Lock()
		r.push(edge{at: end, name: id})
		r.mu.Unlock()
	}
}

func (r *Recorder) push(e edge) {
	r.ring[r.n%uint64(len(r.ring))] = e
	r.n++
}

// edges copies the retained edges oldest first.
func (r *Recorder) edges() ([]edge, []string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	size := uint64(len(r.ring))
	first := uint64(0)
	if r.n > size {
		first = r.n - size
	}
	out := make([]edge, 0, r.n-first)
	for i := first; i < r.n; i++ {
		out = append(out, r.ring[i%size])
	}
	return out, append([]string(nil), r.names...)
}

// WriteFile writes the speedscope document next to path and renames it
// into place.
func (r *Recorder) WriteFile(path string) error {
	tmp := path + ".tmp"
	f, err := os.Create(tmp)
	if err != nil {
		return fmt.Errorf("profiler: %w", err)
	}
	if err := r.WriteSpeedscope(f); err != nil {
		f.Close()
		os.Remove(tmp)
		return err
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("profiler: %w", err)
	}
	return os.Rename(tmp, path)
}

// WriteSpeedscope encodes the retained scopes as an evented speedscope
// profile. Closes without a matching open (lost to ring wraparound) are
// skipped and scopes still open at the end are closed at the last
// timestamp, so the output is always balanced.
func (r *Recorder) WriteSpeedscope(w io.Writer) error {
	edges, names := r.edges()
	if len(edges) == 0 {
		return ErrEmpty
	}

	base := edges[0].at
	var (
		events []ssEvent
		stack  []int32
		last   int64
	)
	for _, e := range edges {
		at := max((e.at-base)/1000, last)
		if e.open {
			stack = append(stack, e.name)
		} else {
			if len(stack) == 0 || stack[len(stack)-1] != e.name {
				continue
			}
			stack = stack[:len(stack)-1]
		}
		events = append(events, ssEvent{Type: kind(e.open), At: at, Frame: e.name})
		last = at
	}
	for i := len(stack) - 1; i >= 0; i-- {
		events = append(events, ssEvent{Type: "C", At: last, Frame: stack[i]})
	}
	if len(events) == 0 {
		return ErrEmpty
	}

	frames := make([]ssFrame, len(names))
	for i, n := range names {
		frames[i].Name = n
	}
	doc := ssFile{
		Schema: "https://www.speedscope.app/file-format-schema.json",
		Shared: ssShared{Frames: frames},
		Profiles: []ssProfile{{
			Type:     "evented",
			Name:     "panes frame scopes",
			Unit:     "microseconds",
			EndValue: last,
			Events:   events,
		}},
		Exporter: "panes-profiler",
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", " ")
	if err := enc.Encode(&doc); err != nil {
		return fmt.Errorf("profiler: encode: %w", err)
	}
	return nil
}

func kind(open bool) string {
	if open {
		return "O"
	}
	return "C"
}

type ssFile struct {
	Schema   string      `json:"$schema"`
	Shared   ssShared    `json:"shared"`
	Profiles []ssProfile `json:"profiles"`
	Exporter string      `json:"exporter,omitempty"`
}

type ssShared struct {
	Frames []ssFrame `json:"frames"`
}

type ssFrame struct {
	Name string `json:"name"`
}

type ssProfile struct {
	Type       string    `json:"type"`
	Name       string    `json:"name"`
	Unit       string    `json:"unit"`
	StartValue int64     `json:"startValue"`
	EndValue   int64     `json:"endValue"`
	Events     []ssEvent `json:"events"`
}

type ssEvent struct {
	Type  string `json:"type"`
	At    int64  `json:"at"`
	Frame int32  `json:"frame"`
}
