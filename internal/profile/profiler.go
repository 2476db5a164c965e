package profile

import (
	"fmt"
	"runtime"
	"strings"

	"github.com/cwbudde/algo-prof/internal/cpu"
)

// DefaultCapacity is the zone table size used when Config.Capacity is zero.
const DefaultCapacity = 256

// Config configures a Profiler.
type Config struct {
	// Capacity is the number of zone slots. Zone indices must be in [0, Capacity).
	Capacity int

	// Frequency is the tick frequency in Hz used for millisecond and bandwidth
	// figures. Zero disables real-time output.
	Frequency uint64

	// Clock reads the current tick. Defaults to cpu.ReadTicks.
	Clock func() uint64
}

// Record is the accumulated state of one zone.
type Record struct {
	Label     string
	Index     int
	Exclusive uint64
	Inclusive uint64
	Hits      uint64
	Bytes     uint64
}

type frame struct {
	index int
	seq   uint64
}

// Profiler is a zone profiling session.
type Profiler struct {
	clock      func() uint64
	freq       uint64
	records    []Record
	registered []bool
	stack      []frame
	seq        uint64

	start   uint64
	stop    uint64
	running bool
}

// New creates a profiler session.
func New(cfg Config) *Profiler {
	capacity := cfg.Capacity
	if capacity <= 0 {
		capacity = DefaultCapacity
	}

	clock := cfg.Clock
	if clock == nil {
		clock = cpu.ReadTicks
	}

	return &Profiler{
		clock:      clock,
		freq:       cfg.Frequency,
		records:    make([]Record, capacity),
		registered: make([]bool, capacity),
		stack:      make([]frame, 0, 64),
	}
}

// Capacity returns the number of zone slots.
func (p *Profiler) Capacity() int {
	if p == nil {
		return 0
	}

	return len(p.records)
}

// Frequency returns the tick frequency the report uses.
func (p *Profiler) Frequency() uint64 {
	if p == nil {
		return 0
	}

	return p.freq
}

// SetFrequency sets the tick frequency the report uses. Estimating the
// frequency takes time, so callers often do it after the measured run.
func (p *Profiler) SetFrequency(freq uint64) {
	if p != nil {
		p.freq = freq
	}
}

// Register reserves a zone slot under label without opening it.
func (p *Profiler) Register(label string, index int) error {
	if p == nil {
		return nil
	}

	if index < 0 || index >= len(p.records) {
		return fmt.Errorf("%w: zone %q index %d, capacity %d", ErrCapacityExceeded, label, index, len(p.records))
	}

	if p.registered[index] {
		if p.records[index].Label != label {
			return fmt.Errorf("%w: index %d is %q, got %q", ErrLabelConflict, index, p.records[index].Label, label)
		}

		return nil
	}

	p.registered[index] = true
	p.records[index] = Record{Label: label, Index: index}

	return nil
}

// Begin opens zone index, registering it under label on first use, and
// attributes bytes to it for bandwidth reporting. Re-registering an index
// keeps the first label.
//
// Begin panics with an error wrapping ErrCapacityExceeded if index is outside
// the zone table: dropping the zone would silently lose data.
func (p *Profiler) Begin(label string, index int, bytes uint64) Zone {
	if p == nil {
		return Zone{}
	}

	if index < 0 || index >= len(p.records) {
		panic(fmt.Errorf("%w: zone %q index %d, capacity %d", ErrCapacityExceeded, label, index, len(p.records)))
	}

	if !p.registered[index] {
		p.registered[index] = true
		p.records[index] = Record{Label: label, Index: index}
	}

	rec := &p.records[index]
	rec.Bytes += bytes
	rec.Hits++

	p.seq++
	p.stack = append(p.stack, frame{index: index, seq: p.seq})

	return Zone{
		p:            p,
		index:        index,
		seq:          p.seq,
		depth:        len(p.stack),
		oldInclusive: rec.Inclusive,
		start:        p.clock(),
	}
}

// BeginFunc opens zone index labelled with the calling function's name.
func (p *Profiler) BeginFunc(index int, bytes uint64) Zone {
	if p == nil {
		return Zone{}
	}

	return p.Begin(callerName(2), index, bytes)
}

// BeginFuncSkip is BeginFunc for wrappers: skip is the number of wrapper
// frames between the function to name and this call.
func (p *Profiler) BeginFuncSkip(index int, bytes uint64, skip int) Zone {
	if p == nil {
		return Zone{}
	}

	return p.Begin(callerName(2+skip), index, bytes)
}

// Depth returns the number of currently open zones.
func (p *Profiler) Depth() int {
	if p == nil {
		return 0
	}

	return len(p.stack)
}

// Start marks the beginning of the session total used for percentages.
func (p *Profiler) Start() {
	if p == nil {
		return
	}

	p.running = true
	p.stop = 0
	p.start = p.clock()
}

// Stop marks the end of the session total and returns it.
func (p *Profiler) Stop() uint64 {
	if p == nil {
		return 0
	}

	p.stop = p.clock()
	p.running = false

	return p.stop - p.start
}

// Elapsed returns the session total: up to now while running, otherwise
// between Start and Stop.
func (p *Profiler) Elapsed() uint64 {
	if p == nil {
		return 0
	}

	if p.running {
		return p.clock() - p.start
	}

	return p.stop - p.start
}

// Reset clears every zone so indices can be reused for new regions.
// It fails while zones are still open.
func (p *Profiler) Reset() error {
	if p == nil {
		return nil
	}

	if len(p.stack) > 0 {
		return fmt.Errorf("%w: %d open", ErrZonesActive, len(p.stack))
	}

	clear(p.records)
	clear(p.registered)
	p.start, p.stop, p.running = 0, 0, false

	return nil
}

// Zones returns a copy of every registered zone in index order.
func (p *Profiler) Zones() []Record {
	if p == nil {
		return nil
	}

	var out []Record
	for i, ok := range p.registered {
		if ok {
			out = append(out, p.records[i])
		}
	}

	return out
}

// Zone is an open measurement handle returned by Begin.
type Zone struct {
	p            *Profiler
	index        int
	seq          uint64
	depth        int
	oldInclusive uint64
	start        uint64
}

// End closes the zone. It must be called exactly once, in LIFO order with
// respect to other zones of the same profiler; otherwise it panics with an
// error wrapping ErrUnbalancedZone.
func (z Zone) End() {
	p := z.p
	if p == nil {
		return
	}

	elapsed := p.clock() - z.start

	if len(p.stack) != z.depth || p.stack[z.depth-1].seq != z.seq {
		panic(fmt.Errorf("%w: zone %q opened at depth %d, stack depth is %d",
			ErrUnbalancedZone, p.records[z.index].Label, z.depth, len(p.stack)))
	}

	p.stack = p.stack[:z.depth-1]

	if z.depth > 1 {
		parent := &p.records[p.stack[z.depth-2].index]
		parent.Exclusive -= elapsed
	}

	rec := &p.records[z.index]
	rec.Exclusive += elapsed
	rec.Inclusive = z.oldInclusive + elapsed
}

// callerName returns the short name of the function skip frames up,
// e.g. "(*Parser).Next" or "main.func1".
func callerName(skip int) string {
	pc, _, _, ok := runtime.Caller(skip)
	if !ok {
		return "unknown"
	}

	fn := runtime.FuncForPC(pc)
	if fn == nil {
		return "unknown"
	}

	name := fn.Name()
	if i := strings.LastIndexByte(name, '/'); i >= 0 {
		name = name[i+1:]
	}

	if i := strings.IndexByte(name, '.'); i >= 0 {
		name = name[i+1:]
	}

	return name
}
