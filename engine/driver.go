// Package engine drives the simulation on a fixed tick and serializes spawn
// requests from input onto the tick goroutine
package engine

import (
	"context"
	"io"
	"sync/atomic"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/lixenwraith/smart-road/clock"
	"github.com/lixenwraith/smart-road/traffic"
)

// RequestKind identifies what a Request asks the driver to do
type RequestKind int

const (
	RequestSpawn RequestKind = iota
	RequestSpawnRandom
	RequestQuit
)

// Request is a discrete host event mapped from input
type Request struct {
	Kind     RequestKind
	Approach traffic.Approach
}

// Spawn builds a spawn request for one approach
func Spawn(a traffic.Approach) Request {
	return Request{Kind: RequestSpawn, Approach: a}
}

// Frame is the read-only state handed to the renderer after each tick
type Frame struct {
	Tick     uint64
	Vehicles []traffic.Vehicle
	Stats    traffic.Stats
	Pending  int
}

// Observer is notified of per-tick statistic changes
type Observer interface {
	OnGiveWay(n int)
	OnPassed(n int)
}

// Options configures a Driver
type Options struct {
	TickInterval time.Duration
	Debounce     time.Duration
	// Requests buffered between the input goroutine and the tick loop
	QueueSize int
	// Accepted spawns waiting for a clear entry slot
	MaxPending int
	Clock      clock.Provider
	Logger     logrus.FieldLogger
}

const (
	defaultQueueSize  = 64
	defaultMaxPending = 16
)

// Driver owns a Simulation and is its only writer
type Driver struct {
	sim *traffic.Simulation
	opt Options
	log logrus.FieldLogger

	requests chan Request
	pending  []traffic.Approach
	// Zero until the first accepted spawn
	lastAccepted time.Time

	observers []Observer
	onFrame   func(Frame)

	tickCount atomic.Uint64
	running   atomic.Bool
}

// NewDriver creates a driver around sim
func NewDriver(sim *traffic.Simulation, opt Options) *Driver {
	if opt.QueueSize <= 0 {
		opt.QueueSize = defaultQueueSize
	}
	if opt.MaxPending <= 0 {
		opt.MaxPending = defaultMaxPending
	}
	if opt.Clock == nil {
		opt.Clock = clock.NewSystem()
	}
	log := opt.Logger
	if log == nil {
		l := logrus.New()
		l.SetOutput(io.Discard)
		log = l
	}

	return &Driver{
		sim:      sim,
		opt:      opt,
		log:      log,
		requests: make(chan Request, opt.QueueSize),
	}
}

// AddObserver registers o, must be called before Run
func (d *Driver) AddObserver(o Observer) {
	d.observers = append(d.observers, o)
}

// OnFrame sets the per-tick frame callback, must be called before Run
func (d *Driver) OnFrame(fn func(Frame)) {
	d.onFrame = fn
}

// Submit hands a request to the tick goroutine without blocking
// Returns false when the queue is full and the request was dropped
func (d *Driver) Submit(r Request) bool {
	select {
	case d.requests <- r:
		return true
	default:
		d.log.WithField("kind", r.Kind).Warn("request queue full, dropping")
		return false
	}
}

// Ticks returns the number of completed ticks
func (d *Driver) Ticks() uint64 {
	return d.tickCount.Load()
}

// Pending returns the number of accepted spawns waiting for a clear slot
func (d *Driver) Pending() int {
	return len(d.pending)
}

// Run ticks the simulation until ctx is done or a quit request arrives
// Requests and ticks are handled on the calling goroutine only
func (d *Driver) Run(ctx context.Context) traffic.Stats {
	if !d.running.CompareAndSwap(false, true) {
		panic("engine: driver already running")
	}
	defer d.running.Store(false)

	ticker := time.NewTicker(d.opt.TickInterval)
	defer ticker.Stop()

	d.log.WithField("tick", d.opt.TickInterval).Info("simulation started")
	for {
		select {
		case <-ctx.Done():
			return d.finish("cancelled")
		case r := <-d.requests:
			if r.Kind == RequestQuit {
				return d.finish("quit")
			}
			d.accept(r)
		case <-ticker.C:
			d.Step()
		}
	}
}

func (d *Driver) finish(reason string) traffic.Stats {
	stats := d.sim.Stats()
	d.log.WithFields(logrus.Fields{
		"reason":    reason,
		"ticks":     d.Ticks(),
		"passed":    stats.Passed,
		"give_ways": stats.GiveWays,
	}).Info("simulation stopped")
	return stats
}

// accept applies the debounce window and queues spawn requests
// Requests within Debounce of the last accepted one are ignored
func (d *Driver) accept(r Request) bool {
	now := d.opt.Clock.Now()
	if !d.lastAccepted.IsZero() && now.Sub(d.lastAccepted) <= d.opt.Debounce {
		return false
	}

	var entry traffic.Approach
	switch r.Kind {
	case RequestSpawn:
		entry = r.Approach
	case RequestSpawnRandom:
		entry = d.sim.RandomApproach()
	default:
		return false
	}
	if !entry.Valid() {
		d.log.WithField("approach", entry).Warn("ignoring spawn for unknown approach")
		return false
	}
	d.lastAccepted = now

	if len(d.pending) >= d.opt.MaxPending {
		d.log.WithField("approach", entry).Warn("spawn backlog full, dropping")
		return false
	}
	d.pending = append(d.pending, entry)
	return true
}

// Step runs one tick: spawn pending vehicles whose slots are clear, advance,
// notify observers and emit a frame
func (d *Driver) Step() {
	d.drainPending()

	before := d.sim.Stats()
	d.sim.Advance()
	after := d.sim.Stats()

	if n := after.GiveWays - before.GiveWays; n > 0 {
		for _, o := range d.observers {
			o.OnGiveWay(n)
		}
	}
	if n := after.Passed - before.Passed; n > 0 {
		for _, o := range d.observers {
			o.OnPassed(n)
		}
	}

	tick := d.tickCount.Add(1)
	if d.onFrame != nil {
		d.onFrame(Frame{
			Tick:     tick,
			Vehicles: d.sim.Vehicles(),
			Stats:    after,
			Pending:  len(d.pending),
		})
	}
}

// drainPending spawns in request order; a blocked approach keeps its place
// without holding back requests for other approaches
func (d *Driver) drainPending() {
	kept := d.pending[:0]
	for _, entry := range d.pending {
		if d.sim.CanSpawn(entry) {
			d.sim.Spawn(entry)
			continue
		}
		kept = append(kept, entry)
	}
	d.pending = kept
}
