package result

import (
	"fmt"
	"sort"

	"github.com/yaptide/geomc/geometry"
)

// Mode selects how deposits are aggregated.
type Mode string

// Recognized aggregation modes.
const (
	// ModeBrief accumulates one scalar deposit per event and volume.
	ModeBrief Mode = "brief"
	// ModeDetailed keeps individual line and point deposits.
	ModeDetailed Mode = "detailed"
)

// ParseMode maps a mode string to a Mode.
func ParseMode(s string) (Mode, error) {
	switch Mode(s) {
	case ModeBrief, ModeDetailed:
		return Mode(s), nil
	case "":
		return ModeBrief, nil
	}
	return ModeBrief, fmt.Errorf("unknown aggregation mode '%s'", s)
}

// Accumulator groups post-transport records by the volume path where they
// were recorded, honouring volume roles. Accumulation is commutative, so
// partition-local accumulators can be merged in any order.
type Accumulator struct {
	mode      Mode
	geometry  *geometry.Geometry
	particles map[string][]ParticleRecord
	deposits  map[string][]DepositRecord
	totals    map[string]map[int64]float64
}

// NewAccumulator returns an empty accumulator over the given geometry.
func NewAccumulator(geo *geometry.Geometry, mode Mode) (*Accumulator, error) {
	mode, err := ParseMode(string(mode))
	if err != nil {
		return nil, err
	}
	return &Accumulator{
		mode:      mode,
		geometry:  geo,
		particles: make(map[string][]ParticleRecord),
		deposits:  make(map[string][]DepositRecord),
		totals:    make(map[string]map[int64]float64),
	}, nil
}

// Mode returns the deposit aggregation mode.
func (a *Accumulator) Mode() Mode { return a.mode }

// Crossing records a particle crossing the boundary of the volume at the
// given path. The record is kept only when the volume role matches the
// crossing direction.
func (a *Accumulator) Crossing(path string, outgoing bool, rec ParticleRecord) error {
	v, err := a.geometry.Find(path)
	if err != nil {
		return err
	}
	role := v.Role()
	if (outgoing && role != geometry.RoleCatchOutgoing) ||
		(!outgoing && role != geometry.RoleCatchIngoing) {
		return nil
	}
	key := v.Path()
	a.particles[key] = append(a.particles[key], rec)
	return nil
}

// Deposit records an energy deposit within the volume at the given path.
// The record is kept only when the volume role is record_deposits; in
// brief mode deposits collapse to per-event scalar totals.
func (a *Accumulator) Deposit(path string, rec DepositRecord) error {
	v, err := a.geometry.Find(path)
	if err != nil {
		return err
	}
	if v.Role() != geometry.RoleRecordDeposits {
		return nil
	}
	key := v.Path()
	if a.mode == ModeBrief {
		if a.totals[key] == nil {
			a.totals[key] = make(map[int64]float64)
		}
		a.totals[key][rec.Event] += rec.Deposit.DepositedValue()
		return nil
	}
	a.deposits[key] = append(a.deposits[key], rec)
	return nil
}

// Merge folds a partition-local accumulator into a. Both must share the
// aggregation mode.
func (a *Accumulator) Merge(b *Accumulator) error {
	if a.mode != b.mode {
		return fmt.Errorf("cannot merge '%s' into '%s' aggregates", b.mode, a.mode)
	}
	for path, recs := range b.particles {
		a.particles[path] = append(a.particles[path], recs...)
	}
	for path, recs := range b.deposits {
		a.deposits[path] = append(a.deposits[path], recs...)
	}
	for path, totals := range b.totals {
		if a.totals[path] == nil {
			a.totals[path] = make(map[int64]float64)
		}
		for event, value := range totals {
			a.totals[path][event] += value
		}
	}
	return nil
}

// Particles returns caught particle records, keyed by volume path. Paths
// with no recorded events are absent.
func (a *Accumulator) Particles() map[string][]ParticleRecord {
	return a.particles
}

// Deposits returns deposit records keyed by volume path. In brief mode the
// per-event totals materialize as point deposits at the volume origin,
// sorted by event.
func (a *Accumulator) Deposits() map[string][]DepositRecord {
	if a.mode == ModeDetailed {
		return a.deposits
	}
	out := make(map[string][]DepositRecord, len(a.totals))
	for path, totals := range a.totals {
		events := make([]int64, 0, len(totals))
		for event := range totals {
			events = append(events, event)
		}
		sort.Slice(events, func(i, j int) bool { return events[i] < events[j] })
		recs := make([]DepositRecord, 0, len(events))
		for _, event := range events {
			recs = append(recs, DepositRecord{
				Deposit: PointDeposit{Value: totals[event]},
				Event:   event,
			})
		}
		out[path] = recs
	}
	return out
}
