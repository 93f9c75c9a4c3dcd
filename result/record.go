// Package result defines the particle and deposit records produced around
// a transport run, and their aggregation by volume path.
package result

import (
	"encoding/json"
	"fmt"

	"github.com/yaptide/geomc/geometry"
	"github.com/yaptide/geomc/utils"
)

// ParticleRecord is one primary or boundary-crossing particle. A zero
// Weight means the implicit uniform weight of 1.
type ParticleRecord struct {
	Pid         int32          `json:"pid"`
	Energy      float64        `json:"energy"`
	Position    geometry.Point `json:"position"`
	Direction   geometry.Vec3D `json:"direction"`
	Weight      float64        `json:"weight,omitempty"`
	Event       int64          `json:"event"`
	RandomIndex uint64         `json:"randomIndex,omitempty"`
}

// Deposit is the closed set of energy deposit payloads.
type Deposit interface {
	// DepositedValue returns the deposited energy.
	DepositedValue() float64
}

// PointDeposit is a deposit collapsed to a single position.
type PointDeposit struct {
	Value    float64        `json:"value"`
	Position geometry.Point `json:"position"`
}

// DepositedValue implements Deposit.
func (d PointDeposit) DepositedValue() float64 { return d.Value }

// MarshalJSON json.Marshaller implementation.
func (d PointDeposit) MarshalJSON() ([]byte, error) {
	type Alias PointDeposit
	return json.Marshal(struct {
		Type string `json:"type"`
		Alias
	}{
		Type:  "point",
		Alias: Alias(d),
	})
}

// LineDeposit is a continuous energy loss along a track segment, with
// local start and end coordinates.
type LineDeposit struct {
	Value float64        `json:"value"`
	Start geometry.Point `json:"start"`
	End   geometry.Point `json:"end"`
}

// DepositedValue implements Deposit.
func (d LineDeposit) DepositedValue() float64 { return d.Value }

// MarshalJSON json.Marshaller implementation.
func (d LineDeposit) MarshalJSON() ([]byte, error) {
	type Alias LineDeposit
	return json.Marshal(struct {
		Type string `json:"type"`
		Alias
	}{
		Type:  "line",
		Alias: Alias(d),
	})
}

// DepositRecord is one recorded energy deposit.
type DepositRecord struct {
	Deposit     Deposit `json:"deposit"`
	Event       int64   `json:"event"`
	Weight      float64 `json:"weight,omitempty"`
	RandomIndex uint64  `json:"randomIndex,omitempty"`
}

var depositTypes = map[string]func() interface{}{
	"point": func() interface{} { return &PointDeposit{} },
	"line":  func() interface{} { return &LineDeposit{} },
}

// UnmarshalJSON custom Unmarshal function. The deposit payload type is
// recognized by deposit/type in json.
func (r *DepositRecord) UnmarshalJSON(b []byte) error {
	type rawRecord struct {
		DepositRaw  json.RawMessage `json:"deposit"`
		Event       int64           `json:"event"`
		Weight      float64         `json:"weight,omitempty"`
		RandomIndex uint64          `json:"randomIndex,omitempty"`
	}

	var raw rawRecord
	if err := json.Unmarshal(b, &raw); err != nil {
		return err
	}
	r.Event = raw.Event
	r.Weight = raw.Weight
	r.RandomIndex = raw.RandomIndex

	deposit, err := utils.TypeBasedUnmarshallJSON(raw.DepositRaw, depositTypes)
	if err != nil {
		return err
	}
	typed, ok := deposit.(Deposit)
	if !ok {
		return fmt.Errorf("unknown deposit type")
	}
	r.Deposit = typed
	return nil
}
