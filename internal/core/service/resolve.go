package service

import (
	"errors"

	"smile2mqtt/pkg/smile"
)

// ValueSource selects where an entity descriptor reads its numeric value
// from within a device record. Exactly one concrete arm is in use per
// descriptor; a nil or empty source is a table configuration error caught
// by CheckValueSource before the bridge starts polling.
type ValueSource interface {
	resolve(device smile.Device) (float64, bool)
}

// DirectKey reads from the device's sensors sub-map.
type DirectKey string

func (k DirectKey) resolve(device smile.Device) (float64, bool) {
	return device.Sensors().Float(string(k))
}

// NestedPath walks nested maps from the device root. The last element is
// the value key, every element before it a sub-map.
type NestedPath []string

func (p NestedPath) resolve(device smile.Device) (float64, bool) {
	current := device
	for i, key := range p {
		if i == len(p)-1 {
			return current.Float(key)
		}
		next, ok := current.Map(key)
		if !ok {
			return 0, false
		}
		current = next
	}
	return 0, false
}

// ValueFunc computes a value from the device record.
type ValueFunc func(device smile.Device) (float64, bool)

func (f ValueFunc) resolve(device smile.Device) (float64, bool) {
	return f(device)
}

// Resolve reads a value through its source. A missing value is (0, false),
// never a zero reading.
func Resolve(source ValueSource, device smile.Device) (float64, bool) {
	if source == nil {
		return 0, false
	}
	return source.resolve(device)
}

// CheckValueSource rejects sources that can never resolve.
func CheckValueSource(source ValueSource) error {
	switch s := source.(type) {
	case nil:
		return errors.New("no value source configured")
	case DirectKey:
		if s == "" {
			return errors.New("empty direct key")
		}
	case NestedPath:
		if len(s) == 0 {
			return errors.New("empty nested path")
		}
	case ValueFunc:
		if s == nil {
			return errors.New("nil value function")
		}
	}
	return nil
}
