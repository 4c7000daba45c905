package service

import (
	"testing"

	"smile2mqtt/pkg/smile"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDirectKeyResolvesFromSensors(t *testing.T) {
	device := smile.Device{
		"sensors": map[string]any{
			"temperature": 20.4,
		},
	}

	v, ok := Resolve(DirectKey("temperature"), device)
	require.True(t, ok)
	assert.Equal(t, 20.4, v)
}

func TestDirectKeyMissingIsNotZero(t *testing.T) {
	device := smile.Device{
		"sensors": map[string]any{
			"temperature": 0.0,
		},
	}

	// a stored zero resolves, a missing key does not
	v, ok := Resolve(DirectKey("temperature"), device)
	require.True(t, ok)
	assert.Equal(t, 0.0, v)

	_, ok = Resolve(DirectKey("humidity"), device)
	assert.False(t, ok)
}

func TestNestedPathWalksSubMaps(t *testing.T) {
	device := smile.Device{
		"maximum_boiler_temperature": map[string]any{
			"setpoint":    60.0,
			"lower_bound": 25.0,
		},
	}

	v, ok := Resolve(NestedPath{"maximum_boiler_temperature", "setpoint"}, device)
	require.True(t, ok)
	assert.Equal(t, 60.0, v)

	_, ok = Resolve(NestedPath{"maximum_boiler_temperature", "upper_bound"}, device)
	assert.False(t, ok)

	_, ok = Resolve(NestedPath{"no_such_map", "setpoint"}, device)
	assert.False(t, ok)
}

func TestValueFuncComputes(t *testing.T) {
	device := smile.Device{
		"sensors": map[string]any{
			"electricity_consumed_point": 250.0,
			"electricity_produced_point": 100.0,
		},
	}

	net := ValueFunc(func(d smile.Device) (float64, bool) {
		consumed, okC := d.Sensors().Float("electricity_consumed_point")
		produced, okP := d.Sensors().Float("electricity_produced_point")
		if !okC || !okP {
			return 0, false
		}
		return consumed - produced, true
	})

	v, ok := Resolve(net, device)
	require.True(t, ok)
	assert.Equal(t, 150.0, v)
}

func TestNilSourceNeverResolves(t *testing.T) {
	device := smile.Device{
		"sensors": map[string]any{"temperature": 20.4},
	}

	_, ok := Resolve(nil, device)
	assert.False(t, ok)
}

func TestCheckValueSource(t *testing.T) {
	assert.Error(t, CheckValueSource(nil))
	assert.Error(t, CheckValueSource(DirectKey("")))
	assert.Error(t, CheckValueSource(NestedPath{}))
	assert.Error(t, CheckValueSource(ValueFunc(nil)))

	assert.NoError(t, CheckValueSource(DirectKey("temperature")))
	assert.NoError(t, CheckValueSource(NestedPath{"a", "b"}))
	assert.NoError(t, CheckValueSource(ValueFunc(func(smile.Device) (float64, bool) { return 0, true })))
}
