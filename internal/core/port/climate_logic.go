package port

import (
	"smile2mqtt/internal/core/domain"
	"smile2mqtt/pkg/smile"
)

// ClimateLogic derives Home Assistant climate state from device records
// and validates climate commands. Implementations are pure; they never
// talk to the gateway.
type ClimateLogic interface {
	DeriveAction(device, heater smile.Device) string
	DeriveAvailableModes(device, heater smile.Device, coolingPresent bool) []string
	DeriveReportedMode(device smile.Device, modes []string) string
	DeriveCapabilities(device, heater smile.Device, coolingPresent bool) domain.ClimateCapabilities
	ValidateSetpoints(setpoints map[string]float64, min, max float64) error
	ScheduleStateForMode(mode string) string
}
