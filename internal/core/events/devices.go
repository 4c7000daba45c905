package events

import (
	"crypto/md5"
	"encoding/hex"
	"fmt"

	. "smile2mqtt/internal/core/domain"
	"smile2mqtt/pkg/smile"

	"github.com/carlmjohnson/versioninfo"
)

func BridgeDevice(baseTopic string) Device {
	return Device{
		Id:           fmt.Sprintf("smile_bridge_%s", md5HashShort(baseTopic)),
		Manufacturer: "Plugwise",
		Model:        "smile2mqtt",
		Version:      versioninfo.Short(),
		Name:         fmt.Sprintf("Smile bridge %s", md5HashShort(baseTopic)),
	}
}

func GatewayDevice(info smile.GatewayInfo, device smile.Device) Device {
	model, _ := device.String(smile.KeyModel)
	vendor, _ := device.String(smile.KeyVendor)
	return Device{
		Id:           fmt.Sprintf("smile_gw_%s", md5HashShort(info.GatewayID)),
		Version:      info.Version,
		Manufacturer: vendor,
		Model:        model,
		Name:         info.SmileName,
	}
}

// ApplianceDevice builds the HA device record for a non-gateway appliance,
// attached to the gateway device.
func ApplianceDevice(id string, device smile.Device, gatewayDevice Device) Device {
	model, _ := device.String(smile.KeyModel)
	vendor, _ := device.String(smile.KeyVendor)
	version, _ := device.String(smile.KeyFirmware)
	return Device{
		Id:           fmt.Sprintf("smile_dev_%s", md5HashShort(id)),
		Version:      version,
		Manufacturer: vendor,
		Model:        model,
		Name:         device.Name(),
		ViaDevice:    gatewayDevice.Id,
	}
}

func IdDevice(device Device) Device {
	return Device{
		Id:   device.Id,
		Name: device.Name,
	}
}

// Entity id scheme shared by discovery, state topics and command parsing.

func SensorEntityId(deviceId, key string) string {
	return fmt.Sprintf("%s_%s", md5HashShort(deviceId), key)
}

func ClimateEntityId(deviceId string) string {
	return fmt.Sprintf("%s_climate", md5HashShort(deviceId))
}

func NumberEntityId(deviceId, key string) string {
	return fmt.Sprintf("%s_%s", md5HashShort(deviceId), key)
}

func uniqueId(baseId, id string) string {
	return fmt.Sprintf("uid_%s_%s", baseId, id)
}

func md5Hash(text string) string {
	hash := md5.Sum([]byte(text))
	return hex.EncodeToString(hash[:])
}

func md5HashShort(text string) string {
	hash := md5Hash(text)
	return hash[0:8]
}

func optionalBool(value bool) *bool {
	return &value
}
