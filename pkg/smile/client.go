package smile

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"go.uber.org/zap"
	"golang.org/x/mod/semver"
)

const (
	smileUsername = "smile"

	// Legacy gateways (firmware < 3.2.0) can take very long to answer a
	// full state read.
	defaultTimeout = 30 * time.Second
	modernTimeout  = 10 * time.Second
)

// TimeoutForVersion picks the request timeout based on gateway firmware.
// Firmware >= 3.2.0 means a latest-generation device that answers fast.
func TimeoutForVersion(version string) time.Duration {
	if version == "" {
		return defaultTimeout
	}
	if semver.Compare("v"+version, "v3.2.0") >= 0 {
		return modernTimeout
	}
	return defaultTimeout
}

// HTTPGateway talks to the gateway's local REST endpoint using the fixed
// "smile" user and the 8-character ID printed on the device.
type HTTPGateway struct {
	baseURL  string
	password string
	client   *http.Client
	logger   *zap.Logger
}

func CreateHTTPGateway(host string, port uint, password string, logger *zap.Logger) *HTTPGateway {
	return &HTTPGateway{
		baseURL:  fmt.Sprintf("http://%s:%d", host, port),
		password: password,
		client:   &http.Client{Timeout: defaultTimeout},
		logger:   logger,
	}
}

// Connect probes the gateway and adjusts the request timeout to the
// firmware generation.
func (g *HTTPGateway) Connect() error {
	snap, err := g.FetchSnapshot()
	if err != nil {
		return fmt.Errorf("smile connect: %w", err)
	}
	g.client.Timeout = TimeoutForVersion(snap.Gateway.Version)
	g.logger.Info("connected to smile gateway",
		zap.String("name", snap.Gateway.SmileName),
		zap.String("version", snap.Gateway.Version),
		zap.Duration("timeout", g.client.Timeout))
	return nil
}

func (g *HTTPGateway) Close() error {
	g.client.CloseIdleConnections()
	return nil
}

func (g *HTTPGateway) FetchSnapshot() (*Snapshot, error) {
	req, err := http.NewRequest(http.MethodGet, g.baseURL+"/core/state", nil)
	if err != nil {
		return nil, err
	}
	req.SetBasicAuth(smileUsername, g.password)
	resp, err := g.client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("smile state read: unexpected status %s", resp.Status)
	}
	var snap Snapshot
	if err := json.NewDecoder(resp.Body).Decode(&snap); err != nil {
		return nil, fmt.Errorf("smile state decode: %w", err)
	}
	return &snap, nil
}

func (g *HTTPGateway) SetTemperature(location string, setpoints map[string]float64) error {
	return g.put(fmt.Sprintf("/core/locations/%s/thermostat", location), setpoints)
}

func (g *HTTPGateway) SetScheduleState(location, schedule, state string) error {
	return g.put(fmt.Sprintf("/core/locations/%s/schedule", location), map[string]string{
		"schedule": schedule,
		"state":    state,
	})
}

func (g *HTTPGateway) SetPreset(location, preset string) error {
	return g.put(fmt.Sprintf("/core/locations/%s/preset", location), map[string]string{
		"preset": preset,
	})
}

func (g *HTTPGateway) SetNumberSetpoint(key string, value float64) error {
	return g.put(fmt.Sprintf("/core/gateway/%s", key), map[string]float64{
		KeySetpoint: value,
	})
}

func (g *HTTPGateway) put(path string, payload any) error {
	body, err := json.Marshal(payload)
	if err != nil {
		return err
	}
	req, err := http.NewRequest(http.MethodPut, g.baseURL+path, bytes.NewReader(body))
	if err != nil {
		return err
	}
	req.SetBasicAuth(smileUsername, g.password)
	req.Header.Set("Content-Type", "application/json")
	resp, err := g.client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK && resp.StatusCode != http.StatusAccepted {
		return fmt.Errorf("smile command %s: unexpected status %s", path, resp.Status)
	}
	return nil
}

// ensure interface compliance
var _ Gateway = (*HTTPGateway)(nil)
