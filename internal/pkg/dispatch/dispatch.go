package dispatch

import (
	"context"
	"fmt"

	"github.com/RogoSolutions/iotcore-demo/internal/pkg/devicecmd"
	"github.com/RogoSolutions/iotcore-demo/internal/pkg/logging"
)

// Dispatcher executes one command against its string-encoded
// parameters and returns the payload the device answered with.  A
// returned error becomes the record's failure message.
type Dispatcher interface {
	Execute(ctx context.Context, def devicecmd.CommandDefinition, params map[string]string) (devicecmd.ResponsePayload, error)
}

// Simulated is the demonstration dispatcher: it coerces and validates
// the parameters exactly like the SDK transport would, then
// synthesises a plausible response instead of touching a device.
type Simulated struct{}

func NewSimulated() *Simulated {
	return &Simulated{}
}

func (s *Simulated) Execute(ctx context.Context, def devicecmd.CommandDefinition, params map[string]string) (devicecmd.ResponsePayload, error) {
	typed, err := CoerceAll(def, params)
	if err != nil {
		return devicecmd.EmptyPayload{}, err
	}

	select {
	case <-ctx.Done():
		return devicecmd.EmptyPayload{}, ctx.Err()
	default:
	}

	logging.Logger(ctx).Debugf("simulating %s with %d typed parameters", def.ID, len(typed))

	// Fire-and-forget operations produce no direct result.
	if !def.HasCompletionCallback {
		return devicecmd.EmptyPayload{}, nil
	}

	return s.respond(def, typed), nil
}

func (s *Simulated) respond(def devicecmd.CommandDefinition, typed map[string]any) devicecmd.ResponsePayload {
	rssiHome := -42
	rssiGuest := -67

	switch def.ID {
	case "get-device-state":
		return devicecmd.DeviceStateText{
			Text: fmt.Sprintf("Device %v\nelement 0: ON (level 80)\nelement 1: OFF", typed["devId"]),
		}

	case "scan-wifi":
		return devicecmd.WifiNetworkList{Items: []devicecmd.WifiNetworkInfo{
			{SSID: "RogoHome", RSSI: &rssiHome},
			{SSID: "RogoGuest", RSSI: &rssiGuest},
		}}

	case "get-wifi-status", "check-connectivity":
		return devicecmd.ConnectivityList{Items: []devicecmd.ConnectivityInfo{
			{WifiConnected: true, CloudConnected: true, SSID: "RogoHome", RSSI: &rssiHome},
		}}

	case "fetch-log-blocks":
		from, _ := typed["fromBlock"].(int64)
		count := 12 - int(from)
		if count < 0 {
			count = 0
		}
		return devicecmd.LogBlockCount{Count: count}
	}

	return devicecmd.AckCode{Code: 0}
}
