package devicecmd

import "testing"

func intp(n int) *int { return &n }

func TestFormat(t *testing.T) {
	tests := []struct {
		name    string
		payload ResponsePayload
		want    string
	}{
		{
			name:    "device state text verbatim",
			payload: DeviceStateText{Text: "element 0: ON (level 80)"},
			want:    "element 0: ON (level 80)",
		},
		{
			name:    "ack code",
			payload: AckCode{Code: 7},
			want:    "ACK Code: 7",
		},
		{
			name: "wifi network list",
			payload: WifiNetworkList{Items: []WifiNetworkInfo{
				{SSID: "Home", RSSI: intp(-40)},
				{SSID: "Guest"},
			}},
			want: "Found 2 networks:\n  - Home\n  - Guest",
		},
		{
			name:    "wifi network list empty",
			payload: WifiNetworkList{},
			want:    "Found 0 networks:",
		},
		{
			name: "connectivity full",
			payload: ConnectivityList{Items: []ConnectivityInfo{
				{WifiConnected: true, CloudConnected: true, SSID: "Home", RSSI: intp(-40)},
			}},
			want: "Interface 0:\n  WiFi: Connected\n  Cloud: Connected\n  SSID: Home\n  RSSI: -40 dBm",
		},
		{
			name: "connectivity without association",
			payload: ConnectivityList{Items: []ConnectivityInfo{
				{WifiConnected: false, CloudConnected: false},
			}},
			want: "Interface 0:\n  WiFi: Disconnected\n  Cloud: Disconnected",
		},
		{
			name: "connectivity two interfaces",
			payload: ConnectivityList{Items: []ConnectivityInfo{
				{WifiConnected: true, CloudConnected: false, SSID: "Home"},
				{WifiConnected: false, CloudConnected: true},
			}},
			want: "Interface 0:\n  WiFi: Connected\n  Cloud: Disconnected\n  SSID: Home\n" +
				"Interface 1:\n  WiFi: Disconnected\n  Cloud: Connected",
		},
		{
			name:    "log block count",
			payload: LogBlockCount{Count: 12},
			want:    "Log Blocks: 12 entries",
		},
		{
			name:    "empty",
			payload: EmptyPayload{},
			want:    "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Format(tt.payload); got != tt.want {
				t.Errorf("Format() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestHasDisplayableData(t *testing.T) {
	payloads := []ResponsePayload{
		DeviceStateText{},
		AckCode{},
		ConnectivityList{},
		WifiNetworkList{},
		LogBlockCount{},
	}
	for _, p := range payloads {
		if !HasDisplayableData(p) {
			t.Errorf("HasDisplayableData(%T) = false, want true", p)
		}
	}

	if HasDisplayableData(EmptyPayload{}) {
		t.Error("HasDisplayableData(EmptyPayload) = true, want false")
	}
}
