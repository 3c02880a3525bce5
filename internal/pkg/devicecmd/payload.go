package devicecmd

import (
	"fmt"
	"strings"
)

/*
 *   Response payloads: the closed set of shapes a command result can
 *   take.  Instances are built once, when the result arrives, and
 *   never modified.
 */

// ResponsePayload is implemented only by the types in this file.
type ResponsePayload interface {
	isResponsePayload()
}

// DeviceStateText carries a preformatted state report.
type DeviceStateText struct {
	Text string
}

// AckCode carries the numeric acknowledgement returned by the device.
type AckCode struct {
	Code int
}

// ConnectivityInfo describes one network interface of a device.
type ConnectivityInfo struct {
	WifiConnected  bool
	CloudConnected bool
	SSID           string // empty when the interface has no association
	RSSI           *int   // nil when the radio reports no signal reading
}

// ConnectivityList carries the per-interface connectivity report.
type ConnectivityList struct {
	Items []ConnectivityInfo
}

// WifiNetworkInfo is one network seen during a WiFi scan.
type WifiNetworkInfo struct {
	SSID string
	RSSI *int
}

// WifiNetworkList carries WiFi scan results.
type WifiNetworkList struct {
	Items []WifiNetworkInfo
}

// LogBlockCount carries the number of diagnostic log blocks fetched.
type LogBlockCount struct {
	Count int
}

// EmptyPayload is the result of commands that return nothing directly.
type EmptyPayload struct{}

func (DeviceStateText) isResponsePayload()  {}
func (AckCode) isResponsePayload()          {}
func (ConnectivityList) isResponsePayload() {}
func (WifiNetworkList) isResponsePayload()  {}
func (LogBlockCount) isResponsePayload()    {}
func (EmptyPayload) isResponsePayload()     {}

// Format renders a payload for display.  It is total over the closed
// variant set; an unknown payload type is a programming error.
func Format(p ResponsePayload) string {
	switch p := p.(type) {
	case DeviceStateText:
		return p.Text

	case AckCode:
		return fmt.Sprintf("ACK Code: %d", p.Code)

	case ConnectivityList:
		blocks := make([]string, 0, len(p.Items))
		for i, item := range p.Items {
			var b strings.Builder
			fmt.Fprintf(&b, "Interface %d:\n", i)
			fmt.Fprintf(&b, "  WiFi: %s\n", connectedWord(item.WifiConnected))
			fmt.Fprintf(&b, "  Cloud: %s", connectedWord(item.CloudConnected))
			if item.SSID != "" {
				fmt.Fprintf(&b, "\n  SSID: %s", item.SSID)
			}
			if item.RSSI != nil {
				fmt.Fprintf(&b, "\n  RSSI: %d dBm", *item.RSSI)
			}
			blocks = append(blocks, b.String())
		}
		return strings.Join(blocks, "\n")

	case WifiNetworkList:
		var b strings.Builder
		fmt.Fprintf(&b, "Found %d networks:", len(p.Items))
		for _, item := range p.Items {
			fmt.Fprintf(&b, "\n  - %s", item.SSID)
		}
		return b.String()

	case LogBlockCount:
		return fmt.Sprintf("Log Blocks: %d entries", p.Count)

	case EmptyPayload:
		return ""
	}

	panic(fmt.Sprintf("unhandled response payload type %T", p))
}

func connectedWord(connected bool) string {
	if connected {
		return "Connected"
	}
	return "Disconnected"
}

// HasDisplayableData reports whether Format produces anything worth
// showing; false only for the empty payload.
func HasDisplayableData(p ResponsePayload) bool {
	_, empty := p.(EmptyPayload)
	return !empty
}
