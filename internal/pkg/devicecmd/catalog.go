package devicecmd

import "github.com/pkg/errors"

/*
 *   The fixed catalog of remote operations supported by the demo
 *   client.  Every fact about a command (category, description,
 *   parameter schemas, completion-callback behaviour) lives in its
 *   one definition record here, so the catalog cannot drift.
 */

// ErrNotFound is returned by Lookup for an id outside the catalog.
var ErrNotFound = errors.New("command not found")

type CommandDefinition struct {
	ID          string
	DisplayName string
	Category    Category
	Description string
	Parameters  []ParameterSchema

	// HasCompletionCallback is false for fire-and-forget operations
	// that must not be awaited for a direct result.  The set is
	// asserted per-command by the SDK documentation, it is not
	// derivable from the rest of the schema.
	HasCompletionCallback bool
}

// RequiredParameters returns the required schema entries in declared order.
func (d CommandDefinition) RequiredParameters() []ParameterSchema {
	var out []ParameterSchema
	for _, p := range d.Parameters {
		if p.Required {
			out = append(out, p)
		}
	}
	return out
}

// OptionalParameters returns the optional schema entries in declared order.
func (d CommandDefinition) OptionalParameters() []ParameterSchema {
	var out []ParameterSchema
	for _, p := range d.Parameters {
		if !p.Required {
			out = append(out, p)
		}
	}
	return out
}

// RequiresDeviceID reports whether the command has a devId slot.
func (d CommandDefinition) RequiresDeviceID() bool {
	for _, p := range d.Parameters {
		if p.Name == DeviceIDParameter {
			return true
		}
	}
	return false
}

var catalog = []CommandDefinition{
	{
		ID:          "get-device-state",
		DisplayName: "Get Device State",
		Category:    CategoryDeviceState,
		Description: "Read the current state of every element on the device",
		Parameters: []ParameterSchema{
			deviceIDParam(),
		},
		HasCompletionCallback: true,
	},
	{
		ID:          "set-device-state",
		DisplayName: "Set Device State",
		Category:    CategoryDeviceState,
		Description: "Set one element of the device to a new value",
		Parameters: []ParameterSchema{
			deviceIDParam(),
			{Name: "element", DisplayName: "Element", Type: TypeInteger,
				Placeholder: "element index, e.g. 0", Required: true},
			{Name: "value", DisplayName: "Value", Type: TypeInteger,
				Placeholder: "new state value", Required: true},
			{Name: "transition", DisplayName: "Transition", Type: TypeDouble,
				DefaultValue: "0.5", Placeholder: "seconds, e.g. 0.5",
				HelpText: "Fade time in seconds"},
		},
		HasCompletionCallback: true,
	},
	{
		ID:          "toggle-element",
		DisplayName: "Toggle Element",
		Category:    CategoryDeviceState,
		Description: "Toggle one output element on the device",
		Parameters: []ParameterSchema{
			deviceIDParam(),
			{Name: "element", DisplayName: "Element", Type: TypeInteger,
				Placeholder: "element index, e.g. 0", Required: true},
		},
		HasCompletionCallback: true,
	},
	{
		ID:          "activate-smart",
		DisplayName: "Activate Smart Scene",
		Category:    CategoryDeviceState,
		Description: "Trigger a smart scene stored on the device",
		Parameters: []ParameterSchema{
			deviceIDParam(),
			{Name: "sceneId", DisplayName: "Scene ID", Type: TypeInteger,
				Placeholder: "scene number", Required: true},
			{Name: "broadcast", DisplayName: "Broadcast", Type: TypeBoolean,
				DefaultValue: "false", Placeholder: "true / false",
				HelpText: "Also trigger the scene on mesh neighbours"},
		},
		HasCompletionCallback: false,
	},
	{
		ID:          "scan-wifi",
		DisplayName: "Scan WiFi Networks",
		Category:    CategoryWifi,
		Description: "Ask the device to scan for nearby WiFi networks",
		Parameters: []ParameterSchema{
			deviceIDParam(),
		},
		HasCompletionCallback: true,
	},
	{
		ID:          "set-wifi-config",
		DisplayName: "Set WiFi Config",
		Category:    CategoryWifi,
		Description: "Push WiFi credentials to the device",
		Parameters: []ParameterSchema{
			deviceIDParam(),
			{Name: "ssid", DisplayName: "SSID", Type: TypeString,
				Placeholder: "network name", Required: true},
			{Name: "password", DisplayName: "Password", Type: TypeString,
				Placeholder: "leave empty for open networks",
				HelpText: "WPA2 passphrase; omit for an open network"},
			{Name: "hidden", DisplayName: "Hidden Network", Type: TypeBoolean,
				DefaultValue: "false", Placeholder: "true / false"},
		},
		HasCompletionCallback: true,
	},
	{
		ID:          "get-wifi-status",
		DisplayName: "Get WiFi Status",
		Category:    CategoryWifi,
		Description: "Read the device's current WiFi association state",
		Parameters: []ParameterSchema{
			deviceIDParam(),
		},
		HasCompletionCallback: true,
	},
	{
		ID:          "forget-wifi",
		DisplayName: "Forget WiFi",
		Category:    CategoryWifi,
		Description: "Erase stored WiFi credentials from the device",
		Parameters: []ParameterSchema{
			deviceIDParam(),
		},
		HasCompletionCallback: true,
	},
	{
		ID:          "check-connectivity",
		DisplayName: "Check Connectivity",
		Category:    CategoryConnectivity,
		Description: "Report WiFi and cloud reachability for every interface",
		Parameters: []ParameterSchema{
			deviceIDParam(),
		},
		HasCompletionCallback: true,
	},
	{
		ID:          "ping-device",
		DisplayName: "Ping Device",
		Category:    CategoryConnectivity,
		Description: "Round-trip a small echo payload through the device",
		Parameters: []ParameterSchema{
			deviceIDParam(),
			{Name: "count", DisplayName: "Count", Type: TypeInteger,
				DefaultValue: "3", Placeholder: "number of pings"},
		},
		HasCompletionCallback: true,
	},
	{
		ID:          "check-firmware-version",
		DisplayName: "Check Firmware Version",
		Category:    CategoryFirmware,
		Description: "Ask the device to report its firmware version asynchronously",
		Parameters: []ParameterSchema{
			deviceIDParam(),
		},
		HasCompletionCallback: false,
	},
	{
		ID:          "update-firmware",
		DisplayName: "Update Firmware",
		Category:    CategoryFirmware,
		Description: "Start an over-the-air firmware update on the device",
		Parameters: []ParameterSchema{
			deviceIDParam(),
			{Name: "firmwareUrl", DisplayName: "Firmware URL", Type: TypeString,
				Placeholder: "https://…/firmware.bin", Required: true},
			{Name: "checksum", DisplayName: "Checksum", Type: TypeByteArray,
				Placeholder: "hex, e.g. a1b2c3",
				HelpText: "Expected image digest; update aborts on mismatch"},
		},
		HasCompletionCallback: false,
	},
	{
		ID:          "factory-reset",
		DisplayName: "Factory Reset",
		Category:    CategoryFirmware,
		Description: "Erase all device state and return it to factory defaults",
		Parameters: []ParameterSchema{
			deviceIDParam(),
			{Name: "confirm", DisplayName: "Confirm", Type: TypeBoolean,
				DefaultValue: "false", Placeholder: "true / false", Required: true,
				HelpText: "Must be true; the device refuses the reset otherwise"},
		},
		HasCompletionCallback: true,
	},
	{
		ID:          "reboot-device",
		DisplayName: "Reboot Device",
		Category:    CategoryFirmware,
		Description: "Soft-reboot the device",
		Parameters: []ParameterSchema{
			deviceIDParam(),
		},
		HasCompletionCallback: true,
	},
	{
		ID:          "start-direct-link",
		DisplayName: "Start Direct Link",
		Category:    CategoryDirectLink,
		Description: "Open a direct BLE link to the device, bypassing the cloud",
		Parameters: []ParameterSchema{
			deviceIDParam(),
			{Name: "timeout", DisplayName: "Timeout", Type: TypeInteger,
				DefaultValue: "30", Placeholder: "seconds",
				HelpText: "Link is dropped after this many idle seconds"},
		},
		HasCompletionCallback: true,
	},
	{
		ID:          "stop-direct-link",
		DisplayName: "Stop Direct Link",
		Category:    CategoryDirectLink,
		Description: "Tear down the direct BLE link",
		Parameters: []ParameterSchema{
			deviceIDParam(),
		},
		HasCompletionCallback: false,
	},
	{
		ID:          "direct-link-status",
		DisplayName: "Direct Link Status",
		Category:    CategoryDirectLink,
		Description: "Report whether a direct link is currently established",
		Parameters: []ParameterSchema{
			deviceIDParam(),
		},
		HasCompletionCallback: true,
	},
	{
		ID:          "send-vendor-message",
		DisplayName: "Send Vendor Message",
		Category:    CategoryVendor,
		Description: "Send a raw vendor-specific message to one device",
		Parameters: []ParameterSchema{
			deviceIDParam(),
			{Name: "opcode", DisplayName: "Opcode", Type: TypeByte,
				Placeholder: "0-255", Required: true},
			{Name: "payload", DisplayName: "Payload", Type: TypeByteArray,
				Placeholder: "hex, e.g. 01ff"},
			{Name: "requireAck", DisplayName: "Require ACK", Type: TypeBoolean,
				DefaultValue: "true", Placeholder: "true / false"},
		},
		HasCompletionCallback: false,
	},
	{
		ID:          "send-vendor-broadcast",
		DisplayName: "Send Vendor Broadcast",
		Category:    CategoryVendor,
		Description: "Broadcast a raw vendor-specific message to every device in range",
		Parameters: []ParameterSchema{
			{Name: "opcode", DisplayName: "Opcode", Type: TypeByte,
				Placeholder: "0-255", Required: true},
			{Name: "payload", DisplayName: "Payload", Type: TypeByteArray,
				Placeholder: "hex, e.g. 01ff"},
		},
		HasCompletionCallback: false,
	},
	{
		ID:          "read-vendor-attribute",
		DisplayName: "Read Vendor Attribute",
		Category:    CategoryVendor,
		Description: "Read one vendor-specific attribute from the device",
		Parameters: []ParameterSchema{
			deviceIDParam(),
			{Name: "attrId", DisplayName: "Attribute ID", Type: TypeInteger,
				Placeholder: "attribute number", Required: true},
		},
		HasCompletionCallback: true,
	},
	{
		ID:          "fetch-log-blocks",
		DisplayName: "Fetch Log Blocks",
		Category:    CategoryLogging,
		Description: "Download diagnostic log blocks from the device",
		Parameters: []ParameterSchema{
			deviceIDParam(),
			{Name: "fromBlock", DisplayName: "From Block", Type: TypeInteger,
				DefaultValue: "0", Placeholder: "first block index"},
		},
		HasCompletionCallback: true,
	},
	{
		ID:          "clear-log-blocks",
		DisplayName: "Clear Log Blocks",
		Category:    CategoryLogging,
		Description: "Erase the device's stored diagnostic logs",
		Parameters: []ParameterSchema{
			deviceIDParam(),
		},
		HasCompletionCallback: true,
	},
	{
		ID:          "assign-location",
		DisplayName: "Assign Location",
		Category:    CategoryProvisioning,
		Description: "Bind the device to a location in the backend",
		Parameters: []ParameterSchema{
			deviceIDParam(),
			{Name: "locationUuid", DisplayName: "Location UUID", Type: TypeString,
				Placeholder: "backend location uuid", Required: true},
		},
		HasCompletionCallback: true,
	},
	{
		ID:          "set-groups",
		DisplayName: "Set Groups",
		Category:    CategoryProvisioning,
		Description: "Replace the device's group membership list",
		Parameters: []ParameterSchema{
			deviceIDParam(),
			{Name: "groupIds", DisplayName: "Group IDs", Type: TypeIntegerArray,
				Placeholder: "e.g. 1,2,3", Required: true},
		},
		HasCompletionCallback: true,
	},
}

var catalogByID map[string]int

func init() {
	catalogByID = make(map[string]int, len(catalog))
	for i, def := range catalog {
		catalogByID[def.ID] = i
	}
}

// All returns every command definition in catalog order.
func All() []CommandDefinition {
	out := make([]CommandDefinition, len(catalog))
	copy(out, catalog)
	return out
}

// Lookup finds a command definition by its stable id.
func Lookup(id string) (CommandDefinition, error) {
	i, ok := catalogByID[id]
	if !ok {
		return CommandDefinition{}, errors.Wrapf(ErrNotFound, "command %q", id)
	}
	return catalog[i], nil
}

// CommandsIn returns the commands of one category, preserving catalog order.
func CommandsIn(cat Category) []CommandDefinition {
	var out []CommandDefinition
	for _, def := range catalog {
		if def.Category == cat {
			out = append(out, def)
		}
	}
	return out
}

// CategoryGroup pairs a category with its commands.
type CategoryGroup struct {
	Category Category
	Commands []CommandDefinition
}

// CategoriesOrdered returns every category with its commands, sorted by
// the category's fixed rank.
func CategoriesOrdered() []CategoryGroup {
	groups := make([]CategoryGroup, 0, len(categoryTable))
	for _, cat := range Categories() {
		groups = append(groups, CategoryGroup{
			Category: cat,
			Commands: CommandsIn(cat),
		})
	}
	return groups
}
