package devicecmd

/*
 *   Parameter schemas: the declared shape of one named input slot
 *   for a command.  A schema declares intent (type tag, default,
 *   placeholder) only - coercing the string-encoded value into the
 *   declared type is the dispatcher's job, because the acceptable
 *   encodings are fixed by the remote protocol.
 */

type ParameterType int

const (
	TypeString ParameterType = iota
	TypeInteger
	TypeIntegerArray
	TypeDouble
	TypeBoolean
	TypeByte
	TypeByteArray
)

var parameterTypeNames = []string{
	"string",
	"integer",
	"integer-array",
	"double",
	"boolean",
	"byte",
	"byte-array",
}

func (t ParameterType) String() string {
	if int(t) < 0 || int(t) >= len(parameterTypeNames) {
		return "unknown"
	}
	return parameterTypeNames[t]
}

// DeviceIDParameter is the reserved parameter name that binds a slot
// to the active device identifier.
const DeviceIDParameter = "devId"

type ParameterSchema struct {
	Name         string
	DisplayName  string
	Type         ParameterType
	DefaultValue string
	Placeholder  string
	Required     bool
	HelpText     string
}

// deviceIDParam is the devId slot shared by most commands.
func deviceIDParam() ParameterSchema {
	return ParameterSchema{
		Name:        DeviceIDParameter,
		DisplayName: "Device ID",
		Type:        TypeString,
		Placeholder: "auto-filled from the active device",
		Required:    true,
		HelpText:    "Identifier of the target device",
	}
}
