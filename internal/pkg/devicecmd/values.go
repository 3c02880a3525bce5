package devicecmd

/*
 *   Per-invocation parameter values.  Values are kept string-encoded:
 *   this store only manages what the user intends to send, coercion
 *   into the declared parameter types happens in the dispatcher.
 *
 *   A slot that was never supplied stays absent, it is not collapsed
 *   to an empty string - the dispatcher distinguishes "not supplied"
 *   from "supplied empty".
 */

type ParameterValues struct {
	values map[string]string
}

func NewParameterValues() *ParameterValues {
	return &ParameterValues{
		values: make(map[string]string),
	}
}

// Set stores a value.  Setting the devId slot is refused once it
// holds a non-empty value: the device binding is read-only after it
// is known.
func (v *ParameterValues) Set(name, value string) {
	if name == DeviceIDParameter && v.values[DeviceIDParameter] != "" {
		return
	}
	v.values[name] = value
}

// Get returns the stored value and whether the slot was supplied at all.
func (v *ParameterValues) Get(name string) (string, bool) {
	val, ok := v.values[name]
	return val, ok
}

// Len returns the number of supplied slots.
func (v *ParameterValues) Len() int {
	return len(v.values)
}

// Snapshot returns an independent copy of the supplied values.
func (v *ParameterValues) Snapshot() map[string]string {
	out := make(map[string]string, len(v.values))
	for k, val := range v.values {
		out[k] = val
	}
	return out
}

// ApplyDefaults initialises the store for one command:
//
//   - a slot named devId is auto-filled with the active device
//     identifier, and never overwritten once non-empty;
//   - every other empty slot whose schema declares a non-empty
//     default is filled from that default;
//   - optional slots with no default stay absent.
//
// Re-invoking is idempotent: non-empty values are never clobbered,
// so user edits survive re-initialisation.
func (v *ParameterValues) ApplyDefaults(def CommandDefinition, deviceID string) {
	for _, p := range def.Parameters {
		if p.Name == DeviceIDParameter {
			if v.values[DeviceIDParameter] == "" && deviceID != "" {
				v.values[DeviceIDParameter] = deviceID
			}
			continue
		}

		if v.values[p.Name] == "" && p.DefaultValue != "" {
			v.values[p.Name] = p.DefaultValue
		}
	}
}
