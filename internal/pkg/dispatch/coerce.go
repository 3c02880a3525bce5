package dispatch

import (
	"encoding/hex"
	"strconv"
	"strings"

	"github.com/pkg/errors"

	"github.com/RogoSolutions/iotcore-demo/internal/pkg/devicecmd"
)

/*
 *   String-to-typed coercion.  The value store deliberately keeps
 *   everything string-encoded; the encodings accepted here follow
 *   the remote protocol:
 *
 *     integer        decimal, e.g. "42"
 *     integer-array  comma separated decimals, e.g. "1,2,3"
 *     double         decimal float, e.g. "0.5"
 *     boolean        "0", "1", "true" or "false"
 *     byte           0-255 decimal, or 0x-prefixed hex
 *     byte-array     hex string, e.g. "01ff" (optional 0x prefix)
 */

// Coerce converts a string-encoded value into the domain declared by
// the parameter type.
func Coerce(t devicecmd.ParameterType, value string) (any, error) {
	switch t {
	case devicecmd.TypeString:
		return value, nil

	case devicecmd.TypeInteger:
		n, err := strconv.ParseInt(strings.TrimSpace(value), 10, 64)
		if err != nil {
			return nil, errors.Errorf("%q is not an integer", value)
		}
		return n, nil

	case devicecmd.TypeIntegerArray:
		parts := strings.Split(value, ",")
		out := make([]int64, 0, len(parts))
		for _, part := range parts {
			n, err := strconv.ParseInt(strings.TrimSpace(part), 10, 64)
			if err != nil {
				return nil, errors.Errorf("%q is not an integer array: bad element %q", value, part)
			}
			out = append(out, n)
		}
		return out, nil

	case devicecmd.TypeDouble:
		f, err := strconv.ParseFloat(strings.TrimSpace(value), 64)
		if err != nil {
			return nil, errors.Errorf("%q is not a double", value)
		}
		return f, nil

	case devicecmd.TypeBoolean:
		switch strings.TrimSpace(value) {
		case "1", "true":
			return true, nil
		case "0", "false":
			return false, nil
		}
		return nil, errors.Errorf("%q is not a boolean (want 0/1/true/false)", value)

	case devicecmd.TypeByte:
		s := strings.TrimSpace(value)
		base := 10
		if strings.HasPrefix(s, "0x") || strings.HasPrefix(s, "0X") {
			s = s[2:]
			base = 16
		}
		n, err := strconv.ParseUint(s, base, 8)
		if err != nil {
			return nil, errors.Errorf("%q is not a byte (0-255)", value)
		}
		return byte(n), nil

	case devicecmd.TypeByteArray:
		s := strings.TrimSpace(value)
		s = strings.TrimPrefix(strings.TrimPrefix(s, "0x"), "0X")
		b, err := hex.DecodeString(s)
		if err != nil {
			return nil, errors.Errorf("%q is not a hex byte array", value)
		}
		return b, nil
	}

	return nil, errors.Errorf("unknown parameter type %d", t)
}

// CoerceAll coerces every supplied value of an invocation against the
// command's schema, and checks that every required parameter was
// supplied.  An optional parameter supplied as the empty string is
// skipped: "supplied empty" means "absent" to the remote protocol.
func CoerceAll(def devicecmd.CommandDefinition, params map[string]string) (map[string]any, error) {
	out := make(map[string]any, len(params))

	for _, p := range def.Parameters {
		raw, supplied := params[p.Name]

		if !supplied || raw == "" {
			if p.Required {
				return nil, errors.Errorf("required parameter %q not supplied", p.Name)
			}
			continue
		}

		v, err := Coerce(p.Type, raw)
		if err != nil {
			return nil, errors.Wrapf(err, "parameter %q", p.Name)
		}
		out[p.Name] = v
	}

	return out, nil
}
