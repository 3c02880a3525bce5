package dispatch

import (
	"reflect"
	"testing"

	"github.com/RogoSolutions/iotcore-demo/internal/pkg/devicecmd"
)

func TestCoerce(t *testing.T) {
	tests := []struct {
		name    string
		ptype   devicecmd.ParameterType
		value   string
		want    any
		wantErr bool
	}{
		{"string passthrough", devicecmd.TypeString, "hello", "hello", false},
		{"integer", devicecmd.TypeInteger, "42", int64(42), false},
		{"integer negative", devicecmd.TypeInteger, "-7", int64(-7), false},
		{"integer bad", devicecmd.TypeInteger, "4x", nil, true},
		{"integer array", devicecmd.TypeIntegerArray, "1,2,3", []int64{1, 2, 3}, false},
		{"integer array spaces", devicecmd.TypeIntegerArray, "1, 2, 3", []int64{1, 2, 3}, false},
		{"integer array bad element", devicecmd.TypeIntegerArray, "1,x,3", nil, true},
		{"double", devicecmd.TypeDouble, "0.5", 0.5, false},
		{"double bad", devicecmd.TypeDouble, "half", nil, true},
		{"boolean one", devicecmd.TypeBoolean, "1", true, false},
		{"boolean zero", devicecmd.TypeBoolean, "0", false, false},
		{"boolean true", devicecmd.TypeBoolean, "true", true, false},
		{"boolean false", devicecmd.TypeBoolean, "false", false, false},
		{"boolean bad", devicecmd.TypeBoolean, "yes", nil, true},
		{"byte decimal", devicecmd.TypeByte, "255", byte(255), false},
		{"byte hex", devicecmd.TypeByte, "0x1f", byte(0x1f), false},
		{"byte overflow", devicecmd.TypeByte, "256", nil, true},
		{"byte array", devicecmd.TypeByteArray, "01ff", []byte{0x01, 0xff}, false},
		{"byte array prefixed", devicecmd.TypeByteArray, "0x01ff", []byte{0x01, 0xff}, false},
		{"byte array odd length", devicecmd.TypeByteArray, "abc", nil, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Coerce(tt.ptype, tt.value)
			if tt.wantErr {
				if err == nil {
					t.Fatalf("Coerce(%s, %q) = %v, want error", tt.ptype, tt.value, got)
				}
				return
			}
			if err != nil {
				t.Fatalf("Coerce(%s, %q): %v", tt.ptype, tt.value, err)
			}
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("Coerce(%s, %q) = %#v, want %#v", tt.ptype, tt.value, got, tt.want)
			}
		})
	}
}

func TestCoerceAllRequiredMissing(t *testing.T) {
	def, err := devicecmd.Lookup("set-device-state")
	if err != nil {
		t.Fatal(err)
	}

	_, err = CoerceAll(def, map[string]string{"devId": "dev-1", "element": "0"})
	if err == nil {
		t.Fatal("missing required parameter not reported")
	}
}

func TestCoerceAllSkipsAbsentOptional(t *testing.T) {
	def, err := devicecmd.Lookup("send-vendor-message")
	if err != nil {
		t.Fatal(err)
	}

	// payload omitted, requireAck supplied empty: both must be
	// treated as absent, not as zero values.
	typed, err := CoerceAll(def, map[string]string{
		"devId":      "dev-1",
		"opcode":     "0x10",
		"requireAck": "",
	})
	if err != nil {
		t.Fatalf("CoerceAll: %v", err)
	}

	if _, ok := typed["payload"]; ok {
		t.Error("omitted optional parameter appeared in coerced set")
	}
	if _, ok := typed["requireAck"]; ok {
		t.Error("empty optional parameter appeared in coerced set")
	}
	if typed["opcode"] != byte(0x10) {
		t.Errorf("opcode = %#v, want byte 0x10", typed["opcode"])
	}
}
