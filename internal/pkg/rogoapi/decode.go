package rogoapi

import (
	"encoding/json"

	"github.com/go-openapi/strfmt"

	"github.com/RogoSolutions/iotcore-demo/internal/pkg/logging"
)

/*
 *   Lenient list decoding.  Backend versions disagree on the envelope
 *   around entity lists, so three shapes are tried in a fixed order,
 *   stopping at the first that succeeds:
 *
 *     1. a bare array of the typed record
 *     2. an object with a "data" field holding that array
 *     3. a loosely-typed array of maps, extracted field by field
 *
 *   In shape 3 an element missing a required field is dropped, it
 *   does not fail the batch.  If no shape succeeds the caller gets
 *   an empty list, not an error.
 */

type envelope struct {
	Data json.RawMessage `json:"data"`
}

// decodeList decodes raw response bytes into entities.  valid
// reports whether a strictly-decoded element carries its required
// fields; a typed decode that yields any invalid element is treated
// as a failure so the loose strategy gets its chance to salvage the
// rest.  fromLoose extracts one entity from a loosely-typed map,
// returning false to drop that element.
func decodeList[T any](raw []byte, valid func(T) bool, fromLoose func(map[string]any) (T, bool)) []T {
	if typed, ok := decodeTyped(raw, valid); ok {
		return typed
	}

	var env envelope
	if err := json.Unmarshal(raw, &env); err == nil && env.Data != nil {
		if typed, ok := decodeTyped(env.Data, valid); ok {
			return typed
		}
	}

	var loose []map[string]any
	if err := json.Unmarshal(raw, &loose); err == nil {
		var out []T
		for _, m := range loose {
			item, ok := fromLoose(m)
			if !ok {
				logging.Logger(nil).Debugf("Dropping list element with missing required fields: %v", m)
				continue
			}
			out = append(out, item)
		}
		return out
	}

	logging.Logger(nil).Debugf("Unrecognised list payload shape: [%s]", raw)
	return nil
}

func decodeTyped[T any](raw []byte, valid func(T) bool) ([]T, bool) {
	var typed []T
	if err := json.Unmarshal(raw, &typed); err != nil {
		return nil, false
	}
	for _, item := range typed {
		if !valid(item) {
			return nil, false
		}
	}
	return typed, true
}

func looseString(m map[string]any, key string) (string, bool) {
	v, ok := m[key].(string)
	return v, ok
}

// DecodeLocations parses a location list response.  Elements without
// a uuid are dropped.
func DecodeLocations(raw []byte) []Location {
	valid := func(l Location) bool { return l.UUID != "" }

	return decodeList(raw, valid, func(m map[string]any) (Location, bool) {
		id, ok := looseString(m, "uuid")
		if !ok {
			return Location{}, false
		}

		loc := Location{UUID: strfmt.UUID(id)}
		if label, ok := looseString(m, "label"); ok {
			loc.Label = label
		}
		if addr, ok := looseString(m, "address"); ok {
			loc.Address = addr
		}
		return loc, true
	})
}

// DecodeGroups parses a group list response.  Elements without a
// uuid are dropped.
func DecodeGroups(raw []byte) []Group {
	valid := func(g Group) bool { return g.UUID != "" }

	return decodeList(raw, valid, func(m map[string]any) (Group, bool) {
		id, ok := looseString(m, "uuid")
		if !ok {
			return Group{}, false
		}

		g := Group{UUID: strfmt.UUID(id)}
		if name, ok := looseString(m, "name"); ok {
			g.Name = name
		}
		if loc, ok := looseString(m, "locationUuid"); ok {
			g.LocationUUID = strfmt.UUID(loc)
		}
		if created, ok := looseString(m, "createdAt"); ok {
			if dt, err := strfmt.ParseDateTime(created); err == nil {
				g.CreatedAt = dt
			}
		}
		return g, true
	})
}
