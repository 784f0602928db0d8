package service

import (
	"bytes"
	"encoding/json"
	"strconv"

	"github.com/pkg/errors"
)

type (
	// M is an arbitrary map.
	M map[string]any

	// A Render is an arbitrary payload serializable in JSON by the API.
	Render any

	// A Flag is an optional boolean parameter.
	// It accepts JSON booleans and the string forms parsed by strconv.ParseBool.
	Flag struct {
		Set   bool
		Value bool
	}
)

// True returns a set Flag holding true.
func True() Flag {
	return Flag{Set: true, Value: true}
}

// False returns a set Flag holding false.
func False() Flag {
	return Flag{Set: true}
}

// UnmarshalParam implements echo.BindUnmarshaler interface.
func (f *Flag) UnmarshalParam(param string) error {
	if param == "" {
		*f = Flag{}
		return nil
	}

	v, err := strconv.ParseBool(param)
	if err != nil {
		return errors.Errorf("invalid boolean value: %s", param)
	}
	*f = Flag{Set: true, Value: v}
	return nil
}

// UnmarshalJSON implements json.Unmarshaler interface.
func (f *Flag) UnmarshalJSON(payload []byte) error {
	if bytes.Equal(payload, []byte("null")) {
		*f = Flag{}
		return nil
	}

	var v bool
	if err := json.Unmarshal(payload, &v); err == nil {
		*f = Flag{Set: true, Value: v}
		return nil
	}

	var s string
	if err := json.Unmarshal(payload, &s); err != nil {
		return errors.Errorf("invalid boolean value: %s", payload)
	}
	return f.UnmarshalParam(s)
}

// MarshalJSON implements json.Marshaler interface.
func (f Flag) MarshalJSON() ([]byte, error) {
	if !f.Set {
		return []byte("null"), nil
	}
	return json.Marshal(f.Value)
}
