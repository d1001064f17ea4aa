package types

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
)

// FlexBool accepts a JSON bool, a quoted bool ("true"), or a 0/1 number.
// Browser clients serialize checkbox state inconsistently.
type FlexBool bool

func (f *FlexBool) UnmarshalJSON(data []byte) error {
	var b bool
	if err := json.Unmarshal(data, &b); err == nil {
		*f = FlexBool(b)
		return nil
	}

	var s string
	if err := json.Unmarshal(data, &s); err == nil {
		parsed, err := strconv.ParseBool(strings.TrimSpace(s))
		if err != nil {
			return fmt.Errorf("invalid boolean string %q", s)
		}
		*f = FlexBool(parsed)
		return nil
	}

	var n float64
	if err := json.Unmarshal(data, &n); err == nil {
		*f = n != 0
		return nil
	}

	return fmt.Errorf("invalid boolean value: %s", string(data))
}

// Bool returns the underlying bool.
func (f FlexBool) Bool() bool {
	return bool(f)
}
