package record

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
)

// FlexibleString can unmarshal from either string or number JSON values.
// INSPIRE is not consistent about the type of years, volumes and record ids.
type FlexibleString string

func (f *FlexibleString) UnmarshalJSON(data []byte) error {
	if string(data) == "null" {
		*f = ""
		return nil
	}

	var s string
	if err := json.Unmarshal(data, &s); err == nil {
		*f = FlexibleString(strings.TrimSpace(s))
		return nil
	}

	var n json.Number
	if err := json.Unmarshal(data, &n); err == nil {
		*f = FlexibleString(n.String())
		return nil
	}

	return fmt.Errorf("cannot unmarshal %s into FlexibleString", string(data))
}

func (f FlexibleString) String() string {
	return string(f)
}

// Int parses the value as an integer. Empty values report ok=false.
func (f FlexibleString) Int() (int, bool) {
	if f == "" {
		return 0, false
	}
	n, err := strconv.Atoi(string(f))
	if err != nil {
		return 0, false
	}
	return n, true
}
