package ingame

import (
	"encoding/json"
	"fmt"
)

// StringBool is a boolean the API encodes as the strings "True" and "False".
type StringBool bool

// ParseStringBool accepts exactly "True" and "False".
func ParseStringBool(s string) (bool, error) {
	switch s {
	case "True":
		return true, nil
	case "False":
		return false, nil
	default:
		return false, fmt.Errorf("%w: %q", ErrInvalidBoolEncoding, s)
	}
}

func (b *StringBool) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return fmt.Errorf("%w: %s", ErrInvalidBoolEncoding, data)
	}
	v, err := ParseStringBool(s)
	if err != nil {
		return err
	}
	*b = StringBool(v)
	return nil
}

func (b StringBool) MarshalJSON() ([]byte, error) {
	if b {
		return []byte(`"True"`), nil
	}
	return []byte(`"False"`), nil
}
