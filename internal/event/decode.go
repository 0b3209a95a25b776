package event

import (
	"encoding/json"
	"errors"
	"fmt"
)

// ErrNilPayload is returned when an event carries no payload
var ErrNilPayload = errors.New("event has no payload")

// DecodePayload reads an event payload as T. Events published in process
// carry T or *T directly. Payloads read back from the history table or a
// dead-letter file arrive as raw JSON or as generic maps and are decoded.
func DecodePayload[T any](input interface{}) (T, error) {
	var result T

	var data []byte
	switch v := input.(type) {
	case T:
		return v, nil
	case *T:
		if v == nil {
			return result, fmt.Errorf("decode %T: %w", result, ErrNilPayload)
		}
		return *v, nil
	case nil:
		return result, fmt.Errorf("decode %T: %w", result, ErrNilPayload)
	case json.RawMessage:
		data = v
	case []byte:
		data = v
	default:
		var err error
		if data, err = json.Marshal(v); err != nil {
			return result, fmt.Errorf("decode %T: %w", result, err)
		}
	}

	if err := json.Unmarshal(data, &result); err != nil {
		return result, fmt.Errorf("decode %T: %w", result, err)
	}
	return result, nil
}
