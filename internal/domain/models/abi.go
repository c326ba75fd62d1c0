package models

import (
	"bytes"
	"encoding/json"
	"fmt"
)

// ABI holds the raw ABI JSON array of a contract class.
// RPC responses carry it as a JSON encoded string; both forms decode to the array.
type ABI json.RawMessage

// UnmarshalJSON accepts the ABI either as an array or as a string holding one
func (a *ABI) UnmarshalJSON(data []byte) error {
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) > 0 && trimmed[0] == '"' {
		var s string
		if err := json.Unmarshal(trimmed, &s); err != nil {
			return fmt.Errorf("failed to decode abi string: %w", err)
		}
		trimmed = bytes.TrimSpace([]byte(s))
	}
	if bytes.Equal(trimmed, []byte("null")) {
		trimmed = nil
	}
	*a = append((*a)[:0], trimmed...)
	return nil
}

// MarshalJSON writes the ABI array, [] when empty
func (a ABI) MarshalJSON() ([]byte, error) {
	if len(a) == 0 {
		return []byte("[]"), nil
	}
	return a, nil
}

// MarshalYAML writes the decoded ABI items so YAML documents carry the full ABI
func (a ABI) MarshalYAML() (any, error) {
	if len(a) == 0 {
		return []any{}, nil
	}
	var items []any
	if err := json.Unmarshal(a, &items); err != nil {
		return nil, fmt.Errorf("failed to decode abi: %w", err)
	}
	return items, nil
}

// Entries decodes the top level ABI items
func (a ABI) Entries() ([]ABIEntry, error) {
	if len(a) == 0 {
		return nil, nil
	}
	var entries []ABIEntry
	if err := json.Unmarshal(a, &entries); err != nil {
		return nil, fmt.Errorf("failed to decode abi entries: %w", err)
	}
	return entries, nil
}

// ABI item types used by Cairo contracts
const (
	ABITypeFunction    = "function"
	ABITypeInterface   = "interface"
	ABITypeImpl        = "impl"
	ABITypeConstructor = "constructor"
	ABITypeL1Handler   = "l1_handler"
	ABITypeEvent       = "event"
	ABITypeStruct      = "struct"
	ABITypeEnum        = "enum"
)

// ABIEntry is one item of a Cairo ABI. Interface items nest their functions in Items.
type ABIEntry struct {
	Type            string      `json:"type"`
	Name            string      `json:"name"`
	InterfaceName   string      `json:"interface_name,omitempty"`
	Inputs          []ABIInput  `json:"inputs,omitempty"`
	Outputs         []ABIOutput `json:"outputs,omitempty"`
	StateMutability string      `json:"state_mutability,omitempty"`
	Items           []ABIEntry  `json:"items,omitempty"`
}

// ABIInput is a named function parameter
type ABIInput struct {
	Name string `json:"name"`
	Type string `json:"type"`
}

// ABIOutput is a function return type
type ABIOutput struct {
	Type string `json:"type"`
}

// IsCallable reports whether the item maps to an entry point
func (e ABIEntry) IsCallable() bool {
	switch e.Type {
	case ABITypeFunction, ABITypeConstructor, ABITypeL1Handler:
		return true
	default:
		return false
	}
}
