package models

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"

	"github.com/NethermindEth/juno/core/felt"
)

// DefaultContractClassVersion is assumed when an artifact carries no version
const DefaultContractClassVersion = "0.1.0"

// Contract represents a compiled contract discovered in the Scarb target directory
type Contract struct {
	Name       string `json:"name"`
	Package    string `json:"package"`
	ModulePath string `json:"modulePath,omitempty"`
	SierraPath string `json:"sierraPath"`
	CasmPath   string `json:"casmPath,omitempty"`
}

// HasCasm reports whether a compiled casm class was emitted next to the sierra class
func (c *Contract) HasCasm() bool {
	if c.CasmPath == "" {
		return false
	}
	_, err := os.Stat(c.CasmPath)
	return err == nil
}

// EntryPointType is the kind of a Sierra entry point
type EntryPointType string

const (
	EntryPointExternal    EntryPointType = "EXTERNAL"
	EntryPointL1Handler   EntryPointType = "L1_HANDLER"
	EntryPointConstructor EntryPointType = "CONSTRUCTOR"
)

// EntryPointTypes returns the entry point kinds in artifact order
func EntryPointTypes() []EntryPointType {
	return []EntryPointType{EntryPointExternal, EntryPointL1Handler, EntryPointConstructor}
}

// SierraEntryPoint is one dispatchable entry of a contract class
type SierraEntryPoint struct {
	Selector    *felt.Felt `json:"selector"`
	FunctionIdx uint64     `json:"function_idx"`
}

type sierraEntryPointJSON struct {
	Selector    string `json:"selector" yaml:"selector"`
	FunctionIdx uint64 `json:"function_idx" yaml:"function_idx"`
}

func (e SierraEntryPoint) encoded() sierraEntryPointJSON {
	selector := "0x0"
	if e.Selector != nil {
		selector = "0x" + e.Selector.Text(16)
	}
	return sierraEntryPointJSON{Selector: selector, FunctionIdx: e.FunctionIdx}
}

// MarshalJSON always writes the selector as a 0x-prefixed hex string
func (e SierraEntryPoint) MarshalJSON() ([]byte, error) {
	return json.Marshal(e.encoded())
}

// MarshalYAML writes the same shape as MarshalJSON
func (e SierraEntryPoint) MarshalYAML() (any, error) {
	return e.encoded(), nil
}

// EntryPointsByType groups entry points by kind
type EntryPointsByType struct {
	External    []SierraEntryPoint `json:"EXTERNAL" yaml:"EXTERNAL"`
	L1Handler   []SierraEntryPoint `json:"L1_HANDLER" yaml:"L1_HANDLER"`
	Constructor []SierraEntryPoint `json:"CONSTRUCTOR" yaml:"CONSTRUCTOR"`
}

// ByType returns the entry points of one kind
func (e EntryPointsByType) ByType(t EntryPointType) []SierraEntryPoint {
	switch t {
	case EntryPointExternal:
		return e.External
	case EntryPointL1Handler:
		return e.L1Handler
	case EntryPointConstructor:
		return e.Constructor
	default:
		return nil
	}
}

// Counts returns the number of entry points per kind
func (e EntryPointsByType) Counts() map[EntryPointType]int {
	counts := make(map[EntryPointType]int, 3)
	for _, t := range EntryPointTypes() {
		counts[t] = len(e.ByType(t))
	}
	return counts
}

// MarshalJSON writes empty kinds as [] instead of null
func (e EntryPointsByType) MarshalJSON() ([]byte, error) {
	type alias EntryPointsByType
	out := alias(e)
	if out.External == nil {
		out.External = []SierraEntryPoint{}
	}
	if out.L1Handler == nil {
		out.L1Handler = []SierraEntryPoint{}
	}
	if out.Constructor == nil {
		out.Constructor = []SierraEntryPoint{}
	}
	return json.Marshal(out)
}

// ContractClass is the Sierra contract class emitted by Scarb (*.contract_class.json)
type ContractClass struct {
	ContractClassVersion string            `json:"contract_class_version"`
	SierraProgram        []*felt.Felt      `json:"sierra_program"`
	EntryPointsByType    EntryPointsByType `json:"entry_points_by_type"`
	ABI                  ABI               `json:"abi"`

	// rawABI is the abi member exactly as it appeared in the artifact
	rawABI json.RawMessage
}

// UnmarshalJSON decodes the class and keeps the undecoded abi member
func (c *ContractClass) UnmarshalJSON(data []byte) error {
	type alias ContractClass
	aux := struct {
		*alias
		RawABI json.RawMessage `json:"abi"`
	}{alias: (*alias)(c)}
	if err := json.Unmarshal(data, &aux); err != nil {
		return err
	}
	c.rawABI = nil
	c.ABI = nil
	if len(aux.RawABI) == 0 || bytes.Equal(aux.RawABI, []byte("null")) {
		return nil
	}
	c.rawABI = aux.RawABI
	return c.ABI.UnmarshalJSON(aux.RawABI)
}

// RawABI returns the abi member as it was read, or the encoded ABI for classes built in memory
func (c *ContractClass) RawABI() json.RawMessage {
	if len(c.rawABI) > 0 {
		return c.rawABI
	}
	data, _ := c.ABI.MarshalJSON()
	return data
}

// Version returns the class version, falling back to the default
func (c *ContractClass) Version() string {
	if c.ContractClassVersion == "" {
		return DefaultContractClassVersion
	}
	return c.ContractClassVersion
}

// ParseContractClass decodes a Sierra contract class document
func ParseContractClass(data []byte) (*ContractClass, error) {
	var class ContractClass
	if err := json.Unmarshal(data, &class); err != nil {
		return nil, fmt.Errorf("failed to parse contract class: %w", err)
	}
	return &class, nil
}
