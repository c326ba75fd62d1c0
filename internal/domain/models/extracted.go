package models

// ExtractedInfo is the metadata extracted from a compiled contract class
type ExtractedInfo struct {
	ContractName         string                        `json:"contract_name" yaml:"contract_name"`
	ContractClassVersion string                        `json:"contract_class_version" yaml:"contract_class_version"`
	ABI                  ABI                           `json:"abi" yaml:"abi"`
	EntryPoints          EntryPointsByType             `json:"entry_points" yaml:"entry_points"`
	EntryPointCounts     map[EntryPointType]int        `json:"entry_point_counts" yaml:"entry_point_counts"`
	Functions            map[string]FunctionInfo       `json:"functions" yaml:"functions"`
	FunctionDefinitions  map[string]FunctionDefinition `json:"function_definitions" yaml:"function_definitions"`
	SierraProgramLength  int                           `json:"sierra_program_length" yaml:"sierra_program_length"`
}

// FunctionInfo describes the entry point behind one selector
type FunctionInfo struct {
	Selector      string         `json:"selector" yaml:"selector"`
	FunctionIndex uint64         `json:"function_index" yaml:"function_index"`
	Type          EntryPointType `json:"type" yaml:"type"`
	Name          string         `json:"name,omitempty" yaml:"name,omitempty"`
}

// FunctionDefinition is an ABI function item, with the interface it was declared in
type FunctionDefinition struct {
	Name            string      `json:"name" yaml:"name"`
	Type            string      `json:"type" yaml:"type"`
	Interface       string      `json:"interface,omitempty" yaml:"interface,omitempty"`
	StateMutability string      `json:"state_mutability,omitempty" yaml:"state_mutability,omitempty"`
	Inputs          []ABIInput  `json:"inputs" yaml:"inputs"`
	Outputs         []ABIOutput `json:"outputs" yaml:"outputs"`
	Selector        string      `json:"selector" yaml:"selector"`
}

// ClassHashInfo is the record written by the class hash computation
type ClassHashInfo struct {
	ClassHash            string `json:"class_hash" yaml:"class_hash"`
	ContractClassVersion string `json:"contract_class_version" yaml:"contract_class_version"`
}
