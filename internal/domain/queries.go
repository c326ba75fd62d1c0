package domain

// ContractQuery represents a query for finding compiled contracts
type ContractQuery struct {
	// Name is the contract name (e.g. "Counter"), empty matches every contract
	Name string
	// Package optionally restricts the match to one Scarb package
	Package string
}

// String returns a string representation of the query
func (cq ContractQuery) String() string {
	switch {
	case cq.Name == "" && cq.Package == "":
		return "<all contracts>"
	case cq.Package == "":
		return cq.Name
	case cq.Name == "":
		return cq.Package + "::*"
	default:
		return cq.Package + "::" + cq.Name
	}
}

// DeploymentQuery represents a query for finding recorded deployments
type DeploymentQuery struct {
	// Reference is the deployment identifier (ID, address or contract name)
	Reference string
	// Network optionally restricts the match
	Network string
}
