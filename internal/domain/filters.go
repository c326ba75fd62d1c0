package domain

// DeploymentFilter defines filtering options for deployments
type DeploymentFilter struct {
	Network      string
	ContractName string
}
