package domain

// PruneItem represents a registry record that should be pruned with the reason
type PruneItem struct {
	ID       string
	Network  string
	Contract string
	Address  string
	Reason   string
}

// ItemsToPrune contains all records that should be pruned
type ItemsToPrune struct {
	Deployments []PruneItem
}

// Empty reports whether nothing is selected for pruning
func (i *ItemsToPrune) Empty() bool {
	return i == nil || len(i.Deployments) == 0
}
