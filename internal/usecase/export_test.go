package usecase

import "time"

// SetClock replaces the clock used to timestamp deployments
func (uc *DeployContract) SetClock(now func() time.Time) {
	uc.now = now
}

var ComputeClassHashOf = computeClassHash
