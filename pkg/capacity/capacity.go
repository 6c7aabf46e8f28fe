package capacity

// PlanRequest bundles one complete set of planning inputs: the candidate
// node profile, the operator tunables, and the fleet demand.
type PlanRequest struct {
	Profile      HardwareProfile
	Overcommit   OvercommitConfig
	Storage      StorageConfig
	Redundancy   RedundancyConfig
	Reservations ReservationConfig
	Overheads    OverheadConfig
	Fleet        FleetDemand
}

// Plan is the full engine output for one candidate profile: plain,
// serializable data suitable for reports and for ranking candidate
// profiles by total node count.
type Plan struct {
	Capacity     NodeCapacity     `json:"capacity"`
	Demand       WorkloadDemand   `json:"demand"`
	Requirements NodeRequirements `json:"requirements"`
	Validation   ValidationResult `json:"validation"`
}

// Evaluate runs the planning pipeline for one candidate profile. Each
// component validates its inputs on entry and either returns a complete
// result or a complete error; nothing is partially computed.
func Evaluate(req PlanRequest) (*Plan, error) {
	nodeCap, err := NodeCapacityFor(req.Profile, req.Overcommit, req.Storage, req.Reservations)
	if err != nil {
		return nil, err
	}

	demand, err := AggregateWorkload(req.Fleet, req.Overheads)
	if err != nil {
		return nil, err
	}

	requirements, err := SolveNodeCount(*nodeCap, *demand, req.Redundancy)
	if err != nil {
		return nil, err
	}

	validation, err := ValidateRedundancy(*requirements, *nodeCap, req.Redundancy, req.Storage)
	if err != nil {
		return nil, err
	}

	return &Plan{
		Capacity:     *nodeCap,
		Demand:       *demand,
		Requirements: *requirements,
		Validation:   *validation,
	}, nil
}
