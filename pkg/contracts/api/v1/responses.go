package api

// Quantity is a result value with its propagated uncertainty
type Quantity struct {
	Value float64 `json:"value"`
	Err   float64 `json:"err"`
}

// Forces are per unit span: N/m, moment in N·m/m
type Forces struct {
	Normal   Quantity `json:"normal"`
	Axial    Quantity `json:"axial"`
	Moment   Quantity `json:"moment"`
	Lift     Quantity `json:"lift"`
	Drag     Quantity `json:"drag"`
	WakeDrag Quantity `json:"wake_drag"`
}

// Coefficients are the nondimensional results
type Coefficients struct {
	Lift     Quantity   `json:"cl"`
	Drag     Quantity   `json:"cd"`
	Moment   Quantity   `json:"cm"`
	WakeDrag Quantity   `json:"cdt"`
	CpTop    []Quantity `json:"cp_top"`
	CpBottom []Quantity `json:"cp_bottom"`
}

// WakePoint is one sample of the merged wake profile
type WakePoint struct {
	Y        float64  `json:"y"`
	Velocity Quantity `json:"velocity"`
	Config   int      `json:"config"`
	Port     int      `json:"port"`
}

// CaseResponse is the reduction of one case
type CaseResponse struct {
	ID              string       `json:"id,omitempty"`
	Alpha           Quantity     `json:"alpha"`
	FreeStream      Quantity     `json:"free_stream"`
	DynamicPressure Quantity     `json:"dynamic_pressure"`
	Reynolds        Quantity     `json:"reynolds"`
	Forces          Forces       `json:"forces"`
	Coefficients    Coefficients `json:"coefficients"`
	Wake            []WakePoint  `json:"wake,omitempty"`
}

// CaseFailure describes a case that could not be reduced
type CaseFailure struct {
	Index int     `json:"index"`
	ID    string  `json:"id,omitempty"`
	Alpha float64 `json:"alpha"`
	// Kind is "precondition", "domain" or "cancelled"
	Kind  string `json:"kind"`
	Error string `json:"error"`
}

// Summary condenses the polar of a sweep
type Summary struct {
	MaxLift            float64 `json:"max_cl"`
	StallAlpha         float64 `json:"stall_alpha"`
	LiftSlopePerDeg    float64 `json:"lift_slope_per_deg"`
	LiftSlopePerRad    float64 `json:"lift_slope_per_rad"`
	ZeroLiftAlpha      float64 `json:"zero_lift_alpha"`
	SlopeRSquared      float64 `json:"slope_r_squared"`
	MinWakeDrag        float64 `json:"min_cdt"`
	MinWakeDragAlpha   float64 `json:"min_cdt_alpha"`
	MeanWakeDrag       float64 `json:"mean_cdt"`
	MaxLiftToDrag      float64 `json:"max_l_over_d"`
	MaxLiftToDragAlpha float64 `json:"max_l_over_d_alpha"`
}

// SweepResponse is the reduction of a sweep
type SweepResponse struct {
	RunID      string         `json:"run_id"`
	Name       string         `json:"name,omitempty"`
	Results    []CaseResponse `json:"results"`
	Failures   []CaseFailure  `json:"failures,omitempty"`
	Summary    *Summary       `json:"summary,omitempty"`
	DurationMS int64          `json:"duration_ms"`
}
