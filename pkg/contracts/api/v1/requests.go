// Package api contains the HTTP and file contracts of the reduction service.
// Version v1 represents the current stable API version.
package api

// Sample is a measured value with its uncertainty in the units of the field
type Sample struct {
	Value float64 `json:"value"`
	Err   float64 `json:"err" validate:"gte=0"`
}

// SurfacePressures are calibrated airfoil tap pressures (Pa) ordered leading
// edge to trailing edge, matching the configured tap layout.
type SurfacePressures struct {
	Top    []Sample `json:"top" validate:"required,min=2,dive"`
	Bottom []Sample `json:"bottom" validate:"required,min=2,dive"`
}

// RakePressures are the two probe configurations of the wake rake (Pa) and
// the rake datum height of each configuration (m).
type RakePressures struct {
	Config1 []Sample `json:"config1" validate:"required,min=3,dive"`
	Config2 []Sample `json:"config2" validate:"required,min=3,dive"`
	Offset1 float64  `json:"offset1"`
	Offset2 float64  `json:"offset2"`
}

// CaseRequest is one angle-of-attack trial
type CaseRequest struct {
	ID string `json:"id,omitempty" validate:"omitempty,max=64"`
	// Alpha is the angle of attack in degrees
	Alpha float64 `json:"alpha" validate:"gte=-90,lte=90"`
	// AlphaErr overrides the configured angle uncertainty (deg)
	AlphaErr  *float64         `json:"alpha_err,omitempty" validate:"omitempty,gte=0"`
	Pressures SurfacePressures `json:"pressures"`
	Rake      RakePressures    `json:"rake"`
}

// SweepRequest is a set of cases reduced with the same tunnel configuration
type SweepRequest struct {
	Name     string        `json:"name,omitempty" validate:"omitempty,max=128"`
	Cases    []CaseRequest `json:"cases" validate:"required,min=1,max=256,dive"`
	FailFast bool          `json:"fail_fast,omitempty"`
}
