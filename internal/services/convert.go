package services

import (
	"aeroreduce/internal/aero"
	"aeroreduce/internal/measure"
	api "aeroreduce/pkg/contracts/api/v1"
)

func toQuantity(s api.Sample) measure.Quantity {
	return measure.New(s.Value, s.Err)
}

func toQuantities(samples []api.Sample) []measure.Quantity {
	out := make([]measure.Quantity, len(samples))
	for i, s := range samples {
		out[i] = toQuantity(s)
	}
	return out
}

func fromQuantity(q measure.Quantity) api.Quantity {
	return api.Quantity{Value: q.Value, Err: q.Err}
}

func fromQuantities(qs []measure.Quantity) []api.Quantity {
	out := make([]api.Quantity, len(qs))
	for i, q := range qs {
		out[i] = fromQuantity(q)
	}
	return out
}

// ToCase converts a case request, applying alphaErr when the request carries no
// angle uncertainty of its own.
func ToCase(req api.CaseRequest, alphaErr float64) aero.Case {
	if req.AlphaErr != nil {
		alphaErr = *req.AlphaErr
	}
	return aero.Case{
		ID:    req.ID,
		Alpha: measure.New(req.Alpha, alphaErr),
		Pressures: aero.PressureDistribution{
			Top:    toQuantities(req.Pressures.Top),
			Bottom: toQuantities(req.Pressures.Bottom),
		},
		Rake: aero.RakeInput{
			Config1: toQuantities(req.Rake.Config1),
			Config2: toQuantities(req.Rake.Config2),
			Offset1: req.Rake.Offset1,
			Offset2: req.Rake.Offset2,
		},
	}
}

// ToCaseResponse converts a case result. The wake profile is only copied when
// includeWake is set.
func ToCaseResponse(r aero.CaseResult, includeWake bool) api.CaseResponse {
	resp := api.CaseResponse{
		ID:              r.ID,
		Alpha:           fromQuantity(r.Alpha),
		FreeStream:      fromQuantity(r.FreeStream),
		DynamicPressure: fromQuantity(r.DynamicPressure),
		Reynolds:        fromQuantity(r.Reynolds),
		Forces: api.Forces{
			Normal:   fromQuantity(r.Forces.Normal),
			Axial:    fromQuantity(r.Forces.Axial),
			Moment:   fromQuantity(r.Forces.Moment),
			Lift:     fromQuantity(r.Forces.Lift),
			Drag:     fromQuantity(r.Forces.Drag),
			WakeDrag: fromQuantity(r.Forces.WakeDrag),
		},
		Coefficients: api.Coefficients{
			Lift:     fromQuantity(r.Coefficients.Lift),
			Drag:     fromQuantity(r.Coefficients.Drag),
			Moment:   fromQuantity(r.Coefficients.Moment),
			WakeDrag: fromQuantity(r.Coefficients.WakeDrag),
			CpTop:    fromQuantities(r.Coefficients.CpTop),
			CpBottom: fromQuantities(r.Coefficients.CpBottom),
		},
	}
	if includeWake {
		resp.Wake = make([]api.WakePoint, len(r.Wake))
		for i, p := range r.Wake {
			resp.Wake[i] = api.WakePoint{Y: p.Y, Velocity: fromQuantity(p.Velocity), Config: p.Config, Port: p.Port}
		}
	}
	return resp
}

// ToCaseFailure converts a failed sweep case
func ToCaseFailure(e *aero.CaseError) api.CaseFailure {
	return api.CaseFailure{
		Index: e.Index,
		ID:    e.ID,
		Alpha: e.Alpha,
		Kind:  FailureKind(e.Err),
		Error: e.Err.Error(),
	}
}

// ToSummary converts a sweep summary
func ToSummary(s aero.SweepSummary) *api.Summary {
	return &api.Summary{
		MaxLift:            s.MaxLift,
		StallAlpha:         s.StallAlpha,
		LiftSlopePerDeg:    s.LiftSlopePerDeg,
		LiftSlopePerRad:    s.LiftSlopePerRad,
		ZeroLiftAlpha:      s.ZeroLiftAlpha,
		SlopeRSquared:      s.SlopeRSquared,
		MinWakeDrag:        s.MinWakeDrag,
		MinWakeDragAlpha:   s.MinWakeDragAlpha,
		MeanWakeDrag:       s.MeanWakeDrag,
		MaxLiftToDrag:      s.MaxLiftToDrag,
		MaxLiftToDragAlpha: s.MaxLiftToDragAlpha,
	}
}
