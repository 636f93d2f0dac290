// Package aero reduces wind-tunnel pressure measurements on an airfoil into
// aerodynamic forces and coefficients with propagated measurement uncertainty.
//
// # Pipeline
//
// One angle-of-attack Case flows through these steps:
//
//  1. ResolveWake: rake pressures → port velocities, free-stream velocity U∞,
//     dynamic pressure q∞ and a merged wake velocity profile
//  2. IntegrateSurfaces: surface pressures → normal force N, axial force A and
//     leading-edge moment M by trapezoidal quadrature over the tap panels
//  3. ResolveForces: N, A and α → lift L and pressure drag D
//  4. WakeDrag: wake profile → total drag Dt from the momentum deficit
//  5. Coefficient, MomentCoefficient, PressureCoefficients: forces → Cl, Cd,
//     Cm, Cdt and Cp distributions
//
// Reducer runs the steps for one case and Reducer.Sweep runs many cases in
// parallel. Summarize condenses a sweep into lift-curve figures.
//
// # Uncertainty
//
// Every physical quantity is a measure.Quantity. Propagation is first order
// with all inputs independent; geometry (tap coordinates, chord, rake port
// spacing) is treated as exact.
//
// # Conventions
//
// Both airfoil surfaces are ordered from leading edge to trailing edge. The top
// surface contributes −p·cosθ·ds to the normal force and +p·sinθ·ds to the
// axial force, the bottom surface the opposite. Angles of attack are in
// degrees; derivatives with respect to α are taken in radians.
//
// # Errors
//
// Shape and wiring problems return a *PreconditionError (errors.Is
// ErrPrecondition). Bad sensor data such as a negative pressure under a square
// root returns a *DomainError (errors.Is ErrDomain). Both are fatal for the
// case only.
package aero
