// Package kerr computes closed-form observables of a rotating (Kerr) black
// hole from its mass, dimensionless spin and accretion rate.
//
// Radii are returned in units of the gravitational radius r_g = GM/c²
// unless the name says otherwise; luminosities are in watts.
//
//   - [SchwarzschildRadius]: rs = 2GM/c² in metres
//   - [HorizonRadius]: outer event horizon r₊
//   - [ISCORadiusPrograde]: Bardeen–Press–Teukolsky prograde ISCO
//   - [RadiativeEfficiency]: η = 1 − E_ISCO
//   - [Summarize]: all of the above for a [Parameters] value
//
// # Domain
//
// Mass must be positive and at most [MaxMassSolar], spin must lie in
// [0, 1) and the accretion rate (in Eddington units) must be finite and
// non-negative. Anything else fails with an error wrapping
// [ErrInvalidParameter]; values are never clamped silently. Within the
// domain every result is finite, and [Summarize] also rejects accretion
// rates whose luminosity would overflow. Callers that drive the functions
// from a UI should clamp their inputs before calling.
//
// # Thread Safety
//
// Every function is pure and may be called concurrently.
package kerr
