package dispersion

import "strings"

// PairTable maps a pair key (see PairKey) to its measured dispersion curve.
type PairTable map[string]Curve

// PairKey builds the key a pair-specific curve is stored under:
// "<net1>_<sta1>_<net2>_<sta2>".
func PairKey(net1, sta1, net2, sta2 string) string {
	return strings.Join([]string{net1, sta1, net2, sta2}, "_")
}

// Outcome tells which source a resolved curve came from.
type Outcome string

const (
	// OutcomePair: the forward pair key was present.
	OutcomePair Outcome = "pair"
	// OutcomePairReversed: only the reversed pair key was present.
	OutcomePairReversed Outcome = "pair_reversed"
	// OutcomeGlobal: neither key was present, the global 1-D model is used.
	OutcomeGlobal Outcome = "global"
)

// Resolver returns the dispersion curve to use for a station pair.
type Resolver struct {
	// Global is the 1-D model returned when no pair-specific curve exists.
	Global Curve
	// Pairs is the optional pair-indexed table; nil disables pair lookup.
	Pairs PairTable
}

// Resolve returns the curve for the pair (net1.sta1, net2.sta2).
//
// The table stores each pair under one direction only, so both the forward
// key and the reversed key are probed, forward first. The forward key wins
// when a table contains both directions with different curves.
func (r *Resolver) Resolve(net1, sta1, net2, sta2 string) Curve {
	c, _ := r.Lookup(net1, sta1, net2, sta2)
	return c
}

// Lookup is Resolve plus the outcome of the table probe.
func (r *Resolver) Lookup(net1, sta1, net2, sta2 string) (Curve, Outcome) {
	if len(r.Pairs) == 0 {
		return r.Global, OutcomeGlobal
	}

	if c, ok := r.Pairs[PairKey(net1, sta1, net2, sta2)]; ok {
		return c, OutcomePair
	}
	if c, ok := r.Pairs[PairKey(net2, sta2, net1, sta1)]; ok {
		return c, OutcomePairReversed
	}
	return r.Global, OutcomeGlobal
}
