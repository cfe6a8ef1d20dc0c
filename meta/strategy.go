package meta

// Strategy names the search path an Engine takes, grounded on the
// teacher's Strategy enum (reduced from its dozen-plus members to the two
// this build's literal/prefilter scope actually produces).
type Strategy int

const (
	// StrategyPikeVM runs the PikeVM unanchored over the whole haystack.
	// Selected when prefiltering is disabled or no usable literal prefix
	// could be extracted from the pattern.
	StrategyPikeVM Strategy = iota

	// StrategyPrefilter scans for literal-prefix candidates and confirms
	// each one with an anchored PikeVM call at that position.
	StrategyPrefilter
)

func (s Strategy) String() string {
	switch s {
	case StrategyPikeVM:
		return "StrategyPikeVM"
	case StrategyPrefilter:
		return "StrategyPrefilter"
	default:
		return "Strategy(unknown)"
	}
}
