package cutgen

// Config carries the host-provided numerical tolerances plus the empirical
// c-MIR cutoffs the design notes flag as implementer-configurable. It is
// immutable for the lifetime of a CutEngine, same as the host MIP's configuration object
// is configured once via setter calls before Solve.
type Config struct {
	// Feastol is epsilon_f, the feasibility tolerance of the host MIP.
	Feastol float64

	// Epsilon is epsilon_0, the base rounding epsilon. Must be <= Feastol.
	Epsilon float64

	// MIRDeltaMin/MIRDeltaMax bound the magnitude of c-MIR divisor candidates.
	MIRDeltaMin float64
	MIRDeltaMax float64

	// MIRDynamismBound rejects a divisor if 1/((1-f0)*delta) exceeds it.
	MIRDynamismBound float64
}

// NewConfig builds a Config from the host's tolerances, filling in the
// empirical c-MIR cutoffs with their default values.
func NewConfig(feastol, epsilon float64) Config {
	return Config{
		Feastol:          feastol,
		Epsilon:          epsilon,
		MIRDeltaMin:      1e-4,
		MIRDeltaMax:      1e4,
		MIRDynamismBound: 1e4,
	}
}
