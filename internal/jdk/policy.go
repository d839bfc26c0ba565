package jdk

// Attempt is one step of a Policy.
type Attempt struct {
	Constraint Constraint
	// Warning is shown to the user when this attempt produced the result.
	Warning string
}

// Policy is an ordered list of constraints tried until one yields a JDK.
type Policy []Attempt

// InstallPolicy prefers JDK 17 (required by Gradle 8) and falls back to
// JDK 11 (Gradle 7) with a warning.
var InstallPolicy = Policy{
	{Constraint: AtLeast(17, Rules{PreferIDE: true, PreferNewest: true})},
	{
		Constraint: AtLeast(11, Rules{PreferIDE: true, PreferNewest: true}),
		Warning:    "JDK 17 is recommended for Android development, but was not found. Some features will not work",
	},
}

// LocatePolicy is used by find-jdk. It prefers exactly JDK 11 and accepts
// anything newer otherwise. The Android Studio rule does not apply and the
// first remaining candidate wins.
var LocatePolicy = Policy{
	{Constraint: Exactly(11, Rules{})},
	{Constraint: AtLeast(12, Rules{})},
}

// Resolve runs SelectBest for each attempt in order and returns the first
// hit together with the attempt that produced it.
func (p Policy) Resolve(candidates []Candidate) (Candidate, Attempt, bool) {
	for _, a := range p {
		if rt, ok := SelectBest(candidates, a.Constraint); ok {
			return rt, a, true
		}
	}

	return Candidate{}, Attempt{}, false
}

// Minimum returns the lowest major version any attempt accepts.
func (p Policy) Minimum() int {
	lowest := 0

	for i, a := range p {
		if i == 0 || a.Constraint.Min < lowest {
			lowest = a.Constraint.Min
		}
	}

	return lowest
}
