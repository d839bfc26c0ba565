// Package jdk discovers installed Java Development Kits and picks the one
// best suited for Android development.
package jdk

import "fmt"

// Candidate is one discovered JDK installation.
type Candidate struct {
	// Home is the JDK home directory (the parent of bin/).
	Home string `json:"home"`
	// Major is the feature release number, e.g. 17. Zero when unknown.
	Major int `json:"major"`
	// Version is the raw version string the major was parsed from.
	Version string `json:"version,omitempty"`
	// HasCompiler reports whether bin/javac is present.
	HasCompiler bool `json:"has_compiler"`
	// FromEnv reports whether Home matches JAVA_HOME.
	FromEnv bool `json:"from_env"`
	// OnPath reports whether the java found on PATH lives in Home.
	OnPath bool `json:"on_path"`
	// BundledWithIDE reports whether Home is inside an Android Studio install.
	BundledWithIDE bool `json:"bundled_with_ide"`
	// Sources lists where the candidate was found.
	Sources []string `json:"sources,omitempty"`
}

// Rules toggles the optional tie-break rules of SelectBest.
type Rules struct {
	// PreferIDE ranks JDKs bundled with Android Studio above the rest.
	PreferIDE bool
	// PreferNewest picks the highest major version when no flag rule
	// matched. Otherwise the first remaining candidate wins.
	PreferNewest bool
}

// Constraint bounds the acceptable major version and selects the rule set.
type Constraint struct {
	// Min is the inclusive lower bound.
	Min int
	// Max is the inclusive upper bound; zero means unbounded.
	Max int
	// Rules selects the optional tie-break rules.
	Rules Rules
}

// AtLeast returns a constraint accepting min and anything newer.
func AtLeast(minMajor int, rules Rules) Constraint {
	return Constraint{Min: minMajor, Rules: rules}
}

// Exactly returns a constraint accepting only the given major version.
func Exactly(major int, rules Rules) Constraint {
	return Constraint{Min: major, Max: major, Rules: rules}
}

// Allows reports whether major satisfies the version bounds.
func (c Constraint) Allows(major int) bool {
	if major < c.Min {
		return false
	}

	return c.Max == 0 || major <= c.Max
}

func (c Constraint) String() string {
	switch {
	case c.Max == 0:
		return fmt.Sprintf(">= %d", c.Min)
	case c.Min == c.Max:
		return fmt.Sprintf("== %d", c.Min)
	default:
		return fmt.Sprintf("%d..%d", c.Min, c.Max)
	}
}

// SelectBest picks the best candidate satisfying c. Candidates without a
// compiler are never selected. The second result is false when nothing
// qualifies.
//
// Each rule narrows the eligible set to the candidates matching it, unless
// none match: JAVA_HOME, then PATH, then Android Studio bundled (when
// c.Rules.PreferIDE), then the highest major (when c.Rules.PreferNewest).
// Whatever ties remain go to the candidate that appears first in the input.
func SelectBest(candidates []Candidate, c Constraint) (Candidate, bool) {
	eligible := make([]Candidate, 0, len(candidates))

	for i := range candidates {
		if candidates[i].HasCompiler && c.Allows(candidates[i].Major) {
			eligible = append(eligible, candidates[i])
		}
	}

	if len(eligible) == 0 {
		return Candidate{}, false
	}

	eligible = narrow(eligible, func(rt *Candidate) bool { return rt.FromEnv })
	eligible = narrow(eligible, func(rt *Candidate) bool { return rt.OnPath })

	if c.Rules.PreferIDE {
		eligible = narrow(eligible, func(rt *Candidate) bool { return rt.BundledWithIDE })
	}

	if !c.Rules.PreferNewest {
		return eligible[0], true
	}

	best := eligible[0]
	for i := 1; i < len(eligible); i++ {
		if eligible[i].Major > best.Major {
			best = eligible[i]
		}
	}

	return best, true
}

// narrow keeps the candidates matching rule, or all of them when none does.
func narrow(candidates []Candidate, rule func(*Candidate) bool) []Candidate {
	var matched []Candidate

	for i := range candidates {
		if rule(&candidates[i]) {
			matched = append(matched, candidates[i])
		}
	}

	if len(matched) == 0 {
		return candidates
	}

	return matched
}
