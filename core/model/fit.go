package model

import "fmt"

// FitKey identifies one (startup, mentor) affinity entry.
type FitKey struct {
	StartupID string
	MentorID  string
}

// FitMatrix holds externally supplied affinity scores in [0,1] keyed by
// (startup, mentor).
type FitMatrix map[FitKey]float64

// Score returns the fit score for the pair. A missing key is an error.
func (f FitMatrix) Score(startupID, mentorID string) (float64, error) {
	v, ok := f[FitKey{StartupID: startupID, MentorID: mentorID}]
	if !ok {
		return 0, fmt.Errorf("no fit score for startup %s and mentor %s", startupID, mentorID)
	}
	return v, nil
}

// ScoreOrZero returns the fit score for the pair, defaulting to 0.0 when the
// key is absent. The joint solver objective tolerates sparse matrices this
// way; every other path uses Score.
func (f FitMatrix) ScoreOrZero(startupID, mentorID string) float64 {
	return f[FitKey{StartupID: startupID, MentorID: mentorID}]
}

// Validate checks that every score lies in [0,1].
func (f FitMatrix) Validate() error {
	for k, v := range f {
		if v < 0 || v > 1 {
			return fmt.Errorf("fit score for (%s, %s) out of range: %v", k.StartupID, k.MentorID, v)
		}
	}
	return nil
}
