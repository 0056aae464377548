package model

import "fmt"

// Startup represents a startup attending the session. OSMentorID and
// OCMentorID are the only fields the solvers and the repair engine write.
type Startup struct {
	ID         string
	Name       string
	Domain     string
	OSMentorID string // opening-session mentor; empty means unassigned
	OCMentorID string // closing-session mentor; empty means unassigned
}

// Validate checks that the startup record is sound. Mentor references are
// allowed to be empty here; the index builder enforces their presence.
func (s Startup) Validate() error {
	if s.ID == "" {
		return fmt.Errorf("startup id must not be empty")
	}
	return nil
}

// Assigned reports whether both mentor references are set.
func (s Startup) Assigned() bool {
	return s.OSMentorID != "" && s.OCMentorID != ""
}
