package model

import "fmt"

// Mentor represents a mentor seated at a table for the whole session.
type Mentor struct {
	ID      string
	Name    string
	TableID int // table the mentor sits at; only repair may reseat
	Domains []string
	CanBeOS bool // eligible to open a startup's session
	CanBeOC bool // eligible to close a startup's session
}

// Validate checks that the mentor record is sound.
func (m Mentor) Validate() error {
	if m.ID == "" {
		return fmt.Errorf("mentor id must not be empty")
	}
	if m.TableID < 0 {
		return fmt.Errorf("mentor %s: table id must be non-negative", m.ID)
	}
	return nil
}

// HasDomain reports whether the mentor covers the given domain tag.
func (m Mentor) HasDomain(domain string) bool {
	for _, d := range m.Domains {
		if d == domain {
			return true
		}
	}
	return false
}
