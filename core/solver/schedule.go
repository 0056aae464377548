package solver

// Seat is one occupancy triple: the startup sits at the table in the round.
type Seat struct {
	StartupID string `json:"startup_id"`
	Table     int    `json:"table"`
	Round     int    `json:"round"`
}

// Schedule is the sparse set of occupancy triples of a solved session. It is
// ephemeral: read it, render it, discard it.
type Schedule []Seat

// TableAt returns the table the startup occupies in the round.
func (sch Schedule) TableAt(startupID string, round int) (int, bool) {
	for _, s := range sch {
		if s.StartupID == startupID && s.Round == round {
			return s.Table, true
		}
	}
	return 0, false
}

// OccupantAt returns the startup seated at the table in the round.
func (sch Schedule) OccupantAt(table, round int) (string, bool) {
	for _, s := range sch {
		if s.Table == table && s.Round == round {
			return s.StartupID, true
		}
	}
	return "", false
}
