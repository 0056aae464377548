package repair

import (
	"fmt"
	"sort"

	"github.com/kilianp07/mentormatch/core/feasibility"
	"github.com/kilianp07/mentormatch/core/logger"
	"github.com/kilianp07/mentormatch/core/model"
	"github.com/kilianp07/mentormatch/core/session"
)

// RebindResult is the outcome of a batch mentor-rebinding repair.
type RebindResult struct {
	OK     bool
	Moves  int
	Report *feasibility.Report
}

// RebindOne performs a single corrective move: it picks the overloaded
// table with the tightest constraint (OC first, then OS, then combined),
// selects the startup with the highest combined overload score and rebinds
// its mentor for that role to one with spare personal and table capacity.
//
// It reports whether a move was committed. The startup slice is mutated in
// place: this variant exists to accumulate repairs across interactive
// rounds on persistent session state.
func RebindOne(mentors []model.Mentor, startups []model.Startup, cfg session.Config, log logger.Logger) (bool, error) {
	if log == nil {
		log = logger.Nop{}
	}
	rep, err := feasibility.Analyze(mentors, startups, cfg)
	if err != nil {
		return false, err
	}
	if rep.OK {
		return false, nil
	}
	idx, err := session.BuildIndex(mentors, startups)
	if err != nil {
		return false, err
	}

	badTable, isOS, ok := pickOverload(rep, idx)
	if !ok {
		return false, nil
	}

	osExcess, ocExcess, totalExcess := rep.OverloadExcess()
	offender, score := pickOffender(startups, idx, badTable, isOS, osExcess, ocExcess, totalExcess)
	if offender < 0 {
		return false, fmt.Errorf("no startup found on table %d for the overloaded role", badTable)
	}
	st := &startups[offender]

	cand := candidateMentors(mentors, startups, idx, cfg, st, badTable, isOS)
	if len(cand) == 0 {
		role := roleName(isOS)
		log.Warnf("no eligible mentor with spare capacity to take over %s of startup %s", role, st.ID)
		return false, nil
	}
	chosen := cand[0]
	log.Infof("moving %s of startup %s (score %d) from table %d to mentor %s at table %d",
		roleName(isOS), st.ID, score, badTable, chosen.ID, chosen.TableID)
	if isOS {
		st.OSMentorID = chosen.ID
	} else {
		st.OCMentorID = chosen.ID
	}
	return true, nil
}

// Rebind repeatedly applies corrective moves until the session is free of
// overloads or no legal destination remains. Each move strictly decreases
// one table's load, so the loop is bounded by the initial overload mass.
func Rebind(mentors []model.Mentor, startups []model.Startup, cfg session.Config, log logger.Logger) (*RebindResult, error) {
	res := &RebindResult{}
	for {
		moved, err := RebindOne(mentors, startups, cfg, log)
		if err != nil {
			return nil, err
		}
		if !moved {
			break
		}
		res.Moves++
	}
	rep, err := feasibility.Analyze(mentors, startups, cfg)
	if err != nil {
		return nil, err
	}
	res.Report = rep
	res.OK = len(rep.OSOverloaded) == 0 && len(rep.OCOverloaded) == 0 && len(rep.TotalOverloaded) == 0
	return res, nil
}

// pickOverload chooses which overload to attack next: OC overloads carry the
// tighter capacity under default eligibility, then OS, then combined, where
// the heavier role on the table is the one moved.
func pickOverload(rep *feasibility.Report, idx *session.Index) (table int, isOS, ok bool) {
	if len(rep.OCOverloaded) > 0 {
		return rep.OCOverloaded[0].Table, false, true
	}
	if len(rep.OSOverloaded) > 0 {
		return rep.OSOverloaded[0].Table, true, true
	}
	if len(rep.TotalOverloaded) > 0 {
		t := rep.TotalOverloaded[0].Table
		osHere, ocHere := 0, 0
		for _, s := range idx.Startups {
			if idx.OSTable[s] == t {
				osHere++
			}
			if idx.OCTable[s] == t {
				ocHere++
			}
		}
		return t, osHere >= ocHere, true
	}
	return 0, false, false
}

// pickOffender selects the startup on the table with the highest combined
// overload score: the overload magnitudes of its OS table, its OC table and
// both tables' combined overloads.
func pickOffender(startups []model.Startup, idx *session.Index, table int, isOS bool, osExcess, ocExcess, totalExcess map[int]int) (int, int) {
	best, bestScore := -1, -1
	for i := range startups {
		id := startups[i].ID
		onTable := idx.OCTable[id] == table
		if isOS {
			onTable = idx.OSTable[id] == table
		}
		if !onTable {
			continue
		}
		osT, ocT := idx.OSTable[id], idx.OCTable[id]
		score := osExcess[osT] + ocExcess[ocT] + totalExcess[osT] + totalExcess[ocT]
		if score > bestScore {
			best, bestScore = i, score
		}
	}
	return best, bestScore
}

// candidateMentors lists mentors able to take over the startup's role
// binding, sorted by their table's combined load so moves balance the room.
func candidateMentors(mentors []model.Mentor, startups []model.Startup, idx *session.Index, cfg session.Config, st *model.Startup, badTable int, isOS bool) []model.Mentor {
	osLoad := make(map[string]int, len(mentors))
	ocLoad := make(map[string]int, len(mentors))
	for _, s := range startups {
		osLoad[s.OSMentorID]++
		ocLoad[s.OCMentorID]++
	}
	tableOS := make(map[int]int, len(idx.Tables))
	tableOC := make(map[int]int, len(idx.Tables))
	for _, s := range idx.Startups {
		tableOS[idx.OSTable[s]]++
		tableOC[idx.OCTable[s]]++
	}

	otherTable := idx.OSTable[st.ID]
	if isOS {
		otherTable = idx.OCTable[st.ID]
	}

	var cand []model.Mentor
	for _, m := range mentors {
		if m.TableID == badTable || m.TableID == otherTable {
			continue
		}
		if tableOS[m.TableID]+tableOC[m.TableID] >= cfg.Rounds {
			continue
		}
		if isOS {
			if !m.CanBeOS || osLoad[m.ID] >= cfg.MaxOSPerMentor || tableOS[m.TableID] >= cfg.OSCapacity() {
				continue
			}
		} else {
			if !m.CanBeOC || ocLoad[m.ID] >= cfg.MaxOCPerMentor || tableOC[m.TableID] >= cfg.OCCapacity() {
				continue
			}
		}
		cand = append(cand, m)
	}
	sort.SliceStable(cand, func(i, j int) bool {
		li := tableOS[cand[i].TableID] + tableOC[cand[i].TableID]
		lj := tableOS[cand[j].TableID] + tableOC[cand[j].TableID]
		if li != lj {
			return li < lj
		}
		return cand[i].ID < cand[j].ID
	})
	return cand
}

func roleName(isOS bool) string {
	if isOS {
		return "OS"
	}
	return "OC"
}
