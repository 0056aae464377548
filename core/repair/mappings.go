package repair

import (
	"sort"

	"github.com/kilianp07/mentormatch/core/feasibility"
	"github.com/kilianp07/mentormatch/core/logger"
	"github.com/kilianp07/mentormatch/core/session"
)

// MappingResult is the outcome of a table-mapping repair attempt. The
// mappings reflect the final working copy even on failure; the caller's
// input index is never modified.
type MappingResult struct {
	OSTable map[string]int
	OCTable map[string]int
	OK      bool
	Moves   int
	Report  *feasibility.Report
}

// Mappings tries to repair OS/OC table overloads by moving individual
// startups' bindings to tables with spare capacity. OC overloads are
// relieved first: under the default round eligibility OC capacity is the
// tighter constraint.
func Mappings(idx *session.Index, cfg session.Config, log logger.Logger) *MappingResult {
	if log == nil {
		log = logger.Nop{}
	}
	work := idx.Clone()

	osCount := make(map[int]int, len(work.Tables))
	ocCount := make(map[int]int, len(work.Tables))
	for _, s := range work.Startups {
		osCount[work.OSTable[s]]++
		ocCount[work.OCTable[s]]++
	}

	res := &MappingResult{OSTable: work.OSTable, OCTable: work.OCTable}

	relieve := func(isOS bool) bool {
		mapping := work.OCTable
		count := ocCount
		capacity := cfg.OCCapacity()
		role := "OC"
		if isOS {
			mapping = work.OSTable
			count = osCount
			capacity = cfg.OSCapacity()
			role = "OS"
		}
		for _, t := range work.Tables {
			for count[t] > capacity {
				s, ok := offenderOn(work, mapping, t)
				if !ok {
					break
				}
				dest, ok := findDestination(work, cfg, osCount, ocCount, s, isOS)
				if !ok {
					log.Warnf("no spare-capacity destination for %s of startup %s on table %d", role, s, t)
					return false
				}
				count[t]--
				count[dest]++
				mapping[s] = dest
				res.Moves++
				log.Debugw("moved binding", map[string]any{
					"role": role, "startup": s, "from": t, "to": dest,
				})
			}
		}
		return true
	}

	ok := relieve(false) && relieve(true)

	res.Report = feasibility.AnalyzeIndex(work, cfg)
	res.OK = ok &&
		len(res.Report.OSOverloaded) == 0 &&
		len(res.Report.OCOverloaded) == 0 &&
		len(res.Report.TotalOverloaded) == 0
	return res
}

// offenderOn picks a startup bound to the table in the given mapping.
// Startups are scanned in sorted id order so the repair is deterministic.
func offenderOn(idx *session.Index, mapping map[string]int, table int) (string, bool) {
	for _, s := range idx.Startups {
		if mapping[s] == table {
			return s, true
		}
	}
	return "", false
}

// findDestination searches for a table able to take over the startup's
// binding for the role: not the other-role table, role load below role
// capacity, combined load below the round count. Among valid destinations
// the one with the smallest combined load wins.
func findDestination(idx *session.Index, cfg session.Config, osCount, ocCount map[int]int, startup string, isOS bool) (int, bool) {
	other := idx.OSTable[startup]
	roleCount, capacity := ocCount, cfg.OCCapacity()
	if isOS {
		other = idx.OCTable[startup]
		roleCount, capacity = osCount, cfg.OSCapacity()
	}

	var candidates []int
	for _, t := range idx.Tables {
		if t == other {
			continue
		}
		if roleCount[t] < capacity && osCount[t]+ocCount[t] < cfg.Rounds {
			candidates = append(candidates, t)
		}
	}
	if len(candidates) == 0 {
		return 0, false
	}
	sort.Slice(candidates, func(i, j int) bool {
		li := osCount[candidates[i]] + ocCount[candidates[i]]
		lj := osCount[candidates[j]] + ocCount[candidates[j]]
		if li != lj {
			return li < lj
		}
		return candidates[i] < candidates[j]
	})
	return candidates[0], true
}
