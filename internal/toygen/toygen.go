// Package toygen builds small synthetic mentor/startup populations with a
// capacity-safe OS/OC assignment and a domain-biased fit matrix. The
// scheduling engine only consumes its output; production datasets come from
// elsewhere. All randomness flows through an explicitly passed generator so
// runs are reproducible from a seed.
package toygen

import (
	"fmt"
	"math/rand"
	"sort"

	"github.com/kilianp07/mentormatch/core/model"
	"github.com/kilianp07/mentormatch/core/session"
)

// Domains are the synthetic domain tags startups and mentors draw from.
var Domains = []string{
	"AI", "FinTech", "Healthcare", "Marketing", "Robotics",
	"ClimateTech", "Retail", "Education", "Biotech", "Cybersecurity",
}

// Config sizes the generated population.
type Config struct {
	NumTables       int   `json:"num_tables" yaml:"num_tables"`
	NumStartups     int   `json:"num_startups" yaml:"num_startups"`
	MentorsPerTable int   `json:"mentors_per_table" yaml:"mentors_per_table"`
	Seed            int64 `json:"seed" yaml:"seed"`
}

// SetDefaults fills zero-valued fields with the standard toy layout.
func (c *Config) SetDefaults() {
	if c.NumTables == 0 {
		c.NumTables = 10
	}
	if c.NumStartups == 0 {
		c.NumStartups = 10
	}
	if c.MentorsPerTable == 0 {
		c.MentorsPerTable = 3
	}
	if c.Seed == 0 {
		c.Seed = 42
	}
}

// Validate checks the population sizes.
func (c Config) Validate() error {
	if c.NumTables <= 0 || c.NumStartups <= 0 || c.MentorsPerTable <= 0 {
		return fmt.Errorf("toy sizes must be positive: tables=%d startups=%d mentors/table=%d",
			c.NumTables, c.NumStartups, c.MentorsPerTable)
	}
	return nil
}

// Generate builds mentors, startups with safe OS/OC assignments, and a fit
// matrix. The same rng state always yields the same population.
func Generate(cfg Config, scfg session.Config, rng *rand.Rand) ([]model.Mentor, []model.Startup, model.FitMatrix, error) {
	if err := cfg.Validate(); err != nil {
		return nil, nil, nil, err
	}

	mentors := make([]model.Mentor, 0, cfg.NumTables*cfg.MentorsPerTable)
	for t := 1; t <= cfg.NumTables; t++ {
		for j := 0; j < cfg.MentorsPerTable; j++ {
			id := fmt.Sprintf("M%03d", len(mentors)+1)
			mentors = append(mentors, model.Mentor{
				ID:      id,
				Name:    "Mentor " + id,
				TableID: t,
				Domains: pickDomains(rng),
				CanBeOS: true,
				CanBeOC: true,
			})
		}
	}

	startups := make([]model.Startup, cfg.NumStartups)
	for i := range startups {
		id := fmt.Sprintf("S%03d", i+1)
		startups[i] = model.Startup{
			ID:     id,
			Name:   "Startup " + id,
			Domain: Domains[rng.Intn(len(Domains))],
		}
	}

	osTable, ocTable, err := SafeMapping(startupIDs(startups), tableIDs(cfg.NumTables), scfg, rng)
	if err != nil {
		return nil, nil, nil, err
	}
	byTable := make(map[int][]model.Mentor)
	for _, m := range mentors {
		byTable[m.TableID] = append(byTable[m.TableID], m)
	}
	for i := range startups {
		id := startups[i].ID
		osM := byTable[osTable[id]][rng.Intn(len(byTable[osTable[id]]))]
		ocM := byTable[ocTable[id]][rng.Intn(len(byTable[ocTable[id]]))]
		startups[i].OSMentorID = osM.ID
		startups[i].OCMentorID = ocM.ID
	}

	fit := make(model.FitMatrix, len(startups)*len(mentors))
	for _, st := range startups {
		for _, m := range mentors {
			score := rng.Float64() * 0.6
			if m.HasDomain(st.Domain) {
				score += 0.4
			}
			fit[model.FitKey{StartupID: st.ID, MentorID: m.ID}] = score
		}
	}

	return mentors, startups, fit, nil
}

// SafeMapping constructs OS/OC table assignments that respect per-table role
// capacity and the combined round budget, so toy instances never fail the
// structural checks for pure capacity reasons. Startups are visited in
// shuffled order and the least loaded candidate table wins.
func SafeMapping(startupIDs []string, tables []int, scfg session.Config, rng *rand.Rand) (map[string]int, map[string]int, error) {
	osCount := make(map[int]int, len(tables))
	ocCount := make(map[int]int, len(tables))
	osTable := make(map[string]int, len(startupIDs))
	ocTable := make(map[string]int, len(startupIDs))

	shuffled := append([]string(nil), startupIDs...)
	rng.Shuffle(len(shuffled), func(i, j int) { shuffled[i], shuffled[j] = shuffled[j], shuffled[i] })

	pick := func(exclude int, roleCount map[int]int, capacity int) (int, bool) {
		var cand []int
		for _, t := range tables {
			if t == exclude {
				continue
			}
			if roleCount[t] < capacity && osCount[t]+ocCount[t] < scfg.Rounds {
				cand = append(cand, t)
			}
		}
		if len(cand) == 0 {
			return 0, false
		}
		sort.Slice(cand, func(i, j int) bool {
			li := osCount[cand[i]] + ocCount[cand[i]]
			lj := osCount[cand[j]] + ocCount[cand[j]]
			if li != lj {
				return li < lj
			}
			return cand[i] < cand[j]
		})
		return cand[0], true
	}

	for _, s := range shuffled {
		t, ok := pick(-1, osCount, scfg.OSCapacity())
		if !ok {
			return nil, nil, fmt.Errorf("cannot assign an OS table for startup %s without exceeding capacity; use more tables or fewer startups", s)
		}
		osTable[s] = t
		osCount[t]++
	}
	for _, s := range shuffled {
		t, ok := pick(osTable[s], ocCount, scfg.OCCapacity())
		if !ok {
			return nil, nil, fmt.Errorf("cannot assign an OC table for startup %s without exceeding capacity; use more tables or fewer startups", s)
		}
		ocTable[s] = t
		ocCount[t]++
	}

	return osTable, ocTable, nil
}

// Generator adapts Generate to the repair workflow's regeneration hook. The
// returned closure owns a deterministic rng seeded once, so successive
// regenerations differ but the whole run replays from the seed.
func Generator(mentorsPerTable int, seed int64) func(numTables, numStartups int) ([]model.Mentor, []model.Startup, error) {
	rng := rand.New(rand.NewSource(seed))
	scfg := session.DefaultConfig()
	return func(numTables, numStartups int) ([]model.Mentor, []model.Startup, error) {
		cfg := Config{NumTables: numTables, NumStartups: numStartups, MentorsPerTable: mentorsPerTable, Seed: seed}
		mentors, startups, _, err := Generate(cfg, scfg, rng)
		return mentors, startups, err
	}
}

func startupIDs(startups []model.Startup) []string {
	ids := make([]string, len(startups))
	for i, s := range startups {
		ids[i] = s.ID
	}
	return ids
}

func tableIDs(n int) []int {
	ids := make([]int, n)
	for i := range ids {
		ids[i] = i + 1
	}
	return ids
}

func pickDomains(rng *rand.Rand) []string {
	n := 1 + rng.Intn(2)
	perm := rng.Perm(len(Domains))
	out := make([]string, n)
	for i := 0; i < n; i++ {
		out[i] = Domains[perm[i]]
	}
	return out
}
