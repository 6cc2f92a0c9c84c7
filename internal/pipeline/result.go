package pipeline

// Count is one named statistic.
type Count struct {
	Name string
	N    int
}

// Result is what a stage reports. Counts keep their insertion order so the
// report lists them the way the stage declared them.
type Result struct {
	Stage    string
	Selected int
	Changed  int
	Counts   []Count
	// Breakdown holds secondary counts: per-extractor hits, score brackets.
	Breakdown []Count
}

func (r *Result) Add(name string, n int) { r.Counts = add(r.Counts, name, n) }

func (r *Result) AddBreakdown(name string, n int) { r.Breakdown = add(r.Breakdown, name, n) }

func (r Result) Get(name string) int { return get(r.Counts, name) }

func (r Result) GetBreakdown(name string) int { return get(r.Breakdown, name) }

func add(cs []Count, name string, n int) []Count {
	for i := range cs {
		if cs[i].Name == name {
			cs[i].N += n
			return cs
		}
	}
	return append(cs, Count{Name: name, N: n})
}

func get(cs []Count, name string) int {
	for _, c := range cs {
		if c.Name == name {
			return c.N
		}
	}
	return 0
}

// Summary aggregates the stage results of one run.
type Summary struct {
	Results []Result
}

func (s Summary) Stage(name string) (Result, bool) {
	for _, r := range s.Results {
		if r.Stage == name {
			return r, true
		}
	}
	return Result{}, false
}

// Changed is the number of listing changes summed over
// stages. A listing touched by two stages counts twice.
func (s Summary) Changed() int {
	n := 0
	for _, r := range s.Results {
		n += r.Changed
	}
	return n
}
