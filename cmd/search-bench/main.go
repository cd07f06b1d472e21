// search-bench compares the three finders on seeded obstacle fields
package main

import (
	"flag"
	"fmt"
	"io"
	"math/rand/v2"
	"os"
	"time"

	"github.com/dustin/go-humanize"

	"github.com/lixenwraith/algo-snake/maze"
	"github.com/lixenwraith/algo-snake/navigation"
	"github.com/lixenwraith/algo-snake/parameter"
)

var (
	fieldsFlag  = flag.Int("fields", 20, "Number of obstacle fields")
	queriesFlag = flag.Int("queries", 50, "Start/goal pairs per field")
	densityFlag = flag.Float64("density", parameter.NavBenchObstacleDensity, "Fraction of blocked cells")
	seedFlag    = flag.Uint64("seed", 1, "Field generator seed")
	earlyFlag   = flag.Bool("early", false, "Stop at goal discovery instead of goal expansion")
	layoutFlag  = flag.String("layout", "random", "Field layout: random|maze")
	braidFlag   = flag.Float64("braid", 0.3, "Dead end removal probability for maze layouts")
)

// stats accumulates one finder's results
type stats struct {
	name     string
	queries  int
	found    int
	expanded int
	pathLen  int
	elapsed  time.Duration
}

// report is the outcome of a whole benchmark run
type report struct {
	stats      []*stats
	mismatches int
}

// layout builds one obstacle field
type layout func(rng *rand.Rand) *maze.Field

func randomLayout(density float64) layout {
	return func(rng *rand.Rand) *maze.Field { return maze.Random(rng, parameter.GridBounds, density) }
}

func mazeLayout(braid float64) layout {
	return func(rng *rand.Rand) *maze.Field { return maze.Generate(rng, parameter.GridBounds, braid) }
}

// bench runs every finder on the same queries and counts disagreements on path length
func bench(seed uint64, fields, queries int, build layout, shortest bool) report {
	finders := []navigation.Finder{navigation.NewAStar(), navigation.NewBFS(), navigation.NewDijkstra()}
	rep := report{stats: make([]*stats, len(finders))}
	for i, f := range finders {
		rep.stats[i] = &stats{name: f.Name()}
	}

	rng := rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))
	lengths := make([]int, len(finders))
	for fi := 0; fi < fields; fi++ {
		fld := build(rng)
		for q := 0; q < queries; q++ {
			start, ok1 := fld.FreeCell(rng)
			goal, ok2 := fld.FreeCell(rng)
			if !ok1 || !ok2 || start == goal {
				continue
			}
			req := navigation.Request{
				Start:    start,
				Goal:     goal,
				Bounds:   fld.Bounds,
				Blocked:  fld.Blocked,
				Shortest: shortest,
			}
			for i, f := range finders {
				t0 := time.Now()
				res := f.FindPath(req)
				st := rep.stats[i]
				st.elapsed += time.Since(t0)
				st.queries++
				st.expanded += res.Expanded
				lengths[i] = len(res.Path)
				if res.Found() {
					st.found++
					st.pathLen += len(res.Path)
				}
			}
			for i := 1; i < len(lengths); i++ {
				if lengths[i] != lengths[0] {
					rep.mismatches++
					break
				}
			}
		}
	}
	return rep
}

func (r report) write(w io.Writer) {
	fmt.Fprintf(w, "%-10s %8s %8s %14s %10s %12s\n", "finder", "queries", "found", "expanded", "avg_path", "per_query")
	for _, st := range r.stats {
		avgPath, perQuery := 0.0, time.Duration(0)
		if st.found > 0 {
			avgPath = float64(st.pathLen) / float64(st.found)
		}
		if st.queries > 0 {
			perQuery = st.elapsed / time.Duration(st.queries)
		}
		fmt.Fprintf(w, "%-10s %8s %8s %14s %10.2f %12s\n",
			st.name,
			humanize.Comma(int64(st.queries)),
			humanize.Comma(int64(st.found)),
			humanize.Comma(int64(st.expanded)),
			avgPath,
			perQuery,
		)
	}
	fmt.Fprintf(w, "length mismatches: %d\n", r.mismatches)
}

func main() {
	flag.Parse()
	build := randomLayout(*densityFlag)
	switch *layoutFlag {
	case "random":
	case "maze":
		build = mazeLayout(*braidFlag)
	default:
		fmt.Fprintf(os.Stderr, "unknown layout %q\n", *layoutFlag)
		os.Exit(2)
	}
	rep := bench(*seedFlag, *fieldsFlag, *queriesFlag, build, !*earlyFlag)
	rep.write(os.Stdout)
	if rep.mismatches > 0 {
		os.Exit(1)
	}
}
