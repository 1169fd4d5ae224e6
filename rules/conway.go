package rules

/*
Well-known rules expressed in the <survival>/<birth>/<states> notation.

Conway's Game of Life: an alive cell survives with 2 or 3 alive neighbors,
a dead cell is born with exactly 3.

Brian's Brain: nothing survives, a dead cell is born with exactly 2, and
every firing cell spends one generation dying.
*/
var (
	Conway      = MustParse("23/3/2")
	HighLife    = MustParse("23/36/2")
	Seeds       = MustParse("/2/2")
	BriansBrain = MustParse("/2/3")
)

// ApplyConwayRules applies Conway's Game of Life rules to a two-state cell.
func ApplyConwayRules(neighbors int, alive bool) bool {
	cur := Dead
	if alive {
		cur = Alive
	}
	return Conway.Apply(neighbors, cur) == Alive
}
