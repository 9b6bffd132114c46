package atlas

import (
	"strings"
	"testing"

	"badc0de.net/pkg/gridpack/ttesting"
)

func priorForTest(columns int, sprites map[string]*Placement) *Index {
	return &Index{
		TileSize: TileSize{W: 32, H: 32},
		Columns:  columns,
		Sprites:  sprites,
	}
}

func TestPlanFirstRun(t *testing.T) {
	reqs := []Request{
		{Name: "grass", TilesX: 1, TilesY: 1},
		{Name: "tree", TilesX: 2, TilesY: 2},
	}
	positions, skips := Plan(reqs, nil, 3, false)
	if len(skips) != 0 {
		t.Fatalf("want no skips, got %v", skips)
	}

	// Name order places grass first at (0, 0); the 2x2 tree then
	// first-fits at (0, 1).
	ttesting.AssertEqualInt(t, "grass row", positions["grass"].Row, 0)
	ttesting.AssertEqualInt(t, "grass col", positions["grass"].Col, 0)
	ttesting.AssertEqualInt(t, "tree row", positions["tree"].Row, 0)
	ttesting.AssertEqualInt(t, "tree col", positions["tree"].Col, 1)
}

func TestPlanKeepsPriorPositions(t *testing.T) {
	prior := priorForTest(4, map[string]*Placement{
		"a": {Row: 2, Col: 3, TilesX: 1, TilesY: 1},
		"b": {Row: 0, Col: 0, TilesX: 2, TilesY: 2},
	})
	reqs := []Request{
		{Name: "a", TilesX: 1, TilesY: 1},
		{Name: "b", TilesX: 2, TilesY: 2},
		{Name: "c", TilesX: 1, TilesY: 1},
	}
	positions, skips := Plan(reqs, prior, 4, false)
	if len(skips) != 0 {
		t.Fatalf("want no skips, got %v", skips)
	}

	ttesting.AssertEqualInt(t, "a row", positions["a"].Row, 2)
	ttesting.AssertEqualInt(t, "a col", positions["a"].Col, 3)
	ttesting.AssertEqualInt(t, "b row", positions["b"].Row, 0)
	ttesting.AssertEqualInt(t, "b col", positions["b"].Col, 0)

	// c is new and takes the first block outside b's rectangle.
	ttesting.AssertEqualInt(t, "c row", positions["c"].Row, 0)
	ttesting.AssertEqualInt(t, "c col", positions["c"].Col, 2)
}

func TestPlanFreedSlotIsReused(t *testing.T) {
	prior := priorForTest(2, map[string]*Placement{
		"a": {Row: 0, Col: 0, TilesX: 1, TilesY: 1},
		"b": {Row: 0, Col: 1, TilesX: 1, TilesY: 1},
	})

	// b's directory is gone; c is new and fills b's old slot.
	reqs := []Request{
		{Name: "a", TilesX: 1, TilesY: 1},
		{Name: "c", TilesX: 1, TilesY: 1},
	}
	positions, _ := Plan(reqs, prior, 2, false)

	ttesting.AssertEqualInt(t, "a row", positions["a"].Row, 0)
	ttesting.AssertEqualInt(t, "a col", positions["a"].Col, 0)
	ttesting.AssertEqualInt(t, "c row", positions["c"].Row, 0)
	ttesting.AssertEqualInt(t, "c col", positions["c"].Col, 1)
	if _, ok := positions["b"]; ok {
		t.Errorf("want b absent from positions")
	}
}

func TestPlanSpanChangeReplaces(t *testing.T) {
	prior := priorForTest(4, map[string]*Placement{
		"a": {Row: 0, Col: 0, TilesX: 1, TilesY: 1},
		"b": {Row: 0, Col: 1, TilesX: 1, TilesY: 1},
	})

	// a grew to 2x2: its old rectangle is not reserved, and it is
	// placed fresh. b keeps its slot, so a lands past it.
	reqs := []Request{
		{Name: "a", TilesX: 2, TilesY: 2},
		{Name: "b", TilesX: 1, TilesY: 1},
	}
	positions, skips := Plan(reqs, prior, 4, false)
	if len(skips) != 0 {
		t.Fatalf("want no skips, got %v", skips)
	}

	ttesting.AssertEqualInt(t, "b row", positions["b"].Row, 0)
	ttesting.AssertEqualInt(t, "b col", positions["b"].Col, 1)
	ttesting.AssertEqualInt(t, "a row", positions["a"].Row, 0)
	ttesting.AssertEqualInt(t, "a col", positions["a"].Col, 2)
}

func TestPlanReorderIgnoresPrior(t *testing.T) {
	prior := priorForTest(4, map[string]*Placement{
		"z": {Row: 5, Col: 3, TilesX: 1, TilesY: 1},
	})
	reqs := []Request{
		{Name: "z", TilesX: 1, TilesY: 1},
	}
	positions, _ := Plan(reqs, prior, 4, true)

	ttesting.AssertEqualInt(t, "z row", positions["z"].Row, 0)
	ttesting.AssertEqualInt(t, "z col", positions["z"].Col, 0)
}

func TestPlanNameOrderBreaksTies(t *testing.T) {
	// Both want (0, 0); the earlier name wins the slot regardless of
	// request order.
	reqs := []Request{
		{Name: "zebra", TilesX: 1, TilesY: 1},
		{Name: "ant", TilesX: 1, TilesY: 1},
	}
	positions, _ := Plan(reqs, nil, 2, false)

	ttesting.AssertEqualInt(t, "ant col", positions["ant"].Col, 0)
	ttesting.AssertEqualInt(t, "zebra col", positions["zebra"].Col, 1)
}

func TestPlanTooWideIsSkipped(t *testing.T) {
	reqs := []Request{
		{Name: "banner", TilesX: 5, TilesY: 1},
		{Name: "tile", TilesX: 1, TilesY: 1},
	}
	positions, skips := Plan(reqs, nil, 3, false)

	if _, ok := positions["banner"]; ok {
		t.Errorf("want banner unplaced")
	}
	if len(skips) != 1 || skips[0].Name != "banner" {
		t.Fatalf("want one skip for banner, got %v", skips)
	}
	if !strings.Contains(skips[0].Reason, "wider than") {
		t.Errorf("skip reason: want mention of width, got %q", skips[0].Reason)
	}
	if _, ok := positions["tile"]; !ok {
		t.Errorf("want tile placed despite banner's skip")
	}
}

func TestPlanStaleOverlappingPriorIsReplanned(t *testing.T) {
	// A hand-edited index can claim overlapping rectangles. The first
	// seeded sprite keeps its slot; the conflicting one is placed
	// fresh so the output never overlaps.
	prior := priorForTest(4, map[string]*Placement{
		"a": {Row: 0, Col: 0, TilesX: 2, TilesY: 2},
		"b": {Row: 1, Col: 1, TilesX: 2, TilesY: 2},
	})
	reqs := []Request{
		{Name: "a", TilesX: 2, TilesY: 2},
		{Name: "b", TilesX: 2, TilesY: 2},
	}
	positions, skips := Plan(reqs, prior, 4, false)
	if len(skips) != 0 {
		t.Fatalf("want no skips, got %v", skips)
	}

	a, b := positions["a"], positions["b"]
	ttesting.AssertEqualInt(t, "a row", a.Row, 0)
	ttesting.AssertEqualInt(t, "a col", a.Col, 0)
	ttesting.AssertNoOverlap(t, "a and b", a.Row, a.Col, 2, 2, b.Row, b.Col, 2, 2)
}

func TestPlanNoOverlapAcrossMixedSizes(t *testing.T) {
	reqs := []Request{
		{Name: "a", TilesX: 2, TilesY: 2},
		{Name: "b", TilesX: 1, TilesY: 1},
		{Name: "c", TilesX: 3, TilesY: 1},
		{Name: "d", TilesX: 1, TilesY: 2},
		{Name: "e", TilesX: 2, TilesY: 1},
	}
	positions, skips := Plan(reqs, nil, 4, false)
	if len(skips) != 0 {
		t.Fatalf("want no skips, got %v", skips)
	}
	if len(positions) != len(reqs) {
		t.Fatalf("want %d positions, got %d", len(reqs), len(positions))
	}

	spans := map[string][2]int{}
	for _, r := range reqs {
		spans[r.Name] = [2]int{r.TilesX, r.TilesY}
	}
	for _, r0 := range reqs {
		for _, r1 := range reqs {
			if r0.Name >= r1.Name {
				continue
			}
			p0, p1 := positions[r0.Name], positions[r1.Name]
			s0, s1 := spans[r0.Name], spans[r1.Name]
			ttesting.AssertNoOverlap(t, r0.Name+" and "+r1.Name,
				p0.Row, p0.Col, s0[0], s0[1],
				p1.Row, p1.Col, s1[0], s1[1])
		}
	}
}
