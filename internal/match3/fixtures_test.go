package match3

// scenarioBoard is an 8x8 board of five kinds without any run. Swapping
// (2,2) with (3,2) lines up three reds on row 3, and swapping (6,7) with
// (7,7) lines up three greens on row 7, far from anything the first swap
// can disturb.
var scenarioBoard = []string{
	"RGYBMRGY",
	"YBMRGYBM",
	"MRRYBMRG",
	"RRBMRGYB",
	"BMRGYBMR",
	"RGYBMRGY",
	"YBMRGYBG",
	"MRGYBGGB",
}

// crossBoard: swapping (2,2) with (2,3) creates a horizontal and a
// vertical red run sharing (2,2).
var crossBoard = []string{
	"GYMCG",
	"YMCGY",
	"RRBRM",
	"CGRYC",
	"MCRGY",
}

// cascadeBoard: swapping (3,0) with (3,1) clears three reds in column 0;
// the green from (1,0) then falls next to the greens on row 4.
var cascadeBoard = []string{
	"YMCB",
	"GBYM",
	"RCMY",
	"BRCM",
	"RGGB",
}

func clearSteps(steps []Step) []Step {
	var out []Step
	for _, s := range steps {
		if s.Kind == StepClear {
			out = append(out, s)
		}
	}
	return out
}

func containsCell(cells []Cell, c Cell) bool {
	for _, x := range cells {
		if x == c {
			return true
		}
	}
	return false
}
