package match3

// MinRun is the shortest line of equal gems that counts as a match.
const MinRun = 3

// Run is a maximal horizontal or vertical line of at least MinRun equal gems.
type Run struct {
	Kind       Tile `json:"kind"`
	Start      Cell `json:"start"`
	Length     int  `json:"length"`
	Horizontal bool `json:"horizontal"`
}

// Cells lists the cells covered by the run, starting at Start.
func (r Run) Cells() []Cell {
	out := make([]Cell, r.Length)
	for i := range r.Length {
		if r.Horizontal {
			out[i] = r.Start.Add(0, i)
		} else {
			out[i] = r.Start.Add(i, 0)
		}
	}
	return out
}

// FindRuns returns every maximal run on the board: horizontal runs in
// row-major order followed by vertical runs in column-major order. A run of
// four is reported once, never as two overlapping runs of three.
func FindRuns(b *Board) []Run {
	var runs []Run

	for r := range b.rows {
		start := 0
		for c := 1; c <= b.cols; c++ {
			if c < b.cols && b.Get(r, c) == b.Get(r, start) {
				continue
			}
			if kind := b.Get(r, start); kind != Empty && c-start >= MinRun {
				runs = append(runs, Run{Kind: kind, Start: Cell{r, start}, Length: c - start, Horizontal: true})
			}
			start = c
		}
	}

	for c := range b.cols {
		start := 0
		for r := 1; r <= b.rows; r++ {
			if r < b.rows && b.Get(r, c) == b.Get(start, c) {
				continue
			}
			if kind := b.Get(start, c); kind != Empty && r-start >= MinRun {
				runs = append(runs, Run{Kind: kind, Start: Cell{start, c}, Length: r - start})
			}
			start = r
		}
	}

	return runs
}

// Mask marks the cells claimed by at least one run.
type Mask struct {
	rows  int
	cols  int
	set   []bool
	count int
}

func newMask(rows, cols int) Mask {
	return Mask{rows: rows, cols: cols, set: make([]bool, rows*cols)}
}

func (m *Mask) add(c Cell) {
	i := c.Row*m.cols + c.Col
	if !m.set[i] {
		m.set[i] = true
		m.count++
	}
}

// Has reports whether c is marked.
func (m Mask) Has(c Cell) bool {
	if c.Row < 0 || c.Row >= m.rows || c.Col < 0 || c.Col >= m.cols {
		return false
	}
	return m.set[c.Row*m.cols+c.Col]
}

// Count returns the number of marked cells. Cells shared by a horizontal
// and a vertical run are counted once.
func (m Mask) Count() int {
	return m.count
}

// Empty reports whether no cell is marked.
func (m Mask) Empty() bool {
	return m.count == 0
}

// Cells lists the marked cells in row-major order.
func (m Mask) Cells() []Cell {
	out := make([]Cell, 0, m.count)
	for i, on := range m.set {
		if on {
			out = append(out, Cell{Row: i / m.cols, Col: i % m.cols})
		}
	}
	return out
}

// Equal reports whether two masks mark the same cells.
func (m Mask) Equal(o Mask) bool {
	if m.rows != o.rows || m.cols != o.cols || m.count != o.count {
		return false
	}
	for i := range m.set {
		if m.set[i] != o.set[i] {
			return false
		}
	}
	return true
}

// FindMatches returns the union of all runs on the board.
func FindMatches(b *Board) Mask {
	return maskOf(b, FindRuns(b))
}

func maskOf(b *Board, runs []Run) Mask {
	m := newMask(b.rows, b.cols)
	for _, run := range runs {
		for _, c := range run.Cells() {
			m.add(c)
		}
	}
	return m
}

// HasAnyMatch reports whether the board contains at least one run.
func HasAnyMatch(b *Board) bool {
	for r := range b.rows {
		for c := range b.cols {
			if matchAt(b, Cell{r, c}) {
				return true
			}
		}
	}
	return false
}

// matchAt reports whether the gem at c is part of a horizontal or vertical
// run.
func matchAt(b *Board, c Cell) bool {
	kind := b.At(c)
	if kind == Empty {
		return false
	}
	return lineLength(b, c, 0, 1, kind) >= MinRun || lineLength(b, c, 1, 0, kind) >= MinRun
}

// lineLength counts equal gems through c along direction (dr, dc) in both
// senses, c included.
func lineLength(b *Board, c Cell, dr, dc int, kind Tile) int {
	n := 1
	for p := c.Add(dr, dc); b.InBounds(p) && b.At(p) == kind; p = p.Add(dr, dc) {
		n++
	}
	for p := c.Add(-dr, -dc); b.InBounds(p) && b.At(p) == kind; p = p.Add(-dr, -dc) {
		n++
	}
	return n
}
