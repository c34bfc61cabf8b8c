package navmap

import (
	"container/heap"
	"math"

	"github.com/overworld/core/internal/vmath"
)

// Heuristic estimates the remaining step count between two tiles.
type Heuristic func(a, b Pixel) int

// Manhattan is |dx| + |dy|. It over-estimates on the 8-connected grid, so
// paths may be a little longer than optimal.
func Manhattan(a, b Pixel) int {
	return abs(a.X-b.X) + abs(a.Y-b.Y)
}

// Chebyshev is max(|dx|, |dy|), exact for uniform-cost 8-connected moves.
func Chebyshev(a, b Pixel) int {
	return max(abs(a.X-b.X), abs(a.Y-b.Y))
}

// Neighbour order: left, right, up, down, up-left, down-left, up-right,
// down-right. Ties in the open set resolve in this insertion order.
var neighbourSteps = [8]Pixel{
	{-1, 0}, {1, 0}, {0, -1}, {0, 1},
	{-1, -1}, {-1, 1}, {1, -1}, {1, 1},
}

const stepCost = 1

// Finder runs best-first searches over navmap images.
type Finder struct {
	Heuristic Heuristic
}

// FindPath searches with the Manhattan heuristic. See Finder.FindPath.
func FindPath(start, goal vmath.Vec3, mask Area, extent Extent, img Image) []vmath.Vec3 {
	return Finder{Heuristic: Manhattan}.FindPath(start, goal, mask, extent, img)
}

// FindPath returns the world-space waypoints from start to goal for a unit
// that may enter tiles matching mask. The start tile is not emitted; every
// intermediate waypoint is a tile centre at start's height, and the last
// entry is goal itself. The result is nil when start and goal share a tile or
// the goal cannot be reached.
func (f Finder) FindPath(start, goal vmath.Vec3, mask Area, extent Extent, img Image) []vmath.Vec3 {
	w, h := img.Size()
	if w <= 0 || h <= 0 {
		return nil
	}
	proj := Projection{Extent: extent, W: w, H: h}
	from, to := proj.WorldToPixel(start), proj.WorldToPixel(goal)
	if from == to {
		return nil
	}
	hf := f.Heuristic
	if hf == nil {
		hf = Manhattan
	}

	s := newSearch(img, w, h)
	goalIdx := s.run(s.index(from), s.index(to), mask, hf)
	if goalIdx < 0 {
		return nil
	}

	var rev []Pixel
	for i := s.tiles[goalIdx].parent; i >= 0 && int(i) != s.index(from); i = s.tiles[i].parent {
		rev = append(rev, s.pixel(int(i)))
	}
	path := make([]vmath.Vec3, 0, len(rev)+1)
	for i := len(rev) - 1; i >= 0; i-- {
		path = append(path, proj.PixelToWorld(rev[i], start.Z))
	}
	return append(path, goal)
}

type tile struct {
	g, f   int
	area   Area
	parent int32
	closed bool
}

// search holds the transient grid of one FindPath call.
type search struct {
	w, h  int
	tiles []tile
	open  openSet
	seq   uint64
}

func newSearch(img Image, w, h int) *search {
	s := &search{w: w, h: h, tiles: make([]tile, w*h)}
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			s.tiles[y*w+x] = tile{
				g:      math.MaxInt,
				f:      math.MaxInt,
				area:   Classify(img.RGBAt(x, y)),
				parent: -1,
			}
		}
	}
	return s
}

func (s *search) index(p Pixel) int { return p.Y*s.w + p.X }

func (s *search) pixel(i int) Pixel { return Pixel{X: i % s.w, Y: i / s.w} }

func (s *search) push(idx, f int) {
	s.seq++
	heap.Push(&s.open, openEntry{idx: idx, f: f, seq: s.seq})
}

// run expands tiles until goal is closed. It returns goal, or -1 when the
// open set is exhausted.
func (s *search) run(start, goal int, mask Area, h Heuristic) int {
	goalPx := s.pixel(goal)
	s.tiles[start].g = 0
	s.tiles[start].f = h(s.pixel(start), goalPx)
	s.push(start, s.tiles[start].f)

	for s.open.Len() > 0 {
		cur := heap.Pop(&s.open).(openEntry)
		t := &s.tiles[cur.idx]
		if t.closed || cur.f != t.f {
			continue // stale entry
		}
		if cur.idx == goal {
			return goal
		}
		t.closed = true

		curPx := s.pixel(cur.idx)
		for _, d := range neighbourSteps {
			np := Pixel{X: curPx.X + d.X, Y: curPx.Y + d.Y}
			if np.X < 0 || np.X >= s.w || np.Y < 0 || np.Y >= s.h {
				continue
			}
			ni := s.index(np)
			n := &s.tiles[ni]
			if n.closed || !mask.Traversable(n.area) {
				continue
			}
			tentative := t.g + stepCost
			if tentative >= n.g {
				continue
			}
			n.parent = int32(cur.idx)
			n.g = tentative
			n.f = tentative + h(np, goalPx)
			s.push(ni, n.f)
		}
	}
	return -1
}

type openEntry struct {
	idx int
	f   int
	seq uint64
}

// openSet is a min-heap on f, then on insertion sequence.
type openSet []openEntry

func (o openSet) Len() int { return len(o) }

func (o openSet) Less(i, j int) bool {
	if o[i].f != o[j].f {
		return o[i].f < o[j].f
	}
	return o[i].seq < o[j].seq
}

func (o openSet) Swap(i, j int) { o[i], o[j] = o[j], o[i] }

func (o *openSet) Push(x any) { *o = append(*o, x.(openEntry)) }

func (o *openSet) Pop() any {
	old := *o
	n := len(old)
	e := old[n-1]
	*o = old[:n-1]
	return e
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
