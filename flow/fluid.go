package flow

import "math"

type cell []float64

// Fluid is a coarse stable fluids solver stretched over the canvas. It only
// tracks the velocity field: the pointer stirs it, particles are carried by it.
type Fluid struct {
	n          int
	dt         float64
	viscosity  float64
	force      float64
	iterations int
	vorticity  bool
	numOfCells int

	width, height float64

	u, v       cell
	uOld, vOld cell
	curlData   cell
}

type boundaryType int

const (
	boundaryNone boundaryType = iota
	boundaryLeftRight
	boundaryTopBottom
)

// NewFluid creates a solver with n×n inner cells covering a {width, height} canvas.
func NewFluid(n int, width, height float64) *Fluid {
	if n < 4 {
		n = 4
	}
	fs := &Fluid{
		n:          n,
		dt:         0.1,
		viscosity:  0.0001,
		force:      4,
		iterations: 10,
		vorticity:  true,
		width:      width,
		height:     height,
	}
	fs.numOfCells = (n + 2) * (n + 2)
	fs.u = make(cell, fs.numOfCells)
	fs.v = make(cell, fs.numOfCells)
	fs.uOld = make(cell, fs.numOfCells)
	fs.vOld = make(cell, fs.numOfCells)
	fs.curlData = make(cell, fs.numOfCells)

	return fs
}

func (fs *Fluid) idx(i, j int) int {
	return i + (fs.n+2)*j
}

// cellAt maps canvas coordinates onto the inner cells of the grid.
func (fs *Fluid) cellAt(x, y float64) (int, int) {
	i := int(x/fs.width*float64(fs.n)) + 1
	j := int(y/fs.height*float64(fs.n)) + 1
	return clamp(i, 1, fs.n), clamp(j, 1, fs.n)
}

// Resize changes the canvas the grid is stretched over.
func (fs *Fluid) Resize(width, height float64) {
	fs.width, fs.height = width, height
}

// Stir injects the pointer movement {dx, dy} at the canvas coordinates {x, y}.
func (fs *Fluid) Stir(x, y, dx, dy float64) {
	if fs.width <= 0 || fs.height <= 0 {
		return
	}
	i, j := fs.cellAt(x, y)
	fs.uOld[fs.idx(i, j)] += dx / fs.width * fs.force / fs.dt
	fs.vOld[fs.idx(i, j)] += dy / fs.height * fs.force / fs.dt
}

// Velocity returns the displacement in pixels per frame at {x, y}.
func (fs *Fluid) Velocity(x, y float64) (float64, float64) {
	if fs.width <= 0 || fs.height <= 0 {
		return 0, 0
	}
	i, j := fs.cellAt(x, y)
	k := fs.idx(i, j)
	return fs.u[k] * fs.dt * fs.width, fs.v[k] * fs.dt * fs.height
}

// Step advances the velocity field by one time step.
func (fs *Fluid) Step() {
	fs.addSource(fs.u, fs.uOld)
	fs.addSource(fs.v, fs.vOld)

	if fs.vorticity {
		fs.calcVorticityConfinement(fs.uOld, fs.vOld)
		fs.addSource(fs.u, fs.uOld)
		fs.addSource(fs.v, fs.vOld)
	}

	fs.u, fs.uOld = fs.uOld, fs.u
	fs.diffuse(boundaryLeftRight, fs.u, fs.uOld, fs.viscosity)

	fs.v, fs.vOld = fs.vOld, fs.v
	fs.diffuse(boundaryTopBottom, fs.v, fs.vOld, fs.viscosity)

	fs.project(fs.u, fs.v, fs.uOld, fs.vOld)
	fs.u, fs.uOld = fs.uOld, fs.u
	fs.v, fs.vOld = fs.vOld, fs.v

	fs.advect(boundaryLeftRight, fs.u, fs.uOld, fs.uOld, fs.vOld)
	fs.advect(boundaryTopBottom, fs.v, fs.vOld, fs.uOld, fs.vOld)

	fs.project(fs.u, fs.v, fs.uOld, fs.vOld)

	// sources are consumed
	for i := 0; i < fs.numOfCells; i++ {
		fs.uOld[i] = 0
		fs.vOld[i] = 0
	}
}

// Energy returns the summed squared velocity of the grid.
func (fs *Fluid) Energy() float64 {
	var e float64
	for i := 0; i < fs.numOfCells; i++ {
		e += fs.u[i]*fs.u[i] + fs.v[i]*fs.v[i]
	}
	return e
}

// Reset stills the fluid.
func (fs *Fluid) Reset() {
	for i := 0; i < fs.numOfCells; i++ {
		fs.u[i], fs.v[i] = 0, 0
		fs.uOld[i], fs.vOld[i] = 0, 0
	}
}

func (fs *Fluid) addSource(x, s cell) {
	for i := 0; i < fs.numOfCells; i++ {
		x[i] += s[i] * fs.dt
	}
}

func (fs *Fluid) curl(i, j int) float64 {
	duDy := (fs.u[fs.idx(i, j+1)] - fs.u[fs.idx(i, j-1)]) * 0.5
	dvDx := (fs.v[fs.idx(i+1, j)] - fs.v[fs.idx(i-1, j)]) * 0.5

	return duDy - dvDx
}

func (fs *Fluid) calcVorticityConfinement(x, y cell) {
	for i := 1; i <= fs.n; i++ {
		for j := 1; j <= fs.n; j++ {
			fs.curlData[fs.idx(i, j)] = math.Abs(fs.curl(i, j))
		}
	}

	for i := 2; i < fs.n; i++ {
		for j := 2; j < fs.n; j++ {
			dx := (fs.curlData[fs.idx(i+1, j)] - fs.curlData[fs.idx(i-1, j)]) * 0.5
			dy := (fs.curlData[fs.idx(i, j+1)] - fs.curlData[fs.idx(i, j-1)]) * 0.5

			norm := math.Hypot(dx, dy)
			if norm == 0 {
				norm = 1
			}
			dx /= norm
			dy /= norm

			v := fs.curl(i, j)
			x[fs.idx(i, j)] = -dy * v
			y[fs.idx(i, j)] = dx * v
		}
	}
}

func (fs *Fluid) diffuse(bound boundaryType, x, x0 cell, diffusion float64) {
	a := fs.dt * diffusion * float64(fs.n*fs.n)
	fs.linearSolve(bound, x, x0, a, 1.0+4.0*a)
}

func (fs *Fluid) linearSolve(bound boundaryType, x, x0 cell, a, c float64) {
	invC := 1.0 / c

	for k := 0; k < fs.iterations; k++ {
		for i := 1; i <= fs.n; i++ {
			for j := 1; j <= fs.n; j++ {
				x[fs.idx(i, j)] = (x0[fs.idx(i, j)] + a*(x[fs.idx(i-1, j)]+x[fs.idx(i+1, j)]+x[fs.idx(i, j-1)]+x[fs.idx(i, j+1)])) * invC
			}
		}
		fs.setBoundary(bound, x)
	}
}

func (fs *Fluid) project(u, v, p, div cell) {
	h := 1.0 / float64(fs.n)
	for i := 1; i <= fs.n; i++ {
		for j := 1; j <= fs.n; j++ {
			div[fs.idx(i, j)] = -0.5 * h * (u[fs.idx(i+1, j)] - u[fs.idx(i-1, j)] + v[fs.idx(i, j+1)] - v[fs.idx(i, j-1)])
			p[fs.idx(i, j)] = 0
		}
	}
	fs.setBoundary(boundaryNone, div)
	fs.setBoundary(boundaryNone, p)

	fs.linearSolve(boundaryNone, p, div, 1, 4)

	// Subtract the pressure gradient to get a mass conserving velocity field.
	for i := 1; i <= fs.n; i++ {
		for j := 1; j <= fs.n; j++ {
			u[fs.idx(i, j)] -= 0.5 * (p[fs.idx(i+1, j)] - p[fs.idx(i-1, j)]) / h
			v[fs.idx(i, j)] -= 0.5 * (p[fs.idx(i, j+1)] - p[fs.idx(i, j-1)]) / h
		}
	}
	fs.setBoundary(boundaryLeftRight, u)
	fs.setBoundary(boundaryTopBottom, v)
}

func (fs *Fluid) advect(bound boundaryType, d, d0, u, v cell) {
	dt0 := fs.dt * float64(fs.n)
	hi := float64(fs.n) + 0.5

	for i := 1; i <= fs.n; i++ {
		for j := 1; j <= fs.n; j++ {
			x := math.Min(math.Max(float64(i)-dt0*u[fs.idx(i, j)], 0.5), hi)
			y := math.Min(math.Max(float64(j)-dt0*v[fs.idx(i, j)], 0.5), hi)

			i0, j0 := int(x), int(y)
			i1, j1 := i0+1, j0+1

			s1 := x - float64(i0)
			s0 := 1 - s1
			t1 := y - float64(j0)
			t0 := 1 - t1

			d[fs.idx(i, j)] = s0*(t0*d0[fs.idx(i0, j0)]+t1*d0[fs.idx(i0, j1)]) +
				s1*(t0*d0[fs.idx(i1, j0)]+t1*d0[fs.idx(i1, j1)])
		}
	}
	fs.setBoundary(bound, d)
}

func (fs *Fluid) setBoundary(bound boundaryType, x cell) {
	n := fs.n
	for i := 1; i <= n; i++ {
		if bound == boundaryLeftRight {
			x[fs.idx(0, i)] = -x[fs.idx(1, i)]
			x[fs.idx(n+1, i)] = -x[fs.idx(n, i)]
		} else {
			x[fs.idx(0, i)] = x[fs.idx(1, i)]
			x[fs.idx(n+1, i)] = x[fs.idx(n, i)]
		}
		if bound == boundaryTopBottom {
			x[fs.idx(i, 0)] = -x[fs.idx(i, 1)]
			x[fs.idx(i, n+1)] = -x[fs.idx(i, n)]
		} else {
			x[fs.idx(i, 0)] = x[fs.idx(i, 1)]
			x[fs.idx(i, n+1)] = x[fs.idx(i, n)]
		}
	}

	x[fs.idx(0, 0)] = 0.5 * (x[fs.idx(1, 0)] + x[fs.idx(0, 1)])
	x[fs.idx(0, n+1)] = 0.5 * (x[fs.idx(1, n+1)] + x[fs.idx(0, n)])
	x[fs.idx(n+1, 0)] = 0.5 * (x[fs.idx(n, 0)] + x[fs.idx(n+1, 1)])
	x[fs.idx(n+1, n+1)] = 0.5 * (x[fs.idx(n, n+1)] + x[fs.idx(n+1, n)])
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
