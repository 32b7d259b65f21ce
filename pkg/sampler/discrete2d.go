package sampler

// Discrete2D samples a (u,v) in [0,1)^2 from a row-major weight grid,
// importance-proportional to the grid (e.g. environment-map luminance).
// It is built from a marginal distribution over rows (row totals) and one
// conditional distribution per row.
type Discrete2D struct {
	width, height int
	marginal      *Discrete1D   // over rows
	conditional   []*Discrete1D // one per row, over columns
}

// NewDiscrete2D builds a Discrete2D from a row-major weight grid of the
// given width and height. weights must have length width*height.
func NewDiscrete2D(weights []float64, width, height int) *Discrete2D {
	d := &Discrete2D{
		width:       width,
		height:      height,
		marginal:    NewDiscrete1D(),
		conditional: make([]*Discrete1D, height),
	}

	for row := 0; row < height; row++ {
		cond := NewDiscrete1D()
		for col := 0; col < width; col++ {
			cond.Add(weights[row*width+col])
		}
		rowTotal := cond.cdf[len(cond.cdf)-1]
		cond.Normalize()
		d.conditional[row] = cond
		d.marginal.Add(rowTotal)
	}
	d.marginal.Normalize()

	return d
}

// Sample draws (u, v) in [0,1)^2: first a row from the marginal, then a
// column from that row's conditional, then jitters within the selected
// cell by one extra uniform per axis.
func (d *Discrete2D) Sample(u1, v1, ujitter, vjitter float64) (u, v float64) {
	row := d.marginal.Sample(v1)
	col := d.conditional[row].Sample(u1)

	u = (float64(col) + ujitter) / float64(d.width)
	v = (float64(row) + vjitter) / float64(d.height)
	return u, v
}

// PMF returns the density of (u,v) in [0,1)^2, normalized so it integrates
// to 1 over the unit square: marginal(row) * conditional(col) * width * height.
func (d *Discrete2D) PMF(u, v float64) float64 {
	col := int(u * float64(d.width))
	row := int(v * float64(d.height))
	if col < 0 {
		col = 0
	}
	if col >= d.width {
		col = d.width - 1
	}
	if row < 0 {
		row = 0
	}
	if row >= d.height {
		row = d.height - 1
	}

	return d.marginal.PMF(row) * d.conditional[row].PMF(col) * float64(d.width) * float64(d.height)
}
