package knowledge

import (
	"math"
	"math/rand"
	"sort"

	"github.com/learntrack/learntrack/internal/apperr"
)

// Point is a 2-D position produced by a layout algorithm.
type Point struct {
	X float64
	Y float64
}

// Recognized layout algorithms.
const (
	LayoutSpring   = "spring"
	LayoutCircular = "circular"
	LayoutRandom   = "random"
	LayoutShell    = "shell"
	LayoutSpectral = "spectral"
)

// Layout computes a position for every node. All algorithms except "random"
// are deterministic for a given graph.
func (g *Graph) Layout(algorithm string) (map[string]Point, error) {
	switch algorithm {
	case LayoutSpring:
		return g.springLayout(), nil
	case LayoutCircular:
		return g.circularLayout(), nil
	case LayoutRandom:
		return g.randomLayout(), nil
	case LayoutShell:
		return g.shellLayout(), nil
	case LayoutSpectral:
		return g.spectralLayout(), nil
	default:
		return nil, apperr.NewValidation("algorithm", "must be spring, circular, random, shell, or spectral")
	}
}

// circularLayout places nodes evenly on a unit circle in title order.
func (g *Graph) circularLayout() map[string]Point {
	titles := g.Nodes()
	positions := make(map[string]Point, len(titles))
	if len(titles) == 1 {
		positions[titles[0]] = Point{}
		return positions
	}
	for i, title := range titles {
		angle := 2 * math.Pi * float64(i) / float64(len(titles))
		positions[title] = Point{X: math.Cos(angle), Y: math.Sin(angle)}
	}
	return positions
}

func (g *Graph) randomLayout() map[string]Point {
	positions := make(map[string]Point, len(g.nodes))
	for title := range g.nodes {
		positions[title] = Point{X: rand.Float64()*2 - 1, Y: rand.Float64()*2 - 1}
	}
	return positions
}

// shellLayout places nodes on concentric rings: one node in the center, then
// rings of growing capacity, in title order.
func (g *Graph) shellLayout() map[string]Point {
	titles := g.Nodes()
	positions := make(map[string]Point, len(titles))
	if len(titles) == 0 {
		return positions
	}

	positions[titles[0]] = Point{}
	remaining := titles[1:]
	radius := 1.0
	capacity := 8
	for len(remaining) > 0 {
		count := capacity
		if count > len(remaining) {
			count = len(remaining)
		}
		for i := 0; i < count; i++ {
			angle := 2 * math.Pi * float64(i) / float64(count)
			positions[remaining[i]] = Point{X: radius * math.Cos(angle), Y: radius * math.Sin(angle)}
		}
		remaining = remaining[count:]
		radius++
		capacity += 8
	}
	return positions
}

// springLayout runs a Fruchterman-Reingold force simulation seeded from the
// circular layout, so the result is deterministic for a given graph.
func (g *Graph) springLayout() map[string]Point {
	titles := g.Nodes()
	n := len(titles)
	positions := g.circularLayout()
	if n < 2 {
		return positions
	}

	const iterations = 50
	k := math.Sqrt(4.0 / float64(n)) // ideal edge length for a 2x2 area
	temperature := 0.1

	for iter := 0; iter < iterations; iter++ {
		displacement := make(map[string]Point, n)

		// Repulsion between every pair.
		for i, a := range titles {
			for _, b := range titles[i+1:] {
				dx := positions[a].X - positions[b].X
				dy := positions[a].Y - positions[b].Y
				dist := math.Hypot(dx, dy)
				if dist < 1e-9 {
					dist = 1e-9
				}
				force := k * k / dist
				fx, fy := dx/dist*force, dy/dist*force
				displacement[a] = Point{X: displacement[a].X + fx, Y: displacement[a].Y + fy}
				displacement[b] = Point{X: displacement[b].X - fx, Y: displacement[b].Y - fy}
			}
		}

		// Attraction along edges.
		for _, edge := range g.Edges() {
			dx := positions[edge.Source].X - positions[edge.Target].X
			dy := positions[edge.Source].Y - positions[edge.Target].Y
			dist := math.Hypot(dx, dy)
			if dist < 1e-9 {
				dist = 1e-9
			}
			force := dist * dist / k
			fx, fy := dx/dist*force, dy/dist*force
			displacement[edge.Source] = Point{X: displacement[edge.Source].X - fx, Y: displacement[edge.Source].Y - fy}
			displacement[edge.Target] = Point{X: displacement[edge.Target].X + fx, Y: displacement[edge.Target].Y + fy}
		}

		for _, title := range titles {
			d := displacement[title]
			dist := math.Hypot(d.X, d.Y)
			if dist < 1e-9 {
				continue
			}
			limited := math.Min(dist, temperature)
			positions[title] = Point{
				X: positions[title].X + d.X/dist*limited,
				Y: positions[title].Y + d.Y/dist*limited,
			}
		}
		temperature *= 0.95
	}
	return positions
}

// spectralLayout positions nodes using the eigenvectors of the graph
// Laplacian for the second and third smallest eigenvalues.
func (g *Graph) spectralLayout() map[string]Point {
	titles := g.Nodes()
	n := len(titles)
	if n < 3 {
		return g.circularLayout()
	}

	index := make(map[string]int, n)
	for i, title := range titles {
		index[title] = i
	}

	laplacian := make([][]float64, n)
	for i := range laplacian {
		laplacian[i] = make([]float64, n)
	}
	for _, edge := range g.Edges() {
		i, j := index[edge.Source], index[edge.Target]
		laplacian[i][j] = -1
		laplacian[j][i] = -1
		laplacian[i][i]++
		laplacian[j][j]++
	}

	values, vectors := jacobiEigen(laplacian)

	// Order eigenvalues ascending and take the second and third smallest.
	order := make([]int, n)
	for i := range order {
		order[i] = i
	}
	sort.Slice(order, func(a, b int) bool { return values[order[a]] < values[order[b]] })

	positions := make(map[string]Point, n)
	for title, i := range index {
		positions[title] = Point{X: vectors[i][order[1]], Y: vectors[i][order[2]]}
	}
	return positions
}

// jacobiEigen diagonalizes a symmetric matrix with cyclic Jacobi rotations,
// returning eigenvalues and the matrix of column eigenvectors.
func jacobiEigen(m [][]float64) ([]float64, [][]float64) {
	n := len(m)
	a := make([][]float64, n)
	vectors := make([][]float64, n)
	for i := range m {
		a[i] = append([]float64(nil), m[i]...)
		vectors[i] = make([]float64, n)
		vectors[i][i] = 1
	}

	const sweeps = 30
	for sweep := 0; sweep < sweeps; sweep++ {
		off := 0.0
		for i := 0; i < n; i++ {
			for j := i + 1; j < n; j++ {
				off += a[i][j] * a[i][j]
			}
		}
		if off < 1e-12 {
			break
		}

		for p := 0; p < n-1; p++ {
			for q := p + 1; q < n; q++ {
				if math.Abs(a[p][q]) < 1e-12 {
					continue
				}
				theta := (a[q][q] - a[p][p]) / (2 * a[p][q])
				t := math.Copysign(1, theta) / (math.Abs(theta) + math.Sqrt(theta*theta+1))
				c := 1 / math.Sqrt(t*t+1)
				s := t * c

				for i := 0; i < n; i++ {
					aip, aiq := a[i][p], a[i][q]
					a[i][p] = c*aip - s*aiq
					a[i][q] = s*aip + c*aiq
				}
				for i := 0; i < n; i++ {
					api, aqi := a[p][i], a[q][i]
					a[p][i] = c*api - s*aqi
					a[q][i] = s*api + c*aqi
				}
				for i := 0; i < n; i++ {
					vip, viq := vectors[i][p], vectors[i][q]
					vectors[i][p] = c*vip - s*viq
					vectors[i][q] = s*vip + c*viq
				}
			}
		}
	}

	values := make([]float64, n)
	for i := 0; i < n; i++ {
		values[i] = a[i][i]
	}
	return values, vectors
}
