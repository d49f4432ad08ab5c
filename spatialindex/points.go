package spatialindex

import (
	"gonum.org/v1/gonum/spatial/kdtree"
	"gonum.org/v1/gonum/spatial/r3"
)

// The three types below (vertexPoint, edgePoint, triPoint) each wrap a
// primitive's index-key coordinate — the vertex's own coordinates, an
// edge's midpoint, a triangle's centroid — and implement
// kdtree.Interface/kdtree.Comparable over that coordinate, plus a
// SortSlicer plane type for kdtree.Partition/MedianOfMedians pivoting.
// Bulk k-nearest queries are answered via kdtree.NewNKeeper rather than a
// single Tree.Nearest call.

// vertexPoint indexes a mesh vertex by its own coordinates.
type vertexPoint struct {
	id     int
	coords r3.Vec
}

type vertexPoints []vertexPoint

func (v vertexPoints) Len() int { return len(v) }

func (v vertexPoints) Index(i int) kdtree.Comparable { return v[i] }

func (v vertexPoints) Pivot(d kdtree.Dim) int {
	p := vertexPlane{dim: int(d), points: v}
	return kdtree.Partition(p, kdtree.MedianOfMedians(p))
}

func (v vertexPoints) Slice(start, end int) kdtree.Interface { return v[start:end] }

func (v vertexPoint) Compare(c kdtree.Comparable, d kdtree.Dim) float64 {
	return axis(v.coords, d) - axis(c.(vertexPoint).coords, d)
}
func (v vertexPoint) Dims() int { return 3 }
func (v vertexPoint) Distance(c kdtree.Comparable) float64 {
	return r3.Norm2(r3.Sub(v.coords, c.(vertexPoint).coords))
}

type vertexPlane struct {
	dim    int
	points vertexPoints
}

func (p vertexPlane) Less(i, j int) bool {
	return axis(p.points[i].coords, kdtree.Dim(p.dim)) < axis(p.points[j].coords, kdtree.Dim(p.dim))
}
func (p vertexPlane) Swap(i, j int) { p.points[i], p.points[j] = p.points[j], p.points[i] }
func (p vertexPlane) Len() int      { return len(p.points) }
func (p vertexPlane) Slice(start, end int) kdtree.SortSlicer {
	p.points = p.points[start:end]
	return p
}

// edgePoint indexes a mesh edge by its midpoint.
type edgePoint struct {
	id  int
	mid r3.Vec
}

type edgePoints []edgePoint

func (v edgePoints) Len() int { return len(v) }

func (v edgePoints) Index(i int) kdtree.Comparable { return v[i] }

func (v edgePoints) Pivot(d kdtree.Dim) int {
	p := edgePlane{dim: int(d), points: v}
	return kdtree.Partition(p, kdtree.MedianOfMedians(p))
}

func (v edgePoints) Slice(start, end int) kdtree.Interface { return v[start:end] }

func (v edgePoint) Compare(c kdtree.Comparable, d kdtree.Dim) float64 {
	return axis(v.mid, d) - axis(c.(edgePoint).mid, d)
}
func (v edgePoint) Dims() int { return 3 }
func (v edgePoint) Distance(c kdtree.Comparable) float64 {
	return r3.Norm2(r3.Sub(v.mid, c.(edgePoint).mid))
}

type edgePlane struct {
	dim    int
	points edgePoints
}

func (p edgePlane) Less(i, j int) bool {
	return axis(p.points[i].mid, kdtree.Dim(p.dim)) < axis(p.points[j].mid, kdtree.Dim(p.dim))
}
func (p edgePlane) Swap(i, j int) { p.points[i], p.points[j] = p.points[j], p.points[i] }
func (p edgePlane) Len() int      { return len(p.points) }
func (p edgePlane) Slice(start, end int) kdtree.SortSlicer {
	p.points = p.points[start:end]
	return p
}

// triPoint indexes a mesh triangle by its centroid.
type triPoint struct {
	id       int
	centroid r3.Vec
}

type triPoints []triPoint

func (v triPoints) Len() int { return len(v) }

func (v triPoints) Index(i int) kdtree.Comparable { return v[i] }

func (v triPoints) Pivot(d kdtree.Dim) int {
	p := triPlane{dim: int(d), points: v}
	return kdtree.Partition(p, kdtree.MedianOfMedians(p))
}

func (v triPoints) Slice(start, end int) kdtree.Interface { return v[start:end] }

func (v triPoint) Compare(c kdtree.Comparable, d kdtree.Dim) float64 {
	return axis(v.centroid, d) - axis(c.(triPoint).centroid, d)
}
func (v triPoint) Dims() int { return 3 }
func (v triPoint) Distance(c kdtree.Comparable) float64 {
	return r3.Norm2(r3.Sub(v.centroid, c.(triPoint).centroid))
}

type triPlane struct {
	dim    int
	points triPoints
}

func (p triPlane) Less(i, j int) bool {
	return axis(p.points[i].centroid, kdtree.Dim(p.dim)) < axis(p.points[j].centroid, kdtree.Dim(p.dim))
}
func (p triPlane) Swap(i, j int) { p.points[i], p.points[j] = p.points[j], p.points[i] }
func (p triPlane) Len() int      { return len(p.points) }
func (p triPlane) Slice(start, end int) kdtree.SortSlicer {
	p.points = p.points[start:end]
	return p
}

func axis(v r3.Vec, d kdtree.Dim) float64 {
	switch d {
	case 0:
		return v.X
	case 1:
		return v.Y
	default:
		return v.Z
	}
}

func midpoint(a, b r3.Vec) r3.Vec {
	return r3.Scale(0.5, r3.Add(a, b))
}

func centroid(a, b, c r3.Vec) r3.Vec {
	return r3.Scale(1.0/3.0, r3.Add(a, r3.Add(b, c)))
}
