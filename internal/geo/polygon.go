package geo

import (
	"errors"
	"fmt"
	"math"
	"strings"

	geojson "github.com/paulmach/go.geojson"
)

// ErrInvalidGeometry - геометрию зоны нельзя использовать
var ErrInvalidGeometry = errors.New("invalid geometry")

// Polygon - набор колец по соглашению GeoJSON: первое кольцо внешнее, остальные - дыры
type Polygon struct {
	Rings [][]Point
}

// Geometry - граница зоны эвакуации (Polygon или MultiPolygon)
type Geometry struct {
	Polygons []Polygon
}

// ParseGeometry разбирает GeoJSON-геометрию типа Polygon или MultiPolygon.
// Любой другой тип, пустые координаты или битый JSON дают ошибку ErrInvalidGeometry.
func ParseGeometry(raw string) (*Geometry, error) {
	if strings.TrimSpace(raw) == "" {
		return nil, fmt.Errorf("%w: empty input", ErrInvalidGeometry)
	}

	g, err := geojson.UnmarshalGeometry([]byte(raw))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidGeometry, err)
	}

	var parts [][][][]float64
	switch {
	case g.IsPolygon():
		parts = [][][][]float64{g.Polygon}
	case g.IsMultiPolygon():
		parts = g.MultiPolygon
	default:
		return nil, fmt.Errorf("%w: unsupported type %q", ErrInvalidGeometry, g.Type)
	}

	geometry := &Geometry{}
	for _, part := range parts {
		if len(part) == 0 {
			continue
		}
		poly := Polygon{Rings: make([][]Point, 0, len(part))}
		for _, ring := range part {
			points := make([]Point, 0, len(ring))
			for _, pos := range ring {
				if len(pos) < 2 {
					return nil, fmt.Errorf("%w: position with %d coordinates", ErrInvalidGeometry, len(pos))
				}
				points = append(points, Point{Lat: pos[1], Lon: pos[0]})
			}
			poly.Rings = append(poly.Rings, points)
		}
		geometry.Polygons = append(geometry.Polygons, poly)
	}

	if len(geometry.Polygons) == 0 {
		return nil, fmt.Errorf("%w: no coordinates", ErrInvalidGeometry)
	}
	return geometry, nil
}

// ContainsPoint - принадлежность точки геометрии по правилу чет-нечет.
// Точка внутри полигона, если она во внешнем кольце и ни в одной дыре.
// Для вырожденных и самопересекающихся колец результат определен, но не обязательно осмыслен.
func (g *Geometry) ContainsPoint(p Point) bool {
	for _, poly := range g.Polygons {
		if poly.contains(p) {
			return true
		}
	}
	return false
}

func (poly Polygon) contains(p Point) bool {
	if len(poly.Rings) == 0 || !pointInRing(p, poly.Rings[0]) {
		return false
	}
	for _, hole := range poly.Rings[1:] {
		if pointInRing(p, hole) {
			return false
		}
	}
	return true
}

// pointInRing - метод трассировки луча
func pointInRing(p Point, ring []Point) bool {
	n := len(ring)
	if n < 3 {
		return false
	}
	inside := false
	for i, j := 0, n-1; i < n; j, i = i, i+1 {
		yi, yj := ring[i].Lat, ring[j].Lat
		xi, xj := ring[i].Lon, ring[j].Lon
		if (yi > p.Lat) != (yj > p.Lat) &&
			p.Lon < (xj-xi)*(p.Lat-yi)/(yj-yi)+xi {
			inside = !inside
		}
	}
	return inside
}

// NearestBoundaryPoint возвращает ближайшую к p точку на границе любого кольца.
// Незамкнутое кольцо замыкается отрезком от последней вершины к первой.
// Работает и для точек вне геометрии. Расстояния считаются в локальной
// равнопромежуточной проекции вокруг p. false - в геометрии нет ни одного отрезка.
func (g *Geometry) NearestBoundaryPoint(p Point) (Point, bool) {
	k := math.Cos(p.Lat * degToRad)
	if k < 1e-12 {
		k = 1e-12
	}

	var (
		best     Point
		bestDist = math.Inf(1)
		found    bool
	)
	for _, poly := range g.Polygons {
		for _, ring := range poly.Rings {
			n := len(ring)
			segments := n - 1
			// GeoJSON не гарантирует замкнутость кольца
			if n > 2 && ring[0] != ring[n-1] {
				segments = n
			}
			for i := 0; i < segments; i++ {
				candidate, dist := nearestOnSegment(p, ring[i], ring[(i+1)%n], k)
				if dist < bestDist {
					best, bestDist, found = candidate, dist, true
				}
			}
		}
	}
	return best, found
}

// nearestOnSegment проецирует p на отрезок ab; возвращает точку и квадрат расстояния
func nearestOnSegment(p, a, b Point, k float64) (Point, float64) {
	ax, ay := (a.Lon-p.Lon)*k, a.Lat-p.Lat
	dx, dy := (b.Lon-a.Lon)*k, b.Lat-a.Lat

	t := 0.0
	if lenSq := dx*dx + dy*dy; lenSq > 0 {
		t = -(ax*dx + ay*dy) / lenSq
		t = math.Max(0, math.Min(1, t))
	}

	nx, ny := ax+t*dx, ay+t*dy
	return Point{
		Lat: a.Lat + t*(b.Lat-a.Lat),
		Lon: a.Lon + t*(b.Lon-a.Lon),
	}, nx*nx + ny*ny
}

// Centroid - невзвешенное среднее всех вершин всех колец (не центр масс).
// Замыкающая вершина, повторяющая первую, не учитывается.
func (g *Geometry) Centroid() Point {
	var sumLat, sumLon float64
	var n int
	for _, poly := range g.Polygons {
		for _, ring := range poly.Rings {
			vertices := ring
			if len(ring) > 1 && ring[0] == ring[len(ring)-1] {
				vertices = ring[:len(ring)-1]
			}
			for _, v := range vertices {
				sumLat += v.Lat
				sumLon += v.Lon
				n++
			}
		}
	}
	if n == 0 {
		return Point{}
	}
	return Point{Lat: sumLat / float64(n), Lon: sumLon / float64(n)}
}
