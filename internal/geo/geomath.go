// Package geo содержит геодезические примитивы на сферической модели Земли:
// точку назначения по азимуту, расстояние по гаверсинусу, ограничивающий
// прямоугольник и работу с полигонами зон эвакуации.
package geo

import "math"

const (
	// EarthRadiusMeters - средний радиус Земли
	EarthRadiusMeters = 6371000.0
	// EarthRadiusKm - средний радиус Земли в километрах
	EarthRadiusKm = EarthRadiusMeters / 1000

	degToRad = math.Pi / 180
	radToDeg = 180 / math.Pi
)

// Point - точка в градусах WGS84
type Point struct {
	Lat float64 `json:"lat"`
	Lon float64 `json:"lon"`
}

// DestinationPoint возвращает точку, в которую придем из origin по дуге большого круга
// с начальным азимутом bearingDeg, пройдя distanceMeters по поверхности.
// Широта вне [-90, 90] не проверяется.
func DestinationPoint(origin Point, bearingDeg, distanceMeters float64) Point {
	lat1 := origin.Lat * degToRad
	lon1 := origin.Lon * degToRad
	brng := bearingDeg * degToRad
	angular := distanceMeters / EarthRadiusMeters

	lat2 := math.Asin(math.Sin(lat1)*math.Cos(angular) +
		math.Cos(lat1)*math.Sin(angular)*math.Cos(brng))
	lon2 := lon1 + math.Atan2(
		math.Sin(brng)*math.Sin(angular)*math.Cos(lat1),
		math.Cos(angular)-math.Sin(lat1)*math.Sin(lat2),
	)

	return Point{
		Lat: lat2 * radToDeg,
		Lon: normalizeLon(lon2 * radToDeg),
	}
}

// HaversineDistanceKm - расстояние по дуге большого круга в километрах
func HaversineDistanceKm(lat1, lon1, lat2, lon2 float64) float64 {
	dLat := (lat2 - lat1) * degToRad
	dLon := (lon2 - lon1) * degToRad

	a := math.Sin(dLat/2)*math.Sin(dLat/2) +
		math.Cos(lat1*degToRad)*math.Cos(lat2*degToRad)*math.Sin(dLon/2)*math.Sin(dLon/2)
	c := 2 * math.Atan2(math.Sqrt(a), math.Sqrt(1-a))

	return EarthRadiusKm * c
}

// DistanceKm - то же, что HaversineDistanceKm, для пары точек
func DistanceKm(a, b Point) float64 {
	return HaversineDistanceKm(a.Lat, a.Lon, b.Lat, b.Lon)
}

// normalizeLon приводит долготу к диапазону [-180, 180]
func normalizeLon(lon float64) float64 {
	if lon >= -180 && lon <= 180 {
		return lon
	}
	return math.Mod(lon+540, 360) - 180
}
