package geo

// BoundingBox - прямоугольник широт/долгот для грубого предварительного отбора
type BoundingBox struct {
	MinLat float64 `json:"min_lat"`
	MaxLat float64 `json:"max_lat"`
	MinLon float64 `json:"min_lon"`
	MaxLon float64 `json:"max_lon"`
}

// ComputeBoundingBox строит прямоугольник по четырем точкам на севере, востоке, юге и западе
// от центра на расстоянии radiusMeters. Это квадрат, а не круг: точную принадлежность
// радиусу нужно дополнительно проверять по гаверсинусу.
func ComputeBoundingBox(center Point, radiusMeters float64) BoundingBox {
	if radiusMeters <= 0 {
		return BoundingBox{
			MinLat: center.Lat,
			MaxLat: center.Lat,
			MinLon: center.Lon,
			MaxLon: center.Lon,
		}
	}

	north := DestinationPoint(center, 0, radiusMeters)
	east := DestinationPoint(center, 90, radiusMeters)
	south := DestinationPoint(center, 180, radiusMeters)
	west := DestinationPoint(center, 270, radiusMeters)

	return BoundingBox{
		MinLat: south.Lat,
		MaxLat: north.Lat,
		MinLon: west.Lon,
		MaxLon: east.Lon,
	}
}

// Contains проверяет попадание координат в прямоугольник (границы включительно)
func (b BoundingBox) Contains(lat, lon float64) bool {
	return lat >= b.MinLat && lat <= b.MaxLat &&
		lon >= b.MinLon && lon <= b.MaxLon
}
