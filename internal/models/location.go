package models

// DefaultRadiusMeters - радиус поиска, если клиент его не передал
const DefaultRadiusMeters = 10.0

// Location - последнее известное местоположение клиента
type Location struct {
	Latitude     float64 `json:"latitude"`
	Longitude    float64 `json:"longitude"`
	RadiusMeters float64 `json:"radius"`
}
