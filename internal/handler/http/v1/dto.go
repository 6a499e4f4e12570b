package v1

// LocationMessageRequest - входящее сообщение клиента по вебсокету.
// Без type это рукопожатие, с type=update_location - обновление координат.
type LocationMessageRequest struct {
	Type      string   `json:"type" validate:"omitempty,oneof=update_location"`
	Latitude  *float64 `json:"latitude" validate:"required,latitude"`
	Longitude *float64 `json:"longitude" validate:"required,longitude"`
	Radius    *float64 `json:"radius" validate:"omitnil,gt=0"`
}

// StatsResponse DTO для ответа со статистикой
// @Description DTO для ответа со статистикой подключений
type StatsResponse struct {
	ConnectedClients int `json:"connected_clients"`
}
