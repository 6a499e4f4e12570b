package models

// Типы исходящих сообщений
const (
	MessageTypeFireAlert = "fire_alert"
	MessageTypeMessage   = "message"
)

// FireAlert - оповещение, отправляемое клиенту по вебсокету
type FireAlert struct {
	Type          string    `json:"type"`
	NumFires      int       `json:"num_fires"`
	Fires         []*Hazard `json:"fires"`
	SafeLatitude  float64   `json:"safe_latitude"`
	SafeLongitude float64   `json:"safe_longitude"`
	SafeName      string    `json:"safe_name"`
}

// NewFireAlert собирает оповещение из новых пожаров и безопасной точки
func NewFireAlert(fires []*Hazard, safe SafePoint) FireAlert {
	return FireAlert{
		Type:          MessageTypeFireAlert,
		NumFires:      len(fires),
		Fires:         fires,
		SafeLatitude:  safe.Latitude,
		SafeLongitude: safe.Longitude,
		SafeName:      safe.Name,
	}
}

// PlainMessage - текстовое уведомление без оповещения
type PlainMessage struct {
	Type    string `json:"type"`
	Message string `json:"message"`
}

// NewPlainMessage создает текстовое уведомление
func NewPlainMessage(message string) PlainMessage {
	return PlainMessage{Type: MessageTypeMessage, Message: message}
}
