package v1

import "github.com/shenikar/fire_alert_system/internal/models"

// MessageKind - вид входящего сообщения
type MessageKind int

const (
	KindLocation MessageKind = iota
	KindUpdateLocation
)

const messageTypeUpdateLocation = "update_location"

// InboundMessage - разобранное и проверенное входящее сообщение
type InboundMessage struct {
	Kind     MessageKind
	Location models.Location
}

// RequestToInboundMessage преобразует проверенный DTO в сообщение.
// Радиус по умолчанию подставляется, если клиент его не передал.
func RequestToInboundMessage(req LocationMessageRequest, defaultRadius float64) InboundMessage {
	msg := InboundMessage{
		Kind: KindLocation,
		Location: models.Location{
			Latitude:     *req.Latitude,
			Longitude:    *req.Longitude,
			RadiusMeters: defaultRadius,
		},
	}
	if req.Type == messageTypeUpdateLocation {
		msg.Kind = KindUpdateLocation
	}
	if req.Radius != nil {
		msg.Location.RadiusMeters = *req.Radius
	}
	return msg
}
