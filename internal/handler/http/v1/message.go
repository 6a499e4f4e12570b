package v1

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/go-playground/validator/v10"
)

// ErrInvalidMessage - сообщение клиента не удалось разобрать или проверить
var ErrInvalidMessage = errors.New("invalid message")

// ParseInboundMessage декодирует и проверяет входящее сообщение один раз,
// дальше обработчик работает только с InboundMessage
func ParseInboundMessage(validate *validator.Validate, data []byte, defaultRadius float64) (InboundMessage, error) {
	var req LocationMessageRequest
	if err := json.Unmarshal(data, &req); err != nil {
		return InboundMessage{}, fmt.Errorf("%w: malformed JSON", ErrInvalidMessage)
	}

	if err := validate.Struct(req); err != nil {
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) && len(verrs) > 0 {
			return InboundMessage{}, fmt.Errorf("%w: field %s failed %s check", ErrInvalidMessage, jsonFieldName(verrs[0].Field()), verrs[0].Tag())
		}
		return InboundMessage{}, fmt.Errorf("%w: %v", ErrInvalidMessage, err)
	}

	return RequestToInboundMessage(req, defaultRadius), nil
}

func jsonFieldName(field string) string {
	switch field {
	case "Type":
		return "type"
	case "Latitude":
		return "latitude"
	case "Longitude":
		return "longitude"
	case "Radius":
		return "radius"
	}
	return field
}
