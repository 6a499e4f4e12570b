package v1

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"github.com/shenikar/fire_alert_system/internal/config"
	"github.com/shenikar/fire_alert_system/internal/models"
	"github.com/shenikar/fire_alert_system/internal/registry"
	"github.com/sirupsen/logrus"
	"golang.org/x/time/rate"
)

// Текстовые ответы клиенту
const (
	msgRateLimited  = "Too many messages, slow down."
	msgUnavailable  = "Unable to check for fires right now, will retry automatically."
	msgInvalidInput = "Invalid location message: "
	msgHandshake    = "Send your location before location updates."
)

var errClientRejected = errors.New("client id already connected")

// @Summary Fire alert websocket
// @Description Upgrades to a websocket. The first valid location message registers the client,
// @Description later messages with type=update_location move it. Alerts are pushed by the server.
// @Tags Alerts
// @Param client_id query string true "Client identifier"
// @Success 101 "Switching Protocols"
// @Router /ws/alert [get]
func (h *Handler) alertSocket(c *gin.Context) {
	clientID := strings.TrimSpace(c.Query("client_id"))
	log := h.logger.WithFields(logrus.Fields{
		"method":    "alertSocket",
		"client_id": clientID,
	})

	conn, err := h.upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		// Upgrader уже ответил клиенту HTTP-ошибкой
		log.WithError(err).Warn("Failed to upgrade websocket connection")
		return
	}

	if clientID == "" {
		log.Warn("Websocket connection without client_id")
		h.closeWithPolicyViolation(conn, "client_id query parameter is required")
		return
	}

	h.serveClient(c.Request.Context(), conn, clientID, log)
}

// serveClient читает сообщения клиента до разрыва соединения
func (h *Handler) serveClient(ctx context.Context, conn *websocket.Conn, clientID string, log *logrus.Entry) {
	client := registry.NewClient(clientID, conn, models.Location{}, h.cfg.WSWriteTimeout)
	limiter := rate.NewLimiter(rate.Limit(h.cfg.WSMessageRate), max(h.cfg.WSMessageBurst, 1))
	registered := false

	defer func() {
		removed := registered && h.registry.RemoveClient(client)
		_ = client.Close()
		if removed {
			// Идущая оценка этого клиента должна завершиться до очистки кэша
			client.Exclusive(func() {
				h.alertService.ResetClient(clientID)
			})
			log.Info("Client disconnected")
		}
		h.metrics.ConnectedClients.Set(float64(h.registry.Len()))
	}()

	for {
		_, data, err := conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) && !client.Closed() {
				log.WithError(err).Warn("Websocket read failed")
			}
			return
		}

		if !limiter.Allow() {
			h.metrics.InboundMessages.WithLabelValues("rate_limited").Inc()
			h.reply(client, msgRateLimited, log)
			continue
		}

		msg, err := ParseInboundMessage(h.validate, data, h.cfg.DefaultRadiusMeters)
		if err != nil {
			h.metrics.InboundMessages.WithLabelValues("invalid").Inc()
			log.WithError(err).Debug("Invalid inbound message")
			h.reply(client, msgInvalidInput+strings.TrimPrefix(err.Error(), ErrInvalidMessage.Error()+": "), log)
			continue
		}

		switch {
		case !registered && msg.Kind == KindUpdateLocation:
			h.metrics.InboundMessages.WithLabelValues("out_of_order").Inc()
			log.Debug("Location update before handshake ignored")
			h.reply(client, msgHandshake, log)
			continue
		case !registered:
			h.metrics.InboundMessages.WithLabelValues("accepted").Inc()
			if err := h.register(client, msg.Location, log); err != nil {
				h.closeWithPolicyViolation(conn, err.Error())
				return
			}
			registered = true
		default:
			h.metrics.InboundMessages.WithLabelValues("accepted").Inc()
			// Сессия могла быть вытеснена новым подключением или исключена после ошибки отправки
			current, err := h.registry.Get(clientID)
			if err != nil || current != client {
				log.Info("Session is no longer registered, closing")
				return
			}
			if msg.Kind == KindLocation {
				log.Debug("Repeated handshake treated as location update")
			}
			client.SetLocation(msg.Location)
			log.WithFields(logrus.Fields{
				"latitude":  msg.Location.Latitude,
				"longitude": msg.Location.Longitude,
				"radius":    msg.Location.RadiusMeters,
			}).Debug("Client location updated")
		}

		if err := h.alertService.Evaluate(ctx, clientID); err != nil {
			log.WithError(err).Warn("Immediate evaluation failed")
			if errors.Is(err, registry.ErrNotFound) || errors.Is(err, registry.ErrClientClosed) {
				return
			}
			h.reply(client, msgUnavailable, log)
		}
	}
}

// register добавляет клиента в реестр согласно политике дубликатов
func (h *Handler) register(client *registry.Client, loc models.Location, log *logrus.Entry) error {
	client.SetLocation(loc)

	if h.cfg.DuplicatePolicy == config.DuplicateReject {
		if err := h.registry.Add(client); err != nil {
			log.WithError(err).Warn("Rejected duplicate client connection")
			return errClientRejected
		}
	} else {
		// Новый клиент не оценивается, пока не очищен кэш вытесненной сессии
		client.Exclusive(func() {
			old := h.registry.Replace(client)
			if old == nil {
				return
			}
			_ = old.Close()
			// Оценка старой сессии, начатая до закрытия, успеет отметить пожары до очистки
			old.Exclusive(func() {
				h.alertService.ResetClient(client.ID)
			})
			log.Info("Replaced previous connection of the client")
		})
	}

	h.metrics.ConnectedClients.Set(float64(h.registry.Len()))
	log.WithFields(logrus.Fields{
		"latitude":  loc.Latitude,
		"longitude": loc.Longitude,
		"radius":    loc.RadiusMeters,
	}).Info("Client registered")
	return nil
}

func (h *Handler) reply(client *registry.Client, text string, log *logrus.Entry) {
	if err := client.Send(models.NewPlainMessage(text)); err != nil {
		log.WithError(err).Debug("Failed to reply to client")
	}
}

// closeWithPolicyViolation закрывает соединение с кодом 1008
func (h *Handler) closeWithPolicyViolation(conn *websocket.Conn, reason string) {
	deadline := time.Now().Add(h.cfg.WSWriteTimeout)
	msg := websocket.FormatCloseMessage(websocket.ClosePolicyViolation, reason)
	if err := conn.WriteControl(websocket.CloseMessage, msg, deadline); err != nil {
		h.logger.WithError(err).Debug("Failed to send close frame")
	}
	_ = conn.Close()
}
