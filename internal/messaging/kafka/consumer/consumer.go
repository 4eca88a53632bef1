package consumer

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"go-cart-api/internal/cart"
	"go-cart-api/internal/order"
	"go-cart-api/internal/pkg/logger"

	"github.com/segmentio/kafka-go"
	"go.uber.org/zap"
)

const headerEventType = "event_type"

// errMalformedPayload marks messages that can never succeed; they are
// committed so they do not block the partition.
var errMalformedPayload = errors.New("malformed payload")

// MessageReader is the part of *kafka.Reader the consumer uses.
type MessageReader interface {
	FetchMessage(ctx context.Context) (kafka.Message, error)
	CommitMessages(ctx context.Context, msgs ...kafka.Message) error
}

// ConsumeMessages dispatches on the event_type header until ctx is done.
// Handled messages are committed; failed ones are left for redelivery.
// Unknown event types are committed and skipped.
func ConsumeMessages(ctx context.Context, reader MessageReader, cartService cart.Service, l *zap.Logger) {
	log := logger.OrNop(l).Named("consumer")
	log.Info("[CONSUMER] started consuming messages")

	for {
		msg, err := reader.FetchMessage(ctx)
		if err != nil {
			if ctx.Err() != nil {
				log.Info("[CONSUMER] stopped")
				return
			}
			log.Warn("[CONSUMER] fetch failed", zap.Error(err))
			continue
		}

		eventType := getHeader(msg.Headers, headerEventType)
		msgLog := log.With(zap.String("event_type", eventType), zap.Int64("offset", msg.Offset))

		switch eventType {
		case order.EventClearCartItems:
			err := handleClearCartItems(ctx, msg.Value, cartService, msgLog)
			if errors.Is(err, errMalformedPayload) {
				msgLog.Warn("[CONSUMER] dropping malformed message", zap.Error(err))
			} else if err != nil {
				msgLog.Error("[CONSUMER] handle failed", zap.Error(err))
				continue
			}
		default:
			msgLog.Debug("[CONSUMER] skipping unknown event")
		}

		if err := reader.CommitMessages(ctx, msg); err != nil {
			msgLog.Warn("[CONSUMER] commit failed", zap.Error(err))
		}
	}
}

func handleClearCartItems(ctx context.Context, payload []byte, cartService cart.Service, log *zap.Logger) error {
	var data order.ClearCartPayload
	if err := json.Unmarshal(payload, &data); err != nil {
		return fmt.Errorf("%w: %v", errMalformedPayload, err)
	}
	if data.SessionID == "" {
		return fmt.Errorf("%w: empty session id", errMalformedPayload)
	}

	if err := cartService.RemoveItems(ctx, data.SessionID, data.Items); err != nil {
		return err
	}

	log.Info("[CONSUMER] ordered items removed from cart",
		zap.String("session_id", data.SessionID),
		zap.String("order_id", data.OrderID),
		zap.Int("items", len(data.Items)),
	)
	return nil
}

func getHeader(headers []kafka.Header, key string) string {
	for _, h := range headers {
		if h.Key == key {
			return string(h.Value)
		}
	}
	return ""
}
