package httpserver

import (
	"context"
	"errors"
	"strconv"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/avoronin/shop_api/internal/mykafka"
	"github.com/avoronin/shop_api/pkg/logging"
)

var errUnauthorized = errors.New("unauthorized")

// userIDFromContext resolves the authenticated principal to the persisted
// numeric user id. The auth middleware has already validated the token and
// stored the subject; everything past this point is plain user ids.
func userIDFromContext(c echo.Context) (uint, error) {
	v := c.Get("user_id")
	s, ok := v.(string)
	if !ok || s == "" {
		return 0, errUnauthorized
	}

	id, err := strconv.ParseUint(s, 10, 64)
	if err != nil {
		return 0, errUnauthorized
	}
	return uint(id), nil
}

func paramUint(c echo.Context, name string) (uint, error) {
	v, err := strconv.ParseUint(c.Param(name), 10, 64)
	if err != nil {
		return 0, err
	}
	return uint(v), nil
}

// publish is best-effort: a broker outage never fails the request.
func publish(c echo.Context, producer *mykafka.Producer, topic, key string, event map[string]any) {
	if producer == nil {
		return
	}
	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()
	if err := producer.PublishEvent(ctx, topic, key, event); err != nil {
		logging.FromContext(c.Request().Context()).Warn("kafka_publish_error", "topic", topic, "error", err)
	}
}
