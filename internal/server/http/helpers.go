package httpserver

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/gofiber/fiber/v2"

	"itemd/internal/item"
)

type messageResponse struct {
	Message string `json:"message"`
}

// failed logs err and answers 500 with the client's message.
func failed(c *fiber.Ctx, logReq func(string, ...any), action string, err error) error {
	op := "unknown"
	var oe *item.OpError
	if errors.As(err, &oe) {
		op = oe.Op
	}
	logReq("[itemd] %s %s failed: op=%s err=%v", action, c.Path(), op, err)
	return c.Status(http.StatusInternalServerError).JSON(messageResponse{Message: err.Error()})
}

// itemsPath joins the optional route prefix with /items.
func itemsPath(prefix string) string {
	prefix = strings.Trim(strings.TrimSpace(prefix), "/")
	if prefix == "" {
		return "/items"
	}
	return "/" + prefix + "/items"
}

// nameText casts a JSON name to a string: strings as they are, numbers and
// bools as their JSON text, null or absent as "". Objects and arrays fail.
func nameText(raw json.RawMessage) (string, error) {
	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 || bytes.Equal(raw, []byte("null")) {
		return "", nil
	}
	switch raw[0] {
	case '"':
		var s string
		if err := json.Unmarshal(raw, &s); err != nil {
			return "", err
		}
		return s, nil
	case '{', '[':
		return "", fmt.Errorf("cast to string failed for value %s at path \"name\"", raw)
	default:
		return string(raw), nil
	}
}
