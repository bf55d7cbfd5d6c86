package httpserver

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/gofiber/fiber/v2"

	"itemd/internal/item"
)

// ItemService is the item operations the routes call.
type ItemService interface {
	Create(ctx context.Context, name string) (item.Item, error)
	Delete(ctx context.Context, id string) (string, error)
	List(ctx context.Context) ([]item.Item, error)
}

type createItemRequest struct {
	Name json.RawMessage `json:"name"`
}

// createItemHandler accepts a missing body or a non-JSON content type as an
// item without a name; only unparsable JSON is rejected.
func createItemHandler(svc ItemService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		logReq := reqLogger(c)

		var req createItemRequest
		if body := c.Body(); len(body) > 0 && c.Is("json") {
			if err := json.Unmarshal(body, &req); err != nil {
				logReq("[itemd] bad create body: %v", err)
				return c.Status(http.StatusBadRequest).JSON(messageResponse{Message: err.Error()})
			}
		}

		name, err := nameText(req.Name)
		if err != nil {
			return failed(c, logReq, "create", err)
		}

		created, err := svc.Create(c.UserContext(), name)
		if err != nil {
			return failed(c, logReq, "create", err)
		}

		logReq("[itemd] created item id=%s", created.ID)
		return c.Status(http.StatusCreated).JSON(created)
	}
}

func deleteItemHandler(svc ItemService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		logReq := reqLogger(c)
		id := c.Params("id")

		msg, err := svc.Delete(c.UserContext(), id)
		if err != nil {
			return failed(c, logReq, "delete", err)
		}

		logReq("[itemd] deleted item id=%s", id)
		return c.JSON(messageResponse{Message: msg})
	}
}

func listItemsHandler(svc ItemService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		items, err := svc.List(c.UserContext())
		if err != nil {
			return failed(c, reqLogger(c), "list", err)
		}
		return c.JSON(items)
	}
}
