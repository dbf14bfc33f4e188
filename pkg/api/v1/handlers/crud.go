package handlers

import (
	"context"
	"fmt"

	fiber "github.com/gofiber/fiber/v2"

	"github.com/hasnain-nisan/admindash/internal/validation"
)

// parseBody decodes the JSON body into p and validates it
func parseBody(c *fiber.Ctx, p interface{}) error {
	if err := c.BodyParser(p); err != nil {
		return fmt.Errorf("%s: %w", ErrMsgInvalidReqBody, err)
	}
	return validation.Struct(p)
}

func getByID[T any](c *fiber.Ctx, get func(context.Context, string) (*T, error)) error {
	id := c.Params("id")
	if id == "" {
		return badRequest(c, ErrMsgIDRequired)
	}
	v, err := get(c.UserContext(), id)
	if err != nil {
		return respondWithError(c, err, ErrMsgGetFailed)
	}
	return c.JSON(v)
}

func deleteByID(c *fiber.Ctx, del func(context.Context, string) error) error {
	id := c.Params("id")
	if id == "" {
		return badRequest(c, ErrMsgIDRequired)
	}
	if err := del(c.UserContext(), id); err != nil {
		return respondWithError(c, err, ErrMsgDeleteFailed)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

func restoreByID[T any](c *fiber.Ctx, restore func(context.Context, string) error, get func(context.Context, string) (*T, error)) error {
	id := c.Params("id")
	if id == "" {
		return badRequest(c, ErrMsgIDRequired)
	}
	if err := restore(c.UserContext(), id); err != nil {
		return respondWithError(c, err, ErrMsgRestoreFailed)
	}
	return getByID(c, get)
}

func create[P any, T any](c *fiber.Ctx, toModel func(*P) *T, save func(context.Context, *T) error) error {
	var params P
	if err := parseBody(c, &params); err != nil {
		return badRequest(c, err.Error())
	}
	v := toModel(&params)
	if err := save(c.UserContext(), v); err != nil {
		return respondWithError(c, err, ErrMsgCreateFailed)
	}
	return c.Status(fiber.StatusCreated).JSON(v)
}

func update[P any, T any](c *fiber.Ctx, apply func(*P, *T), save func(context.Context, string, func(*T)) (*T, error)) error {
	id := c.Params("id")
	if id == "" {
		return badRequest(c, ErrMsgIDRequired)
	}
	var params P
	if err := parseBody(c, &params); err != nil {
		return badRequest(c, err.Error())
	}
	v, err := save(c.UserContext(), id, func(v *T) { apply(&params, v) })
	if err != nil {
		return respondWithError(c, err, ErrMsgUpdateFailed)
	}
	return c.JSON(v)
}
