package controller

import (
	"template-builder-be/internal/dto"
	"template-builder-be/internal/pkg/serverutils"
	"template-builder-be/internal/service"

	"github.com/gofiber/fiber/v2"
)

type IEditorController interface {
	RegisterRoutes(r fiber.Router)
	Open(ctx *fiber.Ctx) error
	Show(ctx *fiber.Ctx) error
	Close(ctx *fiber.Ctx) error
	InsertBlock(ctx *fiber.Ctx) error
	MoveBlock(ctx *fiber.Ctx) error
	EditBlock(ctx *fiber.Ctx) error
	RemoveBlock(ctx *fiber.Ctx) error
	BeginDrag(ctx *fiber.Ctx) error
	DragOver(ctx *fiber.Ctx) error
	Drop(ctx *fiber.Ctx) error
	Save(ctx *fiber.Ctx) error
	Render(ctx *fiber.Ctx) error
}

type editorController struct {
	service service.IEditorService
}

func NewEditorController(service service.IEditorService) IEditorController {
	return &editorController{service: service}
}

func (c *editorController) RegisterRoutes(r fiber.Router) {
	h := r.Group("/editor/v1")
	h.Use(serverutils.JwtMiddleware)
	h.Post("sessions", c.Open)
	h.Get("sessions/:sid", c.Show)
	h.Delete("sessions/:sid", c.Close)

	h.Post("sessions/:sid/blocks", c.InsertBlock)
	h.Put("sessions/:sid/blocks/:bid/move", c.MoveBlock)
	h.Patch("sessions/:sid/blocks/:bid", c.EditBlock)
	h.Delete("sessions/:sid/blocks/:bid", c.RemoveBlock)

	h.Post("sessions/:sid/drag/begin", c.BeginDrag)
	h.Post("sessions/:sid/drag/over", c.DragOver)
	h.Post("sessions/:sid/drag/drop", c.Drop)

	h.Post("sessions/:sid/save", c.Save)
	h.Post("sessions/:sid/render", c.Render)
}

func (c *editorController) Open(ctx *fiber.Ctx) error {
	userId := serverutils.UserID(ctx)

	var req dto.OpenSessionRequest
	if err := parseBody(ctx, &req); err != nil {
		return err
	}
	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	res, err := c.service.Open(ctx.UserContext(), userId, &req)
	if err != nil {
		return err
	}

	return ctx.Status(fiber.StatusCreated).JSON(serverutils.SuccessResponse("Success open editor session", res))
}

func (c *editorController) Show(ctx *fiber.Ctx) error {
	userId := serverutils.UserID(ctx)
	sid, err := uuidParam(ctx, "sid")
	if err != nil {
		return err
	}

	res, err := c.service.Show(ctx.UserContext(), userId, sid)
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Success show editor session", res))
}

func (c *editorController) Close(ctx *fiber.Ctx) error {
	userId := serverutils.UserID(ctx)
	sid, err := uuidParam(ctx, "sid")
	if err != nil {
		return err
	}

	if err := c.service.Close(ctx.UserContext(), userId, sid); err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse[any]("Success close editor session", nil))
}

func (c *editorController) InsertBlock(ctx *fiber.Ctx) error {
	userId := serverutils.UserID(ctx)
	sid, err := uuidParam(ctx, "sid")
	if err != nil {
		return err
	}

	var req dto.InsertBlockRequest
	if err := parseBody(ctx, &req); err != nil {
		return err
	}
	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	res, err := c.service.InsertBlock(ctx.UserContext(), userId, sid, &req)
	if err != nil {
		return err
	}

	return ctx.Status(fiber.StatusCreated).JSON(serverutils.SuccessResponse("Success insert block", res))
}

func (c *editorController) MoveBlock(ctx *fiber.Ctx) error {
	userId := serverutils.UserID(ctx)
	sid, err := uuidParam(ctx, "sid")
	if err != nil {
		return err
	}

	var req dto.MoveBlockRequest
	if err := parseBody(ctx, &req); err != nil {
		return err
	}

	res, err := c.service.MoveBlock(ctx.UserContext(), userId, sid, ctx.Params("bid"), &req)
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Success move block", res))
}

func (c *editorController) EditBlock(ctx *fiber.Ctx) error {
	userId := serverutils.UserID(ctx)
	sid, err := uuidParam(ctx, "sid")
	if err != nil {
		return err
	}

	var req dto.EditBlockRequest
	if err := parseBody(ctx, &req); err != nil {
		return err
	}
	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	res, err := c.service.EditBlock(ctx.UserContext(), userId, sid, ctx.Params("bid"), &req)
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Success edit block", res))
}

func (c *editorController) RemoveBlock(ctx *fiber.Ctx) error {
	userId := serverutils.UserID(ctx)
	sid, err := uuidParam(ctx, "sid")
	if err != nil {
		return err
	}

	res, err := c.service.RemoveBlock(ctx.UserContext(), userId, sid, ctx.Params("bid"))
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Success remove block", res))
}

func (c *editorController) BeginDrag(ctx *fiber.Ctx) error {
	userId := serverutils.UserID(ctx)
	sid, err := uuidParam(ctx, "sid")
	if err != nil {
		return err
	}

	var req dto.BeginDragRequest
	if err := parseBody(ctx, &req); err != nil {
		return err
	}
	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	res, err := c.service.BeginDrag(ctx.UserContext(), userId, sid, &req)
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Success begin drag", res))
}

func (c *editorController) DragOver(ctx *fiber.Ctx) error {
	userId := serverutils.UserID(ctx)
	sid, err := uuidParam(ctx, "sid")
	if err != nil {
		return err
	}

	var req dto.DragIndexRequest
	if err := parseBody(ctx, &req); err != nil {
		return err
	}

	res, err := c.service.DragOver(ctx.UserContext(), userId, sid, &req)
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Success drag over", res))
}

func (c *editorController) Drop(ctx *fiber.Ctx) error {
	userId := serverutils.UserID(ctx)
	sid, err := uuidParam(ctx, "sid")
	if err != nil {
		return err
	}

	var req dto.DragIndexRequest
	if err := parseBody(ctx, &req); err != nil {
		return err
	}

	res, err := c.service.Drop(ctx.UserContext(), userId, sid, &req)
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Success drop block", res))
}

func (c *editorController) Save(ctx *fiber.Ctx) error {
	userId := serverutils.UserID(ctx)
	sid, err := uuidParam(ctx, "sid")
	if err != nil {
		return err
	}

	res, err := c.service.Save(ctx.UserContext(), userId, sid)
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Success save template", res))
}

func (c *editorController) Render(ctx *fiber.Ctx) error {
	userId := serverutils.UserID(ctx)
	sid, err := uuidParam(ctx, "sid")
	if err != nil {
		return err
	}

	var req dto.RenderRequest
	if len(ctx.Body()) > 0 {
		if err := parseBody(ctx, &req); err != nil {
			return err
		}
	}

	res, err := c.service.Render(ctx.UserContext(), userId, sid, &req)
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Success render session", res))
}
