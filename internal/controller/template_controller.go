package controller

import (
	"template-builder-be/internal/dto"
	"template-builder-be/internal/pkg/serverutils"
	"template-builder-be/internal/service"

	"github.com/gofiber/fiber/v2"
)

type ITemplateController interface {
	RegisterRoutes(r fiber.Router)
	Create(ctx *fiber.Ctx) error
	GetAll(ctx *fiber.Ctx) error
	Show(ctx *fiber.Ctx) error
	Update(ctx *fiber.Ctx) error
	Delete(ctx *fiber.Ctx) error
	Preview(ctx *fiber.Ctx) error
	Send(ctx *fiber.Ctx) error
}

type templateController struct {
	service  service.ITemplateService
	renderer service.IRenderService
}

func NewTemplateController(service service.ITemplateService, renderer service.IRenderService) ITemplateController {
	return &templateController{service: service, renderer: renderer}
}

func (c *templateController) RegisterRoutes(r fiber.Router) {
	h := r.Group("/template/v1")
	h.Use(serverutils.JwtMiddleware)
	h.Get("", c.GetAll)
	h.Post("", c.Create)
	h.Get(":id", c.Show)
	h.Put(":id", c.Update)
	h.Delete(":id", c.Delete)
	h.Post(":id/preview", c.Preview)
	h.Post(":id/send", c.Send)
}

func (c *templateController) Create(ctx *fiber.Ctx) error {
	userId := serverutils.UserID(ctx)

	var req dto.CreateTemplateRequest
	if err := parseBody(ctx, &req); err != nil {
		return err
	}
	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	res, err := c.service.Create(ctx.UserContext(), userId, &req)
	if err != nil {
		return err
	}

	return ctx.Status(fiber.StatusCreated).JSON(serverutils.SuccessResponse("Success create template", res))
}

func (c *templateController) GetAll(ctx *fiber.Ctx) error {
	userId := serverutils.UserID(ctx)

	var req dto.ListTemplatesRequest
	if err := ctx.QueryParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Invalid query")
	}

	res, err := c.service.GetAll(ctx.UserContext(), userId, &req)
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Success get all template", res))
}

func (c *templateController) Show(ctx *fiber.Ctx) error {
	userId := serverutils.UserID(ctx)
	id, err := uuidParam(ctx, "id")
	if err != nil {
		return err
	}

	res, err := c.service.Show(ctx.UserContext(), userId, id)
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Success show template", res))
}

func (c *templateController) Update(ctx *fiber.Ctx) error {
	userId := serverutils.UserID(ctx)
	id, err := uuidParam(ctx, "id")
	if err != nil {
		return err
	}

	var req dto.UpdateTemplateRequest
	if err := parseBody(ctx, &req); err != nil {
		return err
	}
	req.Id = id
	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	res, err := c.service.Update(ctx.UserContext(), userId, &req)
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Success update template", res))
}

func (c *templateController) Delete(ctx *fiber.Ctx) error {
	userId := serverutils.UserID(ctx)
	id, err := uuidParam(ctx, "id")
	if err != nil {
		return err
	}

	if err := c.service.Delete(ctx.UserContext(), userId, id); err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse[any]("Success delete template", nil))
}

func (c *templateController) Preview(ctx *fiber.Ctx) error {
	userId := serverutils.UserID(ctx)
	id, err := uuidParam(ctx, "id")
	if err != nil {
		return err
	}

	var req dto.RenderRequest
	if len(ctx.Body()) > 0 {
		if err := parseBody(ctx, &req); err != nil {
			return err
		}
	}

	res, err := c.renderer.Preview(ctx.UserContext(), userId, id, &req)
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Success preview template", res))
}

func (c *templateController) Send(ctx *fiber.Ctx) error {
	userId := serverutils.UserID(ctx)
	id, err := uuidParam(ctx, "id")
	if err != nil {
		return err
	}

	var req dto.SendTemplateRequest
	if err := parseBody(ctx, &req); err != nil {
		return err
	}
	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	res, err := c.renderer.Send(ctx.UserContext(), userId, id, &req)
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Success send template", res))
}
