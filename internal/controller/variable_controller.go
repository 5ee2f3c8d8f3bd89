package controller

import (
	"template-builder-be/internal/pkg/serverutils"
	"template-builder-be/internal/service"

	"github.com/gofiber/fiber/v2"
)

type IVariableController interface {
	RegisterRoutes(r fiber.Router)
	GetAll(ctx *fiber.Ctx) error
	GetCategories(ctx *fiber.Ctx) error
}

type variableController struct {
	service service.IVariableService
}

func NewVariableController(service service.IVariableService) IVariableController {
	return &variableController{service: service}
}

func (c *variableController) RegisterRoutes(r fiber.Router) {
	h := r.Group("/variable/v1")
	h.Get("", c.GetAll)
	h.Get("categories", c.GetCategories)
}

func (c *variableController) GetAll(ctx *fiber.Ctx) error {
	res := c.service.GetAll(ctx.Query("category"))
	return ctx.JSON(serverutils.SuccessResponse("Success get all variable", res))
}

func (c *variableController) GetCategories(ctx *fiber.Ctx) error {
	res := c.service.GetCategories()
	return ctx.JSON(serverutils.SuccessResponse("Success get variable categories", res))
}
