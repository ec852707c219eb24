package controller

import (
	"ai-coursechat-be/internal/dto"
	"ai-coursechat-be/internal/pkg/serverutils"
	"ai-coursechat-be/internal/service"

	"github.com/gofiber/fiber/v2"
)

type ICourseController interface {
	RegisterRoutes(r fiber.Router)
	Create(ctx *fiber.Ctx) error
	List(ctx *fiber.Ctx) error
	Delete(ctx *fiber.Ctx) error
	Status(ctx *fiber.Ctx) error
}

type courseController struct {
	courseService service.ICourseService
}

func NewCourseController(courseService service.ICourseService) ICourseController {
	return &courseController{
		courseService: courseService,
	}
}

func (c *courseController) RegisterRoutes(r fiber.Router) {
	h := r.Group("/course/v1")
	h.Use(serverutils.JwtMiddleware)
	h.Post("", c.Create)
	h.Get("", c.List)
	h.Delete("", c.Delete)
	h.Get("status", c.Status)
}

func (c *courseController) Create(ctx *fiber.Ctx) error {
	username := ctx.Locals("username").(string)

	var req dto.CreateCourseRequest
	if err := ctx.BodyParser(&req); err != nil {
		return err
	}
	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	if err := c.courseService.Create(ctx.Context(), username, &req); err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Success create course", nil))
}

func (c *courseController) List(ctx *fiber.Ctx) error {
	username := ctx.Locals("username").(string)

	res, err := c.courseService.List(ctx.Context(), username)
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Success list courses", res))
}

func (c *courseController) Delete(ctx *fiber.Ctx) error {
	username := ctx.Locals("username").(string)
	course := ctx.Query("course")
	if course == "" {
		return fiber.NewError(fiber.StatusUnprocessableEntity, "course is required")
	}

	if err := c.courseService.Delete(ctx.Context(), username, course); err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Success delete course", nil))
}

func (c *courseController) Status(ctx *fiber.Ctx) error {
	username := ctx.Locals("username").(string)
	course := ctx.Query("course")
	if course == "" {
		return fiber.NewError(fiber.StatusUnprocessableEntity, "course is required")
	}

	res, err := c.courseService.Status(ctx.Context(), username, course)
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Success get course status", res))
}
