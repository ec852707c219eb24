package controller

import (
	"fmt"

	"ai-coursechat-be/internal/dto"
	"ai-coursechat-be/internal/pkg/serverutils"
	"ai-coursechat-be/internal/service"

	"github.com/gofiber/fiber/v2"
)

type IFileController interface {
	RegisterRoutes(r fiber.Router)
	Upload(ctx *fiber.Ctx) error
	Analyze(ctx *fiber.Ctx) error
	List(ctx *fiber.Ctx) error
	Delete(ctx *fiber.Ctx) error
	View(ctx *fiber.Ctx) error
	CheckDuplicate(ctx *fiber.Ctx) error
	DownloadZip(ctx *fiber.Ctx) error
}

type fileController struct {
	fileService service.IFileService
}

func NewFileController(fileService service.IFileService) IFileController {
	return &fileController{
		fileService: fileService,
	}
}

func (c *fileController) RegisterRoutes(r fiber.Router) {
	h := r.Group("/file/v1")
	h.Use(serverutils.JwtMiddleware)
	h.Post("upload", c.Upload)
	h.Post("analyze", c.Analyze)
	h.Get("list", c.List)
	h.Delete("", c.Delete)
	h.Get("view", c.View)
	h.Post("check-duplicate", c.CheckDuplicate)
	h.Get("download-zip", c.DownloadZip)
}

func (c *fileController) Upload(ctx *fiber.Ctx) error {
	username := ctx.Locals("username").(string)

	course := ctx.FormValue("course")
	filename := ctx.FormValue("filename")
	overwrite := ctx.FormValue("overwrite") == "true"
	if course == "" || filename == "" {
		return fiber.NewError(fiber.StatusUnprocessableEntity, "course and filename are required")
	}

	fileHeader, err := ctx.FormFile("file")
	if err != nil {
		return fiber.NewError(fiber.StatusUnprocessableEntity, "file is required")
	}
	file, err := fileHeader.Open()
	if err != nil {
		return err
	}
	defer file.Close()

	res, err := c.fileService.Upload(ctx.Context(), username, course, filename, overwrite, file)
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Upload accepted", res))
}

func (c *fileController) Analyze(ctx *fiber.Ctx) error {
	username := ctx.Locals("username").(string)

	fileHeader, err := ctx.FormFile("file")
	if err != nil {
		return fiber.NewError(fiber.StatusUnprocessableEntity, "file is required")
	}
	file, err := fileHeader.Open()
	if err != nil {
		return err
	}
	defer file.Close()

	res, err := c.fileService.Analyze(ctx.Context(), username, fileHeader.Filename, file)
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Success analyze file", res))
}

func (c *fileController) List(ctx *fiber.Ctx) error {
	username := ctx.Locals("username").(string)

	res, err := c.fileService.ListFiles(ctx.Context(), username)
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Success list files", res))
}

func (c *fileController) Delete(ctx *fiber.Ctx) error {
	username := ctx.Locals("username").(string)
	course := ctx.Query("course")
	filename := ctx.Query("filename")
	if course == "" || filename == "" {
		return fiber.NewError(fiber.StatusUnprocessableEntity, "course and filename are required")
	}

	if err := c.fileService.DeleteFile(ctx.Context(), username, course, filename); err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Success delete file", nil))
}

func (c *fileController) View(ctx *fiber.Ctx) error {
	username := ctx.Locals("username").(string)
	course := ctx.Query("course")
	filename := ctx.Query("filename")

	path, err := c.fileService.ViewPath(username, course, filename)
	if err != nil {
		return err
	}

	ctx.Set(fiber.HeaderContentType, "application/pdf")
	return ctx.SendFile(path)
}

func (c *fileController) CheckDuplicate(ctx *fiber.Ctx) error {
	username := ctx.Locals("username").(string)

	var req dto.CheckDuplicateRequest
	if err := ctx.BodyParser(&req); err != nil {
		return err
	}
	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	res := dto.CheckDuplicateResponse{
		Duplicate: c.fileService.CheckDuplicate(username, req.Course, req.Filename),
	}
	return ctx.JSON(serverutils.SuccessResponse("Success check duplicate", res))
}

func (c *fileController) DownloadZip(ctx *fiber.Ctx) error {
	username := ctx.Locals("username").(string)
	course := ctx.Query("course")
	if course == "" {
		return fiber.NewError(fiber.StatusUnprocessableEntity, "course is required")
	}

	ctx.Set(fiber.HeaderContentType, "application/zip")
	ctx.Set(fiber.HeaderContentDisposition, fmt.Sprintf(`attachment; filename="%s.zip"`, course))
	return c.fileService.DownloadZip(username, course, ctx.Response().BodyWriter())
}
