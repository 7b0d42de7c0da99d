package handler

import (
	"errors"
	"strings"

	"github.com/gofiber/fiber/v2"

	"filevault/internal/http/middleware"
	"filevault/internal/service"
)

// uploadRequest is the body of POST /files/upload. Size and content type are
// the client's declaration; nothing verifies them against the bytes that
// eventually reach the object store.
type uploadRequest struct {
	Filename      string `json:"filename"`
	ContentType   string `json:"contentType"`
	ContentLength int64  `json:"contentLength"`
}

type renameRequest struct {
	Name string `json:"name"`
}

// ListFiles handles GET /files?search=<term>.
func ListFiles(svc service.FileService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		user := middleware.UserFromCtx(c)

		search := strings.TrimSpace(c.Query("search"))

		files, err := svc.List(c.UserContext(), user.ID, search)
		if err != nil {
			return writeError(c, fiber.StatusInternalServerError, "Failed to fetch files")
		}
		return c.JSON(fiber.Map{"files": files})
	}
}

// CreateUploadIntent handles POST /files/upload. On success the client holds a
// presigned URL and performs the PUT itself; no bytes pass through this server.
func CreateUploadIntent(svc service.FileService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		user := middleware.UserFromCtx(c)

		var req uploadRequest
		if err := c.BodyParser(&req); err != nil {
			return writeError(c, fiber.StatusBadRequest, "Invalid request body")
		}
		if req.Filename == "" || req.ContentType == "" || req.ContentLength == 0 {
			return writeError(c, fiber.StatusBadRequest, "Missing required fields: filename, contentType, contentLength")
		}

		intent, err := svc.CreateUploadIntent(c.UserContext(), user.ID, req.Filename, req.ContentType, req.ContentLength)
		if err != nil {
			if errors.Is(err, service.ErrFileTooLarge) {
				return writeError(c, fiber.StatusInternalServerError, err.Error())
			}
			return writeError(c, fiber.StatusInternalServerError, "Failed to generate upload URL")
		}

		return c.JSON(fiber.Map{
			"success":   true,
			"fileId":    intent.FileID,
			"uploadUrl": intent.UploadURL,
			"publicUrl": intent.PublicURL,
		})
	}
}

// DownloadFile handles GET /files/:id/download.
func DownloadFile(svc service.FileService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		user := middleware.UserFromCtx(c)
		id := c.Params("id")

		ticket, err := svc.IssueDownload(c.UserContext(), user.ID, id)
		if err != nil {
			if errors.Is(err, service.ErrNotFound) || errors.Is(err, service.ErrIDRequired) {
				return writeError(c, fiber.StatusNotFound, "File not found or you don't have permission to download it")
			}
			return writeError(c, fiber.StatusInternalServerError, "Failed to generate download URL")
		}

		return c.JSON(fiber.Map{
			"success":     true,
			"downloadUrl": ticket.URL,
			"filename":    ticket.Filename,
		})
	}
}

// RenameFile handles PATCH /files/:id.
func RenameFile(svc service.FileService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		user := middleware.UserFromCtx(c)
		id := c.Params("id")

		var req renameRequest
		if err := c.BodyParser(&req); err != nil {
			return writeError(c, fiber.StatusBadRequest, "Invalid request body")
		}
		if req.Name == "" {
			return writeError(c, fiber.StatusBadRequest, "Name is required")
		}

		f, err := svc.Rename(c.UserContext(), user.ID, id, req.Name)
		if err != nil {
			switch {
			case errors.Is(err, service.ErrNotFound), errors.Is(err, service.ErrIDRequired):
				return writeError(c, fiber.StatusNotFound, "File not found or you don't have permission to rename it")
			case errors.Is(err, service.ErrNameRequired):
				return writeError(c, fiber.StatusBadRequest, "Name is required")
			default:
				return writeError(c, fiber.StatusInternalServerError, "Failed to rename file")
			}
		}

		return c.JSON(fiber.Map{"success": true, "name": f.Name})
	}
}

// DeleteFile handles DELETE /files/:id.
func DeleteFile(svc service.FileService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		user := middleware.UserFromCtx(c)
		id := c.Params("id")

		if err := svc.Delete(c.UserContext(), user.ID, id); err != nil {
			if errors.Is(err, service.ErrNotFound) || errors.Is(err, service.ErrIDRequired) {
				return writeError(c, fiber.StatusNotFound, "File not found or you don't have permission to delete it")
			}
			return writeError(c, fiber.StatusInternalServerError, "Failed to delete file")
		}

		return c.JSON(fiber.Map{"success": true})
	}
}
