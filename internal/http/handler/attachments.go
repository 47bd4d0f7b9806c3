package handler

import (
	"github.com/gofiber/fiber/v2"

	"sitrack/internal/service"
)

// ListAttachments godoc
// @Summary List report attachments
// @Tags attachments
// @Produce json
// @Security BearerAuth
// @Param id path string true "Report ID"
// @Success 200 {array} model.FileAttachment
// @Router /api/v1/reports/{id}/attachments [get]
func ListAttachments(svc service.AttachmentService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id := pathID(c, "id")
		if id == "" {
			return invalidID(c)
		}
		items, err := svc.List(c.UserContext(), actorFrom(c), id)
		if err != nil {
			return serviceError(c, err)
		}
		return c.JSON(fiber.Map{"data": items})
	}
}

// UploadAttachment godoc
// @Summary Upload a report attachment
// @Tags attachments
// @Accept multipart/form-data
// @Produce json
// @Security BearerAuth
// @Param id path string true "Report ID"
// @Param file formData file true "Document"
// @Success 201 {object} model.FileAttachment
// @Failure 400 {object} errorPayload
// @Router /api/v1/reports/{id}/attachments [post]
func UploadAttachment(svc service.AttachmentService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id := pathID(c, "id")
		if id == "" {
			return invalidID(c)
		}
		fh, err := c.FormFile("file")
		if err != nil {
			return writeError(c, fiber.StatusBadRequest, "FILE_REQUIRED", "file is required")
		}

		f, err := fh.Open()
		if err != nil {
			return writeError(c, fiber.StatusBadRequest, "FILE_OPEN_ERROR", "cannot open uploaded file")
		}
		defer f.Close()

		a, err := svc.Upload(c.UserContext(), actorFrom(c), id, service.UploadInput{
			Reader:      f,
			FileName:    fh.Filename,
			ContentType: fh.Header.Get("Content-Type"),
			Size:        fh.Size,
		})
		if err != nil {
			return serviceError(c, err)
		}
		return c.Status(fiber.StatusCreated).JSON(a)
	}
}

// DownloadAttachment godoc
// @Summary Redirect to a presigned download link
// @Tags attachments
// @Security BearerAuth
// @Param id path string true "Attachment ID"
// @Success 302
// @Failure 404 {object} errorPayload
// @Router /api/v1/attachments/{id} [get]
func DownloadAttachment(svc service.AttachmentService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id := pathID(c, "id")
		if id == "" {
			return invalidID(c)
		}
		a, err := svc.Get(c.UserContext(), actorFrom(c), id)
		if err != nil {
			return serviceError(c, err)
		}
		if a.URL == "" {
			return writeError(c, fiber.StatusServiceUnavailable, "SERVICE_UNAVAILABLE", "download link unavailable")
		}
		return c.Redirect(a.URL, fiber.StatusFound)
	}
}

// AttachmentContent godoc
// @Summary Stream attachment content through the API
// @Tags attachments
// @Produce octet-stream
// @Security BearerAuth
// @Param id path string true "Attachment ID"
// @Success 200 {file} binary
// @Router /api/v1/attachments/{id}/content [get]
func AttachmentContent(svc service.AttachmentService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id := pathID(c, "id")
		if id == "" {
			return invalidID(c)
		}
		rc, a, err := svc.Open(c.UserContext(), actorFrom(c), id)
		if err != nil {
			return serviceError(c, err)
		}
		c.Attachment(a.FileName)
		if a.ContentType != "" {
			c.Set(fiber.HeaderContentType, a.ContentType)
		}
		size := int(a.Size)
		if size <= 0 {
			size = -1
		}
		// fasthttp closes rc once the body has been written.
		return c.SendStream(rc, size)
	}
}

// DeleteAttachment godoc
// @Summary Delete an attachment
// @Tags attachments
// @Security BearerAuth
// @Param id path string true "Attachment ID"
// @Success 204
// @Router /api/v1/attachments/{id} [delete]
func DeleteAttachment(svc service.AttachmentService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id := pathID(c, "id")
		if id == "" {
			return invalidID(c)
		}
		if err := svc.Delete(c.UserContext(), actorFrom(c), id); err != nil {
			return serviceError(c, err)
		}
		return c.SendStatus(fiber.StatusNoContent)
	}
}
