package controller

import (
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/uploadhub/uploadhub/entity"
	"github.com/uploadhub/uploadhub/infra/produce"
)

func (ctrl *Controller) GetUploads(c *gin.Context) {
	ctx := c.Request.Context()

	uploads, err := ctrl.Repository.UploadRepo.GetUploads(ctx, false)
	if err != nil {
		ctrl.Infra.Logger.ErrorWithContextf(ctx, err, "[Upload] Failed to list uploads")
		ctrl.respondError(c, err)
		return
	}
	c.JSON(200, uploads)
}

func (ctrl *Controller) GetDeletedUploads(c *gin.Context) {
	ctx := c.Request.Context()

	uploads, err := ctrl.Repository.UploadRepo.GetUploads(ctx, true)
	if err != nil {
		ctrl.Infra.Logger.ErrorWithContextf(ctx, err, "[Upload] Failed to list deleted uploads")
		ctrl.respondError(c, err)
		return
	}
	c.JSON(200, uploads)
}

func (ctrl *Controller) SearchUploads(c *gin.Context) {
	ctx := c.Request.Context()

	uploads, err := ctrl.Repository.UploadRepo.SearchUploads(ctx, c.Param("search"), false)
	if err != nil {
		ctrl.Infra.Logger.ErrorWithContextf(ctx, err, "[Upload] Failed to search uploads")
		ctrl.respondError(c, err)
		return
	}
	c.JSON(200, uploads)
}

func (ctrl *Controller) SearchDeletedUploads(c *gin.Context) {
	ctx := c.Request.Context()

	uploads, err := ctrl.Repository.UploadRepo.SearchUploads(ctx, c.Param("search"), true)
	if err != nil {
		ctrl.Infra.Logger.ErrorWithContextf(ctx, err, "[Upload] Failed to search deleted uploads")
		ctrl.respondError(c, err)
		return
	}
	c.JSON(200, uploads)
}

func (ctrl *Controller) GetUpload(c *gin.Context) {
	ctx := c.Request.Context()

	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(400, gin.H{"error": "Invalid upload id"})
		return
	}

	upload, err := ctrl.Repository.UploadRepo.GetUpload(ctx, uint(id))
	if err != nil {
		ctrl.Infra.Logger.ErrorWithContextf(ctx, err, "[Upload] Failed to get upload %d", id)
		ctrl.respondError(c, err)
		return
	}
	c.JSON(200, upload)
}

func (ctrl *Controller) GetUploadByName(c *gin.Context) {
	ctx := c.Request.Context()

	upload, err := ctrl.Repository.UploadRepo.GetUploadByName(ctx, c.Param("file"))
	if err != nil {
		ctrl.Infra.Logger.ErrorWithContextf(ctx, err, "[Upload] Failed to get upload %s", c.Param("file"))
		ctrl.respondError(c, err)
		return
	}
	c.JSON(200, upload)
}

func (ctrl *Controller) GetUploadFolders(c *gin.Context) {
	ctx := c.Request.Context()

	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(400, gin.H{"error": "Invalid upload id"})
		return
	}

	folders, err := ctrl.Repository.UploadRepo.GetUploadFolders(ctx, uint(id), false)
	if err != nil {
		ctrl.Infra.Logger.ErrorWithContextf(ctx, err, "[Upload] Failed to get folders of upload %d", id)
		ctrl.respondError(c, err)
		return
	}
	c.JSON(200, folders)
}

func (ctrl *Controller) GetExcludedUploads(c *gin.Context) {
	ctx := c.Request.Context()

	uploads, err := ctrl.Repository.UploadRepo.GetExcludedUploads(ctx, c.Param("name"), false)
	if err != nil {
		ctrl.Infra.Logger.ErrorWithContextf(ctx, err, "[Upload] Failed to get excluded uploads for %s", c.Param("name"))
		ctrl.respondError(c, err)
		return
	}
	c.JSON(200, uploads)
}

// UploadFiles ingests a multipart batch. No request-size limit is applied
// here beyond what the transport enforces.
func (ctrl *Controller) UploadFiles(c *gin.Context) {
	ctx := c.Request.Context()

	form, err := c.MultipartForm()
	if err != nil {
		c.JSON(400, gin.H{"error": "Invalid multipart form"})
		return
	}

	files := form.File["files"]
	ctrl.Infra.Logger.InfoWithContextf(ctx, "[Upload] Received batch of %d file(s)", len(files))

	uploads, err := ctrl.Repository.UploadRepo.IngestBatch(ctx, files)
	if err != nil {
		ctrl.Infra.Logger.ErrorWithContextf(ctx, err, "[Upload] Failed to ingest batch")
		ctrl.respondError(c, err)
		return
	}

	actor := ctrl.currentActor(c)
	for _, upload := range uploads {
		ctrl.recordEvent(ctx, "upload", "stored", actor, upload)

		err := ctrl.Infra.Produce.Events.PublishUploadStored(ctx, produce.UploadStoredMessage{
			UploadID:    upload.ID,
			File:        upload.File,
			Path:        upload.Path,
			ContentType: upload.FileType,
			Size:        upload.Size,
		})
		if err != nil {
			ctrl.Infra.Logger.ErrorWithContextf(ctx, err, "[Upload] Failed to publish stored event for %s", upload.File)
		}
	}

	c.JSON(200, uploads)
}

func (ctrl *Controller) ToggleUploadDeleted(c *gin.Context) {
	ctx := c.Request.Context()

	var upload entity.Upload
	if err := c.ShouldBindJSON(&upload); err != nil {
		c.JSON(400, gin.H{"error": "Invalid request payload"})
		return
	}

	if err := ctrl.Repository.UploadRepo.ToggleUploadDeleted(ctx, &upload); err != nil {
		ctrl.Infra.Logger.ErrorWithContextf(ctx, err, "[Upload] Failed to toggle upload %d", upload.ID)
		ctrl.respondError(c, err)
		return
	}

	ctrl.recordEvent(ctx, "upload", "toggled", ctrl.currentActor(c), upload)
	c.Status(200)
}

func (ctrl *Controller) RemoveUpload(c *gin.Context) {
	ctx := c.Request.Context()

	var upload entity.Upload
	if err := c.ShouldBindJSON(&upload); err != nil {
		c.JSON(400, gin.H{"error": "Invalid request payload"})
		return
	}

	if err := ctrl.Repository.UploadRepo.RemoveUpload(ctx, &upload); err != nil {
		ctrl.Infra.Logger.ErrorWithContextf(ctx, err, "[Upload] Failed to remove upload %d", upload.ID)
		ctrl.respondError(c, err)
		return
	}

	ctrl.recordEvent(ctx, "upload", "removed", ctrl.currentActor(c), upload)

	err := ctrl.Infra.Produce.Events.PublishUploadRemoved(ctx, produce.UploadRemovedMessage{
		UploadID: upload.ID,
		File:     upload.File,
	})
	if err != nil {
		ctrl.Infra.Logger.ErrorWithContextf(ctx, err, "[Upload] Failed to publish removed event for %s", upload.File)
	}

	c.Status(200)
}
