package controller

import (
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/uploadhub/uploadhub/entity"
)

func (ctrl *Controller) GetFolders(c *gin.Context) {
	ctx := c.Request.Context()

	folders, err := ctrl.Repository.FolderRepo.GetFolders(ctx, false)
	if err != nil {
		ctrl.Infra.Logger.ErrorWithContextf(ctx, err, "[Folder] Failed to list folders")
		ctrl.respondError(c, err)
		return
	}
	c.JSON(200, folders)
}

func (ctrl *Controller) GetDeletedFolders(c *gin.Context) {
	ctx := c.Request.Context()

	folders, err := ctrl.Repository.FolderRepo.GetFolders(ctx, true)
	if err != nil {
		ctrl.Infra.Logger.ErrorWithContextf(ctx, err, "[Folder] Failed to list deleted folders")
		ctrl.respondError(c, err)
		return
	}
	c.JSON(200, folders)
}

func (ctrl *Controller) SearchFolders(c *gin.Context) {
	ctx := c.Request.Context()

	folders, err := ctrl.Repository.FolderRepo.SearchFolders(ctx, c.Param("search"), false)
	if err != nil {
		ctrl.Infra.Logger.ErrorWithContextf(ctx, err, "[Folder] Failed to search folders")
		ctrl.respondError(c, err)
		return
	}
	c.JSON(200, folders)
}

func (ctrl *Controller) SearchDeletedFolders(c *gin.Context) {
	ctx := c.Request.Context()

	folders, err := ctrl.Repository.FolderRepo.SearchFolders(ctx, c.Param("search"), true)
	if err != nil {
		ctrl.Infra.Logger.ErrorWithContextf(ctx, err, "[Folder] Failed to search deleted folders")
		ctrl.respondError(c, err)
		return
	}
	c.JSON(200, folders)
}

func (ctrl *Controller) GetFolder(c *gin.Context) {
	ctx := c.Request.Context()

	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(400, gin.H{"error": "Invalid folder id"})
		return
	}

	folder, err := ctrl.Repository.FolderRepo.GetFolder(ctx, uint(id))
	if err != nil {
		ctrl.Infra.Logger.ErrorWithContextf(ctx, err, "[Folder] Failed to get folder %d", id)
		ctrl.respondError(c, err)
		return
	}
	c.JSON(200, folder)
}

func (ctrl *Controller) GetFolderByName(c *gin.Context) {
	ctx := c.Request.Context()

	folder, err := ctrl.Repository.FolderRepo.GetFolderByName(ctx, c.Param("name"))
	if err != nil {
		ctrl.Infra.Logger.ErrorWithContextf(ctx, err, "[Folder] Failed to get folder %s", c.Param("name"))
		ctrl.respondError(c, err)
		return
	}
	c.JSON(200, folder)
}

func (ctrl *Controller) GetFolderUploads(c *gin.Context) {
	ctx := c.Request.Context()

	uploads, err := ctrl.Repository.FolderRepo.GetFolderUploads(ctx, c.Param("name"), false)
	if err != nil {
		ctrl.Infra.Logger.ErrorWithContextf(ctx, err, "[Folder] Failed to get uploads of %s", c.Param("name"))
		ctrl.respondError(c, err)
		return
	}
	c.JSON(200, uploads)
}

func (ctrl *Controller) GetExcludedFolders(c *gin.Context) {
	ctx := c.Request.Context()

	folders, err := ctrl.Repository.FolderRepo.GetExcludedFolders(ctx, c.Param("file"), false)
	if err != nil {
		ctrl.Infra.Logger.ErrorWithContextf(ctx, err, "[Folder] Failed to get excluded folders for %s", c.Param("file"))
		ctrl.respondError(c, err)
		return
	}
	c.JSON(200, folders)
}

func (ctrl *Controller) AddFolder(c *gin.Context) {
	ctx := c.Request.Context()

	var folder entity.Folder
	if err := c.ShouldBindJSON(&folder); err != nil {
		c.JSON(400, gin.H{"error": "Invalid request payload"})
		return
	}

	if err := ctrl.Repository.FolderRepo.AddFolder(ctx, &folder); err != nil {
		ctrl.Infra.Logger.WarningWithContextf(ctx, "[Folder] Rejected addFolder %q: %v", folder.Name, err)
		ctrl.respondError(c, err)
		return
	}

	ctrl.recordEvent(ctx, "folder", "created", ctrl.currentActor(c), folder)
	c.JSON(200, folder)
}

func (ctrl *Controller) UpdateFolder(c *gin.Context) {
	ctx := c.Request.Context()

	var folder entity.Folder
	if err := c.ShouldBindJSON(&folder); err != nil {
		c.JSON(400, gin.H{"error": "Invalid request payload"})
		return
	}

	if err := ctrl.Repository.FolderRepo.UpdateFolder(ctx, &folder); err != nil {
		ctrl.Infra.Logger.WarningWithContextf(ctx, "[Folder] Rejected updateFolder %d: %v", folder.ID, err)
		ctrl.respondError(c, err)
		return
	}

	ctrl.recordEvent(ctx, "folder", "updated", ctrl.currentActor(c), folder)
	c.JSON(200, folder)
}

func (ctrl *Controller) ToggleFolderDeleted(c *gin.Context) {
	ctx := c.Request.Context()

	var folder entity.Folder
	if err := c.ShouldBindJSON(&folder); err != nil {
		c.JSON(400, gin.H{"error": "Invalid request payload"})
		return
	}

	if err := ctrl.Repository.FolderRepo.ToggleFolderDeleted(ctx, &folder); err != nil {
		ctrl.Infra.Logger.WarningWithContextf(ctx, "[Folder] Rejected toggleFolderDeleted %d: %v", folder.ID, err)
		ctrl.respondError(c, err)
		return
	}

	ctrl.recordEvent(ctx, "folder", "toggled", ctrl.currentActor(c), folder)
	c.Status(200)
}

func (ctrl *Controller) RemoveFolder(c *gin.Context) {
	ctx := c.Request.Context()

	var folder entity.Folder
	if err := c.ShouldBindJSON(&folder); err != nil {
		c.JSON(400, gin.H{"error": "Invalid request payload"})
		return
	}

	if err := ctrl.Repository.FolderRepo.RemoveFolder(ctx, &folder); err != nil {
		ctrl.Infra.Logger.ErrorWithContextf(ctx, err, "[Folder] Failed to remove folder %d", folder.ID)
		ctrl.respondError(c, err)
		return
	}

	ctrl.recordEvent(ctx, "folder", "removed", ctrl.currentActor(c), folder)
	c.Status(200)
}

func (ctrl *Controller) AddFolderUploads(c *gin.Context) {
	ctx := c.Request.Context()

	var folderUploads []entity.FolderUpload
	if err := c.ShouldBindJSON(&folderUploads); err != nil {
		c.JSON(400, gin.H{"error": "Invalid request payload"})
		return
	}

	if err := ctrl.Repository.FolderUploadRepo.AddFolderUploads(ctx, folderUploads); err != nil {
		ctrl.Infra.Logger.WarningWithContextf(ctx, "[Folder] Rejected addFolderUploads: %v", err)
		ctrl.respondError(c, err)
		return
	}

	ctrl.recordEvent(ctx, "folder_upload", "created", ctrl.currentActor(c), folderUploads)
	c.JSON(200, folderUploads)
}

func (ctrl *Controller) UpdateFolderUpload(c *gin.Context) {
	ctx := c.Request.Context()

	var folderUpload entity.FolderUpload
	if err := c.ShouldBindJSON(&folderUpload); err != nil {
		c.JSON(400, gin.H{"error": "Invalid request payload"})
		return
	}

	if err := ctrl.Repository.FolderUploadRepo.UpdateFolderUpload(ctx, &folderUpload); err != nil {
		ctrl.Infra.Logger.WarningWithContextf(ctx, "[Folder] Rejected updateFolderUpload %d: %v", folderUpload.ID, err)
		ctrl.respondError(c, err)
		return
	}

	ctrl.recordEvent(ctx, "folder_upload", "updated", ctrl.currentActor(c), folderUpload)
	c.JSON(200, folderUpload)
}

func (ctrl *Controller) RemoveFolderUpload(c *gin.Context) {
	ctx := c.Request.Context()
	name := c.Param("name")

	var upload entity.Upload
	if err := c.ShouldBindJSON(&upload); err != nil {
		c.JSON(400, gin.H{"error": "Invalid request payload"})
		return
	}

	if err := ctrl.Repository.FolderUploadRepo.RemoveFolderUpload(ctx, name, &upload); err != nil {
		ctrl.Infra.Logger.WarningWithContextf(ctx, "[Folder] Rejected removeFolderUpload %s/%s: %v", name, upload.File, err)
		ctrl.respondError(c, err)
		return
	}

	ctrl.recordEvent(ctx, "folder_upload", "removed", ctrl.currentActor(c), gin.H{
		"folder": name,
		"file":   upload.File,
	})
	c.Status(200)
}
