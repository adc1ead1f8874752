package routes

import (
	"github.com/gin-gonic/gin"
	"github.com/uploadhub/uploadhub/controller"
	middlewares "github.com/uploadhub/uploadhub/middleware"
)

func SetupRouter(ctrl *controller.Controller) *gin.Engine {
	r := gin.Default()
	middles, err := middlewares.NewMiddlewares(ctrl)
	if err != nil {
		panic(err)
	}

	r.Use(middles.CORSMiddleware)
	r.Use(middles.IdentityMiddleware)

	// Stored files are served straight from the upload directory so the
	// persisted Url values resolve.
	r.Static(ctrl.Config.EnvConfig.Upload.URLBasePath, ctrl.Config.EnvConfig.Upload.DirectoryBasePath)

	apiRoutes := r.Group("/api")
	{
		folderRoutes := apiRoutes.Group("/folder")
		{
			folderRoutes.GET("/getFolders", ctrl.GetFolders)
			folderRoutes.GET("/getDeletedFolders", ctrl.GetDeletedFolders)
			folderRoutes.GET("/searchFolders/:search", ctrl.SearchFolders)
			folderRoutes.GET("/searchDeletedFolders/:search", ctrl.SearchDeletedFolders)
			folderRoutes.GET("/getFolder/:id", ctrl.GetFolder)
			folderRoutes.GET("/getFolderByName/:name", ctrl.GetFolderByName)
			folderRoutes.GET("/getFolderUploads/:name", ctrl.GetFolderUploads)
			folderRoutes.GET("/getExcludedFolders/:file", ctrl.GetExcludedFolders)
			folderRoutes.POST("/addFolder", ctrl.AddFolder)
			folderRoutes.POST("/updateFolder", ctrl.UpdateFolder)
			folderRoutes.POST("/toggleFolderDeleted", ctrl.ToggleFolderDeleted)
			folderRoutes.POST("/removeFolder", ctrl.RemoveFolder)
			folderRoutes.POST("/addFolderUploads", ctrl.AddFolderUploads)
			folderRoutes.POST("/updateFolderUpload", ctrl.UpdateFolderUpload)
			folderRoutes.POST("/removeFolderUpload/:name", ctrl.RemoveFolderUpload)
		}

		uploadRoutes := apiRoutes.Group("/upload")
		{
			uploadRoutes.GET("/getUploads", ctrl.GetUploads)
			uploadRoutes.GET("/getDeletedUploads", ctrl.GetDeletedUploads)
			uploadRoutes.GET("/searchUploads/:search", ctrl.SearchUploads)
			uploadRoutes.GET("/searchDeletedUploads/:search", ctrl.SearchDeletedUploads)
			uploadRoutes.GET("/getUpload/:id", ctrl.GetUpload)
			uploadRoutes.GET("/getUploadByName/:file", ctrl.GetUploadByName)
			uploadRoutes.GET("/getUploadFolders/:id", ctrl.GetUploadFolders)
			uploadRoutes.GET("/getExcludedUploads/:name", ctrl.GetExcludedUploads)
			uploadRoutes.POST("/uploadFiles", ctrl.UploadFiles)
			uploadRoutes.POST("/toggleUploadDeleted", ctrl.ToggleUploadDeleted)
			uploadRoutes.POST("/removeUpload", ctrl.RemoveUpload)
		}

		bannerRoutes := apiRoutes.Group("/banner")
		{
			bannerRoutes.GET("/getConfig", ctrl.GetBannerConfig)
		}

		userRoutes := apiRoutes.Group("/user")
		{
			userRoutes.GET("/getCurrentUser", ctrl.GetCurrentUser)
			userRoutes.GET("/getDomainUsers", ctrl.GetDomainUsers)
			userRoutes.GET("/findDomainUser/:search", ctrl.FindDomainUser)
			userRoutes.GET("/getUser/:samAccountName", ctrl.GetUser)
			userRoutes.GET("/getUserByGuid/:guid", ctrl.GetUserByGuid)
		}
	}

	r.GET("/hub/group", ctrl.GroupSocket)

	return r
}
