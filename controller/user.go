package controller

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

func (ctrl *Controller) GetCurrentUser(c *gin.Context) {
	c.JSON(200, ctrl.currentUser(c))
}

func (ctrl *Controller) GetDomainUsers(c *gin.Context) {
	ctx := c.Request.Context()

	users, err := ctrl.Provider.Directory.GetDomainUsers(ctx)
	if err != nil {
		ctrl.Infra.Logger.ErrorWithContextf(ctx, err, "[User] Failed to list domain users")
		ctrl.respondError(c, err)
		return
	}
	c.JSON(200, users)
}

func (ctrl *Controller) FindDomainUser(c *gin.Context) {
	ctx := c.Request.Context()

	users, err := ctrl.Provider.Directory.FindDomainUser(ctx, c.Param("search"))
	if err != nil {
		ctrl.Infra.Logger.ErrorWithContextf(ctx, err, "[User] Failed to search domain users")
		ctrl.respondError(c, err)
		return
	}
	c.JSON(200, users)
}

func (ctrl *Controller) GetUser(c *gin.Context) {
	ctx := c.Request.Context()

	user, err := ctrl.Provider.Directory.GetUser(ctx, c.Param("samAccountName"))
	if err != nil {
		ctrl.Infra.Logger.ErrorWithContextf(ctx, err, "[User] Failed to get user %s", c.Param("samAccountName"))
		ctrl.respondError(c, err)
		return
	}
	c.JSON(200, user)
}

func (ctrl *Controller) GetUserByGuid(c *gin.Context) {
	ctx := c.Request.Context()

	guid, err := uuid.Parse(c.Param("guid"))
	if err != nil {
		c.JSON(400, gin.H{"error": "Invalid user guid"})
		return
	}

	user, err := ctrl.Provider.Directory.GetUserByGuid(ctx, guid)
	if err != nil {
		ctrl.Infra.Logger.ErrorWithContextf(ctx, err, "[User] Failed to get user %s", guid)
		ctrl.respondError(c, err)
		return
	}
	c.JSON(200, user)
}
