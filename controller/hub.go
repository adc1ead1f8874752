package controller

import "github.com/gin-gonic/gin"

// GroupSocket hands the request to the group hub for the websocket upgrade.
func (ctrl *Controller) GroupSocket(c *gin.Context) {
	ctrl.Hub.HandleConnection(c)
}
