package controller

import "github.com/gin-gonic/gin"

// GetBannerConfig returns the environment banner the frontend renders above
// the navigation bar.
func (ctrl *Controller) GetBannerConfig(c *gin.Context) {
	banner := ctrl.Config.EnvConfig.Banner
	c.JSON(200, gin.H{
		"label":      banner.Label,
		"background": banner.Background,
		"color":      banner.Color,
	})
}
