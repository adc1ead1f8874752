package controller

import (
	"context"

	"github.com/gin-gonic/gin"
	"github.com/uploadhub/uploadhub/config"
	"github.com/uploadhub/uploadhub/hub"
	"github.com/uploadhub/uploadhub/infra"
	"github.com/uploadhub/uploadhub/infra/produce"
	"github.com/uploadhub/uploadhub/provider"
	"github.com/uploadhub/uploadhub/provider/dto"
	"github.com/uploadhub/uploadhub/repository"
)

type Controller struct {
	Config     *config.Config
	Infra      *infra.Infra
	Provider   *provider.Provider
	Repository *repository.Repository
	Hub        *hub.GroupHub
}

func NewController(config *config.Config, infra *infra.Infra, prov *provider.Provider, repo *repository.Repository, groupHub *hub.GroupHub) *Controller {
	if repo == nil {
		panic("Failed to initialize Repository")
	}
	return &Controller{
		Config:     config,
		Infra:      infra,
		Provider:   prov,
		Repository: repo,
		Hub:        groupHub,
	}
}

// currentUser returns the directory profile the identity middleware
// resolved, or nil for an anonymous request.
func (ctrl *Controller) currentUser(c *gin.Context) *dto.DirectoryUser {
	value, ok := c.Get("current_user")
	if !ok {
		return nil
	}
	user, _ := value.(*dto.DirectoryUser)
	return user
}

func (ctrl *Controller) currentActor(c *gin.Context) string {
	if user := ctrl.currentUser(c); user != nil {
		return user.SamAccountName
	}
	return ""
}

// recordEvent writes the audit row and publishes the lifecycle event for a
// mutation that already succeeded. Neither failure is allowed to fail the
// request; both are logged.
func (ctrl *Controller) recordEvent(ctx context.Context, entityName, action, actor string, payload interface{}) {
	if err := ctrl.Repository.AuditRepo.Record(ctx, entityName, action, actor, payload); err != nil {
		ctrl.Infra.Logger.ErrorWithContextf(ctx, err, "[Audit] Failed to record %s.%s", entityName, action)
	}

	err := ctrl.Infra.Produce.Events.PublishEntityEvent(ctx, produce.EntityEventMessage{
		Entity:  entityName,
		Action:  action,
		Actor:   actor,
		Payload: payload,
	})
	if err != nil {
		ctrl.Infra.Logger.ErrorWithContextf(ctx, err, "[Events] Failed to publish %s.%s", entityName, action)
	}
}

// respondError maps a repository failure onto the wire: validation failures
// are rejected requests, everything else is a server error.
func (ctrl *Controller) respondError(c *gin.Context, err error) {
	if repository.IsValidationError(err) {
		c.JSON(400, gin.H{"error": err.Error()})
		return
	}
	c.JSON(500, gin.H{"error": "Internal server error"})
}
