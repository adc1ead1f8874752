package middlewares

import (
	"github.com/gin-gonic/gin"
	"github.com/uploadhub/uploadhub/config"
	"github.com/uploadhub/uploadhub/provider"
	"github.com/uploadhub/uploadhub/utils"
)

// IdentityMiddleware resolves the current user once per request and stashes
// the profile in the context. Resolution order: bearer token subject, then
// the X-Remote-User header, then the configured default account (mock mode
// development convenience). Requests without a resolvable user pass through
// anonymously; this application trusts the perimeter for authentication.
func IdentityMiddleware(prov *provider.Provider, cfg *config.EnvConfig) gin.HandlerFunc {
	return func(c *gin.Context) {
		samAccountName := utils.SubjectFromToken(utils.ExtractToken(c), cfg)

		if samAccountName == "" {
			samAccountName = c.GetHeader("X-Remote-User")
		}

		if samAccountName == "" && cfg.Directory.Mode == "mock" {
			samAccountName = cfg.Directory.DefaultAccount
		}

		if samAccountName != "" {
			user, err := prov.Directory.GetUser(c.Request.Context(), samAccountName)
			if err == nil && user != nil {
				c.Set("current_user", user)
				c.Set("user_name", user.DisplayName)
			}
		}

		c.Next()
	}
}
