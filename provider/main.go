package provider

import (
	"log"

	"github.com/uploadhub/uploadhub/config"
	"github.com/uploadhub/uploadhub/infra"
)

type Provider struct {
	Directory DirectoryProvider
}

var provider *Provider

// InitProvider selects the directory implementation by configuration: a
// static in-memory fixture for development, or the live directory-service
// adapter for production. Consumers only ever see DirectoryProvider.
func InitProvider(cfg *config.Config, infra *infra.Infra) *Provider {
	var directory DirectoryProvider

	switch cfg.EnvConfig.Directory.Mode {
	case "live":
		directory = NewDirectoryServiceProvider(cfg.EnvConfig, infra.Redis)
	default:
		directory = NewMockDirectoryProvider()
	}

	log.Println("Directory provider mode:", cfg.EnvConfig.Directory.Mode)

	provider = &Provider{
		Directory: directory,
	}

	return provider
}

func GetProvider() *Provider {
	if provider == nil {
		panic("Provider not initialized")
	}
	return provider
}
