package ports

import "github.com/lumenlang/lumen/internal/core/domain"

// ConfigLoader defines the interface for loading the project configuration.
//
//go:generate mockgen -source=config_loader.go -destination=mocks/mock_config_loader.go -package=mocks
type ConfigLoader interface {
	// Load reads the configuration for the project containing cwd.
	// The returned config carries the resolved absolute project root.
	Load(cwd string) (*domain.ProjectConfig, error)

	// DiscoverRoot walks up from cwd to find the project root.
	// Returns the directory containing lumen.yaml.
	DiscoverRoot(cwd string) (string, error)
}
