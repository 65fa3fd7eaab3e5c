package ports

// SourceWalker defines the interface for discovering source files on disk.
//
//go:generate mockgen -source=walker.go -destination=mocks/mock_walker.go -package=mocks
type SourceWalker interface {
	// Walk returns the absolute paths of all source files under root.
	// Implementations skip version control and dependency directories as
	// well as the build output directory.
	Walk(root string) ([]string, error)
}
