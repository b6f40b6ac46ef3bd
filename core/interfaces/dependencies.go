// ABOUTME: Dependencies container provides dependency injection for core services
// ABOUTME: Defines the collaborators the authenticators and the sync engine are built from

package interfaces

// Dependencies holds all external dependencies required by the core
type Dependencies struct {
	// Transport performs HTTP exchanges with the aggregation server
	Transport Transport

	// Cache persists sync checkpoints
	Cache Cache

	// Logger provides structured logging
	Logger Logger
}
