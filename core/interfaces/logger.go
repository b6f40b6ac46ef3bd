package interfaces

// Logger defines the interface for logging throughout the client.
// This abstraction keeps the core independent of the logging backend.
//
// Example usage:
//
//	logger.Debug("Fetched item batch", map[string]interface{}{
//		"cursor": cursor,
//		"items":  len(batch),
//	})
//
//	logger.Warn("Mark response missing expected field", map[string]interface{}{
//		"action": "read",
//		"field":  "unread_item_ids",
//	})
type Logger interface {
	// Debug logs a debug level message with optional structured fields.
	// Debug messages carry per-request detail and are only shown in verbose mode.
	Debug(msg string, fields map[string]interface{})

	// Info logs an info level message with optional structured fields.
	Info(msg string, fields map[string]interface{})

	// Warn logs a warning level message with optional structured fields.
	// Warning messages indicate potential issues that don't prevent operation.
	Warn(msg string, fields map[string]interface{})

	// Error logs an error level message with optional structured fields.
	Error(msg string, fields map[string]interface{})
}
