// Package logging configures the shared slog logger and provides attribute
// helpers and standardized field keys used across the repository.
package logging
