// Package logging provides structured logging for conversion runs.
//
// # Overview
//
// The logging package wraps Go's standard log/slog package to provide:
//   - JSON, text and console output formats
//   - Context-aware logging with run IDs and schema names
//   - Optional masking of personal data in logged cell values
//
// # Usage
//
//	logger, err := logging.New(logging.Config{
//	    Level:  "info",
//	    Format: "json",
//	})
//
//	ctx = logging.WithRunID(ctx, runID)
//	logger.WarnContext(ctx, "row failed", "row", "ROW:3", "raw", cell)
//
// # Redaction
//
// When RedactValues is set, string values are scanned before logging:
//
//   - Emails: user@example.com → ***@***
//   - Phone numbers: 555-123-4567 → ***-***-****
//   - Card numbers: 4111 1111 1111 1111 → ****-****-****-****
//   - SSN: 123-45-6789 → ***-**-****
package logging
