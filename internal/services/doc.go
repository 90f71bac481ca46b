// Package services defines shared utilities consumed by the dispatcher, the
// process runner, and the CLI commands.
//
// Key responsibilities:
//   - Context helpers that stamp session identifiers and operation names for
//     logging.
//   - Structured error markers plus the Wrap helper that separate recoverable
//     failures (bad menu input, tool launch or exit failures) from the ones
//     that end a session.
package services
