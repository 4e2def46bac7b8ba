// Package orchestrator wires the pipeline behind the CLI and HTTP callers:
// resolve a schema (inline, preset, file or OpenAPI operation), replay the
// submitted answers and actions on a wizard session, pick a theme and render
// the resulting step.
package orchestrator
