// Package records provides record-create service implementations: an HTTP
// client for a remote processing endpoint and an in-memory store for tests,
// previews and the CLI.
package records
