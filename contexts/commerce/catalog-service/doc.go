// Package catalogservice exposes product listing and upsert behind
// scope-based authorization. Prices are redacted for callers without the
// read:products scope, and every successful upsert triggers a single
// best-effort change notification to the configured downstream endpoint.
package catalogservice
