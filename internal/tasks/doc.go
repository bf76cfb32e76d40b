// package tasks implements long-running operations over platform resources.
//
// The core abstraction is ExportEngine, which fetches events or places through a [Source] and writes
// them to disk with a rate-limited worker pool. Operations emit progress updates via channels for
// non-blocking status reporting to CLI/UI layers.
package tasks
