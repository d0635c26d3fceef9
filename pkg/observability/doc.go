/*
Package observability exposes Prometheus instrumentation for document
edits, wired through the editor's lifecycle hooks.
*/
package observability
