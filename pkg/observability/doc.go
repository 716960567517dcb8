/*
Package observability turns gateway lifecycle hooks into Prometheus metrics and structured
log lines.

Both are plain domain.LifecycleHooks values, so they compose with domain.CombineHooks and
with any hooks supplied by the host application.
*/
package observability
