// Package riptide extracts structured content from web pages.
//
// Given a set of URLs, an Orchestrator fetches each one, decides whether a
// fast HTML parse suffices or a full headless render is required, extracts
// title, text, markdown, links and media, scores the result for quality, and
// streams results back to the caller as they complete rather than waiting
// for the whole batch.
//
// The package composes four independent subsystems, each importable on its
// own: pkg/sandbox (an isolated, cached extraction runtime), pkg/browserpool
// (a bounded pool of headless browser processes), pkg/reliability (the
// per-URL gating and retry/circuit-breaker pipeline), and pkg/streaming (the
// NDJSON response framing). riptide itself is the composition root.
package riptide
