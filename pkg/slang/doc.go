// Package slang contains the translation request orchestrator: the state
// machine that turns a user utterance into a slang rendering, mood tags and
// synthesized speech, while hiding backend latency behind streaming,
// caching and stale-request suppression.
package slang
