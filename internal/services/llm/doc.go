// Package llm provides an OpenRouter/OpenAI-compatible chat client used to
// write the optional AI summary at the top of a day's activity block.
//
// # Entry Points
//
// NewClient: construct client from Config.
// Client.CompleteJSON: send system/user prompts, receive JSON response.
// Client.HealthCheck: verify API key and model availability.
// DecodeLLMJSON: decode model output that may be wrapped in code fences.
//
// # Retry Behaviour
//
// Requests go through the shared retry policy: HTTP 408/429/5xx, network
// timeouts, and empty completions are retried with exponential backoff (base
// 1s, max 10s, up to 5 attempts by default). Context cancellation aborts
// retries immediately.
package llm
