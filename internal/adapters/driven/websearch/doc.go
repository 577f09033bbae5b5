// Package websearch provides the live web search providers used when local
// retrieval has nothing close enough to the question.
//
// Each provider maps its own response schema onto domain.ProviderResponse:
// organic results become Items and a featured answer, when the engine has
// one, becomes DirectAnswer. Providers share a RateLimiter pattern that
// fails fast while a 429 backoff is active so the fallback chain can move
// on to the next provider instead of blocking the question.
package websearch
