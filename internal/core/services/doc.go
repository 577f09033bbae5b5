// Package services implements the driving port interfaces.
//
// The answer pipeline is NormalizerService (corpus to documents),
// IndexService (documents to vectors), RetrievalService (query to gated
// context), SynthesizerService (context to answer) and FallbackService
// (web search), composed by RouterService.
//
// Services are pure Go with no CGO or external dependencies.
package services
