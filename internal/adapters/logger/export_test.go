package logger

// Test-only exports for the error chain rendering internals.
var (
	CollectChain = collectChain
	RenderChain  = renderChain
)
