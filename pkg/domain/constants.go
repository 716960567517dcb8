package domain

// Detail keys used in Failure.Detail and, through it, in the "data" member of error envelopes.
const (
	KeyTool           = "tool"
	KeyFailureKind    = "failureKind"
	KeyFailureMode    = "failureMode"
	KeyReason         = "reason"
	KeyTimeoutSeconds = "timeoutSeconds"
	KeyStatus         = "status"
	KeyMethod         = "method"
	KeyMissing        = "missing"
	KeyUnknown        = "unknown"
	KeyEmpty          = "empty"
	KeyInvalid        = "invalid"
	KeyErrors         = "errors"
	KeyError          = "error"
	KeyOperation      = "operation"
)
