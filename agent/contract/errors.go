package contract

import "errors"

var (
	ErrModelInvoke       = errors.New("model invoke failed")
	ErrContractViolation = errors.New("specialist result violates contract")
	ErrToolError         = errors.New("tool call failed")
	ErrValidation        = errors.New("validation failed")
	ErrPromptMissing     = errors.New("required prompt is missing")
	ErrRouteUnknown      = errors.New("unknown route")
)
