package contract

import "errors"

var (
	ErrModelInvoke         = errors.New("model invoke failed")
	ErrSchemaViolation     = errors.New("model response violates schema")
	ErrParameterExtraction = errors.New("parameter extraction failed")
	ErrValidation          = errors.New("validation failed")
	ErrCalculation         = errors.New("calculation error")
	ErrUnknownIntent       = errors.New("unknown intent")
)
