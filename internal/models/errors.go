package models

import (
	"errors"
	"fmt"
)

// Sentinel errors for errors.Is checks
var (
	ErrInvalidArn          = errors.New("invalid arn")
	ErrUnknownService      = errors.New("unknown service")
	ErrUnknownResourceType = errors.New("unknown resource type")
	ErrUnsupportedResource = errors.New("unsupported resource")
	ErrUserConfiguration   = errors.New("user configuration error")
	ErrInternal            = errors.New("internal error")
)

// InvalidArnError reports a string that does not follow the ARN grammar
type InvalidArnError struct {
	ARN    string
	Reason string
}

func (e *InvalidArnError) Error() string {
	if e.Reason != "" {
		return fmt.Sprintf("invalid or unhandled ARN %q: %s", e.ARN, e.Reason)
	}
	return fmt.Sprintf("invalid or unhandled ARN %q", e.ARN)
}

func (e *InvalidArnError) Unwrap() error { return ErrInvalidArn }

// UnknownServiceError reports a service id that is not registered
type UnknownServiceError struct {
	ServiceID string
}

func (e *UnknownServiceError) Error() string {
	return fmt.Sprintf("unhandled service: %s", e.ServiceID)
}

func (e *UnknownServiceError) Unwrap() error { return ErrUnknownService }

// UnknownResourceTypeError reports a resource type a service does not know
type UnknownResourceTypeError struct {
	ServiceID    string
	ResourceType string
}

func (e *UnknownResourceTypeError) Error() string {
	return fmt.Sprintf("unknown resource type for %s: %q", e.ServiceID, e.ResourceType)
}

func (e *UnknownResourceTypeError) Unwrap() error { return ErrUnknownResourceType }

// UnsupportedResourceError reports a CloudFormation resource that can not be
// mapped onto an ARN
type UnsupportedResourceError struct {
	ResourceType string
}

func (e *UnsupportedResourceError) Error() string {
	return fmt.Sprintf("unsupported CloudFormation resource type: %s", e.ResourceType)
}

func (e *UnsupportedResourceError) Unwrap() error { return ErrUnsupportedResource }

// UserConfigurationError reports a malformed local AWS configuration
type UserConfigurationError struct {
	Path string
	Err  error
}

func (e *UserConfigurationError) Error() string {
	return fmt.Sprintf("malformed AWS config file %s: %v", e.Path, e.Err)
}

// Is matches ErrUserConfiguration
func (e *UserConfigurationError) Is(target error) bool { return target == ErrUserConfiguration }

func (e *UserConfigurationError) Unwrap() error { return e.Err }
