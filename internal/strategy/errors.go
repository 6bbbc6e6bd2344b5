package strategy

import "fmt"

// ConfigurationError reports an invalid generation setup: a missing root
// operation type or a bad field restriction. It is returned before any
// generator is built.
type ConfigurationError struct {
	Message string
}

func (e *ConfigurationError) Error() string { return e.Message }

// UnsupportedScalarError reports a custom scalar type in a position that
// requires literal synthesis. It surfaces while generators are built, never
// while they are sampled.
type UnsupportedScalarError struct {
	Name string
}

func (e *UnsupportedScalarError) Error() string {
	return fmt.Sprintf("custom scalar type %s is not supported", e.Name)
}

// UnsupportedArgumentTypeError reports a non-null argument whose leaf type is
// an unsupported scalar. No document containing the field can be built.
type UnsupportedArgumentTypeError struct {
	Field    string
	Argument string
	Scalar   string
}

func (e *UnsupportedArgumentTypeError) Error() string {
	return fmt.Sprintf(
		"non-null custom scalar types are not supported as arguments: %s of argument %q on %s",
		e.Scalar, e.Argument, e.Field,
	)
}
