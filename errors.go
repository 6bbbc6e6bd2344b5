package hypothesisgraphql

import strategy "github.com/cemkavuklu/hypothesis-graphql/internal/strategy"

// Error kinds returned while generators are constructed. None of them can
// occur during sampling: a given schema either can or cannot produce
// documents, independent of which sample is drawn.
type (
	// ConfigurationError: missing root operation type, empty Fields
	// restriction, or Fields naming unknown root fields.
	ConfigurationError = strategy.ConfigurationError

	// UnsupportedScalarError: a custom scalar where a literal is required.
	UnsupportedScalarError = strategy.UnsupportedScalarError

	// UnsupportedArgumentTypeError: a non-null argument whose leaf type is
	// an unsupported scalar.
	UnsupportedArgumentTypeError = strategy.UnsupportedArgumentTypeError
)
