package analyses

const (
	ErrorCodeValidation = "validation_error"
	ErrorCodeInternal   = "internal_error"
)

// failure kinds recorded in metrics.
const (
	failureInvalidInput = "invalid_input"
	failureInternal     = "internal"
	failureCanceled     = "canceled"
)
