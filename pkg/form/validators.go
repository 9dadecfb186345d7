package form

// Signals reported by the built-in validators.
const (
	SignalRequired       = "required"
	SignalMinLength      = "minLength"
	SignalMaxLength      = "maxLength"
	SignalSelectRequired = "selectRequired"
)

// Failure describes one violated validator. Length signals carry the bound
// and the measured length.
type Failure struct {
	Signal         string `json:"signal"`
	Message        string `json:"message,omitempty"`
	RequiredLength int    `json:"requiredLength,omitempty"`
	ActualLength   int    `json:"actualLength,omitempty"`
}

// Validator inspects a control and returns nil when it is satisfied.
type Validator func(*Control) *Failure

// Required fails when a scalar is null or empty, or an array has no entries.
func Required(message string) Validator {
	return func(c *Control) *Failure {
		if c.isEmpty() {
			return &Failure{Signal: SignalRequired, Message: message}
		}
		return nil
	}
}

// SelectRequired fails while the control still holds a null entry.
func SelectRequired(message string) Validator {
	return func(c *Control) *Failure {
		if c.hasNull() {
			return &Failure{Signal: SignalSelectRequired, Message: message}
		}
		return nil
	}
}

// MinLength fails when a non-empty value is shorter than bound. Empty values
// pass; pair with Required to reject them.
func MinLength(bound int, message string) Validator {
	return func(c *Control) *Failure {
		if c.isEmpty() {
			return nil
		}
		if actual := c.length(); actual < bound {
			return &Failure{Signal: SignalMinLength, Message: message, RequiredLength: bound, ActualLength: actual}
		}
		return nil
	}
}

// MaxLength fails when a value is longer than bound.
func MaxLength(bound int, message string) Validator {
	return func(c *Control) *Failure {
		if actual := c.length(); actual > bound {
			return &Failure{Signal: SignalMaxLength, Message: message, RequiredLength: bound, ActualLength: actual}
		}
		return nil
	}
}
