package core

// Pin is a digital output line. Targets implement it over machine.Pin,
// periph.io GPIO lines or recording fakes.
type Pin interface {
	// Set drives the line high (true) or low (false)
	Set(high bool) error
}

// PinFunc adapts a plain function to the Pin interface
type PinFunc func(high bool) error

// Set calls f(high)
func (f PinFunc) Set(high bool) error {
	return f(high)
}
