package mma8451

import "fmt"

// DeviceNotFoundError is returned by NewI2C when the identity register does
// not contain the MMA8451 device ID. The handle is unusable; there is no
// point retrying.
type DeviceNotFoundError struct {
	Found byte
}

func (e *DeviceNotFoundError) Error() string {
	return fmt.Sprintf("mma8451: device not found, identity register returned 0x%02x, want 0x%02x", e.Found, DeviceID)
}

// InvalidConfigurationError is returned by a configuration setter when the
// requested value is outside the legal set for the property. No bus traffic
// happens in that case.
type InvalidConfigurationError struct {
	Property string
	Value    byte
}

func (e *InvalidConfigurationError) Error() string {
	return fmt.Sprintf("mma8451: 0x%02x is not a valid %s setting", e.Value, e.Property)
}
