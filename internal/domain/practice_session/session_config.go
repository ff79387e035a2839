package practicesession

import "fmt"

// DefaultSize is the number of questions in a reference session.
const DefaultSize = 10

// SessionConfig holds the constraints for building a session queue.
type SessionConfig struct {
	Size int // questions per session, must not exceed the bank size
}

// DefaultConfig returns the reference configuration of ten questions.
func DefaultConfig() SessionConfig {
	return SessionConfig{
		Size: DefaultSize,
	}
}

// Validate checks the config against a bank of bankSize questions. A session
// larger than the bank can never be filled with distinct ids.
func (c SessionConfig) Validate(bankSize int) error {
	if bankSize < 1 {
		return fmt.Errorf("%w: bank size %d is below 1", ErrInvalidConfig, bankSize)
	}
	if c.Size < 1 {
		return fmt.Errorf("%w: session size %d is below 1", ErrInvalidConfig, c.Size)
	}
	if c.Size > bankSize {
		return fmt.Errorf("%w: session size %d exceeds bank size %d", ErrInvalidConfig, c.Size, bankSize)
	}
	return nil
}
