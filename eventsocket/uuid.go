package eventsocket

import (
	"fmt"

	"github.com/google/uuid"
)

// UniqueID parses the CHANNEL_DATA Unique-ID header as a typed UUID
// rather than a bare string. The switch always emits a UUID-shaped value
// here, so a parse failure is itself a protocol violation worth
// surfacing typed (DESIGN.md).
func (cc *CallContext) UniqueID() (uuid.UUID, error) {
	v, ok := cc.Header("Unique-ID")
	if !ok {
		return uuid.Nil, fmt.Errorf("%w: CHANNEL_DATA missing Unique-ID", ErrProtocol)
	}
	id, err := uuid.Parse(v)
	if err != nil {
		return uuid.Nil, fmt.Errorf("%w: Unique-ID %q is not a UUID: %v", ErrProtocol, v, err)
	}
	return id, nil
}
