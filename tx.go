package crowd

import (
	"reflect"

	"github.com/crowdchain/crowd/errors"
)

// Msg is message for the blockchain to take an action
// (Make a state transition). It is just the request, and
// must be validated by the Handlers. All authentication
// information is in the wrapping Tx.
type Msg interface {
	Persistent

	// Path returns the routing path for this message
	Path() string

	// Validate performs sanity checks on the message content. It returns
	// an error if the message state is not as expected.
	Validate() error
}

// Persistent supports Marshal and Unmarshal
//
// This is separated from Marshal, as this almost always requires
// a pointer, and functions that only need to marshal bytes can
// use the Marshaller interface to access non-pointers.
//
// See https://godoc.org/github.com/golang/protobuf/proto#Message for
// a more complete explanation.
type Persistent interface {
	Marshaller
	Unmarshal([]byte) error
}

// Marshaller is anything that can be represented as bytes.
type Marshaller interface {
	Marshal() ([]byte, error)
}

// Tx represents the requests we handle in your application.
// Anything we store on the blockchain must be serialized and
// verifiable via a Tx.
type Tx interface {
	Persistent

	// GetMsg returns the action we wish to communicate
	GetMsg() (Msg, error)
}

// TxDecoder can parse bytes into a Tx
type TxDecoder func(txBytes []byte) (Tx, error)

// GetPath returns the path of the message, or (missing) if no message
func GetPath(tx Tx) string {
	msg, err := tx.GetMsg()
	if err == nil && msg != nil {
		return msg.Path()
	}
	return "(missing)"
}

// LoadMsg extracts the message from the transaction and uses reflection to
// write it to the given destination. Destination must be a non nil pointer to
// a message instance. The message is validated before being written.
func LoadMsg(tx Tx, destination Msg) error {
	msg, err := tx.GetMsg()
	if err != nil {
		return errors.Wrap(err, "cannot get message")
	}
	if err := msg.Validate(); err != nil {
		return errors.Wrap(err, "invalid message")
	}

	dstVal := reflect.ValueOf(destination)
	if dstVal.Kind() != reflect.Ptr || dstVal.IsNil() {
		return errors.Wrap(errors.ErrType, "destination must be a non nil pointer")
	}

	srcVal := reflect.ValueOf(msg)
	if srcVal.Kind() == reflect.Ptr {
		srcVal = srcVal.Elem()
	}
	if dstVal.Elem().Type() != srcVal.Type() {
		return errors.Wrapf(errors.ErrType, "want %T, got %T", destination, msg)
	}
	dstVal.Elem().Set(srcVal)
	return nil
}
