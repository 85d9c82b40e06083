package radioitems

import "errors"

var (
	// ErrUnknownGroup is returned when a selection names a group key that is
	// not part of the options.
	ErrUnknownGroup = errors.New("radioitems: unknown option group")

	// ErrUnknownOption is returned when a selection index is outside the
	// group's sub-options.
	ErrUnknownOption = errors.New("radioitems: unknown sub-option")

	// ErrDisabled is returned when a selection targets a disabled sub-option.
	// No state change and no notification happen in that case.
	ErrDisabled = errors.New("radioitems: sub-option is disabled")

	// ErrMalformedOptions wraps decoding failures of an options document.
	ErrMalformedOptions = errors.New("radioitems: malformed options")
)
