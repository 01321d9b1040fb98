package notifier

import "errors"

var (
	ErrConnect = errors.New("notifier: failed to connect to broker")
	ErrMarshal = errors.New("notifier: failed to marshal event")
	ErrPublish = errors.New("notifier: failed to publish event")
)
