package chain

import "errors"

var ErrNoEndpoint = errors.New("node endpoint is not configured")
