package conversation

import "errors"

var errNoChatter = errors.New("no chat client configured")
