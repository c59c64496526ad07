package widgets

import "errors"

var errNodeBound = errors.New("node already has a nested scroll widget")
