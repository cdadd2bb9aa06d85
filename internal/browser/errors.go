package browser

import "github.com/pkg/errors"

var ErrHeadless = errors.New("browser launching is disabled")
