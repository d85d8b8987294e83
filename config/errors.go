// SPDX-License-Identifier: MIT

package config

import "errors"

// ErrInvalid reports a configuration value outside its allowed range.
var ErrInvalid = errors.New("config: invalid value")
