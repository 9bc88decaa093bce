// SPDX-FileCopyrightText: 2022 Jice
// SPDX-License-Identifier: MIT

package worldgen

import (
	"errors"
	"fmt"
)

// ConfigError reports an invalid parameter combination. It aborts only the
// requested operation; cached pipeline state is left untouched.
type ConfigError struct {
	Op     string
	Reason string
}

func (e *ConfigError) Error() string {
	return "worldgen: " + e.Op + ": " + e.Reason
}

func configErrorf(op, format string, args ...interface{}) *ConfigError {
	return &ConfigError{Op: op, Reason: fmt.Sprintf(format, args...)}
}

// ErrAborted is returned when a recompute is cancelled cooperatively.
// Only the in-progress, uncached step is discarded.
var ErrAborted = errors.New("worldgen: recompute aborted")
