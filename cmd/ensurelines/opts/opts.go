package opts

import (
	"io"

	"github.com/walteh/ensurelines/pkg/log"
)

// RootOpts contains shared options used by all commands
type RootOpts struct {
	// Console receives user facing output
	Console io.Writer
	// UserLogger prints per-file results to Console
	UserLogger *log.Logger
	// Debug enables debug logging
	Debug bool
}
