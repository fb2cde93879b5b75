package stocks

import "github.com/rs/zerolog"

// logger receives the package diagnostics. It discards everything until SetLogger is called.
var logger = zerolog.Nop()

// SetLogger sets the logger used by the package.
func SetLogger(l zerolog.Logger) { logger = l }
