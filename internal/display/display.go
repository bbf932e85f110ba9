// Package display contains terminal formatting logic for CLI commands.
//
// Commands keep orchestration and rendering separate by delegating all
// human-readable output to formatters in this package.
package display

import "io"

// Formatter writes formatted output to a writer.
type Formatter interface {
	Format(w io.Writer) error
}
