// chatwrapped - WhatsApp chat export statistics
//
// chatwrapped reads a WhatsApp chat export and reports who talks the most,
// about what, and when.
package main

import (
	"os"

	"github.com/ccollicutt/chatwrapped/internal/cli"
)

func main() {
	os.Exit(cli.Execute())
}
