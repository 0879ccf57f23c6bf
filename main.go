// sqlmux - a terminal front-end for sqlmap.
// Compose scan options, watch output live and manage reusable presets.
package main

import "github.com/secmux/sqlmux/internal/cli"

func main() {
	cli.Execute()
}
