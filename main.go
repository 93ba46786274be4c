// SPDX-License-Identifier: MPL-2.0

// Command amb is the Ambar package manager.
package main

import cmd "github.com/ambar-lang/amb/cmd/amb"

func main() {
	cmd.Execute()
}
