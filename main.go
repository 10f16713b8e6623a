// SPDX-License-Identifier: MPL-2.0

package main

import cmd "github.com/shargs/shargs/cmd/shargs"

func main() {
	cmd.Execute()
}
