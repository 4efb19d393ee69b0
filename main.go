// SPDX-License-Identifier: MPL-2.0

package main

import cmd "github.com/tidyup/tidyup/cmd/tidyup"

func main() {
	cmd.Execute()
}
