package main

import "github.com/hpperiph/hpmctl/cmd"

func main() {
	cmd.Execute()
}
