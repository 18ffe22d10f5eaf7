package main

import (
	"eplflash/cmd"
)

func main() {
	cmd.Execute()
}
