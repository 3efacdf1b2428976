package main

import (
	"github.com/nvallejo/postreria/cmd"
)

func main() {
	cmd.Start()
}
