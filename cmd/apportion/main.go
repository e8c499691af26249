package main

import (
	"github.com/katalvlaran/apportion/cli"
)

func main() {
	cli.Run("apportion", "Divide a fixed number of seats among entities in proportion to their weights")
}
