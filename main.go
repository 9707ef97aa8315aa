package main

import "github.com/mabhi256/dexlens/cmd"

func main() {
	cmd.Execute()
}
