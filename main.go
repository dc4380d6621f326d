package main

import "github.com/Wwwoper/session-manager/cmd"

func main() {
	cmd.Execute()
}
