package main

import (
	"skctl/cmd"
)

var (
	version = "dev"
	date    = "unknown"
)

func main() {
	cmd.SetVersionInfo(cmd.RootCmd, version, date)
	cmd.Execute()
}
