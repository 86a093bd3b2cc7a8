package main

import (
	"mp4tomp3/cmd"
	"mp4tomp3/infrastructure/console"
)

func main() {
	console.SetupUTF8()
	cmd.Execute()
}
