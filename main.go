package main

import "github.com/jsphweid/midiparse/cmd"

func main() {
	cmd.Execute()
}
