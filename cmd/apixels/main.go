package main

import "github.com/wbrown/apixels/cmd/apixels/cmd"

func main() {
	cmd.Execute()
}
