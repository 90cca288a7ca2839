package main

import "github.com/iksnae/notelooms/cmd"

func main() {
	cmd.Execute()
}
