package main

import "plotsort/cmd/plotsort-cli/cmd"

func main() {
	cmd.Execute()
}
