package main

import "auction-courier/cmd"

func main() {
	cmd.Execute()
}
