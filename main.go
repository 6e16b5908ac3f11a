package main

import "ordersight/cmd"

func main() {
	cmd.Execute()
}
