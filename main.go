package main

import "github.com/KaramelBytes/dalign/cmd"

func main() {
	cmd.Execute()
}
