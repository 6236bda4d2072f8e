package main

import "github.com/krehermann/bytevm/cmd"

func main() {
	cmd.Execute()
}
