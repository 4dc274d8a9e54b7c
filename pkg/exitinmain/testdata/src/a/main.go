package main

import (
	"fmt"
	"os"
)

func main() {
	fmt.Println("starting")
	if len(os.Args) > 3 {
		os.Exit(2) // want "os.Exit call inside main function"
	}
	exit()
	os.Exit(0) // want "os.Exit call inside main function"
}

func exit() {
	os.Exit(1)
}
