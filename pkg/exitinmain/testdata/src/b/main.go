package main

import stdos "os"

func main() {
	defer func() {
		stdos.Exit(1)
	}()
	stdos.Exit(0) // want "os.Exit call inside main function"
}
