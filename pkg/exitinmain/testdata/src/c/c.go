package c

import "os"

func main() {
	os.Exit(0)
}

func Main() {
	main()
}
