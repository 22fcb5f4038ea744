package main

import "os"

func main() {
	err := RunApp(os.Args[1:], os.Stdin, os.Stdout)
	os.Exit(HandleExitError(os.Stderr, err))
}
