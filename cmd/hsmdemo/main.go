// Command hsmdemo runs the example state machines of the hsm module.
package main

import "os"

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}
