// Command lsbits packs, unpacks and dumps LSB-first bit streams.
package main

import (
	"fmt"
	"os"
)

func main() {
	if err := newApp(os.Stdin, os.Stdout, os.Stderr).rootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "lsbits:", err)
		os.Exit(1)
	}
}
