// Command alphaloop turns multi-background frame captures into transparent,
// looping PNG sequences.
//
// Usage:
//
//	alphaloop run --input captures/ --output out/ --loop custom --transition 10
//	alphaloop plan --fps 30 --duration 2 --loop standard
package main

import "os"

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}
