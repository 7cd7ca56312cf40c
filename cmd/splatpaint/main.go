// Command splatpaint replays scripted paint strokes into a splat store.
//
// Usage:
//
//	splatpaint config init splat.yaml
//	splatpaint run --config splat.yaml --script strokes.yaml --png out.png
package main

import (
	"fmt"
	"os"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "splatpaint:", err)
		os.Exit(1)
	}
}
