// Package main implements the activitylog CLI, which runs the log
// classification pipeline over lines read from stdin or files. It is used
// to check how backend log wording will be classified before shipping it.
package main

import (
	"fmt"
	"os"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
