// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

// Command bufq creates and operates file-backed DataRing regions.
//
// Usage:
//
//	bufq [flags] <command> [args]
//
// Commands:
//
//	create   - Create a file-backed ring
//	inspect  - Print the header state of a ring
//	push     - Enqueue bytes from a file or stdin
//	drain    - Dequeue everything to stdout
//	version  - Show version information
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"code.hybscloud.com/bufq/cmd/bufq/commands"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := commands.Execute(ctx); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		stop()
		os.Exit(1)
	}
}
