// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package commands

import (
	"context"
	"io"

	"code.hybscloud.com/iox"
	"code.hybscloud.com/spin"
	"github.com/spf13/cobra"

	"code.hybscloud.com/bufq"
)

// spinRounds is how many empty polls spin before falling back to backoff.
const spinRounds = 64

// drainChunk bounds one Dequeue, in bytes.
const drainChunk = 64 << 10

var drainFollow bool

var drainCmd = &cobra.Command{
	Use:   "drain <path>",
	Short: "Dequeue everything to stdout",
	Long: `Dequeue every committed element and write the raw bytes to stdout.

With --follow, keep polling for new elements until interrupted.

Examples:
  bufq drain /dev/shm/q > out.bin
  bufq drain /dev/shm/q --follow | hexdump -C`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		q, err := bufq.OpenDataRing(args[0])
		if err != nil {
			return err
		}
		defer q.Close()

		if drainFollow {
			logger.Debug("following", "path", args[0], "kind", q.Kind())
		}
		return drain(cmd.Context(), q, cmd.OutOrStdout(), drainFollow)
	},
}

// drain copies committed elements from q to w. Without follow it returns
// once q is empty; with follow it returns when ctx is done.
func drain(ctx context.Context, q *bufq.DataRing, w io.Writer, follow bool) error {
	size := q.Kind().Size()
	buf := make([]byte, max(drainChunk/size, 1)*size)
	sw := spin.Wait{}
	backoff := iox.Backoff{}
	idle := 0

	for {
		if used := q.Used(); used > 0 {
			chunk := buf[:min(used*size, len(buf))]
			if err := q.Dequeue(chunk); err != nil {
				return err
			}
			if _, err := w.Write(chunk); err != nil {
				return err
			}
			sw.Reset()
			backoff.Reset()
			idle = 0
			continue
		}
		if !follow {
			return nil
		}
		if ctx.Err() != nil {
			return nil
		}
		if idle < spinRounds {
			sw.Once()
		} else {
			backoff.Wait()
		}
		idle++
	}
}

func init() {
	drainCmd.Flags().BoolVarP(&drainFollow, "follow", "f", false, "keep polling until interrupted")
	rootCmd.AddCommand(drainCmd)
}
