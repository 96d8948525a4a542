// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package commands

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"code.hybscloud.com/bufq"
)

var pushCmd = &cobra.Command{
	Use:   "push <path> [file]",
	Short: "Enqueue bytes from a file or stdin",
	Long: `Enqueue the contents of file, or stdin, as raw elements.

The input must be a whole number of elements and must fit in the
unused capacity; nothing is enqueued otherwise.

Examples:
  bufq push /dev/shm/q message.bin
  printf 'hello' | bufq push /dev/shm/q`,
	Args: cobra.RangeArgs(1, 2),
	RunE: func(cmd *cobra.Command, args []string) error {
		var src io.Reader = cmd.InOrStdin()
		if len(args) == 2 {
			f, err := os.Open(args[1])
			if err != nil {
				return err
			}
			defer f.Close()
			src = f
		}
		data, err := io.ReadAll(src)
		if err != nil {
			return err
		}

		q, err := bufq.OpenDataRing(args[0])
		if err != nil {
			return err
		}
		defer q.Close()

		n, err := push(q, data)
		if err != nil {
			return err
		}
		logger.Debug("pushed", "path", args[0], "elements", n, "used", q.Used(), "unused", q.Unused())
		return nil
	},
}

// push enqueues data as whole elements in one reservation.
func push(q *bufq.DataRing, data []byte) (int, error) {
	size := q.Kind().Size()
	if len(data)%size != 0 {
		return 0, fmt.Errorf("%w: %d bytes is not a whole number of %v elements", bufq.ErrInvalidArgument, len(data), q.Kind())
	}
	n := len(data) / size
	if n == 0 {
		return 0, nil
	}
	r, err := q.Reserve(n)
	if err != nil {
		return 0, fmt.Errorf("push %d elements: %w", n, err)
	}
	copy(r.Bytes(), data)
	if err := q.Enqueue(r); err != nil {
		return 0, err
	}
	return n, nil
}

func init() {
	rootCmd.AddCommand(pushCmd)
}
