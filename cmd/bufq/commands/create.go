// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"code.hybscloud.com/bufq"
)

var (
	createKind   string
	createLength int
)

var createCmd = &cobra.Command{
	Use:   "create <path>",
	Short: "Create a file-backed ring",
	Long: `Create a new file holding an empty data ring.

The file must not exist. Its size is the 12-byte header plus
length elements of kind.

Kinds: int8 uint8 uint8clamped int16 uint16 int32 uint32
       float32 float64 int64 uint64

Examples:
  bufq create /dev/shm/q --length 4096
  bufq create /dev/shm/samples --kind float32 --length 1024`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		path := args[0]
		k, err := bufq.ParseKind(createKind)
		if err != nil {
			return err
		}
		if createLength < 1 {
			return fmt.Errorf("%w: --length %d", bufq.ErrInvalidArgument, createLength)
		}

		b := bufq.New(createLength).Kind(k).File(path)
		logger.Debug("creating ring", "builder", b)
		q, err := b.BuildData()
		if err != nil {
			return err
		}
		defer q.Close()

		logger.Info("created ring", "path", path, "kind", q.Kind(), "capacity", q.Cap(), "bytes", len(q.Region()))
		return nil
	},
}

func init() {
	createCmd.Flags().StringVarP(&createKind, "kind", "k", "uint8", "element kind")
	createCmd.Flags().IntVarP(&createLength, "length", "n", 0, "capacity in elements")
	createCmd.MarkFlagRequired("length")
	rootCmd.AddCommand(createCmd)
}
