// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package commands

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/goccy/go-yaml"
	"github.com/spf13/cobra"

	"code.hybscloud.com/bufq"
)

var formatOutput string

// ringInfo is the inspect report.
type ringInfo struct {
	Path        string `json:"path" yaml:"path"`
	Kind        string `json:"kind" yaml:"kind"`
	ElementSize int    `json:"element_size" yaml:"element_size"`
	Capacity    int    `json:"capacity" yaml:"capacity"`
	Head        int    `json:"head" yaml:"head"`
	Tail        int    `json:"tail" yaml:"tail"`
	Used        int    `json:"used" yaml:"used"`
	Unused      int    `json:"unused" yaml:"unused"`
}

func describe(path string, q *bufq.DataRing) ringInfo {
	return ringInfo{
		Path:        path,
		Kind:        q.Kind().String(),
		ElementSize: q.Kind().Size(),
		Capacity:    q.Cap(),
		Head:        q.Head(),
		Tail:        q.Tail(),
		Used:        q.Used(),
		Unused:      q.Unused(),
	}
}

var inspectCmd = &cobra.Command{
	Use:   "inspect <path>",
	Short: "Print the header state of a ring",
	Long: `Validate a ring file and print its header.

Examples:
  bufq inspect /dev/shm/q
  bufq inspect /dev/shm/q --format json`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		q, err := bufq.OpenDataRing(args[0])
		if err != nil {
			return err
		}
		defer q.Close()

		return printInfo(cmd.OutOrStdout(), describe(args[0], q))
	},
}

func printInfo(w io.Writer, info ringInfo) error {
	switch formatOutput {
	case "json":
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(info)
	case "yaml", "":
		data, err := yaml.Marshal(info)
		if err != nil {
			return err
		}
		_, err = w.Write(data)
		return err
	default:
		return fmt.Errorf("unknown format %q (want yaml or json)", formatOutput)
	}
}

func init() {
	inspectCmd.Flags().StringVarP(&formatOutput, "format", "o", "yaml", "output format: yaml or json")
	rootCmd.AddCommand(inspectCmd)
}
