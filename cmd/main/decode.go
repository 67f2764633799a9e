package main

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"
	"github.com/xuhaidong1/idgen/pkg/snowflake"
)

func newDecodeCmd() *cobra.Command {
	var (
		format string
		asJSON bool
	)
	cmd := &cobra.Command{
		Use:   "decode <id>",
		Short: "拆解 id 为时间戳、数据中心、节点和序列号",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := snowflake.Parse(args[0], snowflake.Format(format))
			if err != nil {
				return err
			}
			p, err := snowflake.Decompose(id)
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			if asJSON {
				return json.NewEncoder(out).Encode(idLine{ID: id, Parts: p, Time: p.Time().UTC()})
			}
			fmt.Fprintf(out, "id          %d\n", id.Int64())
			fmt.Fprintf(out, "time        %s\n", p.Time().UTC().Format("2006-01-02T15:04:05.000Z07:00"))
			fmt.Fprintf(out, "timestamp   %d\n", p.Timestamp)
			fmt.Fprintf(out, "datacenter  %d\n", p.DatacenterID)
			fmt.Fprintf(out, "node        %d\n", p.NodeID)
			fmt.Fprintf(out, "sequence    %d\n", p.Sequence)
			return nil
		},
	}
	cmd.Flags().StringVar(&format, "format", string(snowflake.FormatDecimal),
		"输入格式 dec|base2|base32|base36|base58|base64")
	cmd.Flags().BoolVar(&asJSON, "json", false, "以 json 输出")
	return cmd
}
