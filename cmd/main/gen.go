package main

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/spf13/cobra"
	"github.com/xuhaidong1/idgen/cmd/ioc"
	"github.com/xuhaidong1/idgen/pkg/snowflake"
)

const formatJSON = "json"

type idLine struct {
	ID    snowflake.ID    `json:"id"`
	Parts snowflake.Parts `json:"parts"`
	Time  time.Time       `json:"time"`
}

func newGenCmd(opts *rootOptions) *cobra.Command {
	var (
		n      int
		format string
	)
	cmd := &cobra.Command{
		Use:   "gen",
		Short: "生成并打印 id",
		RunE: func(cmd *cobra.Command, args []string) error {
			if n <= 0 {
				return fmt.Errorf("invalid -n %d; must be positive", n)
			}
			cfg, err := opts.loadConfig(cmd)
			if err != nil {
				return err
			}
			logger := ioc.InitLogger(cfg.Log)
			g, err := ioc.NewGenerator(cfg.Generator, logger, nil)
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			enc := json.NewEncoder(out)
			for i := 0; i < n; i++ {
				id, err := g.Generate()
				if err != nil {
					return err
				}
				if format == formatJSON {
					if err = enc.Encode(idLine{ID: id, Parts: id.Parts(), Time: id.Time().UTC()}); err != nil {
						return err
					}
					continue
				}
				s, err := id.Encode(snowflake.Format(format))
				if err != nil {
					return err
				}
				fmt.Fprintln(out, s)
			}
			return nil
		},
	}
	cmd.Flags().IntVarP(&n, "count", "n", 1, "生成个数")
	cmd.Flags().StringVar(&format, "format", string(snowflake.FormatDecimal),
		"输出格式 dec|base2|base32|base36|base58|base64|json")
	return cmd
}
