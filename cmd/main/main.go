package main

import (
	"os"

	"github.com/spf13/cobra"
	"github.com/xuhaidong1/idgen/config"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

type rootOptions struct {
	configPath   string
	nodeID       int64
	datacenterID int64
	logLevel     string
}

func newRootCmd() *cobra.Command {
	opts := &rootOptions{}
	root := &cobra.Command{
		Use:          "idgen",
		Short:        "Snowflake id generator",
		Long:         "idgen 生成 64 位 snowflake id：41 位毫秒时间戳 | 5 位数据中心 | 5 位节点 | 12 位序列号。",
		SilenceUsage: true,
	}
	pf := root.PersistentFlags()
	pf.StringVar(&opts.configPath, "config", "", "yaml/json 配置文件，缺省使用内置配置")
	pf.Int64Var(&opts.nodeID, "node", 0, "节点号 [0, 31]，覆盖配置")
	pf.Int64Var(&opts.datacenterID, "datacenter", 0, "数据中心号 [0, 31]，覆盖配置")
	pf.StringVar(&opts.logLevel, "log-level", "", "日志级别 debug|info|warn|error，覆盖配置")

	root.AddCommand(
		newGenCmd(opts),
		newDecodeCmd(),
		newBenchCmd(opts),
		newWatchCmd(opts),
	)
	return root
}

// loadConfig 优先级：命令行 > IDGEN_* 环境变量 > 配置文件 > 内置配置
func (o *rootOptions) loadConfig(cmd *cobra.Command) (config.Config, error) {
	cfg, err := config.Load(o.configPath)
	if err != nil {
		return config.Config{}, err
	}
	if err = config.FromEnv(&cfg); err != nil {
		return config.Config{}, err
	}
	flags := cmd.Flags()
	if flags.Changed("node") {
		cfg.Generator.NodeID = o.nodeID
	}
	if flags.Changed("datacenter") {
		cfg.Generator.DatacenterID = o.datacenterID
	}
	if flags.Changed("log-level") {
		cfg.Log.Level = o.logLevel
	}
	if err = cfg.Validate(); err != nil {
		return config.Config{}, err
	}
	return cfg, nil
}
