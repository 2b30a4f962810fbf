package config

import (
	"strings"

	"github.com/blues/crowdmint/internal/logger"
	"github.com/spf13/viper"
)

type Config struct {
	Server   ServerConfig   `mapstructure:"server"`
	Chain    ChainConfig    `mapstructure:"chain"`
	Database DatabaseConfig `mapstructure:"database"`
	Index    IndexConfig    `mapstructure:"index"`
	Pool     PoolConfig     `mapstructure:"pool"`
	Log      LogConfig      `mapstructure:"log"`
}

type ServerConfig struct {
	Port string `mapstructure:"port"`
	Mode string `mapstructure:"mode"`
}

// ChainConfig 链与合约配置
type ChainConfig struct {
	RpcUrl              string `mapstructure:"rpc_url"`              // RPC节点URL
	ChainId             int64  `mapstructure:"chain_id"`             // 链ID
	PrivateKey          string `mapstructure:"private_key"`          // 签名私钥，为空时只读
	CrowdfundingAddress string `mapstructure:"crowdfunding_address"` // 众筹工厂合约地址
	CrowdfundingABIPath string `mapstructure:"crowdfunding_abi_path"`
	ProjectABIPath      string `mapstructure:"project_abi_path"`
	TxTimeout           int    `mapstructure:"tx_timeout"` // 等待交易上链的秒数
}

// DatabaseConfig 贡献索引存储
type DatabaseConfig struct {
	Driver   string `mapstructure:"driver"` // postgres 或 sqlite
	Host     string `mapstructure:"host"`
	Port     int    `mapstructure:"port"`
	User     string `mapstructure:"user"`
	Password string `mapstructure:"password"`
	DBName   string `mapstructure:"dbname"`
	SSLMode  string `mapstructure:"sslmode"`
	Path     string `mapstructure:"path"` // sqlite 文件路径
}

// IndexConfig 贡献事件索引任务
type IndexConfig struct {
	Enabled    bool  `mapstructure:"enabled"`
	Interval   int   `mapstructure:"interval"`    // 秒
	BatchSize  int64 `mapstructure:"batch_size"`  // 每次扫描的区块数
	StartBlock int64 `mapstructure:"start_block"` // 工厂合约部署区块
}

// PoolConfig 协程池
type PoolConfig struct {
	Size int `mapstructure:"size"`
}

type LogConfig struct {
	Level  string `mapstructure:"level"`  // debug, info, warn, error, fatal
	Output string `mapstructure:"output"` // stdout, stderr, file
	File   string `mapstructure:"file"`
}

// GetLevel 实现 logger.LogConfig 接口
func (l LogConfig) GetLevel() string {
	return l.Level
}

// GetOutput 实现 logger.LogConfig 接口
func (l LogConfig) GetOutput() string {
	return l.Output
}

// GetFile 实现 logger.LogConfig 接口
func (l LogConfig) GetFile() string {
	return l.File
}

// SetDefaults 设置默认值
func SetDefaults(v *viper.Viper) {
	v.SetDefault("server.port", "8080")
	v.SetDefault("server.mode", "debug")
	v.SetDefault("chain.rpc_url", "http://127.0.0.1:8545")
	v.SetDefault("chain.chain_id", 31337)
	v.SetDefault("chain.tx_timeout", 120)
	v.SetDefault("database.driver", "sqlite")
	v.SetDefault("database.host", "localhost")
	v.SetDefault("database.port", 5432)
	v.SetDefault("database.user", "postgres")
	v.SetDefault("database.dbname", "crowdmint")
	v.SetDefault("database.sslmode", "disable")
	v.SetDefault("database.path", "crowdmint.db")
	v.SetDefault("index.enabled", false)
	v.SetDefault("index.interval", 60)
	v.SetDefault("index.batch_size", 2000)
	v.SetDefault("index.start_block", 0)
	v.SetDefault("pool.size", 16)
	v.SetDefault("log.level", "info")
	v.SetDefault("log.output", "stdout")
	v.SetDefault("log.file", "logs/app.log")
}

// LoadFrom 从指定 viper 实例读取配置
func LoadFrom(v *viper.Viper) (*Config, error) {
	SetDefaults(v)

	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, err
		}
		logger.Warn("Config file not found, using defaults and environment: %v", err)
	}

	var config Config
	if err := v.Unmarshal(&config); err != nil {
		return nil, err
	}
	return &config, nil
}

// Load 读取 config.yaml 与环境变量
func Load() *Config {
	v := viper.New()
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")
	v.AddConfigPath("./config")
	v.AddConfigPath("/etc/crowdmint")

	config, err := LoadFrom(v)
	if err != nil {
		logger.Fatal("Unable to load config: %v", err)
	}
	return config
}
