package config

import (
	"fmt"
	"log"
	"os"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/spf13/viper"
)

// All 全部配置索引
var All *AllConfig

var DefaultPath = "./config"
var DebugPath = "./config/debug"

// InitConfig 初始化读取配置文件，失败直接panic
func InitConfig() {
	all, err := LoadConfig(DefaultPath)
	if err != nil {
		panic(err)
	}
	All = all
	fmt.Printf("config file content:\n%+v\n", *All)
}

// LoadConfig 读取dir下的config.yml，DEBUG=true时用debug.yml做增量覆盖
func LoadConfig(dir string) (*AllConfig, error) {
	v := viper.New()
	v.AddConfigPath(dir)
	v.SetConfigName("config")
	configType := "yml"
	v.SetConfigType(configType)

	if err := v.ReadInConfig(); err != nil {
		return nil, err
	}

	// 全部以默认配置写入
	for k, val := range v.AllSettings() {
		v.SetDefault(k, val)
	}

	if os.Getenv("DEBUG") == "true" {
		newConfigPath := DebugPath + "/debug.yml"
		exists, _ := isExists(newConfigPath)
		if exists {
			v.AddConfigPath(DebugPath)
			v.SetConfigName("debug")
			v.SetConfigType(configType)
			if err := v.MergeInConfig(); err != nil {
				return nil, err
			}
		} else {
			fmt.Printf("%s not exists\n", newConfigPath)
		}
	}

	// 监控配置文件变化
	v.WatchConfig()
	v.OnConfigChange(func(e fsnotify.Event) {
		log.Printf("Config file changed: %s", e.Name)
	})

	all := &AllConfig{}
	if err := v.Unmarshal(all); err != nil {
		return nil, err
	}
	all.fillDefault()
	return all, nil
}

// AllConfig 全部配置文件
type AllConfig struct {
	Server ServerConfig `mapstructure:"server_config"`
	Logger LoggerConfig `mapstructure:"logger_config"`
	Mine   MineConfig   `mapstructure:"mine_config"`
}

// ServerConfig 服务配置
type ServerConfig struct {
	HttpPort  string `mapstructure:"http_port"`
	PprofPort string `mapstructure:"pprof_port"`
	SentryDsn string `mapstructure:"sentry_dsn"`
}

// LoggerConfig 日志配置
type LoggerConfig struct {
	Level        string        `mapstructure:"level"`
	Path         string        `mapstructure:"path"`
	MaxAge       time.Duration `mapstructure:"max_age"`
	RotationTime time.Duration `mapstructure:"rotation_time"`
	RotationSize uint32        `mapstructure:"rotation_size"`
}

// MineConfig 规则挖掘的默认参数，请求中未指定时使用。
// 阈值为nil表示配置文件没有给出，0是合法的阈值
type MineConfig struct {
	MinSupport        *float64 `mapstructure:"min_support"`
	MinConfidence     *float64 `mapstructure:"min_confidence"`
	WorkerNum         int     `mapstructure:"worker_num"`
	SuppressNegations bool    `mapstructure:"suppress_negations"`
	AllowPartial      bool    `mapstructure:"allow_partial"`
	ResultDir         string  `mapstructure:"result_dir"`
	GraphDir          string  `mapstructure:"graph_dir"`
}

func (c *AllConfig) fillDefault() {
	if c.Server.HttpPort == "" {
		c.Server.HttpPort = "19123"
	}
	if c.Logger.Path == "" {
		c.Logger.Path = "./logs"
	}
	if c.Logger.MaxAge == 0 {
		c.Logger.MaxAge = 7
	}
	if c.Logger.RotationTime == 0 {
		c.Logger.RotationTime = 24
	}
	if c.Mine.WorkerNum <= 0 {
		c.Mine.WorkerNum = 1
	}
	if c.Mine.ResultDir == "" {
		c.Mine.ResultDir = "result"
	}
}

// 判断所给文件/文件夹是否存在
func isExists(path string) (bool, error) {
	_, err := os.Stat(path)
	if err == nil {
		return true, nil
	}
	if os.IsNotExist(err) {
		return false, nil
	}
	return false, err
}
