package config

import (
	"flag"
	"log"
	"strings"

	"github.com/spf13/viper"
)

type ServerCfg struct {
	Port string `mapstructure:"port"`
	Mode string `mapstructure:"mode"`
}
type MysqlCfg struct {
	Host         string `mapstructure:"host"`
	Port         int    `mapstructure:"port"`
	Database     string `mapstructure:"database"`
	Username     string `mapstructure:"username"`
	Password     string `mapstructure:"password"`
	Charset      string `mapstructure:"charset"`
	MaxIdleConns int    `mapstructure:"maxIdleConns"`
	MaxOpenConns int    `mapstructure:"maxOpenConns"`
}
type RabbitCfg struct {
	URL string `mapstructure:"url"`
}
type RedisCfg struct {
	Addr     string `mapstructure:"addr"`
	Password string `mapstructure:"password"`
	DB       int    `mapstructure:"db"`
}
type SecurityCfg struct {
	HMACSecret string `mapstructure:"hmacSecret"`
}

// SettlementCfg drives the balance projection: funds from a completed
// order payment stay in processing for holdDays before becoming available.
type SettlementCfg struct {
	HoldDays            int `mapstructure:"holdDays"`
	RevenueWindowDays   int `mapstructure:"revenueWindowDays"`
	ScheduleCacheTTLSec int `mapstructure:"scheduleCacheTtlSec"`
}

type SnowflakeCfg struct {
	NodeID int64 `mapstructure:"nodeId"`
}

type Root struct {
	Server     ServerCfg     `mapstructure:"server"`
	Mysql      MysqlCfg      `mapstructure:"mysql"`
	RabbitMQ   RabbitCfg     `mapstructure:"rabbitmq"`
	Redis      RedisCfg      `mapstructure:"redis"`
	Security   SecurityCfg   `mapstructure:"security"`
	Settlement SettlementCfg `mapstructure:"settlement"`
	Snowflake  SnowflakeCfg  `mapstructure:"snowflake"`
}

var C Root

func Init() {
	env := flag.String("env", "dev", "config env: dev|prod")
	flag.Parse()

	v := viper.New()
	v.SetConfigFile("config/config." + *env + ".yaml")
	if err := v.ReadInConfig(); err != nil {
		log.Fatalf("read config file failed: %v", err)
	}
	if err := v.Unmarshal(&C); err != nil {
		log.Fatalf("unmarshal config failed: %v", err)
	}

	// sane defaults
	if strings.TrimSpace(C.Server.Port) == "" {
		C.Server.Port = "8080"
	}
	if C.Settlement.HoldDays <= 0 {
		C.Settlement.HoldDays = 7
	}
	if C.Settlement.RevenueWindowDays <= 0 {
		C.Settlement.RevenueWindowDays = 30
	}
	if C.Settlement.ScheduleCacheTTLSec <= 0 {
		C.Settlement.ScheduleCacheTTLSec = 60
	}
	if C.Snowflake.NodeID < 0 || C.Snowflake.NodeID > 1023 {
		log.Fatalf("invalid snowflake nodeId: %d", C.Snowflake.NodeID)
	}
}
