package config

// Fluentd forward 設定；Host 為空時不送 log
type Fluentd struct {
	Host      string `mapstructure:"HOST" json:"host" yaml:"host"`
	Port      int    `mapstructure:"PORT" json:"port" yaml:"port"`
	TagPrefix string `mapstructure:"TAG_PREFIX" json:"tagPrefix" yaml:"tagPrefix"`
	Timeout   int64  `mapstructure:"TIMEOUT" json:"timeout" yaml:"timeout"` // 毫秒
	MaxRetry  int    `mapstructure:"MAX_RETRY" json:"maxRetry" yaml:"maxRetry"`
}
