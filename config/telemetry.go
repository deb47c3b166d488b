package config

// TelemetryConfig 指標與追蹤設定
type TelemetryConfig struct {
	Metric struct {
		Enabled bool      `yaml:"enabled" mapstructure:"ENABLED" json:"enabled"`
		Buckets []float64 `yaml:"buckets" mapstructure:"BUCKETS" json:"buckets"`
	} `yaml:"metric" mapstructure:"METRIC" json:"metric"`
	Trace struct {
		Enabled     bool    `yaml:"enabled" mapstructure:"ENABLED" json:"enabled"`
		EndpointUrl string  `yaml:"endpointUrl" mapstructure:"ENDPOINT_URL" json:"endpointUrl"`
		SampleRatio float64 `yaml:"sampleRatio" mapstructure:"SAMPLE_RATIO" json:"sampleRatio"` // 0 代表全量取樣
	} `yaml:"trace" mapstructure:"TRACE" json:"trace"`
}
