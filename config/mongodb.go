package config

type MongoDB struct {
	URI     string `mapstructure:"URI" json:"uri" yaml:"uri"`
	Options string `mapstructure:"OPTIONS" json:"options" yaml:"options"`
	// 名冊所在資料庫，未設定時為 orgchart
	Database string `mapstructure:"DATABASE" json:"database" yaml:"database"`
}
