package config

type App struct {
	// 當前開發環境
	Env string `mapstructure:"ENV" json:"env" yaml:"env"`
	// 服務端口
	Port uint32 `mapstructure:"PORT" json:"port" yaml:"port"`
	// 服務名稱，同時是指標前綴
	Name string `mapstructure:"NAME" json:"name" yaml:"name"`
	// 服務版本，-ldflags 注入的版本優先
	Version        string `mapstructure:"VERSION" json:"version" yaml:"version"`
	SwaggerEnabled bool   `mapstructure:"SWAGGER_ENABLED" json:"swagger_enabled" yaml:"swagger_enabled"`
	// 允許的前端來源，空白代表全部
	CorsAllowOrigins []string `mapstructure:"CORS_ALLOW_ORIGINS" json:"corsAllowOrigins" yaml:"corsAllowOrigins"`
}
