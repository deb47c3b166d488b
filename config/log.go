package config

type Log struct {
	// debug / info / warn / error
	Level string `mapstructure:"LEVEL" json:"level" yaml:"level"`
	// json（預設）/ console，console 方便本機執行 chart 命令時閱讀
	Format string `mapstructure:"FORMAT" json:"format" yaml:"format"`
}
