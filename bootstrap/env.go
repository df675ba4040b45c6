package bootstrap

import (
	"log"

	"github.com/spf13/viper"
)

type Env struct {
	AppEnv                string `mapstructure:"APP_ENV"`
	ServerAddress         string `mapstructure:"SERVER_ADDRESS"`
	ContextTimeout        int    `mapstructure:"CONTEXT_TIMEOUT"`
	DBUri                 string `mapstructure:"DB_URI"`
	DBName                string `mapstructure:"DB_NAME"`
	AccessTokenExpiryHour int    `mapstructure:"ACCESS_TOKEN_EXPIRY_HOUR"`
	AccessTokenSecret     string `mapstructure:"ACCESS_TOKEN_SECRET"`
	TMDBAPIKey            string `mapstructure:"TMDB_API_KEY"`
	GeminiAPIKey          string `mapstructure:"GEMINI_API_KEY"`
}

func NewEnv() *Env {
	env := Env{}
	viper.SetConfigFile(".env")

	viper.SetDefault("APP_ENV", "development")
	viper.SetDefault("SERVER_ADDRESS", ":8080")
	viper.SetDefault("CONTEXT_TIMEOUT", 10)
	viper.SetDefault("DB_URI", "mongodb://localhost:27017")
	viper.SetDefault("DB_NAME", "cinematch")
	viper.SetDefault("ACCESS_TOKEN_EXPIRY_HOUR", 72)
	// 注册空缺省值，保证AutomaticEnv能对上这些键
	viper.SetDefault("ACCESS_TOKEN_SECRET", "")
	viper.SetDefault("TMDB_API_KEY", "")
	viper.SetDefault("GEMINI_API_KEY", "")

	if err := viper.ReadInConfig(); err != nil {
		log.Printf("未找到.env文件，使用环境变量与默认值")
	}
	viper.AutomaticEnv()

	if err := viper.Unmarshal(&env); err != nil {
		log.Fatalf("环境配置解析失败: %v", err)
	}

	if env.AccessTokenSecret == "" {
		log.Fatal("ACCESS_TOKEN_SECRET 未配置")
	}
	if env.TMDBAPIKey == "" {
		log.Fatal("TMDB_API_KEY 未配置")
	}

	if env.AppEnv == "development" {
		log.Println("服务运行在开发模式")
	}

	return &env
}
