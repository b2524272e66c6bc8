package config

import (
	"errors"
	"fmt"
	"io/fs"
	"log"
	"strings"
	"sync"

	"github.com/fsnotify/fsnotify"
	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config 全局配置结构体
type Config struct {
	App   AppConfig      `mapstructure:"app"`
	MySQL DatabaseConfig `mapstructure:"mysql"`
	Redis RedisConfig    `mapstructure:"redis"`
	Log   LogConfig      `mapstructure:"log"`
	Admin AdminConfig    `mapstructure:"admin"`
	Cache CacheConfig    `mapstructure:"cache"`
	Cron  CronConfig     `mapstructure:"cron"`
	Site  SiteConfig     `mapstructure:"site"`

	Moderation ModerationConfig `mapstructure:"moderation"`
}

// AppConfig 应用配置
type AppConfig struct {
	Name            string     `mapstructure:"name"`
	Mode            string     `mapstructure:"mode"`
	Port            int        `mapstructure:"port"`
	ShutdownTimeout int        `mapstructure:"shutdown_timeout"` // 秒
	StartTime       string     `mapstructure:"start_time"`       // 雪花ID起始日期
	MachineID       int64      `mapstructure:"machine_id"`
	Cors            CorsConfig `mapstructure:"cors"`
}

// DatabaseConfig 数据库配置
type DatabaseConfig struct {
	Host           string `mapstructure:"host"`
	Port           int    `mapstructure:"port"`
	Username       string `mapstructure:"username"`
	Password       string `mapstructure:"password"`
	Database       string `mapstructure:"database"`
	Charset        string `mapstructure:"charset"`
	MaxIdleConns   int    `mapstructure:"max_idle_conns"`
	MaxOpenConns   int    `mapstructure:"max_open_conns"`
	LogLevel       string `mapstructure:"log_level"`
	ConnectRetries uint   `mapstructure:"connect_retries"`
}

// DSN 获取数据库连接字符串
func (c *DatabaseConfig) DSN() string {
	return fmt.Sprintf("%s:%s@tcp(%s:%d)/%s?charset=%s&parseTime=True&loc=Local",
		c.Username, c.Password, c.Host, c.Port, c.Database, c.Charset)
}

// RedisConfig Redis配置
type RedisConfig struct {
	Host         string `mapstructure:"host"`
	Port         int    `mapstructure:"port"`
	Password     string `mapstructure:"password"`
	DB           int    `mapstructure:"db"`
	PoolSize     int    `mapstructure:"pool_size"`
	MinIdleConns int    `mapstructure:"min_idle_conns"`
}

// Addr 获取Redis地址
func (c *RedisConfig) Addr() string {
	return fmt.Sprintf("%s:%d", c.Host, c.Port)
}

// LogConfig 日志配置
type LogConfig struct {
	Level      string `mapstructure:"level"`
	Filename   string `mapstructure:"filename"`
	MaxSize    int    `mapstructure:"max_size"`
	MaxAge     int    `mapstructure:"max_age"`
	MaxBackups int    `mapstructure:"max_backups"`
	Compress   bool   `mapstructure:"compress"`
	Stdout     bool   `mapstructure:"stdout"`
}

// AdminConfig 后台管理员配置
type AdminConfig struct {
	Username     string `mapstructure:"username"`
	Password     string `mapstructure:"password"`
	CookieName   string `mapstructure:"cookie_name"`
	CookieMaxAge int    `mapstructure:"cookie_max_age"` // 秒
	CookieSecure bool   `mapstructure:"cookie_secure"`
	ProtectAPI   bool   `mapstructure:"protect_api"` // 写接口是否需要管理员cookie
}

// CacheConfig 缓存配置
type CacheConfig struct {
	Driver        string `mapstructure:"driver"` // redis | memory | none
	StatisticsTTL int    `mapstructure:"statistics_ttl"` // 秒
}

// CronConfig 定时任务配置
type CronConfig struct {
	Timezone      string `mapstructure:"timezone"`
	ReconcileSpec string `mapstructure:"reconcile_spec"` // 为空则不启用
}

// SiteConfig 站点配置
type SiteConfig struct {
	PublicAPIBaseURL string `mapstructure:"public_api_base_url"`
}

// ModerationConfig 用户内容审核配置
type ModerationConfig struct {
	WordsFile string `mapstructure:"words_file"` // 为空则只清理HTML
}

// CorsConfig 跨域配置
type CorsConfig struct {
	AllowOrigins     []string `mapstructure:"allow_origins"`
	AllowMethods     []string `mapstructure:"allow_methods"`
	AllowHeaders     []string `mapstructure:"allow_headers"`
	ExposedHeaders   []string `mapstructure:"expose_headers"`
	AllowCredentials bool     `mapstructure:"allow_credentials"`
}

var (
	globalConfig *Config
	configMu     sync.RWMutex
	// 配置Viper实例
	viperInstance *viper.Viper
)

// setDefaults 设置默认值，同时让 AutomaticEnv 能覆盖到这些键
func setDefaults(v *viper.Viper) {
	v.SetDefault("app.name", "aihub-api")
	v.SetDefault("app.mode", "release")
	v.SetDefault("app.port", 8080)
	v.SetDefault("app.shutdown_timeout", 10)
	v.SetDefault("app.start_time", "2024-01-01")
	v.SetDefault("app.machine_id", 1)
	v.SetDefault("app.cors.allow_origins", []string{"*"})
	v.SetDefault("app.cors.allow_methods", []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"})
	v.SetDefault("app.cors.allow_headers", []string{"Origin", "Content-Type", "Accept"})
	v.SetDefault("app.cors.allow_credentials", true)

	v.SetDefault("mysql.host", "127.0.0.1")
	v.SetDefault("mysql.port", 3306)
	v.SetDefault("mysql.username", "root")
	v.SetDefault("mysql.password", "")
	v.SetDefault("mysql.database", "aihub")
	v.SetDefault("mysql.charset", "utf8mb4")
	v.SetDefault("mysql.max_idle_conns", 10)
	v.SetDefault("mysql.max_open_conns", 50)
	v.SetDefault("mysql.log_level", "warn")
	v.SetDefault("mysql.connect_retries", 5)

	v.SetDefault("redis.host", "127.0.0.1")
	v.SetDefault("redis.port", 6379)
	v.SetDefault("redis.password", "")
	v.SetDefault("redis.db", 0)
	v.SetDefault("redis.pool_size", 10)
	v.SetDefault("redis.min_idle_conns", 2)

	v.SetDefault("log.level", "info")
	v.SetDefault("log.filename", "")
	v.SetDefault("log.max_size", 100)
	v.SetDefault("log.max_age", 30)
	v.SetDefault("log.max_backups", 7)
	v.SetDefault("log.stdout", true)

	v.SetDefault("admin.username", "admin")
	v.SetDefault("admin.password", "")
	v.SetDefault("admin.cookie_name", "admin_token")
	v.SetDefault("admin.cookie_max_age", 7*24*3600)
	v.SetDefault("admin.cookie_secure", false)
	v.SetDefault("admin.protect_api", true)

	v.SetDefault("cache.driver", "memory")
	v.SetDefault("cache.statistics_ttl", 300)

	v.SetDefault("cron.timezone", "Asia/Shanghai")
	v.SetDefault("cron.reconcile_spec", "0 0 * * * *")

	v.SetDefault("site.public_api_base_url", "http://localhost:8080/api")

	v.SetDefault("moderation.words_file", "")
}

// Init 初始化配置
func Init(configPath string) error {
	// .env 只是可选的补充
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("读取.env文件失败: %w", err)
	}

	v := viper.New()
	v.AddConfigPath(configPath)
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	setDefaults(v)
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	_ = v.BindEnv("site.public_api_base_url", "SITE_PUBLIC_API_BASE_URL", "PUBLIC_API_BASE_URL")

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return fmt.Errorf("读取配置文件失败: %w", err)
		}
		log.Printf("未找到配置文件，使用默认配置和环境变量: %s", configPath)
	}

	var config Config
	if err := v.Unmarshal(&config); err != nil {
		return fmt.Errorf("解析配置文件失败: %w", err)
	}

	SetConfig(&config)
	viperInstance = v

	if v.ConfigFileUsed() != "" {
		watch(v)
	}
	return nil
}

// watch 监听配置文件变化，重新加载后替换全局配置
// 数据库、Redis等连接参数只在启动时生效，管理员与跨域配置会被实时读取
func watch(v *viper.Viper) {
	v.OnConfigChange(func(e fsnotify.Event) {
		var config Config
		if err := v.Unmarshal(&config); err != nil {
			log.Printf("重新加载配置失败: %v", err)
			return
		}
		SetConfig(&config)
		log.Printf("配置已重新加载: %s", e.Name)
	})
	v.WatchConfig()
}

// SetConfig 替换全局配置
func SetConfig(c *Config) {
	configMu.Lock()
	defer configMu.Unlock()
	globalConfig = c
}

// GetConfig 获取全局配置
func GetConfig() *Config {
	configMu.RLock()
	defer configMu.RUnlock()
	return globalConfig
}

// Admin 获取当前管理员配置
func Admin() AdminConfig {
	return GetConfig().Admin
}

// Cors 获取当前跨域配置
func Cors() CorsConfig {
	return GetConfig().App.Cors
}

// Site 获取当前站点配置
func Site() SiteConfig {
	return GetConfig().Site
}

// GetString 获取字符串配置
func GetString(key string) string {
	return viperInstance.GetString(key)
}
