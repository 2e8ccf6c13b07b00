package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/khanghh/kwaitlist/internal/waitlist"
	"github.com/khanghh/kwaitlist/params"
	"github.com/spf13/cast"
	"github.com/spf13/viper"
)

const (
	DefaultListenAddr    = ":3000"
	DefaultDBDriver      = "sqlite"
	DefaultDBDsn         = "kwaitlist.db"
	DefaultEventExchange = "waitlist.events"
)

type DatabaseConfig struct {
	Driver          string        `mapstructure:"driver"`
	Dsn             string        `mapstructure:"dsn"`
	Replicas        []string      `mapstructure:"replicas"`
	TablePrefix     string        `mapstructure:"tablePrefix"`
	MaxIdleConns    int           `mapstructure:"maxIdleConns"`
	MaxOpenConns    int           `mapstructure:"maxOpenConns"`
	ConnMaxIdleTime time.Duration `mapstructure:"connMaxIdleTime"`
	ConnMaxLifetime time.Duration `mapstructure:"connMaxLifetime"`
}

type OAuthProviderConfig struct {
	ClientID     string   `mapstructure:"clientID"`
	ClientSecret string   `mapstructure:"clientSecret"`
	Scope        []string `mapstructure:"scope"`
}

type SMTPConfig struct {
	Host               string `mapstructure:"host"`
	Port               int    `mapstructure:"port"`
	Username           string `mapstructure:"username"`
	Password           string `mapstructure:"password"`
	TLS                bool   `mapstructure:"tls"`
	InsecureSkipVerify bool   `mapstructure:"insecureSkipVerify"`
	CertFile           string `mapstructure:"certFile"`
	KeyFile            string `mapstructure:"keyFile"`
	CAFile             string `mapstructure:"caFile"`
}

type MailConfig struct {
	Backend     string     `mapstructure:"backend"`
	From        string     `mapstructure:"from"`
	TemplateDir string     `mapstructure:"templateDir"`
	SignUpURL   string     `mapstructure:"signUpURL"`
	SMTP        SMTPConfig `mapstructure:"smtp"`
}

type AMQPConfig struct {
	URL      string `mapstructure:"url"`
	Exchange string `mapstructure:"exchange"`
}

type EventsConfig struct {
	AMQP AMQPConfig `mapstructure:"amqp"`
}

type TurnstileConfig struct {
	SiteKey   string `mapstructure:"siteKey"`
	SecretKey string `mapstructure:"secretKey"`
}

type CaptchaConfig struct {
	Provider  string          `mapstructure:"provider"`
	Turnstile TurnstileConfig `mapstructure:"turnstile,omitempty"`
}

type RedisConfig struct {
	URL         string `mapstructure:"url"`
	PoolSize    int    `mapstructure:"poolSize"`
	ClusterMode bool   `mapstructure:"clusterMode"`
}

type RateLimitConfig struct {
	JoinMax    int           `mapstructure:"joinMax"`
	JoinWindow time.Duration `mapstructure:"joinWindow"`
}

// WaitlistConfig mirrors waitlist.Options in its YAML form. AutoApprove is
// either a boolean or a list of email suffixes.
type WaitlistConfig struct {
	Enabled              bool     `mapstructure:"enabled"`
	RequireInviteCode    bool     `mapstructure:"requireInviteCode"`
	InviteCodeExpiration int      `mapstructure:"inviteCodeExpiration"` // seconds
	MaxWaitlistSize      int      `mapstructure:"maxWaitlistSize"`
	SkipAnonymous        bool     `mapstructure:"skipAnonymous"`
	AutoApprove          any      `mapstructure:"autoApprove"`
	InterceptPaths       []string `mapstructure:"interceptPaths"`
	AdminRoles           []string `mapstructure:"adminRoles"`
}

type Config struct {
	Debug         bool           `mapstructure:"debug"`
	SiteName      string         `mapstructure:"siteName"`
	BaseURL       string         `mapstructure:"baseURL"`
	MasterKey     string         `mapstructure:"masterKey"`
	ListenAddr    string         `mapstructure:"listenAddr"`
	AllowOrigins  []string       `mapstructure:"allowOrigins"`
	Database      DatabaseConfig `mapstructure:"database"`
	Redis         RedisConfig    `mapstructure:"redis"`
	Mail          MailConfig     `mapstructure:"mail"`
	Events        EventsConfig   `mapstructure:"events"`
	AuthProviders struct {
		OAuth map[string]OAuthProviderConfig `mapstructure:"oauth"`
	} `mapstructure:"authProviders"`
	Captcha   CaptchaConfig   `mapstructure:"captcha"`
	RateLimit RateLimitConfig `mapstructure:"rateLimit"`
	Waitlist  WaitlistConfig  `mapstructure:"waitlist"`
}

func parseAutoApprove(value any) (waitlist.AutoApprove, error) {
	switch v := value.(type) {
	case nil:
		return waitlist.AutoApproveDisabled(), nil
	case []any, []string:
		suffixes, err := cast.ToStringSliceE(v)
		if err != nil {
			return waitlist.AutoApprove{}, fmt.Errorf("invalid waitlist.autoApprove: %w", err)
		}
		return waitlist.AutoApproveDomains(suffixes...), nil
	default:
		enabled, err := cast.ToBoolE(v)
		if err != nil {
			return waitlist.AutoApprove{}, fmt.Errorf("invalid waitlist.autoApprove: %w", err)
		}
		if enabled {
			return waitlist.AutoApproveAlways(), nil
		}
		return waitlist.AutoApproveDisabled(), nil
	}
}

// WaitlistOptions converts the YAML waitlist section into waitlist.Options.
func (c *Config) WaitlistOptions() (waitlist.Options, error) {
	autoApprove, err := parseAutoApprove(c.Waitlist.AutoApprove)
	if err != nil {
		return waitlist.Options{}, err
	}
	opts := waitlist.DefaultOptions()
	opts.Enabled = c.Waitlist.Enabled
	opts.RequireInviteCode = c.Waitlist.RequireInviteCode
	opts.InviteCodeExpiration = time.Duration(c.Waitlist.InviteCodeExpiration) * time.Second
	opts.MaxWaitlistSize = c.Waitlist.MaxWaitlistSize
	opts.SkipAnonymous = c.Waitlist.SkipAnonymous
	opts.AutoApprove = autoApprove
	if len(c.Waitlist.InterceptPaths) > 0 {
		opts.InterceptPaths = c.Waitlist.InterceptPaths
	}
	if len(c.Waitlist.AdminRoles) > 0 {
		opts.AdminRoles = c.Waitlist.AdminRoles
	}
	return opts, nil
}

func (c *Config) Sanitize() error {
	if c.ListenAddr == "" {
		c.ListenAddr = DefaultListenAddr
	}
	if c.Database.Driver == "" {
		c.Database.Driver = DefaultDBDriver
	}
	if c.Database.Driver != "mysql" && c.Database.Driver != "sqlite" {
		return fmt.Errorf("unsupported database driver %q", c.Database.Driver)
	}
	if c.Database.Dsn == "" {
		if c.Database.Driver != DefaultDBDriver {
			return fmt.Errorf("missing database dsn")
		}
		c.Database.Dsn = DefaultDBDsn
	}
	if c.Events.AMQP.Exchange == "" {
		c.Events.AMQP.Exchange = DefaultEventExchange
	}
	if c.RateLimit.JoinMax <= 0 {
		c.RateLimit.JoinMax = params.JoinRateLimitMax
	}
	if c.RateLimit.JoinWindow <= 0 {
		c.RateLimit.JoinWindow = params.JoinRateLimitWindow
	}
	if c.Waitlist.InviteCodeExpiration < 0 {
		return fmt.Errorf("waitlist.inviteCodeExpiration must not be negative")
	}
	if c.Waitlist.InviteCodeExpiration == 0 {
		c.Waitlist.InviteCodeExpiration = int(params.DefaultInviteCodeExpiration / time.Second)
	}
	if c.Waitlist.MaxWaitlistSize < 0 {
		return fmt.Errorf("waitlist.maxWaitlistSize must not be negative")
	}
	if _, err := parseAutoApprove(c.Waitlist.AutoApprove); err != nil {
		return err
	}
	return nil
}

func LoadConfig(filename string) (*Config, error) {
	v := viper.New()
	v.SetConfigFile(filename)
	v.SetConfigType("yaml")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	v.SetDefault("waitlist.enabled", true)

	if err := v.ReadInConfig(); err != nil {
		return nil, err
	}

	var config Config
	if err := v.Unmarshal(&config); err != nil {
		return nil, err
	}

	if err := config.Sanitize(); err != nil {
		return nil, err
	}
	return &config, nil
}
