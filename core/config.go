package core

import (
	"log"
	"net/mail"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

type (
	Config struct {
		Env            string // DEV (local; default), TEST, QA, PROD
		Build          string
		Debug          bool
		TestMode       bool
		AppName        string
		SecretKey      string
		LogLevel       string
		RollbarToken   string
		SendgridApiKey string
		WorkDir        string

		defaultFromEmail string

		Server ServerConfig
		Fetch  FetchConfig
		Auth   AuthConfig
		Submit SubmitConfig
	}

	ServerConfig struct {
		Host               string
		Address            string
		DebugHost          string
		ShutdownTimeout    time.Duration
		JWTExpirationDelta time.Duration
	}

	// FetchConfig holds the artificial latency of every domain loader.
	FetchConfig struct {
		StudentsLatency   time.Duration
		EmployeesLatency  time.Duration
		StockLatency      time.Duration
		InvestmentLatency time.Duration
		CacheSize         int
	}

	AuthConfig struct {
		LoginDelay time.Duration
	}

	// SubmitConfig holds the simulated network round trip of form submissions.
	SubmitConfig struct {
		Delay time.Duration
	}
)

func (conf *Config) DefaultFromEmail() mail.Address {
	addr, err := mail.ParseAddress(conf.defaultFromEmail)
	if err != nil {
		return mail.Address{Name: conf.AppName, Address: "noreply@localhost"}
	}
	if addr.Name == "" {
		addr.Name = conf.AppName
	}
	return *addr
}

func NewConfig() *Config {
	v := viper.New()

	// defaults
	v.SetTypeByDefaultValue(true)
	v.SetDefault("debug", true)
	v.SetDefault("build", "dev")
	v.SetDefault("appName", "Masomo")
	v.SetDefault("secretKey", "poq5-wer)enb$+57=dz&uoxh2(h!x)#*c2(#yg4h^$cegm2emy")
	v.SetDefault("defaultFromEmail", "Masomo <noreply@localhost>")
	v.SetDefault("logLevel", "debug")
	v.SetDefault("rollbarToken", "")
	v.SetDefault("sendgridApiKey", "")

	v.SetDefault("server.host", "localhost")
	v.SetDefault("server.address", ":8000")
	v.SetDefault("server.debugHost", ":4000")
	v.SetDefault("server.shutdownTimeout", 5*time.Second)
	v.SetDefault("server.jwtExpirationDelta", 7*24*time.Hour)

	v.SetDefault("fetch.studentsLatency", 200*time.Millisecond)
	v.SetDefault("fetch.employeesLatency", 220*time.Millisecond)
	v.SetDefault("fetch.stockLatency", 180*time.Millisecond)
	v.SetDefault("fetch.investmentLatency", 160*time.Millisecond)
	v.SetDefault("fetch.cacheSize", 32)

	v.SetDefault("auth.loginDelay", 800*time.Millisecond)
	v.SetDefault("submit.delay", 500*time.Millisecond)

	env := strings.ToUpper(os.Getenv("ENV"))
	switch env {
	case "":
		env = "DEV"
	case "TEST":
		v.SetDefault("testMode", true)
	}
	v.SetEnvPrefix(env)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	// load .env if it exists (ignore if it does not)
	wd := Getwd()
	dotEnvPath := filepath.Join(wd, "config", ".env."+strings.ToLower(env))
	if _, err := os.Stat(dotEnvPath); err == nil {
		if err := godotenv.Load(dotEnvPath); err != nil {
			log.Fatalf("config.godotenv(%s): %v", dotEnvPath, err)
		}
	} else if !os.IsNotExist(err) {
		log.Fatalf("config.os.Stat(%s): %v", dotEnvPath, err)
	}
	v.AutomaticEnv()

	return &Config{
		Env:              env,
		Build:            v.GetString("build"),
		Debug:            v.GetBool("debug"),
		TestMode:         v.GetBool("testMode"),
		AppName:          v.GetString("appName"),
		SecretKey:        v.GetString("secretKey"),
		LogLevel:         v.GetString("logLevel"),
		RollbarToken:     v.GetString("rollbarToken"),
		SendgridApiKey:   v.GetString("sendgridApiKey"),
		WorkDir:          wd,
		defaultFromEmail: v.GetString("defaultFromEmail"),
		Server: ServerConfig{
			Host:               v.GetString("server.host"),
			Address:            v.GetString("server.address"),
			DebugHost:          v.GetString("server.debugHost"),
			ShutdownTimeout:    v.GetDuration("server.shutdownTimeout"),
			JWTExpirationDelta: v.GetDuration("server.jwtExpirationDelta"),
		},
		Fetch: FetchConfig{
			StudentsLatency:   v.GetDuration("fetch.studentsLatency"),
			EmployeesLatency:  v.GetDuration("fetch.employeesLatency"),
			StockLatency:      v.GetDuration("fetch.stockLatency"),
			InvestmentLatency: v.GetDuration("fetch.investmentLatency"),
			CacheSize:         v.GetInt("fetch.cacheSize"),
		},
		Auth: AuthConfig{
			LoginDelay: v.GetDuration("auth.loginDelay"),
		},
		Submit: SubmitConfig{
			Delay: v.GetDuration("submit.delay"),
		},
	}
}

// NewTestConfig returns a Config with every artificial delay disabled.
func NewTestConfig() *Config {
	return &Config{
		Env:              "TEST",
		Build:            "test",
		Debug:            false,
		TestMode:         true,
		AppName:          "Masomo",
		SecretKey:        "secret",
		LogLevel:         "error",
		defaultFromEmail: "Masomo <noreply@localhost>",
		Server: ServerConfig{
			Host:               "localhost",
			ShutdownTimeout:    time.Second,
			JWTExpirationDelta: 10 * time.Minute,
		},
		Fetch: FetchConfig{CacheSize: 8},
	}
}
