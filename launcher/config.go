package launcher

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/urfave/cli.v1"

	"okinoko_presale/contract"
	"okinoko_presale/http_pack"
	"okinoko_presale/sdk"
)

// Config aggregates everything one CLI invocation needs.
type Config struct {
	DataDir string
	Logging LoggingConfig
	HTTP    http_pack.Config
	// Self is the custody address the ledgers credit for the contract.
	Self   sdk.Address
	Caller sdk.Address
	Asset  sdk.Asset
	Sale   contract.Config
}

type LoggingConfig struct {
	Level  string
	Format string
}

func defaultConfig() Config {
	return Config{
		DataDir: filepath.Join(GuessHomeDir(), ".okinoko-presale"),
		Logging: LoggingConfig{Level: "info", Format: "text"},
		HTTP: http_pack.Config{
			Addr:          "127.0.0.1:8545",
			RatePerSecond: 50,
			Burst:         100,
		},
		Self:  "contract:presale",
		Asset: sdk.AssetNative,
		Sale:  contract.DefaultConfig(""),
	}
}

// MakeConfig merges defaults with CLI flag overrides and makes sure the datadir exists.
func MakeConfig(ctx *cli.Context) (Config, error) {
	cfg := defaultConfig()
	if err := applyCLIOverrides(ctx, &cfg); err != nil {
		return Config{}, err
	}
	if err := ensureDir(cfg.DataDir); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func applyCLIOverrides(ctx *cli.Context, cfg *Config) error {
	if ctx.IsSet("datadir") {
		cfg.DataDir = resolvePath(ctx.String("datadir"))
	}
	if ctx.IsSet("log.format") {
		cfg.Logging.Format = ctx.String("log.format")
	}
	if ctx.IsSet("log.level") {
		cfg.Logging.Level = ctx.String("log.level")
	}
	if ctx.IsSet("self") {
		cfg.Self = sdk.Address(ctx.String("self"))
	}
	if ctx.IsSet("from") {
		cfg.Caller = sdk.Address(ctx.String("from"))
	}
	if ctx.IsSet("asset") {
		cfg.Asset = sdk.Asset(ctx.String("asset"))
	}

	if ctx.IsSet("http.addr") {
		cfg.HTTP.Addr = ctx.String("http.addr")
	}
	if ctx.IsSet("http.rate") {
		cfg.HTTP.RatePerSecond = ctx.Float64("http.rate")
	}
	if ctx.IsSet("http.burst") {
		cfg.HTTP.Burst = ctx.Int("http.burst")
	}

	cfg.Sale.Owner = cfg.Caller
	if ctx.IsSet("sale.owner") {
		cfg.Sale.Owner = sdk.Address(ctx.String("sale.owner"))
	}
	if ctx.IsSet("sale.token") {
		cfg.Sale.Token = sdk.Asset(ctx.String("sale.token"))
	}
	amounts := []struct {
		flag string
		dst  *uint64
	}{
		{"sale.supply", &cfg.Sale.TokenToSell},
		{"sale.softcap", &cfg.Sale.Softcap},
		{"sale.hardcap", &cfg.Sale.Hardcap},
		{"sale.minbuy", &cfg.Sale.MinBuy},
		{"sale.maxbuy", &cfg.Sale.MaxBuy},
	}
	for _, a := range amounts {
		if !ctx.IsSet(a.flag) {
			continue
		}
		v, err := sdk.ParseAmount(ctx.String(a.flag))
		if err != nil {
			return fmt.Errorf("--%s: %w", a.flag, err)
		}
		*a.dst = v
	}
	if ctx.IsSet("sale.start") {
		cfg.Sale.StartBlock = ctx.Uint64("sale.start")
	}
	if ctx.IsSet("sale.wlend") {
		cfg.Sale.WhitelistEndBlock = ctx.Uint64("sale.wlend")
	}
	if ctx.IsSet("sale.end") {
		cfg.Sale.EndBlock = ctx.Uint64("sale.end")
	}
	return nil
}

// -----------------------------------------------------------------------------
// Helpers
// -----------------------------------------------------------------------------

func ensureDir(dir string) error {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("create datadir %s: %w", dir, err)
	}
	return nil
}

func resolvePath(p string) string {
	if strings.HasPrefix(p, "~") {
		return filepath.Join(GuessHomeDir(), strings.TrimPrefix(p, "~"))
	}
	if abs, err := filepath.Abs(p); err == nil {
		return abs
	}
	return p
}

// GuessHomeDir falls back to the working directory when no home is known.
func GuessHomeDir() string {
	if home, err := os.UserHomeDir(); err == nil {
		return home
	}
	return "."
}
