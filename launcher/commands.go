package launcher

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strconv"
	"strings"
	"syscall"

	"github.com/sirupsen/logrus"
	"gopkg.in/urfave/cli.v1"

	"okinoko_presale/contract"
	"okinoko_presale/flags"
	"okinoko_presale/http_pack"
	"okinoko_presale/sdk"
)

var errMissingCaller = errors.New("--from is required for this command")

type nodeAction func(c *cli.Context, cfg Config, n *node) error

// setup resolves config and the process logger for one command.
func setup(c *cli.Context) (Config, *logrus.Logger, error) {
	cfg, err := MakeConfig(c)
	if err != nil {
		return Config{}, nil, err
	}
	logOut := c.App.ErrWriter
	if logOut == nil {
		logOut = os.Stderr
	}
	log, err := newLogger(cfg.Logging, logOut)
	if err != nil {
		return Config{}, nil, err
	}
	return cfg, log, nil
}

// withNode resolves config, opens the database for the duration of one command and closes it.
func withNode(fn nodeAction) func(*cli.Context) error {
	return func(c *cli.Context) (err error) {
		cfg, log, err := setup(c)
		if err != nil {
			return err
		}
		n, err := openNode(cfg, log)
		if err != nil {
			return err
		}
		defer func() {
			if cerr := n.Close(); cerr != nil && err == nil {
				err = cerr
			}
		}()
		return fn(c, cfg, n)
	}
}

// withPresale is withNode plus an attached sale.
func withPresale(fn func(c *cli.Context, cfg Config, n *node, p *contract.Presale) error) func(*cli.Context) error {
	return withNode(func(c *cli.Context, cfg Config, n *node) error {
		p, err := n.presale()
		if err != nil {
			return err
		}
		return fn(c, cfg, n, p)
	})
}

func caller(cfg Config) (sdk.Address, error) {
	if cfg.Caller == "" {
		return "", errMissingCaller
	}
	return cfg.Caller, nil
}

func amountArg(c *cli.Context, i int) (uint64, error) {
	raw := c.Args().Get(i)
	if raw == "" {
		return 0, fmt.Errorf("missing amount argument")
	}
	return sdk.ParseAmount(raw)
}

func addressArg(c *cli.Context, i int) (sdk.Address, error) {
	addr := sdk.Address(c.Args().Get(i))
	if !addr.IsValid() {
		return "", fmt.Errorf("%w: %q", contract.ErrInvalidAddress, addr)
	}
	return addr, nil
}

func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func with(groups ...[]cli.Flag) []cli.Flag {
	var out []cli.Flag
	for _, g := range groups {
		out = append(out, g...)
	}
	return out
}

// callerAction wraps the common shape of state changing calls: resolve --from, run, report.
func callerAction(done string, fn func(c *cli.Context, p *contract.Presale, from sdk.Address) error) func(*cli.Context) error {
	return withPresale(func(c *cli.Context, cfg Config, n *node, p *contract.Presale) error {
		from, err := caller(cfg)
		if err != nil {
			return err
		}
		if err := fn(c, p, from); err != nil {
			return err
		}
		fmt.Fprintf(c.App.Writer, "%s at block %d\n", done, n.clock.BlockHeight())
		return nil
	})
}

func commands() []cli.Command {
	common := flags.CommonFlags()
	callerFlags := with(common, flags.CallerFlags())

	return []cli.Command{
		{
			Name:  "deploy",
			Usage: "Deploy the presale; the administrator is --sale.owner or --from",
			Flags: with(callerFlags, flags.SaleFlags()),
			Action: withNode(func(c *cli.Context, cfg Config, n *node) error {
				if cfg.Sale.Owner == "" {
					return errMissingCaller
				}
				if _, err := contract.Deploy(n.host, cfg.Sale); err != nil {
					return err
				}
				fmt.Fprintf(c.App.Writer, "presale deployed at %s, owner %s, token %s\n", cfg.Self, cfg.Sale.Owner, cfg.Sale.Token)
				return nil
			}),
		},
		{
			Name:      "mine",
			Usage:     "Advance the local chain by N blocks (default 1)",
			ArgsUsage: "[N]",
			Flags:     common,
			Action: withNode(func(c *cli.Context, cfg Config, n *node) error {
				count := uint64(1)
				if raw := c.Args().First(); raw != "" {
					v, err := strconv.ParseUint(raw, 10, 64)
					if err != nil {
						return fmt.Errorf("invalid block count %q: %w", raw, err)
					}
					count = v
				}
				h, err := n.clock.Mine(count)
				if err != nil {
					return err
				}
				fmt.Fprintf(c.App.Writer, "block %d\n", h)
				return nil
			}),
		},
		{
			Name:      "mint",
			Usage:     "Credit an identity on the local ledger",
			ArgsUsage: "<address> <amount>",
			Flags:     with(common, flags.AssetFlags()),
			Action: withNode(func(c *cli.Context, cfg Config, n *node) error {
				to, err := addressArg(c, 0)
				if err != nil {
					return err
				}
				amount, err := amountArg(c, 1)
				if err != nil {
					return err
				}
				if err := n.ledger.Mint(cfg.Asset, to, amount); err != nil {
					return err
				}
				fmt.Fprintf(c.App.Writer, "minted %s %s to %s\n", sdk.FormatAmount(amount), cfg.Asset, to)
				return nil
			}),
		},
		{
			Name:      "balance",
			Usage:     "Show a ledger balance",
			ArgsUsage: "<address>",
			Flags:     with(common, flags.AssetFlags()),
			Action: withNode(func(c *cli.Context, cfg Config, n *node) error {
				owner, err := addressArg(c, 0)
				if err != nil {
					return err
				}
				b, err := n.ledger.Balance(cfg.Asset, owner)
				if err != nil {
					return err
				}
				fmt.Fprintf(c.App.Writer, "%s %s\n", sdk.FormatAmount(b), cfg.Asset)
				return nil
			}),
		},
		{
			Name:  "whitelist",
			Usage: "Manage whitelist approvals (administrator only)",
			Subcommands: []cli.Command{
				{
					Name:      "add",
					ArgsUsage: "<address[;address...]>",
					Flags:     callerFlags,
					Action: callerAction("whitelist updated", func(c *cli.Context, p *contract.Presale, from sdk.Address) error {
						added, err := p.AddAddressesToWhitelist(from, sdk.ParseAddressList(strings.Join(c.Args(), ";")))
						if err != nil {
							return err
						}
						fmt.Fprintf(c.App.Writer, "added %d\n", len(added))
						return nil
					}),
				},
				{
					Name:      "remove",
					ArgsUsage: "<address[;address...]>",
					Flags:     callerFlags,
					Action: callerAction("whitelist updated", func(c *cli.Context, p *contract.Presale, from sdk.Address) error {
						removed, err := p.RemoveFromWhitelist(from, sdk.ParseAddressList(strings.Join(c.Args(), ";")))
						if err != nil {
							return err
						}
						fmt.Fprintf(c.App.Writer, "removed %d\n", len(removed))
						return nil
					}),
				},
			},
		},
		{
			Name:      "buy",
			Usage:     "Deposit native units into the sale",
			ArgsUsage: "<amount>",
			Flags:     callerFlags,
			Action: callerAction("bought", func(c *cli.Context, p *contract.Presale, from sdk.Address) error {
				amount, err := amountArg(c, 0)
				if err != nil {
					return err
				}
				return p.Buy(from, amount)
			}),
		},
		{
			Name:      "fund-tokens",
			Usage:     "Move sale supply from the administrator into custody",
			ArgsUsage: "<amount>",
			Flags:     callerFlags,
			Action: callerAction("funded", func(c *cli.Context, p *contract.Presale, from sdk.Address) error {
				amount, err := amountArg(c, 0)
				if err != nil {
					return err
				}
				return p.FundTokens(from, p.Config().Token, amount)
			}),
		},
		{
			Name:  "finalize",
			Usage: "Close the sale (administrator only)",
			Flags: callerFlags,
			Action: callerAction("finalized", func(c *cli.Context, p *contract.Presale, from sdk.Address) error {
				return p.Finalize(from, p.Config().Token)
			}),
		},
		{
			Name:  "claim",
			Usage: "Claim vested tokens",
			Flags: callerFlags,
			Action: callerAction("claimed", func(c *cli.Context, p *contract.Presale, from sdk.Address) error {
				return p.Claim(from, p.Config().Token)
			}),
		},
		{
			Name:  "refund",
			Usage: "Reclaim the deposit of a failed sale",
			Flags: callerFlags,
			Action: callerAction("refunded", func(c *cli.Context, p *contract.Presale, from sdk.Address) error {
				return p.ClaimRefund(from)
			}),
		},
		{
			Name:  "withdraw-tokens",
			Usage: "Return custody tokens to the administrator after a failed sale",
			Flags: callerFlags,
			Action: callerAction("withdrawn", func(c *cli.Context, p *contract.Presale, from sdk.Address) error {
				return p.WithdrawTokensWhenFail(from, p.Config().Token)
			}),
		},
		{
			Name:  "info",
			Usage: "Print configuration and sale state as JSON",
			Flags: common,
			Action: withPresale(func(c *cli.Context, cfg Config, n *node, p *contract.Presale) error {
				info, err := p.GetPresaleInfo()
				if err != nil {
					return err
				}
				return writeJSON(c.App.Writer, info)
			}),
		},
		{
			Name:      "user",
			Usage:     "Print one identity's deposit and vesting state as JSON",
			ArgsUsage: "<address>",
			Flags:     common,
			Action: withPresale(func(c *cli.Context, cfg Config, n *node, p *contract.Presale) error {
				addr, err := addressArg(c, 0)
				if err != nil {
					return err
				}
				info, err := p.GetUserInfo(addr)
				if err != nil {
					return err
				}
				return writeJSON(c.App.Writer, info)
			}),
		},
		{
			Name:  "serve",
			Usage: "Serve the read-only query API until interrupted; the database is opened per request",
			Flags: with(common, flags.HTTPFlags()),
			Action: func(c *cli.Context) error {
				cfg, log, err := setup(c)
				if err != nil {
					return err
				}
				reader := newSharedReader(cfg, log)
				if _, err := reader.GetPresaleInfo(); err != nil {
					return err
				}
				ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
				defer stop()
				return http_pack.Serve(ctx, cfg.HTTP, reader, log)
			},
		},
	}
}
