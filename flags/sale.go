package flags

import (
	"gopkg.in/urfave/cli.v1"
)

// SaleFlags override the reference deployment figures. Amounts are plain micro units or
// decimals with up to six places, e.g. 10.5.
func SaleFlags() []cli.Flag {
	return []cli.Flag{
		cli.StringFlag{
			Name:  "sale.owner",
			Usage: "Administrator identity (defaults to --from)",
		},
		cli.StringFlag{
			Name:  "sale.token",
			Usage: "Ticker of the token being sold",
		},
		cli.StringFlag{
			Name:  "sale.supply",
			Usage: "Tokens to sell",
		},
		cli.StringFlag{
			Name:  "sale.softcap",
			Usage: "Minimum raise for a successful sale",
		},
		cli.StringFlag{
			Name:  "sale.hardcap",
			Usage: "Maximum raise",
		},
		cli.StringFlag{
			Name:  "sale.minbuy",
			Usage: "Smallest single deposit",
		},
		cli.StringFlag{
			Name:  "sale.maxbuy",
			Usage: "Largest cumulative deposit per identity",
		},
		cli.Uint64Flag{
			Name:  "sale.start",
			Usage: "First block of the whitelist phase",
		},
		cli.Uint64Flag{
			Name:  "sale.wlend",
			Usage: "First block of the public phase",
		},
		cli.Uint64Flag{
			Name:  "sale.end",
			Usage: "First block after the sale",
		},
	}
}
