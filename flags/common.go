package flags

import (
	"gopkg.in/urfave/cli.v1"
)

// CommonFlags returns the flags every command understands.
func CommonFlags() []cli.Flag {
	return []cli.Flag{
		cli.StringFlag{
			Name:  "datadir",
			Usage: "Data directory holding the presale database",
			Value: "~/.okinoko-presale",
		},
		cli.StringFlag{
			Name:  "log.format",
			Usage: "Log output format (text|json)",
			Value: "text",
		},
		cli.StringFlag{
			Name:  "log.level",
			Usage: "Log level (panic|fatal|error|warn|info|debug|trace)",
			Value: "info",
		},
		cli.StringFlag{
			Name:  "self",
			Usage: "Custody address of the presale contract",
			Value: "contract:presale",
		},
	}
}

// CallerFlags adds the signing identity for state changing commands.
func CallerFlags() []cli.Flag {
	return []cli.Flag{
		cli.StringFlag{
			Name:  "from",
			Usage: "Identity sending the call (hive:name, did:key:..., did:pkh:eip155:...)",
		},
	}
}

// AssetFlags picks the ledger asset for mint/balance.
func AssetFlags() []cli.Flag {
	return []cli.Flag{
		cli.StringFlag{
			Name:  "asset",
			Usage: "Ledger asset (native unit or the sale token ticker)",
			Value: "stx",
		},
	}
}

// HTTPFlags configure the read-only query server.
func HTTPFlags() []cli.Flag {
	return []cli.Flag{
		cli.StringFlag{
			Name:  "http.addr",
			Usage: "Query API listening address",
			Value: "127.0.0.1:8545",
		},
		cli.Float64Flag{
			Name:  "http.rate",
			Usage: "Requests per second allowed across all clients (0 disables limiting)",
			Value: 50,
		},
		cli.IntFlag{
			Name:  "http.burst",
			Usage: "Request burst above the steady rate",
			Value: 100,
		},
	}
}
