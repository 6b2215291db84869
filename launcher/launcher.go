package launcher

import (
	"gopkg.in/urfave/cli.v1"

	"okinoko_presale/flags"
)

func newApp() *cli.App {
	app := flags.NewApp()
	app.Commands = commands()
	return app
}

// Launch runs the CLI against args (os.Args in production).
func Launch(args []string) error {
	return newApp().Run(args)
}
