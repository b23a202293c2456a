package main

import (
	"fmt"
	"log"
	"os"

	"github.com/trezcool/masomo-dashboard/apps/di"
	"github.com/trezcool/masomo-dashboard/core"
	"github.com/trezcool/masomo-dashboard/storage/seed"
)

func main() {
	conf := core.NewConfig()

	logger, err := di.NewLogger(conf)
	errAndDie(err)
	defer logger.Close()

	app, err := di.New(conf, logger, di.NewEmailService(conf, logger), seed.Default())
	if err != nil {
		logger.Fatal(fmt.Sprintf("setting up application: %v", err), err)
	}

	// start CLI
	cli := commandLine{app: app, out: os.Stdout}
	if err := cli.run(os.Args); err != nil {
		if err != errHelp {
			logger.Error(fmt.Sprintf("admin: %v", err), err)
		}
		logger.Close()
		os.Exit(1)
	}
}

func errAndDie(err error) {
	if err != nil {
		log.Fatal(err)
	}
}
