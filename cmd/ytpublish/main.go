package main

import (
	"log"
	"os"

	"github.com/jessevdk/go-flags"
	"github.com/joho/godotenv"
	"mkuznets.com/go/ytpublish/internal/ytpublish"
)

type Commander interface {
	Init(opts interface{}) error
	Execute(args []string) error
}

type Options struct {
	Common  *ytpublish.Options        `group:"Common Options"`
	Serve   *ytpublish.ServeCommand   `command:"serve" description:"accept uploads and publish them to YouTube"`
	History *ytpublish.HistoryCommand `command:"history" description:"show published videos"`
	Config  *ytpublish.ConfigCommand  `command:"config" description:"show current config"`
	Version *ytpublish.VersionCommand `command:"version" description:"show version"`
}

func main() {
	log.SetFlags(0)
	log.SetOutput(os.Stdout)

	// .env is optional
	_ = godotenv.Load()

	var opts Options
	parser := flags.NewParser(&opts, flags.Default)

	parser.CommandHandler = func(command flags.Commander, args []string) error {
		c := command.(Commander)
		if err := c.Init(opts.Common); err != nil {
			return err
		}
		if err := c.Execute(args); err != nil {
			return err
		}
		return nil
	}

	if _, err := parser.Parse(); err != nil {
		switch e := err.(type) {
		case *flags.Error:
			if e.Type == flags.ErrHelp {
				os.Exit(0)
			}
		}
		os.Exit(1)
	}
}
