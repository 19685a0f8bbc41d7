package main

import (
	"fmt"
	"log"
	"os"

	"github.com/lmmx/dslgen/dataframe"
	"github.com/lmmx/dslgen/internal/cli"
	"github.com/lmmx/dslgen/internal/grammar"
	"github.com/lmmx/dslgen/internal/introspect"
)

var version = "dev"

func main() {
	cfg, err := cli.ParseArgs(os.Args[1:])
	if err != nil {
		log.Fatal(err)
	}
	if cfg.ShowVersion {
		fmt.Println(version)
		return
	}

	var ins introspect.Inspector
	switch cfg.Mode {
	case cli.ModeSource:
		if cfg.Library == "" {
			cfg.Library = "github.com/lmmx/dslgen/dataframe"
		}
		ins = introspect.NewSourceInspector()
	default:
		if cfg.Library == "" {
			cfg.Library = "dataframe"
		}
		ri := introspect.NewReflectInspector()
		ri.Register("dataframe",
			dataframe.DataFrame{},
			dataframe.LazyFrame{},
			dataframe.GroupBy{},
			dataframe.Expr{},
			dataframe.Series{},
		)
		ins = ri
	}

	runner := cli.NewRunner(ins, grammar.New(grammar.DefaultAllowLists()), os.Stdout)
	if err := runner.Run(cfg); err != nil {
		log.Fatal(err)
	}
}
