// Command querygen generates type-safe gorm query code for the models.
package main

import (
	"fmt"
	"os"

	"github.com/glebarez/sqlite"
	"github.com/khanghh/kwaitlist/model"
	"github.com/urfave/cli/v2"
	"gorm.io/gen"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
	"gorm.io/gorm/schema"
)

var (
	outFlag = &cli.StringFlag{
		Name:  "out",
		Usage: "Output directory of the generated query package",
		Value: "./model/query",
	}
	tablePrefixFlag = &cli.StringFlag{
		Name:  "table-prefix",
		Usage: "Table name prefix used by the target database",
	}
)

func generate(ctx *cli.Context) error {
	db, err := gorm.Open(sqlite.Open("file::memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
		NamingStrategy: schema.NamingStrategy{
			TablePrefix:   ctx.String(tablePrefixFlag.Name),
			SingularTable: true,
		},
	})
	if err != nil {
		return err
	}

	g := gen.NewGenerator(gen.Config{
		OutPath:       ctx.String(outFlag.Name),
		Mode:          gen.WithDefaultQuery | gen.WithQueryInterface,
		FieldNullable: true,
	})
	g.UseDB(db)
	g.ApplyBasic(model.Models...)
	g.Execute()
	return nil
}

func main() {
	app := cli.NewApp()
	app.Name = "querygen"
	app.Usage = "Generate gorm query code for the waitlist models"
	app.Flags = []cli.Flag{outFlag, tablePrefixFlag}
	app.Action = generate
	if err := app.Run(os.Args); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
