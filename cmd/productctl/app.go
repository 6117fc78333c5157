package main

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/rogerio-castellano/product-console/internal/client"
	"github.com/rogerio-castellano/product-console/internal/config"
	"github.com/rogerio-castellano/product-console/internal/console"
	"github.com/rogerio-castellano/product-console/internal/form"
	"github.com/rogerio-castellano/product-console/internal/logger"
	"github.com/rogerio-castellano/product-console/internal/query"
	"github.com/rogerio-castellano/product-console/internal/render"
	"github.com/urfave/cli"
	"go.uber.org/zap"
)

var errActionFailed = errors.New("action failed")

type commands struct {
	out        io.Writer
	controller *console.Controller
	logger     *zap.Logger
}

var filterFlags = []cli.Flag{
	cli.StringFlag{Name: "name", Usage: "match products with this name"},
	cli.StringFlag{Name: "price", Usage: "match products with exactly this price"},
	cli.StringFlag{Name: "owner", Usage: "match products owned by"},
	cli.StringFlag{Name: "category", Usage: "match products in category"},
}

var productFlags = []cli.Flag{
	cli.StringFlag{Name: "name", Usage: "product name"},
	cli.StringFlag{Name: "description", Usage: "product description"},
	cli.StringFlag{Name: "price", Usage: "unit price"},
	cli.StringFlag{Name: "inventory", Usage: "units in stock"},
	cli.StringFlag{Name: "owner", Usage: "owner"},
	cli.StringFlag{Name: "category", Usage: "category"},
}

func newApp(out io.Writer) *cli.App {
	cmds := &commands{out: out}

	app := cli.NewApp()
	app.Name = "productctl"
	app.Usage = "search and edit products through the products REST API"
	app.Writer = out
	app.Flags = []cli.Flag{
		cli.StringFlag{
			Name:   "api-url",
			Value:  "http://localhost:5000",
			Usage:  "base URL of the products API",
			EnvVar: "PRODUCT_API_URL",
		},
		cli.StringFlag{
			Name:  "log-level",
			Value: "warn",
			Usage: "debug, info, warn or error",
		},
		cli.DurationFlag{
			Name:  "timeout",
			Value: 0,
			Usage: "per request timeout, 0 for none",
		},
		cli.StringFlag{
			Name:  "config",
			Usage: "console config file to take the api section from; --api-url and --timeout win when given",
		},
	}
	app.Before = cmds.setup
	app.After = func(*cli.Context) error {
		if cmds.logger != nil {
			_ = cmds.logger.Sync()
		}
		return nil
	}
	app.Commands = []cli.Command{
		{
			Name:   "search",
			Usage:  "list products matching the filters",
			Flags:  filterFlags,
			Action: cmds.search,
		},
		{
			Name:   "query",
			Usage:  "print the query a search would send",
			Flags:  filterFlags,
			Action: cmds.query,
		},
		{
			Name:      "get",
			Usage:     "show one product",
			ArgsUsage: "ID",
			Action:    cmds.get,
		},
		{
			Name:   "create",
			Usage:  "create a product",
			Flags:  productFlags,
			Action: cmds.create,
		},
		{
			Name:      "update",
			Usage:     "change the given fields of a product",
			ArgsUsage: "ID",
			Flags:     productFlags,
			Action:    cmds.update,
		},
		{
			Name:      "delete",
			Usage:     "delete a product",
			ArgsUsage: "ID",
			Action:    cmds.delete,
		},
		{
			Name:      "purchase",
			Usage:     "buy units of a product",
			ArgsUsage: "ID",
			Flags: []cli.Flag{
				cli.IntFlag{Name: "amount", Value: 1, Usage: "units to buy"},
			},
			Action: cmds.purchase,
		},
	}
	return app
}

func (c *commands) setup(ctx *cli.Context) error {
	log, err := logger.New(logger.Config{Level: ctx.GlobalString("log-level"), Development: true})
	if err != nil {
		return err
	}
	c.logger = log

	baseURL := ctx.GlobalString("api-url")
	timeout := ctx.GlobalDuration("timeout")
	opts := []client.Option{client.WithLogger(log.Named("client"))}
	if path := ctx.GlobalString("config"); path != "" {
		cfg, err := config.LoadFile(path)
		if err != nil {
			return err
		}
		if !ctx.GlobalIsSet("api-url") {
			baseURL = cfg.API.BaseURL
		}
		if !ctx.GlobalIsSet("timeout") {
			timeout = cfg.API.Timeout
		}
		opts = append(opts, client.WithRateLimit(cfg.API.RateLimit, cfg.API.Burst))
	}
	opts = append(opts, client.WithTimeout(timeout))

	products, err := client.New(baseURL, opts...)
	if err != nil {
		return err
	}
	c.controller = console.New(products, log)
	return nil
}

// copyFlags puts every flag the user set into the view.
func copyFlags(ctx *cli.Context, v *console.MemoryView, fields ...form.Field) {
	for _, f := range fields {
		if ctx.IsSet(string(f)) {
			v.SetValue(f, ctx.String(string(f)))
		}
	}
}

var productFields = []form.Field{
	form.FieldName,
	form.FieldDescription,
	form.FieldPrice,
	form.FieldInventory,
	form.FieldOwner,
	form.FieldCategory,
}

func idView(ctx *cli.Context) (*console.MemoryView, error) {
	if ctx.NArg() != 1 {
		return nil, fmt.Errorf("%s needs exactly one product ID", ctx.Command.Name)
	}
	v := console.NewMemoryView()
	v.SetValue(form.FieldID, ctx.Args().First())
	return v, nil
}

// run executes an action and prints what the console page would show.
func (c *commands) run(action console.Action, v *console.MemoryView) error {
	err := action(context.Background(), v)

	if msg := render.Flash(v.Message, err != nil); msg != "" {
		fmt.Fprintln(c.out, msg)
	}
	if v.Results != nil {
		fmt.Fprintln(c.out, render.Results(v.Results))
	}
	if err == nil {
		fmt.Fprint(c.out, render.Form(v))
		return nil
	}
	return errActionFailed
}

func (c *commands) search(ctx *cli.Context) error {
	v := console.NewMemoryView()
	copyFlags(ctx, v, form.FieldName, form.FieldPrice, form.FieldOwner, form.FieldCategory)
	return c.run(c.controller.Search, v)
}

func (c *commands) query(ctx *cli.Context) error {
	fmt.Fprintln(c.out, query.Build(query.FilterInput{
		Name:     ctx.String("name"),
		Price:    ctx.String("price"),
		Owner:    ctx.String("owner"),
		Category: ctx.String("category"),
	}))
	return nil
}

func (c *commands) get(ctx *cli.Context) error {
	v, err := idView(ctx)
	if err != nil {
		return err
	}
	return c.run(c.controller.Retrieve, v)
}

func (c *commands) create(ctx *cli.Context) error {
	v := console.NewMemoryView()
	copyFlags(ctx, v, productFields...)
	return c.run(c.controller.Create, v)
}

// update loads the product first so unset flags keep their current values.
func (c *commands) update(ctx *cli.Context) error {
	v, err := idView(ctx)
	if err != nil {
		return err
	}
	if err := c.controller.Retrieve(context.Background(), v); err != nil {
		fmt.Fprintln(c.out, render.Flash(v.Message, true))
		return errActionFailed
	}
	copyFlags(ctx, v, productFields...)
	return c.run(c.controller.Update, v)
}

func (c *commands) delete(ctx *cli.Context) error {
	v, err := idView(ctx)
	if err != nil {
		return err
	}
	return c.run(c.controller.Delete, v)
}

func (c *commands) purchase(ctx *cli.Context) error {
	v, err := idView(ctx)
	if err != nil {
		return err
	}
	v.SetValue(form.FieldAmount, fmt.Sprint(ctx.Int("amount")))
	return c.run(c.controller.Purchase, v)
}
