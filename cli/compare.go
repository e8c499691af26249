package cli

import (
	"context"
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"go.ntppool.org/common/logger"

	"github.com/katalvlaran/apportion/core"
	"github.com/katalvlaran/apportion/methods"
	"github.com/katalvlaran/apportion/report"
)

// CompareCmd apportions one request with several methods.
type CompareCmd struct {
	File     string   `short:"f" type:"path" help:"CSV roster or YAML request file (default: 2020 U.S. census)."`
	Seats    int      `short:"k" help:"Seats to allocate (default: file setting, 435 for the census)."`
	Methods  []string `default:"hamilton,jefferson,webster,huntington-hill" help:"Methods to compare."`
	All      bool     `help:"Compare every available method."`
	DiffOnly bool     `help:"Only print entities on which the methods disagree."`
}

func (cmd *CompareCmd) Run(ctx context.Context, g *Globals, out io.Writer) (err error) {
	log := logger.Setup()

	roster, err := loadRoster(cmd.File)
	if err != nil {
		return err
	}
	req, err := roster.Request(cmd.Seats)
	if err != nil {
		return err
	}

	kinds := methods.Kinds
	if !cmd.All {
		kinds = nil
		for _, name := range cmd.Methods {
			k, err := methods.Parse(name)
			if err != nil {
				return err
			}
			kinds = append(kinds, k)
		}
	}

	s, err := g.session()
	if err != nil {
		return err
	}
	defer func() {
		if ferr := s.flush(); err == nil {
			err = ferr
		}
	}()

	results := make([]report.Result, 0, len(kinds))
	for _, k := range kinds {
		if err := ctx.Err(); err != nil {
			return err
		}
		m, err := methods.New(k, s.options...)
		if err != nil {
			return err
		}
		seats, err := core.Apply(req, s.instrument(m))
		if err != nil {
			log.WarnContext(ctx, "method failed", "method", m.Name(), "err", err)
		}
		results = append(results, report.Result{Method: m.Name(), Seats: seats, Err: err})
	}

	if _, err := fmt.Fprintf(out, "%d seats among %d entities\n", req.Seats, len(req.Entities)); err != nil {
		return err
	}
	if cmd.DiffOnly {
		return report.WriteDisagreements(out, req.Entities, results)
	}

	return report.WriteComparison(out, req.Entities, results)
}

// MethodsCmd lists the catalogue.
type MethodsCmd struct{}

func (cmd *MethodsCmd) Run(out io.Writer) error {
	tw := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "NAME\tALIASES\tDESCRIPTION")
	for _, k := range methods.Kinds {
		aliases := "-"
		if a := k.Aliases(); len(a) > 0 {
			aliases = strings.Join(a, ",")
		}
		fmt.Fprintf(tw, "%s\t%s\t%s\n", k, aliases, k.Description())
	}

	return tw.Flush()
}
