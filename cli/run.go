package cli

import (
	"context"
	"fmt"
	"io"
	"time"

	"go.ntppool.org/common/logger"

	"github.com/katalvlaran/apportion/core"
	"github.com/katalvlaran/apportion/methods"
	"github.com/katalvlaran/apportion/report"
)

// RunCmd apportions one request with one method.
type RunCmd struct {
	Method string `short:"m" help:"Method name or alias (default: file setting, then huntington-hill)."`
	File   string `short:"f" type:"path" help:"CSV roster or YAML request file (default: 2020 U.S. census)."`
	Seats  int    `short:"k" help:"Seats to allocate (default: file setting, 435 for the census)."`
}

func (cmd *RunCmd) Run(ctx context.Context, g *Globals, out io.Writer) (err error) {
	log := logger.Setup()

	roster, err := loadRoster(cmd.File)
	if err != nil {
		return err
	}
	req, err := roster.Request(cmd.Seats)
	if err != nil {
		return err
	}

	name := cmd.Method
	if name == "" {
		name = roster.Method
	}
	if name == "" {
		name = DefaultMethod
	}
	kind, err := methods.Parse(name)
	if err != nil {
		return err
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

	m, err := methods.New(kind, s.options...)
	if err != nil {
		return err
	}

	start := time.Now()
	seats, err := core.Apply(req, s.instrument(m))
	if err != nil {
		log.ErrorContext(ctx, "apportionment failed", "method", m.Name(), "err", err)

		return err
	}
	log.DebugContext(ctx, "apportioned",
		"method", m.Name(), "seats", req.Seats, "entities", len(req.Entities), "took", time.Since(start))

	title := fmt.Sprintf("%s: %d seats among %d entities", m.Name(), req.Seats, len(req.Entities))

	return report.WriteTable(out, title, req.Entities, seats)
}
