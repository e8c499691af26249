// Package cli is the apportion command line: kong command structs, the
// shared solver flags and the process entry point.
package cli

import (
	"context"
	"io"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/alecthomas/kong"
	"go.ntppool.org/common/logger"
)

func init() {
	logger.ConfigPrefix = "APPORTION"
}

// Root is the top-level command tree.
type Root struct {
	Globals

	Run     RunCmd     `cmd:"" help:"Apportion seats with one method."`
	Compare CompareCmd `cmd:"" help:"Apportion seats with several methods side by side."`
	Methods MethodsCmd `cmd:"" help:"List the available methods."`
}

// NewParser builds the kong parser for root. Commands receive ctx, out and
// the root's Globals through kong bindings.
func NewParser(ctx context.Context, out io.Writer, root *Root, name, description string, options ...kong.Option) (*kong.Kong, error) {
	opts := []kong.Option{
		kong.Name(name),
		kong.Description(description),
		kong.BindTo(ctx, (*context.Context)(nil)),
		kong.BindTo(out, (*io.Writer)(nil)),
		kong.Bind(&root.Globals),
		kong.ConfigureHelp(kong.HelpOptions{
			Tree: true,
		}),
	}
	opts = append(opts, options...)

	return kong.New(root, opts...)
}

// Run parses os.Args and executes the selected command, exiting on error.
func Run(name, description string) {
	ctx, cancel := signal.NotifyContext(context.Background(),
		os.Interrupt, syscall.SIGTERM,
	)
	defer cancel()

	root := &Root{}
	parser, err := NewParser(ctx, os.Stdout, root, name, description, kong.UsageOnError())
	if err != nil {
		log.Printf("error: %v", err)
		os.Exit(1)
	}

	kctx, err := parser.Parse(os.Args[1:])
	if err != nil {
		parser.FatalIfErrorf(err)
	}

	err = kctx.Run()
	parser.FatalIfErrorf(err)
}
