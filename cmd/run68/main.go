// run68 loads a raw 68000 program image and runs it.
package main

import (
	"errors"
	"fmt"
	"log"
	"os"

	"github.com/alecthomas/kong"
	"golang.org/x/term"

	"github.com/Urethramancer/m68kcore/vm"
)

func main() {
	var cli struct {
		Run runCmd `cmd:"" default:"withargs" help:"Load a raw big-endian program image and run it."`
	}

	ctx := kong.Parse(&cli,
		kong.Name("run68"),
		kong.Description("Motorola 68000 program runner."),
		kong.UsageOnError(),
	)
	err := ctx.Run(log.New(os.Stderr, "[run68] ", 0))
	ctx.FatalIfErrorf(err)
}

type runCmd struct {
	Image  string `arg:"" type:"existingfile" help:"Path to the program image."`
	Origin uint32 `name:"origin" default:"0x1000" help:"Load and start address."`
	Memory int    `name:"memory" default:"1048576" help:"RAM size in bytes."`
	Steps  int    `name:"steps" default:"1000000" help:"Instruction limit, 0 for none."`
	SSP    uint32 `name:"ssp" default:"0x80000" help:"Initial supervisor stack pointer."`
	User   bool   `name:"user" help:"Start in user mode."`
	USP    uint32 `name:"usp" default:"0x70000" help:"Initial user stack pointer with --user."`
	Trace  bool   `name:"trace" help:"Print every instruction before it runs."`
	Quiet  bool   `name:"quiet" short:"q" help:"Do not dump registers when the program ends."`
}

func (r *runCmd) Run(l *log.Logger) error {
	code, err := os.ReadFile(r.Image)
	if err != nil {
		return fmt.Errorf("run68 failed to read image: %w", err)
	}

	opts := vm.Options{Memory: r.Memory, Logger: l}
	if r.Trace {
		opts.Trace = os.Stdout
	}
	m, err := vm.New(opts)
	if err != nil {
		return err
	}
	if err = m.LoadCode(r.Origin, code); err != nil {
		return err
	}
	m.Boot(r.Origin, r.SSP, r.User, r.USP)

	n, err := m.Run(r.Steps)
	if !r.Quiet {
		m.DumpRegisters(os.Stdout, term.IsTerminal(int(os.Stdout.Fd())))
	}
	l.Printf("%d instructions executed", n)

	if exited, code := m.Exited(); exited {
		if code != 0 {
			return fmt.Errorf("program exited with status %d", code)
		}
		return nil
	}
	if errors.Is(err, vm.ErrStopped) {
		return nil
	}
	return err
}
