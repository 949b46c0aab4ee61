// Command qdeck composes quantum gate circuits into exact unitaries and runs
// the canonical algorithm tasks from the command line, in batch over JSON
// lines, or in an interactive terminal UI.
package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"
	"github.com/davecgh/go-spew/spew"
	"github.com/urfave/cli/v2"

	"qdeck/algo"
	"qdeck/circuit"
	"qdeck/internal/config"
	"qdeck/task"
)

// env is the state every command shares, built once in Before.
type env struct {
	cfg    config.Config
	logger *log.Logger
	router *task.Router
	dump   bool
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if err := newApp(os.Stdout).RunContext(ctx, os.Args); err != nil {
		fmt.Fprintln(os.Stderr, errorStyle.Render("qdeck: "+err.Error()))
		os.Exit(1)
	}
}

func newApp(stdout io.Writer) *cli.App {
	e := &env{}
	return &cli.App{
		Name:      "qdeck",
		Usage:     "quantum gate algebra and circuit-unitary engine",
		Writer:    stdout,
		ErrWriter: os.Stderr,
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "config", Aliases: []string{"c"}, Usage: "YAML config file", EnvVars: []string{"QDECK_CONFIG"}},
			&cli.StringFlag{Name: "log-level", Usage: "debug, info, warn or error (overrides config)"},
			&cli.BoolFlag{Name: "dump", Usage: "dump the raw result structure to stderr"},
		},
		Before: func(c *cli.Context) error {
			return e.setup(c)
		},
		Commands: []*cli.Command{
			runCommand(e),
			batchCommand(e),
			qasmCommand(),
			tuiCommand(e),
			configCommand(e),
		},
	}
}

func (e *env) setup(c *cli.Context) error {
	cfg, err := config.Load(c.String("config"))
	if err != nil {
		return err
	}
	if c.IsSet("log-level") {
		cfg.LogLevel = c.String("log-level")
	}
	if err := cfg.Validate(); err != nil {
		return err
	}
	logger, err := cfg.Logger(c.App.ErrWriter)
	if err != nil {
		return err
	}
	e.cfg = cfg
	e.logger = logger
	e.router = &task.Router{MaxQubits: cfg.MaxQubits, Tol: cfg.Tolerance, Logger: logger}
	e.dump = c.Bool("dump")
	logger.Debug("config loaded", "max_qubits", cfg.MaxQubits, "tolerance", cfg.Tolerance, "workers", cfg.Workers)
	return nil
}

func runCommand(e *env) *cli.Command {
	return &cli.Command{
		Name:      "run",
		Usage:     "run a single task",
		UsageText: `qdeck run --task grover --qubits 3 --marked 5`,
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "task", Aliases: []string{"t"}, Required: true, Usage: "task kind"},
			&cli.StringFlag{Name: "ops", Usage: "comma-separated operators (matrix_rep, commutator)"},
			&cli.StringFlag{Name: "program", Aliases: []string{"p"}, Usage: "gate program, e.g. H:0,CNOT:0:1"},
			&cli.PathFlag{Name: "file", Aliases: []string{"f"}, Usage: "read the program or an OpenQASM source from `FILE`"},
			&cli.StringFlag{Name: "state", Aliases: []string{"s"}, Usage: "comma-separated amplitudes"},
			&cli.StringFlag{Name: "hamiltonian", Usage: "pauli_x, pauli_y or pauli_z"},
			&cli.IntFlag{Name: "qubits", Aliases: []string{"n"}},
			&cli.IntFlag{Name: "marked"},
			&cli.IntFlag{Name: "n-max"},
			&cli.Float64Flag{Name: "omega"},
			&cli.Float64Flag{Name: "length"},
			&cli.StringFlag{Name: "time", Usage: "evolution time, pi expressions allowed"},
			&cli.BoolFlag{Name: "json", Usage: "print the JSON transport form"},
		},
		Action: func(c *cli.Context) error {
			req, err := requestFromFlags(c)
			if err != nil {
				return err
			}
			res, err := e.router.Route(req)
			if err != nil {
				return err
			}
			return e.print(c.App.Writer, req, res, c.Bool("json"))
		},
	}
}

func requestFromFlags(c *cli.Context) (task.Request, error) {
	req := task.Request{
		Task:        c.String("task"),
		Program:     c.String("program"),
		State:       c.String("state"),
		Hamiltonian: c.String("hamiltonian"),
	}
	if path := c.Path("file"); path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return task.Request{}, err
		}
		req.Program = string(data)
	}
	if c.IsSet("ops") {
		ops, err := task.ParseOperators(c.String("ops"))
		if err != nil {
			return task.Request{}, err
		}
		req.Operators = ops
	}
	if c.IsSet("qubits") {
		req.Qubits = task.Int(c.Int("qubits"))
	}
	if c.IsSet("marked") {
		req.Marked = task.Int(c.Int("marked"))
	}
	if c.IsSet("n-max") {
		req.NMax = task.Int(c.Int("n-max"))
	}
	if c.IsSet("omega") {
		req.Omega = task.Float(c.Float64("omega"))
	}
	if c.IsSet("length") {
		req.Length = task.Float(c.Float64("length"))
	}
	if c.IsSet("time") {
		t, err := circuit.ParseParamExpr(c.String("time"))
		if err != nil {
			return task.Request{}, err
		}
		req.Time = task.Float(t)
	}
	return req, nil
}

func (e *env) print(w io.Writer, req task.Request, res algo.Result, asJSON bool) error {
	if e.dump {
		spew.Fdump(os.Stderr, res)
	}
	if asJSON {
		data, err := task.Encode(res)
		if err != nil {
			return err
		}
		_, err = fmt.Fprintln(w, string(data))
		return err
	}
	_, err := fmt.Fprintln(w, renderResult(res, diagramFor(req)))
	return err
}

func batchCommand(e *env) *cli.Command {
	return &cli.Command{
		Name:      "batch",
		Usage:     "route newline-delimited JSON requests concurrently",
		UsageText: `qdeck batch < requests.jsonl`,
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "input", Aliases: []string{"i"}, Usage: "request file (default stdin)"},
			&cli.IntFlag{Name: "workers", Aliases: []string{"w"}, Usage: "concurrent workers (overrides config)"},
		},
		Action: func(c *cli.Context) error {
			var in io.Reader = os.Stdin
			if path := c.String("input"); path != "" {
				f, err := os.Open(path)
				if err != nil {
					return err
				}
				defer f.Close()
				in = f
			}
			reqs, err := task.ReadRequests(in)
			if err != nil {
				return err
			}

			workers := e.cfg.Workers
			if c.IsSet("workers") {
				workers = c.Int("workers")
			}
			resps, err := e.router.RouteAll(c.Context, reqs, workers)
			if werr := task.WriteResponses(c.App.Writer, resps); werr != nil && err == nil {
				err = werr
			}
			if e.dump {
				spew.Fdump(os.Stderr, resps)
			}
			return err
		},
	}
}

func qasmCommand() *cli.Command {
	return &cli.Command{
		Name:      "qasm",
		Usage:     "export a gate program as OpenQASM 2.0",
		UsageText: `qdeck qasm --ops "H:0,CNOT:0:1"` + "\n" + `qdeck qasm --file bell.qasm`,
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "ops", Aliases: []string{"program", "p"}, Usage: "gate program"},
			&cli.PathFlag{Name: "file", Aliases: []string{"f"}, Usage: "read the program or an OpenQASM source from `FILE`"},
			&cli.IntFlag{Name: "qubits", Aliases: []string{"n"}, Usage: "register size (default: highest qubit + 1)"},
		},
		Action: func(c *cli.Context) error {
			src := c.String("ops")
			if path := c.Path("file"); path != "" {
				data, err := os.ReadFile(path)
				if err != nil {
					return err
				}
				src = string(data)
			}
			if strings.TrimSpace(src) == "" {
				return errors.New("one of --ops or --file is required")
			}
			prog, err := task.ParseProgram(src, c.Int("qubits"))
			if err != nil {
				return err
			}
			_, err = fmt.Fprint(c.App.Writer, prog.ToQASM())
			return err
		},
	}
}

func tuiCommand(e *env) *cli.Command {
	return &cli.Command{
		Name:  "tui",
		Usage: "interactive terminal UI",
		Action: func(c *cli.Context) error {
			// The UI owns the terminal; keep log output out of it.
			router := *e.router
			router.Logger = log.New(io.Discard)
			p := tea.NewProgram(newModel(&router), tea.WithAltScreen(), tea.WithContext(c.Context))
			_, err := p.Run()
			return err
		},
	}
}

func configCommand(e *env) *cli.Command {
	return &cli.Command{
		Name:  "config",
		Usage: "print the effective configuration as YAML",
		Action: func(c *cli.Context) error {
			return e.cfg.Encode(c.App.Writer)
		},
	}
}
