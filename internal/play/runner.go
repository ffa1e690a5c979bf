// Package play drives a forge session from line commands.
package play

import (
	"bufio"
	"context"
	"errors"
	"io"
	"os"
	"strconv"
	"strings"
	"sync"

	"github.com/muesli/termenv"
	"go.uber.org/zap"

	"github.com/xtding233/forgewheel/internal/cycle"
	"github.com/xtding233/forgewheel/internal/game"
	"github.com/xtding233/forgewheel/internal/session"
	"github.com/xtding233/forgewheel/internal/shop"
)

const helpText = `commands:
  buy            buy a batch of spins
  spin           spin once
  pay [amount]   pay tribute (default: as much as allowed)
  fate           accept fate when stuck
  shop           list trinkets
  trinket <id>   buy a trinket with tickets
  status         show coins, debt and heat
  reset          start over (picks up reloaded config)
  help           show this text
  quit           leave
`

// Option configures a Runner.
type Option func(*Runner)

// WithProfile sets the colour profile of the output. Defaults to the
// profile detected for the writer.
func WithProfile(p termenv.Profile) Option {
	return func(r *Runner) { r.profile = &p }
}

func WithLogger(l *zap.Logger) Option {
	return func(r *Runner) {
		if l != nil {
			r.logger = l
		}
	}
}

// Runner reads commands from its input and prints results. Reload may be
// called from another goroutine.
type Runner struct {
	in      *bufio.Reader
	profile *termenv.Profile
	view    renderer
	logger  *zap.Logger

	sessions *session.Manager

	mu      sync.Mutex
	id      string
	machine *cycle.Machine
	shop    *shop.Catalog
	pending *shop.Catalog // set by Reload, applied on reset
}

// New starts a session from sessions and serves the given trinkets.
func New(sessions *session.Manager, trinkets []shop.Trinket, in io.Reader, out io.Writer, opts ...Option) (*Runner, error) {
	if in == nil {
		in = os.Stdin
	}
	if out == nil {
		out = os.Stdout
	}
	cat, err := shop.NewCatalog(trinkets...)
	if err != nil {
		return nil, err
	}
	r := &Runner{
		in:       bufio.NewReader(in),
		logger:   zap.NewNop(),
		sessions: sessions,
		shop:     cat,
	}
	for _, opt := range opts {
		opt(r)
	}
	var topts []termenv.OutputOption
	if r.profile != nil {
		topts = append(topts, termenv.WithProfile(*r.profile))
	}
	r.view = renderer{out: termenv.NewOutput(out, topts...)}

	r.id, r.machine, err = sessions.Create()
	if err != nil {
		return nil, err
	}
	return r, nil
}

// Machine returns the current session's machine.
func (r *Runner) Machine() *cycle.Machine {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.machine
}

// Reload stages a new configuration. The running session keeps its own
// until the next reset.
func (r *Runner) Reload(res game.Resolved) error {
	cat, err := shop.NewCatalog(res.Trinkets...)
	if err != nil {
		return err
	}
	if err := r.sessions.SetConfig(res.Machine); err != nil {
		return err
	}
	r.mu.Lock()
	r.pending = cat
	r.mu.Unlock()
	r.logger.Info("config staged for next reset", zap.String("version", res.Version))
	return nil
}

// Run reads commands until quit, EOF or ctx is done.
func (r *Runner) Run(ctx context.Context) error {
	m := r.Machine()
	r.view.grid(m.Catalog(), m.Grid())
	r.view.printf("type help for commands\n")
	for {
		if err := ctx.Err(); err != nil {
			return err
		}
		r.view.printf("> ")
		line, err := r.in.ReadString('\n')
		if line != "" {
			if !r.Exec(line) {
				return nil
			}
		}
		if err != nil {
			if errors.Is(err, io.EOF) {
				return nil
			}
			return err
		}
	}
}

// Exec runs one command line. It reports false when the runner should stop.
func (r *Runner) Exec(line string) bool {
	fields := strings.Fields(line)
	if len(fields) == 0 {
		return true
	}
	r.mu.Lock()
	m, cat := r.machine, r.shop
	r.mu.Unlock()

	switch cmd, args := strings.ToLower(fields[0]), fields[1:]; cmd {
	case "quit", "exit", "q":
		r.view.printf("bye\n")
		return false
	case "help", "?":
		r.view.printf("%s", helpText)
	case "buy":
		r.buy(m)
	case "spin", "s":
		r.spin(m)
	case "pay":
		r.pay(m, args)
	case "fate":
		if m.AcceptFate() {
			r.view.printf("the forge goes cold. game over (cycle %d). type reset to start again\n", m.Cycle())
		} else {
			r.view.printf("fate can wait: you are not stuck\n")
		}
	case "shop":
		r.view.shop(cat, m)
	case "trinket":
		r.trinket(m, cat, args)
	case "status":
		r.view.status(m.Snapshot(), m.BatchCost(), m.BatchSize())
	case "reset":
		r.reset()
	default:
		r.view.printf("unknown command %q, type help\n", cmd)
	}
	r.warn(r.Machine())
	return true
}

func (r *Runner) buy(m *cycle.Machine) {
	cost, size := m.BatchCost(), m.BatchSize()
	if !m.BuySpins() {
		r.view.printf("cannot buy spins now (%d coins, batch costs %d, phase %s)\n", m.Coins(), cost, m.Phase())
		return
	}
	r.view.printf("bought %d spins for %d coins, %d coins left\n", size, cost, m.Coins())
}

func (r *Runner) spin(m *cycle.Machine) {
	if !m.Spin() {
		r.view.printf("cannot spin now (%d spins left, phase %s)\n", m.SpinsRemaining(), m.Phase())
		return
	}
	r.view.grid(m.Catalog(), m.Grid())
	r.view.wins(m.Catalog(), m.LastWins())
	if p := m.LastPayout(); p > 0 {
		r.view.printf("payout %d coins\n", p)
	}
	r.view.printf("%d spins left, %d coins\n", m.SpinsRemaining(), m.Coins())
}

func (r *Runner) pay(m *cycle.Machine, args []string) {
	before, cycleBefore := m.Coins(), m.Cycle()
	var ok bool
	if len(args) > 0 {
		n, err := strconv.ParseInt(args[0], 10, 64)
		if err != nil {
			r.view.printf("pay: %q is not a number\n", args[0])
			return
		}
		ok = m.PayTributeAmount(n)
	} else {
		ok = m.PayTribute()
	}
	if !ok {
		r.view.printf("no tribute paid (may pay up to %d now)\n", m.MaxTributePayment())
		return
	}
	r.view.printf("paid %d tribute\n", before-m.Coins())
	if c := m.Cycle(); c > cycleBefore {
		r.view.printf("debt cleared. cycle %d begins, debt %d\n", c, m.Debt())
		return
	}
	r.view.printf("%d of %d debt still owed\n", m.DebtRemaining(), m.Debt())
}

func (r *Runner) trinket(m *cycle.Machine, cat *shop.Catalog, args []string) {
	if len(args) == 0 {
		r.view.printf("usage: trinket <id>\n")
		return
	}
	t, ok := cat.Get(args[0])
	if !ok {
		r.view.printf("unknown trinket %q\n", args[0])
		return
	}
	if !cat.Buy(m, t.ID) {
		r.view.printf("cannot buy %s now (%d tickets, costs %d)\n", t.Name, m.Tickets(), t.Cost)
		return
	}
	r.view.printf("bought %s, %d tickets left\n", t.Name, m.Tickets())
}

func (r *Runner) reset() {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.pending == nil {
		r.machine.Reset()
		r.view.printf("reset\n")
		r.view.grid(r.machine.Catalog(), r.machine.Grid())
		return
	}
	id, m, err := r.sessions.Create()
	if err != nil {
		r.logger.Error("new session", zap.Error(err))
		r.view.printf("reset failed: %v\n", err)
		return
	}
	if err := r.sessions.Delete(r.id); err != nil {
		r.logger.Warn("drop session", zap.String("session", r.id), zap.Error(err))
	}
	r.id, r.machine, r.shop, r.pending = id, m, r.pending, nil
	r.view.printf("reset with reloaded config\n")
	r.view.grid(m.Catalog(), m.Grid())
}

func (r *Runner) warn(m *cycle.Machine) {
	if m.IsStuck() {
		r.view.printf("stuck: %d coins cannot cover what is owed. type fate or reset\n", m.Coins())
	}
}
