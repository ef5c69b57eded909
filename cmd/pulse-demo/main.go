// Package main is a terminal demo of the pulse engine: a tcell screen
// feeds key events cross-thread into a host loop that routes them
// through a small widget tree and repaints on render requests.
package main

import (
	"flag"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/gdamore/tcell/v2"
	"github.com/rs/zerolog"

	"github.com/dshills/pulse/internal/config"
	"github.com/dshills/pulse/internal/delivery"
	"github.com/dshills/pulse/internal/event"
	"github.com/dshills/pulse/internal/handle"
	"github.com/dshills/pulse/internal/host"
	"github.com/dshills/pulse/internal/id"
	"github.com/dshills/pulse/internal/update"
)

// Version information (set via ldflags during build).
var (
	version = "dev"
	commit  = "unknown"
)

func main() {
	os.Exit(run())
}

// keyPressArgs is the payload of the demo's key-press channel. Keys
// route to the focused widget; the tree position is resolved at
// delivery time.
type keyPressArgs struct {
	event.ArgsBase

	Rune  rune
	Focus id.WidgetID
}

func (a *keyPressArgs) DeliveryList(list *delivery.List) {
	list.SearchWidget(a.Focus)
}

func run() int {
	opts := parseFlags()

	cfg, err := loadConfig(opts.configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return 1
	}

	level, err := zerolog.ParseLevel(cfg.Log.Level)
	if err != nil {
		level = zerolog.InfoLevel
	}
	logFile, err := os.OpenFile("pulse-demo.log", os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: failed to open log file: %v\n", err)
		return 1
	}
	defer logFile.Close()
	log := zerolog.New(logFile).Level(level).With().Timestamp().Logger()

	ctx := host.New(host.WithConfig(cfg), host.WithLogger(log))
	defer ctx.Teardown()

	screen, err := tcell.NewScreen()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: failed to create screen: %v\n", err)
		return 1
	}
	if err := screen.Init(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: failed to init screen: %v\n", err)
		return 1
	}
	defer screen.Fini()

	signals := make(chan os.Signal, 1)
	signal.Notify(signals, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		<-signals
		ctx.Teardown()
		ctx.Wake()
	}()

	demo := newDemo(ctx, screen)
	demo.start()

	ctx.Loop(demo.pass)
	return 0
}

// demo wires the channels, the widget tree and the screen together.
type demo struct {
	ctx    *host.Context
	screen tcell.Screen

	keyPress event.Event[*keyPressArgs]
	tree     *demoTree
	window   id.WindowID
	root     id.WidgetID
	panel    id.WidgetID
	button   id.WidgetID

	subs    handle.Handles
	presses int
	lastKey rune
	frames  int
	started time.Time
}

func newDemo(ctx *host.Context, screen tcell.Screen) *demo {
	window := id.NamedWindowID("main")
	root := id.NamedWidgetID("root")
	panel := id.NamedWidgetID("panel")
	button := id.NamedWidgetID("button")

	return &demo{
		ctx:      ctx,
		screen:   screen,
		keyPress: event.New[*keyPressArgs](ctx.Registry(), "demo.key_press"),
		tree:     newDemoTree(window, root, panel, button),
		window:   window,
		root:     root,
		panel:    panel,
		button:   button,
		started:  time.Now(),
	}
}

// start subscribes the button, registers handlers and launches the
// tcell poll goroutine that feeds the engine cross-thread.
func (d *demo) start() {
	d.subs.Push(d.keyPress.Subscribe(d.button))
	d.subs.Push(d.keyPress.OnEvent(func(a *keyPressArgs) {
		d.presses++
		d.lastKey = a.Rune
		d.ctx.Updates().Render()
	}))
	d.ctx.OnTeardown(d.subs.Clear)

	// Initial frame.
	d.ctx.Updates().Render()

	sender := d.keyPress.Sender(d.ctx)
	go func() {
		for {
			ev := d.screen.PollEvent()
			if ev == nil {
				return
			}
			switch tev := ev.(type) {
			case *tcell.EventKey:
				if tev.Key() == tcell.KeyEscape || tev.Key() == tcell.KeyCtrlC {
					d.ctx.Teardown()
					d.ctx.Wake()
					return
				}
				args := &keyPressArgs{
					ArgsBase: event.NewArgsBase(),
					Rune:     tev.Rune(),
					Focus:    d.button,
				}
				if !sender.Send(args) {
					return
				}
			case *tcell.EventResize:
				d.ctx.SendUpdate()
			}
		}
	}()
}

// pass is the loop body: deliver envelopes through the tree, then
// repaint when a frame was requested.
func (d *demo) pass(cu update.ContextUpdates) bool {
	for _, u := range cu.Events {
		u.FulfillSearch(d.tree)
		u.CallPreActions()
		list := u.DeliveryList()
		if list.EnterWindow(d.window) {
			for _, w := range []id.WidgetID{d.root, d.panel, d.button} {
				if !list.EnterWidget(w) {
					continue
				}
				if a, ok := d.keyPress.On(u); ok {
					d.ctx.Log().Trace().
						Stringer("widget", w).
						Str("key", string(a.Rune)).
						Msg("key delivered")
				}
			}
		}
		u.CallPosActions()
	}

	if cu.Update && cu.UpdateWidgets != nil {
		cu.UpdateWidgets.FulfillSearch(d.tree)
	}
	if !cu.Render.IsNone() {
		d.frames++
		d.draw()
	}
	return !d.ctx.IsClosed()
}

func (d *demo) draw() {
	d.screen.Clear()
	style := tcell.StyleDefault
	lines := []string{
		fmt.Sprintf("pulse demo %s (%s)", version, commit),
		"",
		fmt.Sprintf("key presses: %d", d.presses),
		fmt.Sprintf("last key:    %q", d.lastKey),
		fmt.Sprintf("frames:      %d", d.frames),
		fmt.Sprintf("uptime:      %s", time.Since(d.started).Round(time.Second)),
		"",
		"type to raise events, ESC to quit",
	}
	for y, line := range lines {
		for x, r := range line {
			d.screen.SetContent(x+2, y+1, r, nil, style)
		}
	}
	d.screen.Show()
}

type options struct {
	configPath string
}

func parseFlags() options {
	var opts options
	var showVersion bool

	flag.StringVar(&opts.configPath, "config", "", "Path to configuration file (.yaml or .toml)")
	flag.StringVar(&opts.configPath, "c", "", "Path to configuration file (shorthand)")
	flag.BoolVar(&showVersion, "version", false, "Show version information")
	flag.BoolVar(&showVersion, "v", false, "Show version information (shorthand)")

	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "pulse-demo - event engine terminal demo\n\n")
		fmt.Fprintf(os.Stderr, "Usage: pulse-demo [options]\n\n")
		fmt.Fprintf(os.Stderr, "Options:\n")
		flag.PrintDefaults()
	}

	flag.Parse()

	if showVersion {
		fmt.Printf("pulse-demo %s\n", version)
		fmt.Printf("Commit: %s\n", commit)
		os.Exit(0)
	}

	return opts
}

func loadConfig(path string) (config.Config, error) {
	if path == "" {
		return config.Default(), nil
	}
	if strings.HasSuffix(path, ".toml") {
		return config.LoadTOML(path)
	}
	return config.LoadYAML(path)
}
