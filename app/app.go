// Package app hosts the terminal portfolio: it owns the screen, routes
// input to the prompt, the page and the mounted minigame, and redraws.
package app

import (
	"context"
	"fmt"
	"math/rand/v2"
	"regexp"
	"strings"

	"github.com/gdamore/tcell/v2"
	"github.com/jonboulle/clockwork"

	"github.com/lixenwraith/termfolio/audio"
	"github.com/lixenwraith/termfolio/command"
	"github.com/lixenwraith/termfolio/config"
	"github.com/lixenwraith/termfolio/constants"
	"github.com/lixenwraith/termfolio/content"
	"github.com/lixenwraith/termfolio/engine"
	"github.com/lixenwraith/termfolio/games/blocks"
	"github.com/lixenwraith/termfolio/games/cards"
	"github.com/lixenwraith/termfolio/games/narrative"
	"github.com/lixenwraith/termfolio/input"
	"github.com/lixenwraith/termfolio/render"
	"github.com/lixenwraith/termfolio/section"
	"github.com/lixenwraith/termfolio/store"
	"github.com/lixenwraith/termfolio/theme"
)

const (
	focusPrompt = render.FocusPrompt
	focusPage   = render.FocusPage
	focusGame   = render.FocusGame

	visibilityThreshold = constants.VisibilityThreshold

	// taskQueueSize bounds callbacks posted by timers between loop iterations
	taskQueueSize = 64

	historyLimit = 50
)

var playCommand = regexp.MustCompile(`^play\s+(\S+)$`)

// Options are the collaborators of an App
type Options struct {
	Config *config.Config
	Store  store.Store
	Audio  audio.Player
	Clock  clockwork.Clock
	Seed   uint64
	Game   GameKind
}

// App is the host; all state is owned by the loop goroutine
type App struct {
	screen   tcell.Screen
	clock    clockwork.Clock
	cfg      *config.Config
	store    store.Store
	audio    audio.Player
	sound    bool
	rng      *rand.Rand
	tasks    chan func()
	dispatch engine.Dispatcher

	themes      *theme.Registry
	token       theme.Token
	unsubscribe func()

	doc      *content.Document
	layout   *content.Layout
	geom     render.Geometry
	scroll   int
	tracker  *section.Tracker
	router   *command.Router
	machine  *input.Machine
	renderer *render.Renderer
	hits     *render.Hits

	focus   render.Focus
	refocus bool
	term    *Transcript
	input   string
	history []string
	histPos int

	graph        *narrative.Graph
	game         GameKind
	blocks       *blocks.Session
	cards        *cards.Game
	story        *narrative.Session
	gameTeardown *engine.Teardown

	dirty bool
	quit  bool
}

// New builds an App drawing to screen; the screen must already be initialized
func New(screen tcell.Screen, opts Options) (*App, error) {
	cfg := opts.Config
	if cfg == nil {
		cfg = config.DefaultConfig()
	}
	st := opts.Store
	if st == nil {
		st = store.Unavailable{}
	}
	player := opts.Audio
	if player == nil {
		player = audio.Silent{}
	}
	clock := opts.Clock
	if clock == nil {
		clock = clockwork.NewRealClock()
	}

	doc, err := content.Load(section.Default, cfg.CacheSize)
	if err != nil {
		return nil, fmt.Errorf("loading page content: %w", err)
	}
	graph, err := narrative.DefaultGraph()
	if err != nil {
		return nil, fmt.Errorf("loading story: %w", err)
	}
	keys, err := input.LoadKeyConfig(cfg.Keys)
	if err != nil {
		return nil, fmt.Errorf("loading keymap: %w", err)
	}

	tasks := make(chan func(), taskQueueSize)
	a := &App{
		screen:   screen,
		clock:    clock,
		cfg:      cfg,
		store:    st,
		audio:    player,
		sound:    cfg.Sound,
		rng:      rand.New(rand.NewPCG(opts.Seed, opts.Seed^0x9e3779b97f4a7c15)),
		tasks:    tasks,
		dispatch: engine.DispatchFunc(func(fn func()) { tasks <- fn }),
		doc:      doc,
		tracker:  section.NewTracker(section.Default),
		machine:  input.NewMachine(),
		renderer: render.NewRenderer(),
		hits:     &render.Hits{},
		term:     NewTranscript(constants.TranscriptLimit),
		graph:    graph,
		focus:    focusPrompt,
	}
	a.machine.SetKeyTable(keys)

	a.themes = theme.NewRegistry(st, theme.Key(cfg.Theme))
	a.token = a.themes.Restore()
	a.unsubscribe = a.themes.Subscribe(func(t theme.Token) {
		a.token = t
		a.play(audio.CueTheme)
	})
	a.router = command.NewRouter(section.Default, func(k string) { a.themes.Apply(k) }, a, a)

	a.resize()
	game := opts.Game
	if game == "" {
		game = GameBlocks
	}
	a.mountGame(game)
	a.dirty = true
	return a, nil
}

// Run processes events until quit or ctx is done
func (a *App) Run(ctx context.Context) error {
	a.screen.EnableMouse()
	a.screen.EnableFocus()

	events := make(chan tcell.Event, 100)
	go func() {
		for {
			ev := a.screen.PollEvent()
			if ev == nil {
				close(events)
				return
			}
			events <- ev
		}
	}()

	frame := a.clock.NewTicker(constants.FrameUpdateInterval)
	defer frame.Stop()
	a.Draw()

	for !a.quit {
		select {
		case <-ctx.Done():
			return nil
		case ev, ok := <-events:
			if !ok {
				return nil
			}
			a.HandleEvent(ev)
		case fn := <-a.tasks:
			fn()
			a.dirty = true
		case <-frame.Chan():
			if a.dirty {
				a.Draw()
			}
		}
	}
	return nil
}

// Close releases the mounted game, the theme subscription and audio
func (a *App) Close() {
	if a.gameTeardown != nil {
		a.gameTeardown.Run()
	}
	if a.unsubscribe != nil {
		a.unsubscribe()
	}
	a.audio.Close()
}

// Quit reports whether a quit was requested
func (a *App) Quit() bool { return a.quit }

// Draw renders the current state and records hit regions
func (a *App) Draw() {
	a.hits = a.renderer.Draw(a.screen, a.frame())
	a.screen.Show()
	a.dirty = false
}

func (a *App) frame() render.Frame {
	return render.Frame{
		Token:   a.token,
		Catalog: section.Default,
		Layout:  a.layout,
		Scroll:  a.scroll,
		Current: a.tracker.Current(),
		Terminal: render.Terminal{
			Lines:   a.term.Lines(),
			Input:   a.input,
			Buttons: QuickCommands,
		},
		Focus:  a.focus,
		Sound:  a.sound,
		Blocks: a.blocksGame(),
		Cards:  a.cards,
		Story:  a.story,
	}
}

func (a *App) blocksGame() *blocks.Game {
	if a.blocks == nil {
		return nil
	}
	return a.blocks.Game()
}

// HandleEvent applies one tcell event
func (a *App) HandleEvent(ev tcell.Event) {
	a.dirty = true
	in := a.machine.Process(ev)
	if in == nil {
		return
	}
	a.handleIntent(in)
}

func (a *App) handleIntent(in *input.Intent) {
	switch in.Type {
	case input.IntentQuit:
		a.quit = true
	case input.IntentResize:
		a.resize()
		a.screen.Sync()
	case input.IntentHostFocus:
		if a.blocks != nil {
			a.blocks.SetHostVisible(in.Visible)
		}
	case input.IntentToggleSound:
		a.sound = !a.sound
		if a.sound {
			a.term.Append("sound on")
		} else {
			a.term.Append("sound off")
		}
	case input.IntentEscape:
		switch a.focus {
		case focusGame:
			a.setFocus(focusPage)
		case focusPrompt:
			a.input = ""
		}
	case input.IntentCycleFocus:
		if a.focus == focusPrompt {
			a.setFocus(focusPage)
		} else {
			a.setFocus(focusPrompt)
		}

	case input.IntentTextChar:
		a.input += string(in.Char)
	case input.IntentTextBackspace:
		if r := []rune(a.input); len(r) > 0 {
			a.input = string(r[:len(r)-1])
		}
	case input.IntentTextSubmit:
		a.Submit(a.input)
	case input.IntentHistoryPrev:
		a.recall(-1)
	case input.IntentHistoryNext:
		a.recall(1)

	case input.IntentScroll, input.IntentWheel:
		a.setScroll(a.scroll + in.Delta)
	case input.IntentScrollPage:
		a.setScroll(a.scroll + in.Delta*max(1, a.geom.PageHeight-2))
	case input.IntentScrollTop:
		a.ScrollToSection(0)
	case input.IntentScrollEnd:
		a.setScroll(a.layout.MaxScroll())
	case input.IntentStepSection:
		next := a.tracker.Current() + in.Delta
		if section.Default.Valid(next) {
			a.ScrollToSection(next)
		}

	case input.IntentClick:
		a.click(in.X, in.Y)

	default:
		a.handleGameIntent(in)
	}
}

// Submit runs a prompt command the way the terminal window does
func (a *App) Submit(raw string) {
	trim := strings.TrimSpace(raw)
	a.input = ""
	if trim == "" {
		return
	}
	a.term.Append(constants.Prompt + " " + trim)
	a.remember(trim)

	if trim == "clear" {
		a.term.Clear()
		return
	}
	if m := playCommand.FindStringSubmatch(strings.ToLower(trim)); m != nil {
		if kind, ok := ParseGame(m[1]); ok {
			a.term.Append("loading " + string(kind) + "…")
			a.mountGame(kind)
			a.ScrollToSection(a.gameSection())
			return
		}
	}

	act := a.router.Handle(trim)
	a.term.Echo(trim, act, section.Default)
}

func (a *App) remember(cmd string) {
	if n := len(a.history); n == 0 || a.history[n-1] != cmd {
		a.history = append(a.history, cmd)
		if len(a.history) > historyLimit {
			a.history = a.history[1:]
		}
	}
	a.histPos = len(a.history)
}

func (a *App) recall(step int) {
	pos := a.histPos + step
	if pos < 0 || pos > len(a.history) {
		return
	}
	a.histPos = pos
	if pos == len(a.history) {
		a.input = ""
		return
	}
	a.input = a.history[pos]
}

func (a *App) click(x, y int) {
	target, ok := a.hits.At(x, y)
	if !ok {
		if y >= a.geom.PageTop && y < a.geom.TerminalTop {
			a.setFocus(focusPage)
		}
		return
	}

	switch target.Kind {
	case render.TargetSection:
		a.ScrollToSection(target.Index)
	case render.TargetHome:
		a.ScrollToSection(0)
	case render.TargetLink:
		a.term.Append("open " + target.Text)
	case render.TargetGame:
		a.enterGame()
	case render.TargetResume:
		a.setFocus(focusGame)
		a.withBlocks((*blocks.Session).Resume)
	case render.TargetRestart, render.TargetCardReset:
		a.restartGame()
	case render.TargetCard:
		a.setFocus(focusGame)
		a.playCard(target.Index)
	case render.TargetChoice:
		a.setFocus(focusGame)
		a.choose(target.Index)
	case render.TargetShard:
		a.collectShard()
	case render.TargetPrompt:
		a.setFocus(focusPrompt)
	case render.TargetRun:
		a.Submit(a.input)
	case render.TargetButton:
		a.setFocus(focusPrompt)
		a.Submit(target.Text)
	}
}

func (a *App) setFocus(f render.Focus) {
	a.focus = f
	a.refocus = false
	switch f {
	case focusPrompt:
		a.machine.SetMode(input.ModePrompt)
	case focusPage:
		a.machine.SetMode(input.ModePage)
	case focusGame:
		a.machine.SetMode(a.gameMode())
	}
	if a.blocks != nil {
		a.blocks.SetFocus(f == focusGame)
	}
}

// resize recomputes geometry and layout, keeping the current section in place
func (a *App) resize() {
	w, h := a.screen.Size()
	a.geom = render.Measure(w, h)
	a.layout = a.doc.Layout(a.geom.ContentWidth, a.geom.PageHeight)
	cur := a.tracker.Current()
	if cur > 0 && cur < len(a.layout.Anchors) {
		a.setScroll(a.layout.Anchors[cur])
		return
	}
	a.setScroll(a.scroll)
}

func (a *App) setScroll(y int) {
	a.scroll = max(0, min(y, a.layout.MaxScroll()))
	a.tracker.Update(a.scroll, a.layout.Viewport, a.layout.Anchors)
	a.syncGameView()
}

// ScrollToSection brings section i to the top of the page viewport
func (a *App) ScrollToSection(i int) {
	if !section.Default.Valid(i) || i >= len(a.layout.Anchors) {
		return
	}
	a.setScroll(a.layout.Anchors[i])
	a.tracker.Set(i)
}

// ScrollToRow brings a layout row to the top of the page viewport
func (a *App) ScrollToRow(row int) {
	a.setScroll(row)
}

// Resolve maps a structural selector to a layout row
func (a *App) Resolve(selector string) (int, bool) {
	return a.layout.Resolve(selector)
}

func (a *App) gameSection() int {
	i, _ := section.Default.IndexOf("game")
	return i
}

func (a *App) play(c audio.Cue) {
	if a.sound {
		a.audio.Play(c)
	}
}
