package app

import (
	"fmt"
	"math/rand/v2"

	"github.com/lixenwraith/termfolio/audio"
	"github.com/lixenwraith/termfolio/engine"
	"github.com/lixenwraith/termfolio/games/blocks"
	"github.com/lixenwraith/termfolio/games/cards"
	"github.com/lixenwraith/termfolio/games/narrative"
	"github.com/lixenwraith/termfolio/input"
	"github.com/lixenwraith/termfolio/render"
)

// GameKind names the minigame mounted in the game section
type GameKind string

const (
	GameBlocks GameKind = "blocks"
	GameCards  GameKind = "cards"
	GameStory  GameKind = "mega"
)

// ParseGame accepts a play argument
func ParseGame(s string) (GameKind, bool) {
	switch GameKind(s) {
	case GameBlocks, "tetris":
		return GameBlocks, true
	case GameCards, "roguelite":
		return GameCards, true
	case GameStory, "megastructure", "story":
		return GameStory, true
	}
	return "", false
}

// mountGame tears down the current minigame and mounts kind
// Every timer and subscription of the previous game is released before the new one starts
func (a *App) mountGame(kind GameKind) {
	if a.gameTeardown != nil {
		a.gameTeardown.Run()
	}
	a.blocks, a.cards, a.story = nil, nil, nil
	if a.focus == focusGame {
		a.setFocus(focusPage)
	}
	a.refocus = false

	td := &engine.Teardown{}
	a.gameTeardown = td
	a.game = kind

	switch kind {
	case GameBlocks:
		rng := rand.New(rand.NewPCG(a.rng.Uint64(), a.rng.Uint64()))
		g := blocks.NewGame(a.cfg.Blocks.Game(), rng)
		sess := blocks.NewSession(g, a.clock, a.dispatch, a.onBlocksTick)
		td.Add(sess.Close)
		a.blocks = sess
	case GameCards:
		a.cards = cards.NewGame(a.cfg.Cards.Game(), a.store, a.rng.Uint64())
	case GameStory:
		sess := narrative.NewSession(a.graph, a.store, a.clock, a.dispatch, a.cfg.Narrative.StatMax)
		sess.Restore()
		td.Add(sess.Close)
		a.story = sess
	default:
		panic(fmt.Sprintf("app: unknown game %q", kind))
	}
	a.syncGameView()
}

func (a *App) onBlocksTick(res blocks.TickResult) {
	switch {
	case res.Over:
		a.play(audio.CueGameOver)
	case res.Cleared > 0:
		a.play(audio.CueClear)
	case res.Locked:
		a.play(audio.CueLock)
	}
	a.dirty = true
}

// gameMode returns the key table for the mounted game
func (a *App) gameMode() input.InputMode {
	switch a.game {
	case GameCards:
		return input.ModeCards
	case GameStory:
		return input.ModeStory
	default:
		return input.ModeBlocks
	}
}

// syncGameView pushes visibility and focus to the mounted game
// Focus lost by scrolling away returns when the game is back in view, unless the user moved it since
func (a *App) syncGameView() {
	inView := a.gameVisible()
	switch {
	case !inView && a.focus == focusGame:
		a.setFocus(focusPage)
		a.refocus = true
	case inView && a.refocus && a.focus == focusPage:
		a.setFocus(focusGame)
	}
	if a.blocks != nil {
		a.blocks.SetInView(inView)
		a.blocks.SetFocus(a.focus == focusGame)
	}
}

func (a *App) gameVisible() bool {
	return render.GameView(a.layout, a.scroll) > visibilityThreshold
}

// enterGame gives the mounted game keyboard focus
func (a *App) enterGame() {
	a.setFocus(focusGame)
	if a.blocks != nil {
		a.blocks.Enter()
	}
}

func (a *App) playCard(slot int) {
	if a.cards == nil {
		return
	}
	if !a.cards.Play(slot) {
		return
	}
	a.play(audio.CueCardPlay)
	if s := a.cards.State(); s.Over {
		if s.Win {
			a.play(audio.CueWin)
		} else {
			a.play(audio.CueLose)
		}
	}
}

func (a *App) choose(i int) {
	if a.story != nil && a.story.Choose(i) {
		a.play(audio.CueChoice)
	}
}

func (a *App) collectShard() {
	if a.story != nil {
		a.story.CollectShard()
		a.play(audio.CueShard)
	}
}

func (a *App) restartGame() {
	switch {
	case a.blocks != nil:
		a.blocks.Restart()
		a.setFocus(focusGame)
	case a.cards != nil:
		a.cards.Reset()
	}
}

func (a *App) handleGameIntent(in *input.Intent) {
	switch in.Type {
	case input.IntentMoveLeft:
		a.withBlocks((*blocks.Session).MoveLeft)
	case input.IntentMoveRight:
		a.withBlocks((*blocks.Session).MoveRight)
	case input.IntentRotate:
		a.withBlocks((*blocks.Session).Rotate)
	case input.IntentSoftDrop:
		a.withBlocks((*blocks.Session).SoftDrop)
	case input.IntentHardDrop:
		a.withBlocks((*blocks.Session).HardDrop)
	case input.IntentPause:
		a.withBlocks((*blocks.Session).TogglePause)
	case input.IntentRestart:
		a.restartGame()
	case input.IntentSelect:
		if a.cards != nil {
			a.playCard(in.Slot)
		} else {
			a.choose(in.Slot)
		}
	}
}

func (a *App) withBlocks(fn func(*blocks.Session) bool) {
	if a.blocks != nil {
		fn(a.blocks)
	}
}
