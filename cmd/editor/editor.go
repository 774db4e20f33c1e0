package main

import (
	"fmt"
	"log"
	"strings"

	ebuiinput "github.com/ebitenui/ebitenui/input"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/jakecoffman/cp"
	"github.com/milk9111/triggered/levels"
	"golang.design/x/clipboard"
)

const panSpeed = 10.0

// Editor is the Ebiten game for the level editor.
type Editor struct {
	ui      *EditorUI
	session *session
	names   []string
	tool    Tool

	camX, camY       float64
	screenW, screenH int
	newW, newH       int

	clipboardOK bool
	// confirmSwitch is set after a level switch was refused because of
	// unsaved changes; the next switch goes through.
	confirmSwitch bool
}

type EditorOptions struct {
	Names       []string
	Level       string
	New         bool
	NewW, NewH  int
	ClipboardOK bool
}

func NewEditor(opts EditorOptions) (*Editor, error) {
	e := &Editor{
		names:       append([]string(nil), opts.Names...),
		tool:        ToolWall,
		screenW:     1280,
		screenH:     720,
		newW:        opts.NewW,
		newH:        opts.NewH,
		clipboardOK: opts.ClipboardOK,
	}
	e.ui = BuildEditorUI(uiCallbacks{
		onTool:       func(t Tool) { e.tool = t },
		onName:       e.rename,
		onObjectives: e.setObjectives,
		onSave:       e.save,
		onCopy:       e.copyJSON,
		onPrev:       func() { e.step(-1) },
		onNext:       func() { e.step(1) },
		onNew:        e.newLevel,
	}, e.tool)

	switch {
	case opts.New:
		name := opts.Level
		if name == "" {
			name = e.freeName()
		}
		e.create(levels.Name(name))
	case opts.Level != "":
		if err := e.open(levels.Name(opts.Level)); err != nil {
			return nil, err
		}
	case len(e.names) > 0:
		if err := e.open(e.names[0]); err != nil {
			return nil, err
		}
	default:
		e.create(e.freeName())
	}
	return e, nil
}

func (e *Editor) open(name string) error {
	lvl, err := levels.Open(name)
	if err != nil {
		return err
	}
	e.load(name, lvl)
	e.setStatus("opened " + name)
	return nil
}

func (e *Editor) create(name string) {
	e.load(name, levels.New(name, e.newW, e.newH))
	e.session.dirty = true
	if e.indexOf(name) < 0 {
		e.names = append(e.names, name)
	}
	e.setStatus("new level " + name)
}

func (e *Editor) load(name string, lvl *levels.Level) {
	e.session = newSession(name, lvl)
	e.camX, e.camY = 0, 0
	e.confirmSwitch = false
	e.ui.name.SetText(lvl.Name)
	e.ui.objectives.SetText(strings.ReplaceAll(lvl.ObjectivesText(), "\n", "; "))
	e.refreshTitle()
}

func (e *Editor) indexOf(name string) int {
	for i, n := range e.names {
		if n == name {
			return i
		}
	}
	return -1
}

func (e *Editor) freeName() string {
	for i := len(e.names) + 1; ; i++ {
		name := fmt.Sprintf("level_%d", i)
		if e.indexOf(name) < 0 {
			return name
		}
	}
}

func (e *Editor) refreshTitle() {
	mark := ""
	if e.session.dirty {
		mark = " *"
	}
	idx := e.indexOf(e.session.name)
	e.ui.file.Label = fmt.Sprintf("%s.json (%d/%d)%s", e.session.name, idx+1, len(e.names), mark)
}

func (e *Editor) setStatus(msg string) {
	log.Printf("Editor: %s", msg)
	e.ui.status.Label = msg
}

func (e *Editor) rename(name string) {
	name = strings.TrimSpace(name)
	if name == "" || name == e.session.lvl.Name {
		return
	}
	e.session.lvl.Name = name
	e.session.dirty = true
	e.refreshTitle()
}

func (e *Editor) setObjectives(text string) {
	e.session.lvl.SetObjectives(strings.ReplaceAll(text, ";", "\n"))
	e.session.dirty = true
	e.ui.objectives.SetText(strings.ReplaceAll(e.session.lvl.ObjectivesText(), "\n", "; "))
	e.refreshTitle()
}

func (e *Editor) save() {
	// Pick up text that was typed but never submitted.
	e.rename(e.ui.name.GetText())
	path := levels.Path(e.session.name)
	if err := levels.Save(path, e.session.lvl); err != nil {
		e.setStatus(err.Error())
		return
	}
	e.session.dirty = false
	e.refreshTitle()
	e.setStatus("saved " + path)
}

func (e *Editor) copyJSON() {
	if !e.clipboardOK {
		e.setStatus("clipboard unavailable")
		return
	}
	data, err := levels.Encode(e.session.lvl)
	if err != nil {
		e.setStatus(err.Error())
		return
	}
	clipboard.Write(clipboard.FmtText, data)
	e.setStatus(fmt.Sprintf("copied %d bytes of JSON", len(data)))
}

func (e *Editor) step(delta int) {
	if len(e.names) == 0 {
		return
	}
	if e.session.dirty && !e.confirmSwitch {
		e.confirmSwitch = true
		e.setStatus("unsaved changes, click again to discard")
		return
	}
	idx := e.indexOf(e.session.name)
	next := ((idx+delta)%len(e.names) + len(e.names)) % len(e.names)
	if err := e.open(e.names[next]); err != nil {
		e.setStatus(err.Error())
	}
}

func (e *Editor) newLevel() {
	if e.session.dirty && !e.confirmSwitch {
		e.confirmSwitch = true
		e.setStatus("unsaved changes, click again to discard")
		return
	}
	e.create(e.freeName())
}

func (e *Editor) cursorWorld() (cp.Vector, bool) {
	mx, my := ebiten.CursorPosition()
	if mx < panelWidth || ebuiinput.UIHovered {
		return cp.Vector{}, false
	}
	return cp.Vector{X: float64(mx-panelWidth) + e.camX, Y: float64(my) + e.camY}, true
}

func (e *Editor) Update() error {
	e.ui.Update()

	ctrl := ebiten.IsKeyPressed(ebiten.KeyControl) || ebiten.IsKeyPressed(ebiten.KeyMeta)
	if ctrl && inpututil.IsKeyJustPressed(ebiten.KeyS) {
		e.save()
	}

	speed := panSpeed
	if ebiten.IsKeyPressed(ebiten.KeyShift) {
		speed *= 4
	}
	if ebiten.IsKeyPressed(ebiten.KeyArrowLeft) {
		e.camX -= speed
	}
	if ebiten.IsKeyPressed(ebiten.KeyArrowRight) {
		e.camX += speed
	}
	if ebiten.IsKeyPressed(ebiten.KeyArrowUp) {
		e.camY -= speed
	}
	if ebiten.IsKeyPressed(ebiten.KeyArrowDown) {
		e.camY += speed
	}

	p, ok := e.cursorWorld()
	if !ok {
		return nil
	}

	changed := false
	switch {
	case inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonLeft),
		e.tool.paints() && ebiten.IsMouseButtonPressed(ebiten.MouseButtonLeft):
		changed = e.session.apply(e.tool, p)
	case inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonRight),
		e.tool.paints() && ebiten.IsMouseButtonPressed(ebiten.MouseButtonRight):
		changed = e.session.remove(e.tool, p)
	}
	if changed {
		e.confirmSwitch = false
		e.refreshTitle()
	}
	return nil
}

func (e *Editor) Draw(screen *ebiten.Image) {
	e.drawCanvas(screen)
	e.ui.Draw(screen)
}

func (e *Editor) Layout(outsideWidth, outsideHeight int) (int, int) {
	e.screenW, e.screenH = outsideWidth, outsideHeight
	return outsideWidth, outsideHeight
}
