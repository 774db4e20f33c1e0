package main

import (
	"image/color"

	"golang.org/x/image/font/basicfont"

	"github.com/ebitenui/ebitenui"
	imageui "github.com/ebitenui/ebitenui/image"
	"github.com/ebitenui/ebitenui/widget"
	ebtext "github.com/hajimehoshi/ebiten/v2/text/v2"
)

var (
	white        = color.NRGBA{R: 0xff, G: 0xff, B: 0xff, A: 0xff}
	btnTextColor = &widget.ButtonTextColor{Idle: white, Disabled: color.NRGBA{R: 0x88, G: 0x88, B: 0x88, A: 0xff}}
)

type menuItem struct {
	label   string
	onClick func()
}

// newMenuUI builds a centered panel with a title and one button per item.
// Buttons use colored nine-slices and the built-in basic font, so no theme
// assets are required.
func newMenuUI(titleText string, w, h int, items []menuItem) *ebitenui.UI {
	panelImg := imageui.NewNineSliceColor(color.NRGBA{R: 0x00, G: 0x00, B: 0x00, A: 200})
	btnImg := imageui.NewNineSliceColor(color.NRGBA{R: 0x33, G: 0x33, B: 0x33, A: 255})
	hoverImg := imageui.NewNineSliceColor(color.NRGBA{R: 0x55, G: 0x55, B: 0x55, A: 255})

	var face ebtext.Face = ebtext.NewGoXFace(basicfont.Face7x13)

	title := widget.NewText(
		widget.TextOpts.Text(titleText, &face, white),
		widget.TextOpts.WidgetOpts(widget.WidgetOpts.LayoutData(widget.RowLayoutData{Position: widget.RowLayoutPositionCenter})),
	)

	panel := widget.NewContainer(
		widget.ContainerOpts.BackgroundImage(panelImg),
		widget.ContainerOpts.Layout(widget.NewRowLayout(
			widget.RowLayoutOpts.Direction(widget.DirectionVertical),
			widget.RowLayoutOpts.Spacing(10),
			widget.RowLayoutOpts.Padding(&widget.Insets{Top: 20, Bottom: 20, Left: 30, Right: 30}),
		)),
		widget.ContainerOpts.WidgetOpts(
			widget.WidgetOpts.MinSize(w/3, h/3),
			widget.WidgetOpts.LayoutData(widget.AnchorLayoutData{HorizontalPosition: widget.AnchorLayoutPositionCenter, VerticalPosition: widget.AnchorLayoutPositionCenter}),
		),
	)
	panel.AddChild(title)

	for _, item := range items {
		onClick := item.onClick
		panel.AddChild(widget.NewButton(
			widget.ButtonOpts.Image(&widget.ButtonImage{Idle: btnImg, Hover: hoverImg, Pressed: btnImg}),
			widget.ButtonOpts.Text(item.label, &face, btnTextColor),
			widget.ButtonOpts.WidgetOpts(widget.WidgetOpts.LayoutData(widget.RowLayoutData{Position: widget.RowLayoutPositionCenter, Stretch: true})),
			widget.ButtonOpts.ClickedHandler(func(args *widget.ButtonClickedEventArgs) {
				onClick()
			}),
		))
	}

	root := widget.NewContainer(
		widget.ContainerOpts.Layout(widget.NewAnchorLayout()),
	)
	root.AddChild(panel)

	return &ebitenui.UI{Container: root}
}

// NewPauseUI builds the pause menu: Resume, Restart and Main menu.
func NewPauseUI(g *Game) *ebitenui.UI {
	return newMenuUI("Paused", g.screenW, g.screenH, []menuItem{
		{"Resume", g.resume},
		{"Restart level", g.restart},
		{"Main menu", g.toMenu},
	})
}

// NewMainMenuUI lists every level; picking one starts the run there.
func NewMainMenuUI(g *Game) *ebitenui.UI {
	names := g.manager.Names()
	items := make([]menuItem, 0, len(names)+1)
	for _, name := range names {
		name := name
		items = append(items, menuItem{name, func() { g.start(name) }})
	}
	items = append(items, menuItem{"Quit", g.quit})
	return newMenuUI("triggered", g.screenW, g.screenH, items)
}
