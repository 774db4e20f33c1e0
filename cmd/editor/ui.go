package main

import (
	"bytes"
	"image/color"

	"github.com/ebitenui/ebitenui"
	"github.com/ebitenui/ebitenui/image"
	"github.com/ebitenui/ebitenui/widget"
	"github.com/hajimehoshi/ebiten/v2/text/v2"
	"golang.org/x/image/font/gofont/goregular"
)

const panelWidth = 240

// solidNineSlice returns a solid color *image.NineSlice for widget backgrounds.
func solidNineSlice(c color.Color) *image.NineSlice {
	return image.NewNineSliceColor(c)
}

type uiCallbacks struct {
	onTool       func(Tool)
	onName       func(string)
	onObjectives func(string)
	onSave       func()
	onCopy       func()
	onPrev       func()
	onNext       func()
	onNew        func()
}

// EditorUI holds the widgets the editor updates after building.
type EditorUI struct {
	*ebitenui.UI

	group      *widget.RadioGroup
	tools      []*widget.Button
	name       *widget.TextInput
	objectives *widget.TextInput
	file       *widget.Text
	status     *widget.Text
}

func (u *EditorUI) SetTool(t Tool) {
	if idx := int(t); idx >= 0 && idx < len(u.tools) {
		u.group.SetActive(u.tools[idx])
	}
}

func BuildEditorUI(cb uiCallbacks, initialTool Tool) *EditorUI {
	s, err := text.NewGoTextFaceSource(bytes.NewReader(goregular.TTF))
	if err != nil {
		panic("Failed to load font: " + err.Error())
	}
	var fontFace text.Face = &text.GoTextFace{Source: s, Size: 14}

	buttonImage := &widget.ButtonImage{
		Idle:    solidNineSlice(color.RGBA{180, 180, 180, 255}),
		Hover:   solidNineSlice(color.RGBA{200, 200, 200, 255}),
		Pressed: solidNineSlice(color.RGBA{120, 140, 220, 255}),
	}
	buttonTextColor := &widget.ButtonTextColor{
		Idle:     color.Black,
		Hover:    color.Black,
		Pressed:  color.RGBA{0, 0, 200, 255},
		Disabled: color.Gray{Y: 128},
	}
	labelColor := &widget.LabelColor{Idle: color.White, Disabled: color.Gray{Y: 140}}

	panel := widget.NewContainer(
		widget.ContainerOpts.WidgetOpts(
			widget.WidgetOpts.MinSize(panelWidth, 400),
			widget.WidgetOpts.LayoutData(widget.AnchorLayoutData{
				HorizontalPosition: widget.AnchorLayoutPositionStart,
				VerticalPosition:   widget.AnchorLayoutPositionCenter,
				StretchVertical:    true,
			}),
		),
		widget.ContainerOpts.BackgroundImage(solidNineSlice(color.RGBA{40, 40, 40, 255})),
		widget.ContainerOpts.Layout(
			widget.NewRowLayout(
				widget.RowLayoutOpts.Direction(widget.DirectionVertical),
				widget.RowLayoutOpts.Spacing(8),
				widget.RowLayoutOpts.Padding(&widget.Insets{Top: 10, Bottom: 10, Left: 10, Right: 10}),
			),
		),
	)

	label := func(s string) {
		panel.AddChild(widget.NewLabel(widget.LabelOpts.Text(s, &fontFace, labelColor)))
	}
	button := func(s string, onClick func()) *widget.Button {
		return widget.NewButton(
			widget.ButtonOpts.Image(buttonImage),
			widget.ButtonOpts.Text(s, &fontFace, buttonTextColor),
			widget.ButtonOpts.WidgetOpts(widget.WidgetOpts.MinSize(64, 28)),
			widget.ButtonOpts.ClickedHandler(func(args *widget.ButtonClickedEventArgs) {
				if onClick != nil {
					onClick()
				}
			}),
		)
	}
	row := func(children ...widget.PreferredSizeLocateableWidget) {
		c := widget.NewContainer(widget.ContainerOpts.Layout(widget.NewRowLayout(
			widget.RowLayoutOpts.Direction(widget.DirectionHorizontal),
			widget.RowLayoutOpts.Spacing(6),
		)))
		for _, ch := range children {
			c.AddChild(ch)
		}
		panel.AddChild(c)
	}
	textInput := func(onSubmit func(string)) *widget.TextInput {
		in := widget.NewTextInput(
			widget.TextInputOpts.WidgetOpts(widget.WidgetOpts.MinSize(panelWidth-20, 28)),
			widget.TextInputOpts.Image(&widget.TextInputImage{
				Idle:     solidNineSlice(color.RGBA{245, 245, 245, 255}),
				Disabled: solidNineSlice(color.RGBA{200, 200, 200, 255}),
			}),
			widget.TextInputOpts.Color(&widget.TextInputColor{
				Idle:     color.Black,
				Disabled: color.Gray{Y: 120},
				Caret:    color.Black,
			}),
			widget.TextInputOpts.Face(&fontFace),
			widget.TextInputOpts.SubmitOnEnter(true),
			widget.TextInputOpts.SubmitHandler(func(args *widget.TextInputChangedEventArgs) {
				if onSubmit != nil {
					onSubmit(args.InputText)
				}
			}),
		)
		panel.AddChild(in)
		return in
	}

	file := widget.NewText(widget.TextOpts.Text("", &fontFace, color.White))
	panel.AddChild(file)

	label("Tools")
	var tools []*widget.Button
	for i := 0; i < len(toolNames); i += 3 {
		var line []widget.PreferredSizeLocateableWidget
		for j := i; j < i+3 && j < len(toolNames); j++ {
			b := widget.NewButton(
				widget.ButtonOpts.Image(buttonImage),
				widget.ButtonOpts.Text(toolNames[j], &fontFace, buttonTextColor),
				widget.ButtonOpts.ToggleMode(),
				widget.ButtonOpts.WidgetOpts(widget.WidgetOpts.MinSize(68, 32)),
			)
			tools = append(tools, b)
			line = append(line, b)
		}
		row(line...)
	}

	elements := make([]widget.RadioGroupElement, 0, len(tools))
	for _, b := range tools {
		elements = append(elements, b)
	}
	group := widget.NewRadioGroup(
		widget.RadioGroupOpts.Elements(elements...),
		widget.RadioGroupOpts.ChangedHandler(func(args *widget.RadioGroupChangedEventArgs) {
			if cb.onTool == nil {
				return
			}
			for idx, b := range tools {
				if args.Active == b {
					cb.onTool(Tool(idx))
					return
				}
			}
		}),
	)

	label("Name")
	name := textInput(cb.onName)
	label("Objectives (text | condition; ...)")
	objectives := textInput(cb.onObjectives)

	row(button("Save", cb.onSave), button("Copy JSON", cb.onCopy))
	row(button("< Prev", cb.onPrev), button("Next >", cb.onNext), button("New", cb.onNew))

	status := widget.NewText(widget.TextOpts.Text("", &fontFace, color.RGBA{255, 220, 120, 255}))
	panel.AddChild(status)

	root := widget.NewContainer(widget.ContainerOpts.Layout(widget.NewAnchorLayout()))
	root.AddChild(panel)

	u := &EditorUI{
		UI:         &ebitenui.UI{Container: root},
		group:      group,
		tools:      tools,
		name:       name,
		objectives: objectives,
		file:       file,
		status:     status,
	}
	u.SetTool(initialTool)
	return u
}
