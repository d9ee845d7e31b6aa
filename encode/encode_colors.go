package encode

import (
	"strings"

	"github.com/signadot/backloop/snode"

	"github.com/fatih/color"
)

type Colorable struct {
	Kind snode.Kind
	Attr ColorAttr
}

type ColorAttr int

const (
	TypeColor ColorAttr = iota
	FieldColor
	ValueColor
	SepColor
	PathColor
)

type Colors struct {
	Default func(string, ...any) string
	Map     map[Colorable]func(string, ...any) string
}

func NewColors() *Colors {
	colors := &Colors{
		Default: colorDefault,
		Map:     map[Colorable]func(string, ...any) string{},
	}
	for _, k := range snode.Kinds() {
		able := Colorable{Kind: k, Attr: TypeColor}
		colors.Map[able] = color.RGB(74, 92, 138).SprintfFunc()
		able.Attr = SepColor
		colors.Map[able] = color.RGB(255, 0, 196).SprintfFunc()
		able.Attr = PathColor
		colors.Map[able] = color.RGB(128, 168, 196).SprintfFunc()
	}
	able := Colorable{Attr: ValueColor}

	able.Kind = snode.NumberKind
	colors.Map[able] = color.RGB(128, 216, 236).SprintfFunc()

	able.Kind = snode.NullKind
	colors.Map[able] = color.RGB(168, 0, 196).SprintfFunc()
	able.Kind = snode.UndefinedKind
	colors.Map[able] = color.RGB(96, 96, 96).SprintfFunc()

	able.Kind = snode.BoolKind
	colors.Map[able] = color.CyanString

	able.Kind = snode.StringKind
	colors.Map[able] = color.RGB(8, 196, 16).SprintfFunc()

	able.Kind = snode.MappingKind
	able.Attr = FieldColor
	colors.Map[able] = color.RGB(196, 96, 16).SprintfFunc()
	able.Attr = SepColor
	colors.Map[able] = color.RGB(196, 128, 128).SprintfFunc()

	for k, f := range colors.Map {
		colors.Map[k] = func(v string, _ ...any) string {
			return f(strings.ReplaceAll(v, "%", "%%"))
		}
	}
	return colors
}

func colorDefault(v string, _ ...any) string { return v }

func (c *Colors) Color(k snode.Kind, a ColorAttr, s string) string {
	return c.Get(k, a)(s)
}

func (c *Colors) Get(k snode.Kind, a ColorAttr) func(string, ...any) string {
	f := c.Map[Colorable{Kind: k, Attr: a}]
	if f == nil {
		return c.Default
	}
	return f
}
