package debugui

import (
	"fmt"
	"reflect"
	"slices"
	"strings"

	"github.com/AllenDang/cimgui-go/imgui"
	"github.com/plus3/bounce/ecs"
	"github.com/plus3/bounce/scene"
)

type entityRow struct {
	ID       ecs.EntityId
	Role     string
	Position string
}

func roleName(r scene.Role) string {
	switch r {
	case scene.RolePlayer:
		return "player"
	case scene.RoleMonster:
		return "monster"
	default:
		return "wall"
	}
}

// entityRows lists sprites by ascending id, keeping those whose role contains
// filter.
func entityRows(sprites []scene.SpriteState, filter string) []entityRow {
	filter = strings.ToLower(strings.TrimSpace(filter))
	rows := make([]entityRow, 0, len(sprites))
	for _, s := range sprites {
		role := roleName(s.Role)
		if filter != "" && !strings.Contains(role, filter) {
			continue
		}
		rows = append(rows, entityRow{
			ID:       s.Entity,
			Role:     role,
			Position: fmt.Sprintf("%.0f, %.0f", s.Position.X, s.Position.Y),
		})
	}
	slices.SortFunc(rows, func(a, b entityRow) int { return int(a.ID) - int(b.ID) })
	return rows
}

type fieldRow struct {
	Name  string
	Value string
	// Editable fields are numeric and can be changed in place through Ptr.
	Editable bool
	Ptr      reflect.Value
}

// fieldRows describes a component's exported fields. Physics bodies are shown
// through their accessors.
func fieldRows(component any) []fieldRow {
	if body, ok := component.(*scene.Body); ok {
		if body.Body == nil {
			return []fieldRow{{Name: "Body", Value: "nil"}}
		}
		p, v := body.Position(), body.Velocity()
		return []fieldRow{
			{Name: "Category", Value: body.Category().String()},
			{Name: "Position", Value: fmt.Sprintf("%.1f, %.1f", p.X, p.Y)},
			{Name: "Velocity", Value: fmt.Sprintf("%.1f, %.1f", v.X, v.Y)},
			{Name: "Angle", Value: fmt.Sprintf("%.2f", body.Angle())},
			{Name: "Attached", Value: fmt.Sprintf("%t", body.Attached())},
		}
	}

	val := reflect.ValueOf(component)
	if val.Kind() == reflect.Ptr {
		val = val.Elem()
	}
	if val.Kind() != reflect.Struct {
		return []fieldRow{{Name: val.Type().Name(), Value: fmt.Sprintf("%v", val.Interface())}}
	}

	var rows []fieldRow
	for _, f := range fieldCache.get(val.Type()) {
		fv := val.Field(f.Index)
		row := fieldRow{Name: f.Name}
		switch {
		case f.IsPointer && fv.IsNil():
			row.Value = "nil"
		case fv.CanInt(), fv.CanFloat():
			row.Value = fmt.Sprintf("%v", fv.Interface())
			row.Editable = fv.CanSet()
			row.Ptr = fv
		default:
			row.Value = fmt.Sprintf("%v", fv.Interface())
		}
		rows = append(rows, row)
	}
	return rows
}

// EntityPanel browses the running game's entities and inspects the selected
// one's components. Numeric fields may be edited live.
type EntityPanel struct {
	game     func() *scene.Game
	filter   string
	selected ecs.EntityId
	sprites  []scene.SpriteState
}

func NewEntityPanel(game func() *scene.Game) *EntityPanel {
	return &EntityPanel{game: game}
}

func (p *EntityPanel) Render() {
	imgui.SetNextWindowPosV(imgui.NewVec2(340, 10), imgui.CondOnce, imgui.NewVec2(0, 0))
	imgui.SetNextWindowSizeV(imgui.NewVec2(360, 420), imgui.CondOnce)
	if !imgui.BeginV("Entities", nil, imgui.WindowFlagsNone) {
		imgui.End()
		return
	}

	game := p.game()
	if game == nil {
		imgui.Text("No game running")
		imgui.End()
		return
	}

	imgui.InputTextWithHint("##filter", "player, monster, wall...", &p.filter, imgui.InputTextFlagsNone, nil)
	imgui.SameLine()
	if imgui.Button("Clear") {
		p.filter = ""
	}

	p.sprites = game.Sprites(p.sprites[:0])
	rows := entityRows(p.sprites, p.filter)

	const tableFlags = imgui.TableFlagsBorders | imgui.TableFlagsRowBg | imgui.TableFlagsScrollY
	if imgui.BeginTableV("EntityTable", 3, tableFlags, imgui.NewVec2(0, 200), 0) {
		imgui.TableSetupColumn("Entity")
		imgui.TableSetupColumn("Role")
		imgui.TableSetupColumn("Position")
		imgui.TableHeadersRow()
		for _, row := range rows {
			imgui.TableNextRow()
			imgui.TableNextColumn()
			if imgui.SelectableBoolV(fmt.Sprintf("%d", row.ID), p.selected == row.ID, imgui.SelectableFlagsSpanAllColumns, imgui.NewVec2(0, 0)) {
				p.selected = row.ID
			}
			imgui.TableNextColumn()
			imgui.Text(row.Role)
			imgui.TableNextColumn()
			imgui.Text(row.Position)
		}
		imgui.EndTable()
	}
	imgui.Text(fmt.Sprintf("Total: %d entities", len(rows)))

	imgui.Separator()
	p.renderInspector(game.Storage())
	imgui.End()
}

func (p *EntityPanel) renderInspector(storage *ecs.Storage) {
	if !p.selected.Valid() {
		imgui.Text("No entity selected")
		return
	}
	comps := storage.Components(p.selected)
	if comps == nil {
		imgui.Text(fmt.Sprintf("Entity %d is gone", p.selected))
		return
	}

	imgui.Text(fmt.Sprintf("Entity ID: %d", p.selected))
	for _, comp := range comps {
		if !imgui.TreeNodeStr(reflect.TypeOf(comp).Elem().String()) {
			continue
		}
		for _, row := range fieldRows(comp) {
			if !row.Editable {
				imgui.Text(fmt.Sprintf("%s: %s", row.Name, row.Value))
				continue
			}
			imgui.Text(row.Name + ":")
			imgui.SameLine()
			imgui.SetNextItemWidth(150)
			label := "##" + row.Name
			if row.Ptr.CanInt() {
				v := int32(row.Ptr.Int())
				if imgui.InputInt(label, &v) {
					row.Ptr.SetInt(int64(v))
				}
			} else {
				v := float32(row.Ptr.Float())
				if imgui.InputFloat(label, &v) {
					row.Ptr.SetFloat(float64(v))
				}
			}
		}
		imgui.TreePop()
	}
}
