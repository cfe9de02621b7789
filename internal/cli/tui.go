package cli

import (
	"context"
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	apperr "github.com/viktori/matteray/pkg/errors"
	"github.com/viktori/matteray/pkg/matrix"
	"github.com/viktori/matteray/pkg/pipeline"
)

var (
	viewHelpStyle  = lipgloss.NewStyle().Foreground(colorDim)
	viewErrorStyle = lipgloss.NewStyle().Foreground(colorRed)
)

// =============================================================================
// matrixViewModel - Interactive matrix browser
// =============================================================================

// matrixViewModel is the bubbletea model behind "matteray view". Transforms
// run through the pipeline so they share the cache with "apply".
type matrixViewModel struct {
	ctx    context.Context
	runner *pipeline.Runner

	name    string
	matrix  *matrix.Matrix[float64]
	history []*matrix.Matrix[float64]
	cursor  matrix.Cell

	status string
	failed bool
}

func newMatrixViewModel(ctx context.Context, runner *pipeline.Runner, name string, m *matrix.Matrix[float64]) matrixViewModel {
	return matrixViewModel{
		ctx:    ctx,
		runner: runner,
		name:   name,
		matrix: m,
	}
}

func (m matrixViewModel) Init() tea.Cmd {
	return nil
}

func (m matrixViewModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	key, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}

	switch key.String() {
	case "q", "ctrl+c", "esc":
		return m, tea.Quit
	case "up", "k":
		if m.cursor.Row > 0 {
			m.cursor.Row--
		}
	case "down", "j":
		if m.cursor.Row < m.matrix.Rows()-1 {
			m.cursor.Row++
		}
	case "left", "h":
		if m.cursor.Column > 0 {
			m.cursor.Column--
		}
	case "right", "l":
		if m.cursor.Column < m.matrix.Columns()-1 {
			m.cursor.Column++
		}
	case "r":
		m = m.apply(pipeline.Request{Op: pipeline.OpRotate, Params: pipeline.Params{Rotation: "right"}}, "rotated right")
	case "R":
		m = m.apply(pipeline.Request{Op: pipeline.OpRotate, Params: pipeline.Params{Rotation: "left"}}, "rotated left")
	case "t":
		m = m.apply(pipeline.Request{Op: pipeline.OpTranspose}, "transposed")
	case "x":
		m = m.apply(pipeline.Request{Op: pipeline.OpMirror, Params: pipeline.Params{Axis: "rows"}}, "mirrored rows")
	case "y":
		m = m.apply(pipeline.Request{Op: pipeline.OpMirror, Params: pipeline.Params{Axis: "columns"}}, "mirrored columns")
	case "s":
		m = m.apply(pipeline.Request{Op: pipeline.OpSortRow}, "sorted rows")
	case "v":
		m = m.apply(pipeline.Request{Op: pipeline.OpReverseRow}, "reversed rows")
	case "u":
		m = m.undo()
	}
	return m, nil
}

// apply runs req on the current matrix and pushes the old one onto the
// undo stack.
func (m matrixViewModel) apply(req pipeline.Request, done string) matrixViewModel {
	if m.matrix.IsEmpty() {
		m.status, m.failed = "matrix is empty", true
		return m
	}

	req.Operands = [][][]float64{m.matrix.Slice2D()}
	res, err := m.runner.Run(m.ctx, req)
	if err != nil {
		m.status, m.failed = apperr.UserMessage(err), true
		return m
	}
	next, err := resultMatrix(res)
	if err != nil {
		m.status, m.failed = err.Error(), true
		return m
	}

	m.history = append(m.history[:len(m.history):len(m.history)], m.matrix)
	m.matrix = next
	m.clampCursor()
	m.status, m.failed = done, false
	return m
}

func (m matrixViewModel) undo() matrixViewModel {
	if len(m.history) == 0 {
		m.status, m.failed = "nothing to undo", true
		return m
	}
	last := len(m.history) - 1
	m.matrix = m.history[last]
	m.history = m.history[:last]
	m.clampCursor()
	m.status, m.failed = "undone", false
	return m
}

func (m *matrixViewModel) clampCursor() {
	m.cursor.Row = max(0, min(m.cursor.Row, m.matrix.Rows()-1))
	m.cursor.Column = max(0, min(m.cursor.Column, m.matrix.Columns()-1))
}

func (m matrixViewModel) View() string {
	var b strings.Builder

	b.WriteString(StyleTitle.Render(m.name))
	b.WriteString(StyleDim.Render(fmt.Sprintf("  %d×%d", m.matrix.Rows(), m.matrix.Columns())))
	b.WriteString("\n\n")

	if m.matrix.IsEmpty() {
		b.WriteString(matrixTable(m.matrix, nil))
	} else {
		cursor := m.cursor
		b.WriteString(matrixTable(m.matrix, &cursor))
		b.WriteString("\n")
		b.WriteString(StyleDim.Render(fmt.Sprintf("[%d, %d] = ", cursor.Row, cursor.Column)))
		b.WriteString(StyleNumber.Render(formatValue(m.matrix.At(cursor.Row, cursor.Column))))
	}
	b.WriteString("\n\n")

	switch {
	case m.status == "":
	case m.failed:
		b.WriteString(viewErrorStyle.Render(iconError + " " + m.status))
		b.WriteString("\n")
	default:
		b.WriteString(StyleSuccess.Render(iconSuccess + " " + m.status))
		b.WriteString("\n")
	}

	b.WriteString(viewHelpStyle.Render("←↑↓→ move  r/R rotate  t transpose  x/y mirror  s/v sort/reverse rows  u undo  q quit"))
	return b.String()
}
