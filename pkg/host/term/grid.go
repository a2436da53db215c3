package term

import (
	"context"
	"log/slog"
	"strings"
	"sync"

	"github.com/charmbracelet/lipgloss"

	"github.com/vango-dev/listkit/pkg/adapter"
	"github.com/vango-dev/listkit/pkg/differ"
)

// Source is the adapter a Grid displays. Both adapter.Adapter and
// adapter.PagingAdapter satisfy it.
type Source interface {
	ItemCount() int
	ItemViewType(position int) (int, error)
	SpanOf(viewType, total int) (int, error)
	CreateUnit(ctx context.Context, viewType int) (*adapter.Unit, error)
	BindUnit(u *adapter.Unit, position int) error
	BindUnitPayload(u *adapter.Unit, position int, payload any) error
}

// Config configures a Grid.
type Config struct {
	// SpanCount is the number of columns (default: 1).
	SpanCount int

	// Width is the total width in cells (default: 80).
	Width int

	// Renderer is passed to view factories through the context.
	// Default: lipgloss.DefaultRenderer()
	Renderer *lipgloss.Renderer

	// Logger receives bind failures. Default: slog.Default()
	Logger *slog.Logger
}

type slot struct {
	unit     *adapter.Unit
	full     bool  // rebind everything
	payloads []any // pending partial rebinds
}

// Grid is a differ.ListHost rendering rows into a terminal grid.
// Apply and Render may be called from different goroutines.
type Grid struct {
	src    Source
	cfg    Config
	ctx    context.Context
	logger *slog.Logger

	mu    sync.Mutex
	slots []*slot
	pool  map[int][]*adapter.Unit

	created int
	reused  int
}

var _ differ.ListHost = (*Grid)(nil)

// NewGrid creates a grid over src. Call Reset if src already has items.
func NewGrid(src Source, cfg Config) *Grid {
	if cfg.SpanCount < 1 {
		cfg.SpanCount = 1
	}
	if cfg.Width < cfg.SpanCount {
		cfg.Width = max(80, cfg.SpanCount)
	}
	if cfg.Renderer == nil {
		cfg.Renderer = lipgloss.DefaultRenderer()
	}
	if cfg.Logger == nil {
		cfg.Logger = slog.Default()
	}
	return &Grid{
		src:    src,
		cfg:    cfg,
		ctx:    WithRenderer(context.Background(), cfg.Renderer),
		logger: cfg.Logger,
		pool:   make(map[int][]*adapter.Unit),
	}
}

// Reset recycles every unit and binds the source's current items.
func (g *Grid) Reset() {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.recycle(g.slots)
	g.slots = make([]*slot, g.src.ItemCount())
	for i := range g.slots {
		g.slots[i] = &slot{}
	}
	g.settle()
}

// Apply implements differ.ListHost. Updates are applied structurally
// first; binding runs afterwards at final positions.
func (g *Grid) Apply(updates []differ.Update) {
	g.mu.Lock()
	defer g.mu.Unlock()

	for _, u := range updates {
		switch u.Op {
		case differ.OpInsert:
			fresh := make([]*slot, u.Count)
			for i := range fresh {
				fresh[i] = &slot{}
			}
			pos := min(max(u.Pos, 0), len(g.slots))
			g.slots = append(g.slots[:pos], append(fresh, g.slots[pos:]...)...)
		case differ.OpRemove:
			pos := min(max(u.Pos, 0), len(g.slots))
			end := min(pos+u.Count, len(g.slots))
			g.recycle(g.slots[pos:end])
			g.slots = append(g.slots[:pos], g.slots[end:]...)
		case differ.OpChange:
			for i := u.Pos; i < u.Pos+u.Count && i < len(g.slots); i++ {
				s := g.slots[i]
				if u.Payload == nil {
					s.full = true
					continue
				}
				s.payloads = append(s.payloads, u.Payload)
			}
		}
	}
	g.settle()
}

func (g *Grid) recycle(slots []*slot) {
	for _, s := range slots {
		if s.unit != nil {
			vt := s.unit.ViewType()
			g.pool[vt] = append(g.pool[vt], s.unit)
		}
	}
}

// settle creates and binds units for new rows and flushes pending changes.
func (g *Grid) settle() {
	for pos, s := range g.slots {
		switch {
		case s.unit == nil:
			vt, err := g.src.ItemViewType(pos)
			if err != nil {
				g.logger.Error("grid: view type lookup failed", "position", pos, "error", err)
				continue
			}
			if s.unit, err = g.obtain(vt); err != nil {
				g.logger.Error("grid: create unit failed", "position", pos, "error", err)
				continue
			}
			g.bind(s, pos, nil)
		case s.full:
			g.bind(s, pos, nil)
		default:
			for _, p := range s.payloads {
				g.bind(s, pos, p)
			}
		}
		s.full = false
		s.payloads = nil
	}
}

func (g *Grid) obtain(viewType int) (*adapter.Unit, error) {
	if units := g.pool[viewType]; len(units) > 0 {
		u := units[len(units)-1]
		g.pool[viewType] = units[:len(units)-1]
		g.reused++
		return u, nil
	}
	u, err := g.src.CreateUnit(g.ctx, viewType)
	if err != nil {
		return nil, err
	}
	g.created++
	return u, nil
}

func (g *Grid) bind(s *slot, pos int, payload any) {
	var err error
	if payload == nil {
		err = g.src.BindUnit(s.unit, pos)
	} else {
		err = g.src.BindUnitPayload(s.unit, pos, payload)
	}
	if err != nil {
		g.logger.Error("grid: bind failed", "position", pos, "error", err)
	}
}

// Len returns the number of rows.
func (g *Grid) Len() int {
	g.mu.Lock()
	defer g.mu.Unlock()
	return len(g.slots)
}

// Units returns the units currently displayed, in row order.
// Rows whose unit could not be created are nil.
func (g *Grid) Units() []*adapter.Unit {
	g.mu.Lock()
	defer g.mu.Unlock()
	out := make([]*adapter.Unit, len(g.slots))
	for i, s := range g.slots {
		out[i] = s.unit
	}
	return out
}

// Stats returns how many units were created and how many were reused.
func (g *Grid) Stats() (created, reused int) {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.created, g.reused
}

// Render lays the rows out on SpanCount columns. A row that does not fit
// in the remaining columns starts a new line.
func (g *Grid) Render() string {
	g.mu.Lock()
	defer g.mu.Unlock()

	cols := g.cfg.SpanCount
	colWidth := g.cfg.Width / cols
	cell := g.cfg.Renderer.NewStyle()

	var lines []string
	var cells []string
	used := 0
	flush := func() {
		if len(cells) > 0 {
			lines = append(lines, lipgloss.JoinHorizontal(lipgloss.Top, cells...))
		}
		cells, used = nil, 0
	}

	for _, s := range g.slots {
		if s.unit == nil {
			continue
		}
		span, err := g.src.SpanOf(s.unit.ViewType(), cols)
		if err != nil {
			span = 1
		}
		if used+span > cols {
			flush()
		}
		width := span * colWidth
		content := renderView(s.unit.View(), width)
		cells = append(cells, cell.Width(width).MaxWidth(width).Render(strings.TrimRight(content, "\n")))
		used += span
		if used == cols {
			flush()
		}
	}
	flush()
	return lipgloss.JoinVertical(lipgloss.Left, lines...)
}
