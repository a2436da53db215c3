package adapter

import (
	"context"
	"math"
	"reflect"

	"github.com/vango-dev/listkit/internal/errors"
)

// DefaultPlaceholderTypeID is the view type of the placeholder row unless
// overridden with PlaceholderTypeID.
const DefaultPlaceholderTypeID = math.MaxInt32

// Exported sentinels for errors.Is checks against dispatch and build errors.
var (
	ErrDuplicateVariant     = errors.Sentinel("E101")
	ErrIncompatibleVariant  = errors.Sentinel("E102")
	ErrDuplicatePlaceholder = errors.Sentinel("E103")
	ErrScopeClosed          = errors.Sentinel("E104")
	ErrNilFactory           = errors.Sentinel("E105")
	ErrPlaceholderTypeID    = errors.Sentinel("E106")
	ErrMissingPlaceholder   = errors.Sentinel("E110")
	ErrUnknownVariant       = errors.Sentinel("E111")
	ErrUnknownViewType      = errors.Sentinel("E112")
	ErrPositionOutOfRange   = errors.Sentinel("E113")
)

type placeholder struct {
	typeID int
	create func(ctx context.Context) any
	binder binder
	span   Span
}

// Builder collects variant declarations for a Registry.
// It performs no I/O and creates no views.
type Builder[T any] struct {
	itemType    reflect.Type
	variants    []*variant
	index       map[reflect.Type]int
	placeholder *placeholder
	errs        []error
}

// NewBuilder creates an empty builder for items of type T.
func NewBuilder[T any]() *Builder[T] {
	return &Builder[T]{
		itemType: reflect.TypeFor[T](),
		index:    make(map[reflect.Type]int),
	}
}

func (b *Builder[T]) fail(err error) {
	b.errs = append(b.errs, err)
}

func (b *Builder[T]) addVariant(v *variant) {
	if _, dup := b.index[v.dataType]; dup {
		b.fail(errors.New("E101").
			WithDetailf("%s is declared more than once", typeName(v.dataType)).
			WithSuggestion("Merge the declarations into a single Item block"))
		return
	}
	if v.dataType.Kind() == reflect.Interface {
		b.fail(errors.New("E102").
			WithDetailf("%s is an interface; items dispatch on their concrete type", typeName(v.dataType)).
			WithSuggestion("Declare each concrete type separately"))
		return
	}
	if !v.dataType.AssignableTo(b.itemType) {
		b.fail(errors.New("E102").
			WithDetailf("%s does not implement %s", typeName(v.dataType), typeName(b.itemType)).
			WithSuggestion("Declare only types that can appear in the adapter's list"))
		return
	}
	b.index[v.dataType] = len(b.variants)
	b.variants = append(b.variants, v)
}

func (b *Builder[T]) setPlaceholder(p *placeholder) {
	if b.placeholder != nil {
		b.fail(errors.New("E103").WithSuggestion("Remove the second Placeholder call"))
		return
	}
	b.placeholder = p
}

// Build validates the declarations and freezes them into a Registry.
func (b *Builder[T]) Build() (*Registry[T], error) {
	if len(b.errs) > 0 {
		return nil, b.errs[0]
	}
	if p := b.placeholder; p != nil && p.typeID >= 0 && p.typeID < len(b.variants) {
		return nil, errors.New("E106").
			WithDetailf("type id %d is within [0, %d)", p.typeID, len(b.variants)).
			WithSuggestion("Use a negative id or leave the default")
	}

	index := make(map[reflect.Type]int, len(b.index))
	for t, i := range b.index {
		index[t] = i
	}
	return &Registry[T]{
		variants:    append([]*variant(nil), b.variants...),
		index:       index,
		placeholder: b.placeholder,
	}, nil
}

// Registry is the frozen dispatch table of an adapter.
// It is read-only after Build and safe for concurrent reads.
type Registry[T any] struct {
	variants    []*variant
	index       map[reflect.Type]int
	placeholder *placeholder
}

// Len returns the number of declared variants, excluding the placeholder.
func (r *Registry[T]) Len() int {
	return len(r.variants)
}

// HasPlaceholder reports whether a placeholder was declared.
func (r *Registry[T]) HasPlaceholder() bool {
	return r.placeholder != nil
}

// ViewTypeOf resolves an item to its view type.
//
// Non-nil items resolve to the index of the variant declared for their
// exact dynamic type. Nil items resolve to the placeholder type id.
func (r *Registry[T]) ViewTypeOf(item T) (int, error) {
	v := any(item)
	if isNil(v) {
		if r.placeholder == nil {
			return 0, errors.New("E110").
				WithSuggestion("Declare a row for unloaded items with adapter.Placeholder")
		}
		return r.placeholder.typeID, nil
	}
	t := reflect.TypeOf(v)
	idx, ok := r.index[t]
	if !ok {
		return 0, errors.New("E111").
			WithDetail(typeName(t)).
			WithSuggestion("Declare it with adapter.Item")
	}
	return idx, nil
}

// SpanOf evaluates the span of a view type against the grid's total span count.
func (r *Registry[T]) SpanOf(viewType, total int) (int, error) {
	if p := r.placeholder; p != nil && viewType == p.typeID {
		return p.span.Of(total), nil
	}
	v, err := r.variantAt(viewType)
	if err != nil {
		return 0, err
	}
	return v.span.Of(total), nil
}

// CreateUnit invokes the view factory of a view type and returns an unbound unit.
// Every call allocates a new view.
func (r *Registry[T]) CreateUnit(ctx context.Context, viewType int) (*Unit, error) {
	if ctx == nil {
		ctx = context.Background()
	}
	if p := r.placeholder; p != nil && viewType == p.typeID {
		return &Unit{
			ctx:         ctx,
			viewType:    viewType,
			view:        p.create(ctx),
			binder:      p.binder,
			placeholder: true,
			position:    -1,
		}, nil
	}
	v, err := r.variantAt(viewType)
	if err != nil {
		return nil, err
	}
	return &Unit{
		ctx:      ctx,
		viewType: viewType,
		view:     v.create(ctx),
		binder:   v.binder,
		position: -1,
	}, nil
}

// VariantName returns the data type name of a view type, for logs.
func (r *Registry[T]) VariantName(viewType int) string {
	if p := r.placeholder; p != nil && viewType == p.typeID {
		return "placeholder"
	}
	if viewType < 0 || viewType >= len(r.variants) {
		return "unknown"
	}
	return typeName(r.variants[viewType].dataType)
}

// Callback returns the diff callback over this registry.
func (r *Registry[T]) Callback() *ItemCallback[T] {
	return &ItemCallback[T]{registry: r}
}

func (r *Registry[T]) variantAt(viewType int) (*variant, error) {
	if viewType < 0 || viewType >= len(r.variants) {
		return nil, errors.New("E112").WithDetailf("view type %d", viewType)
	}
	return r.variants[viewType], nil
}

func (r *Registry[T]) variantOf(t reflect.Type) *variant {
	idx, ok := r.index[t]
	if !ok {
		return nil
	}
	return r.variants[idx]
}
