package pagination

// PageResult is one page fetched from storage.
type PageResult[T any] struct {
	Items []T
	// Number is the 0-based index of this page.
	Number     int
	TotalPages int
	Total      int64
}

// lazyInt caches a derived value. computed distinguishes "not derived yet"
// from a derived zero, e.g. the end page of an empty collection.
type lazyInt struct {
	value    int
	computed bool
}

func (l *lazyInt) get(derive func() int) int {
	if !l.computed {
		l.value = derive()
		l.computed = true
	}
	return l.value
}

func known(v int) lazyInt {
	return lazyInt{value: v, computed: true}
}

// Window describes the page-number strip around the current page together
// with the items of that page. Values not supplied at construction are
// derived on first access and cached. A Window is request-scoped and is not
// safe for concurrent use.
type Window[T any] struct {
	result *PageResult[T]

	current lazyInt
	start   lazyInt
	end     lazyInt

	items    []T
	hasItems bool
}

// NewWindow derives current, start and end from a fetched page.
func NewWindow[T any](result PageResult[T]) *Window[T] {
	return &Window[T]{result: &result}
}

// NewWindowOf builds a window from values the caller already computed.
func NewWindowOf[T any](start, current, end int, items []T) *Window[T] {
	return &Window[T]{
		start:    known(start),
		current:  known(current),
		end:      known(end),
		items:    items,
		hasItems: true,
	}
}

// CurrentPage returns the 1-based number of the page being shown.
func (w *Window[T]) CurrentPage() int {
	return w.current.get(func() int { return w.source().Number + 1 })
}

// StartPage returns max(1, current-HalfWindow).
func (w *Window[T]) StartPage() int {
	return w.start.get(func() int {
		return max(1, w.CurrentPage()-HalfWindow)
	})
}

// EndPage returns min(current+HalfWindow, totalPages). It is 0 when there
// are no pages, leaving the strip empty.
func (w *Window[T]) EndPage() int {
	return w.end.get(func() int {
		return min(w.CurrentPage()+HalfWindow, w.source().TotalPages)
	})
}

func (w *Window[T]) Items() []T {
	if !w.hasItems {
		w.items = w.source().Items
		w.hasItems = true
	}
	return w.items
}

// Pages lists the page numbers from StartPage to EndPage inclusive.
func (w *Window[T]) Pages() []int {
	start, end := w.StartPage(), w.EndPage()
	if end < start {
		return []int{}
	}
	pages := make([]int, 0, end-start+1)
	for p := start; p <= end; p++ {
		pages = append(pages, p)
	}
	return pages
}

// TotalPages and Total are only known for windows built from a PageResult.
func (w *Window[T]) TotalPages() int { return w.source().TotalPages }

func (w *Window[T]) Total() int64 { return w.source().Total }

func (w *Window[T]) source() *PageResult[T] {
	if w.result == nil {
		return &PageResult[T]{}
	}
	return w.result
}
