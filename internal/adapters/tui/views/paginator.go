package views

// Paginator tracks a cursor over a list shown one page at a time
type Paginator struct {
	pageSize   int
	pageOffset int
	cursor     int
	totalItems int
}

// NewPaginator creates a paginator; non-positive sizes default to 10 rows
func NewPaginator(pageSize int) *Paginator {
	p := &Paginator{}
	p.SetPageSize(pageSize)
	return p
}

// SetPageSize changes the rows per page, keeping the cursor visible
func (p *Paginator) SetPageSize(size int) {
	if size <= 0 {
		size = 10
	}
	p.pageSize = size
	p.follow()
}

// SetTotal sets the item count and clamps the cursor into it
func (p *Paginator) SetTotal(total int) {
	p.totalItems = total
	p.SetCursor(p.cursor)
}

// Cursor returns the absolute cursor position
func (p *Paginator) Cursor() int {
	return p.cursor
}

// SetCursor moves the cursor, clamped to the list
func (p *Paginator) SetCursor(pos int) {
	p.cursor = max(0, min(pos, p.totalItems-1))
	p.follow()
}

// CursorUp moves the cursor up by one
func (p *Paginator) CursorUp() bool {
	if p.cursor == 0 {
		return false
	}
	p.SetCursor(p.cursor - 1)
	return true
}

// CursorDown moves the cursor down by one
func (p *Paginator) CursorDown() bool {
	if p.cursor >= p.totalItems-1 {
		return false
	}
	p.SetCursor(p.cursor + 1)
	return true
}

// VisibleRange returns the [start, end) indices of the current page
func (p *Paginator) VisibleRange() (start, end int) {
	return p.pageOffset, min(p.pageOffset+p.pageSize, p.totalItems)
}

// TotalPages returns the page count, at least 1
func (p *Paginator) TotalPages() int {
	return max(1, (p.totalItems+p.pageSize-1)/p.pageSize)
}

// CurrentPage returns the 1-based page number
func (p *Paginator) CurrentPage() int {
	return p.pageOffset/p.pageSize + 1
}

// NextPage jumps to the first row of the next page
func (p *Paginator) NextPage() bool {
	if p.pageOffset+p.pageSize >= p.totalItems {
		return false
	}
	p.SetCursor(p.pageOffset + p.pageSize)
	return true
}

// PrevPage jumps to the first row of the previous page
func (p *Paginator) PrevPage() bool {
	if p.pageOffset == 0 {
		return false
	}
	p.SetCursor(p.pageOffset - p.pageSize)
	return true
}

// Reset empties the paginator
func (p *Paginator) Reset() {
	p.cursor, p.pageOffset, p.totalItems = 0, 0, 0
}

// follow aligns the page offset to the page holding the cursor
func (p *Paginator) follow() {
	p.pageOffset = (p.cursor / p.pageSize) * p.pageSize
}
