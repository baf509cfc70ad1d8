// Package paging derives page counts and offset/limit windows for 1-based,
// fixed-size pages.
package paging

// TotalPages returns ceil(total/size), never less than 1 so that an empty
// result still has a page to show.
func TotalPages(total int64, size int) int {
	if size < 1 || total <= 0 {
		return 1
	}
	n := (total + int64(size) - 1) / int64(size)
	if n < 1 {
		return 1
	}
	return int(n)
}

// Clamp moves page into [1, totalPages].
func Clamp(page, totalPages int) int {
	if totalPages < 1 {
		totalPages = 1
	}
	if page < 1 {
		return 1
	}
	if page > totalPages {
		return totalPages
	}
	return page
}

// Window returns the offset and limit of a page.
func Window(page, size int) (offset, limit int) {
	if page < 1 {
		page = 1
	}
	return (page - 1) * size, size
}
