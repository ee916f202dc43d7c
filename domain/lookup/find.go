// Package lookup finds registration records in a raw table.
package lookup

// Find returns the first data row whose first cell equals key, projected
// through the header. Comparison is exact: case-sensitive, no trimming.
// Tables without data rows always yield NotFound.
func Find(table Table, key string) Result {
	header := table.Header()
	for _, row := range table.DataRows() {
		// A row with no cells has no key to compare
		if len(row) == 0 || row[0] != key {
			continue
		}
		return Found(Project(header, row))
	}
	return NotFound()
}

// Project builds a Record from one data row. Cells beyond the header are
// ignored; header positions beyond the row are absent. When a name repeats
// in the header the later position wins, absent included.
func Project(header Header, row []string) Record {
	rec := NewRecord()
	for i, name := range header {
		if i < len(row) {
			rec.Set(name, row[i])
		} else {
			rec.Unset(name)
		}
	}
	return rec
}
