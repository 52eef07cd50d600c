package state

// Row is one visible entry of a menu level: the item's slot in its arena list
// and its plain label.
type Row struct {
	Slot  int
	Label string
}

// CloneRows produces a shallow copy of the provided rows.
func CloneRows(rows []Row) []Row {
	dup := make([]Row, len(rows))
	copy(dup, rows)
	return dup
}

// RowsFor builds rows for slots 0..n-1.
func RowsFor(n int, label func(slot int) string) []Row {
	rows := make([]Row, n)
	for i := range rows {
		rows[i] = Row{Slot: i, Label: label(i)}
	}
	return rows
}
