package domain

import (
	"fmt"
	"strconv"
)

// dotBlock renders one eight-dot row starting at the given field offset.
// dot<start+i> is checked for every i below the rating. Ratings past the
// row length (9s and 10s) are marked by the row's trailing "a" suffix
// field rather than extra dots.
func dotBlock(start, rating int) FieldMap {
	fields := make(FieldMap, dotBlockSize+1)
	active := min(rating, dotBlockSize)
	for i := 0; i < dotBlockSize; i++ {
		fields[fmt.Sprintf("dot%d", start+i)] = Check(i < active)
	}
	fields[fmt.Sprintf("dot%da", start+dotBlockSize-1)] = Check(rating > dotBlockSize)
	return fields
}

// virtueBlock renders a five-dot virtue row. Virtues cap at five dots and
// have no overflow suffix.
func virtueBlock(start, rating int) FieldMap {
	fields := make(FieldMap, virtueBlockSize)
	active := min(max(rating, 0), virtueBlockSize)
	for i := 0; i < virtueBlockSize; i++ {
		fields[fmt.Sprintf("dot%d", start+i)] = Check(i < active)
	}
	return fields
}

// tracker renders a linear gauge like humanity or willpower. Fields are
// named <prefix>1 through <prefix><slots> and fill left to right.
func tracker(prefix string, rating, slots int) FieldMap {
	fields := make(FieldMap, slots)
	for i := 1; i <= slots; i++ {
		fields[prefix+strconv.Itoa(i)] = Check(i <= rating)
	}
	return fields
}
