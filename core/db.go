package core

type DBOrdering struct {
	Field     string
	Ascending bool
}

func (ord DBOrdering) String() string {
	direction := "DESC"
	if ord.Ascending {
		direction = "ASC"
	}
	return ord.Field + " " + direction
}

// AllowedOrderings drops orderings whose Field is not in `fields`.
func AllowedOrderings(ordering []DBOrdering, fields ...string) []DBOrdering {
	allowed := make([]DBOrdering, 0, len(ordering))
	for _, ord := range ordering {
		for _, f := range fields {
			if ord.Field == f {
				allowed = append(allowed, ord)
				break
			}
		}
	}
	return allowed
}
