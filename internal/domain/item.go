package domain

// Item вещь, которую владелец сдаёт в аренду
type Item struct {
	ID          int64
	Name        string
	Description string
	Available   bool
	OwnerID     int64
	RequestID   *int64
}

// ItemPatch частичное обновление вещи, nil поля не меняются
type ItemPatch struct {
	Name        *string
	Description *string
	Available   *bool
}

// Apply применяет изменения к вещи
func (p ItemPatch) Apply(item *Item) {
	if p.Name != nil {
		item.Name = *p.Name
	}
	if p.Description != nil {
		item.Description = *p.Description
	}
	if p.Available != nil {
		item.Available = *p.Available
	}
}
