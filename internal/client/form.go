package client

import "reflect"

// LinkForm holds the editable override fields of a link. A nil field
// means "no override, use the scraped value"; a pointer to an empty
// string is a deliberate blank.
type LinkForm struct {
	Title       *string
	Description *string
	SiteName    *string
	Price       *string
	Currency    *string
	ImageURL    *string
}

// LinkFormFrom snapshots the current override state of a link as the
// starting point of an edit session.
func LinkFormFrom(l *Link) LinkForm {
	if l.Override == nil {
		return LinkForm{}
	}
	return LinkForm{
		Title:       l.Override.Title,
		Description: l.Override.Description,
		SiteName:    l.Override.SiteName,
		Price:       l.Override.Price,
		Currency:    l.Override.Currency,
		ImageURL:    l.Override.ImageURL,
	}
}

// ItemizeForm holds the editable settings of an itemize.
type ItemizeForm struct {
	Name        string
	Description *string
	Public      bool
}

// ItemizeFormFrom snapshots the current settings of an itemize.
func ItemizeFormFrom(it *Itemize) ItemizeForm {
	return ItemizeForm{
		Name:        it.Name,
		Description: it.Description,
		Public:      it.Public,
	}
}

// Tracker decides which fields of an edit form have actually changed,
// by deep equality against an explicitly captured baseline snapshot.
// The baseline is reset only at defined reload points (form open,
// post-refresh), never implicitly; a field edited and then reverted to
// its baseline value is not dirty.
type Tracker struct {
	baseline reflect.Value
}

// NewTracker captures the initial form snapshot. The form must be a
// struct value.
func NewTracker(initial interface{}) *Tracker {
	t := &Tracker{}
	t.Reset(initial)
	return t
}

// Reset replaces the baseline with a fresh snapshot.
func (t *Tracker) Reset(snapshot interface{}) {
	v := reflect.ValueOf(snapshot)
	if v.Kind() != reflect.Struct {
		panic("tracker snapshot must be a struct value")
	}
	t.baseline = v
}

// IsDirty reports whether one named field differs from the baseline.
func (t *Tracker) IsDirty(current interface{}, field string) bool {
	cv := reflect.ValueOf(current)
	bf := t.baseline.FieldByName(field)
	cf := cv.FieldByName(field)
	if !bf.IsValid() || !cf.IsValid() {
		return false
	}
	return !reflect.DeepEqual(bf.Interface(), cf.Interface())
}

// Dirty returns the names of all changed fields, in declaration order.
func (t *Tracker) Dirty(current interface{}) []string {
	cv := reflect.ValueOf(current)
	var fields []string
	for i := 0; i < t.baseline.NumField(); i++ {
		name := t.baseline.Type().Field(i).Name
		if !reflect.DeepEqual(t.baseline.Field(i).Interface(), cv.Field(i).Interface()) {
			fields = append(fields, name)
		}
	}
	return fields
}

// Any reports whether any field changed.
func (t *Tracker) Any(current interface{}) bool {
	return len(t.Dirty(current)) > 0
}
