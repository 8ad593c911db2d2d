package client

import (
	"encoding/json"

	"github.com/shopspring/decimal"

	"itemize/internal/shared/patch"
)

// LinkPatch is the minimal partial-update document for a link override.
// Unset slots are omitted from the JSON entirely; null slots are sent
// as explicit null. Absent means "leave unchanged", null means "clear",
// a value means "set" - that contract is preserved end to end.
type LinkPatch struct {
	Title       patch.Optional[string]
	Description patch.Optional[string]
	SiteName    patch.Optional[string]
	Price       patch.Optional[string]
	Currency    patch.Optional[string]
	ImageURL    patch.Optional[string]
}

func (p LinkPatch) MarshalJSON() ([]byte, error) {
	doc := map[string]patch.Optional[string]{}
	put := func(key string, o patch.Optional[string]) {
		if o.Set {
			doc[key] = o
		}
	}
	put("title", p.Title)
	put("description", p.Description)
	put("site_name", p.SiteName)
	put("price", p.Price)
	put("currency", p.Currency)
	put("image_url", p.ImageURL)
	return json.Marshal(doc)
}

// Empty reports whether the patch carries no keys.
func (p LinkPatch) Empty() bool {
	return !p.Title.Set && !p.Description.Set && !p.SiteName.Set &&
		!p.Price.Set && !p.Currency.Set && !p.ImageURL.Set
}

// ItemizePatch is the partial-update document for itemize settings.
// Name and Public are never null: only description can be cleared.
type ItemizePatch struct {
	Name        patch.Optional[string]
	Description patch.Optional[string]
	Public      patch.Optional[bool]
}

func (p ItemizePatch) MarshalJSON() ([]byte, error) {
	doc := map[string]interface{}{}
	if p.Name.Set {
		doc["name"] = p.Name
	}
	if p.Description.Set {
		doc["description"] = p.Description
	}
	if p.Public.Set {
		doc["public"] = p.Public
	}
	return json.Marshal(doc)
}

// Empty reports whether the patch carries no keys.
func (p ItemizePatch) Empty() bool {
	return !p.Name.Set && !p.Description.Set && !p.Public.Set
}

// BuildLinkPatch reduces a dirty-field set plus current form values to
// the minimal patch. Only dirty fields get a key; their values are read
// from the form at call time. A nil form field becomes an explicit
// null, restoring the scraped value server-side.
func BuildLinkPatch(form LinkForm, dirty []string) (LinkPatch, error) {
	var p LinkPatch
	for _, field := range dirty {
		switch field {
		case "Title":
			p.Title = slot(form.Title)
		case "Description":
			p.Description = slot(form.Description)
		case "SiteName":
			p.SiteName = slot(form.SiteName)
		case "Price":
			if form.Price == nil {
				p.Price = patch.Null[string]()
				break
			}
			d, err := decimal.NewFromString(*form.Price)
			if err != nil {
				return LinkPatch{}, ValidationError("Price must be a decimal number!")
			}
			p.Price = patch.Value(d.String())
		case "Currency":
			p.Currency = slot(form.Currency)
		case "ImageURL":
			p.ImageURL = slot(form.ImageURL)
		}
	}
	return p, nil
}

// BuildItemizePatch reduces dirty itemize settings to the minimal
// patch. A rename may move the itemize to a new slug; the caller
// re-addresses from the response rather than treating it as an error.
func BuildItemizePatch(form ItemizeForm, dirty []string) (ItemizePatch, error) {
	var p ItemizePatch
	for _, field := range dirty {
		switch field {
		case "Name":
			if form.Name == "" {
				return ItemizePatch{}, ValidationError("Name cannot be empty!")
			}
			p.Name = patch.Value(form.Name)
		case "Description":
			p.Description = slot(form.Description)
		case "Public":
			p.Public = patch.Value(form.Public)
		}
	}
	return p, nil
}

func slot(v *string) patch.Optional[string] {
	if v == nil {
		return patch.Null[string]()
	}
	return patch.Value(*v)
}
