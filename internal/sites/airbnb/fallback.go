package airbnb

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	md "github.com/JohannesKaufmann/html-to-markdown"
	"github.com/mmcloughlin/geohash"
	"github.com/ysmood/gson"
)

const geohashPrecision = 9

// ErrNoStructuredData is returned when a payload carries nothing usable for a step.
var ErrNoStructuredData = errors.New("no structured listing data")

// Payload is the structured listing data a listing page embeds for hydration,
// indexed by section component type.
type Payload struct {
	sections map[string][]gson.JSON
	sharing  gson.JSON
	lat, lng float64
	coords   bool
}

// ParsePayload decodes raw JSON and indexes its sections.
func ParsePayload(raw string) (*Payload, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" || !json.Valid([]byte(raw)) {
		return nil, fmt.Errorf("%w: payload is not valid json", ErrNoStructuredData)
	}
	return NewPayload(gson.NewFrom(raw))
}

// NewPayload walks j and indexes every object that declares a sectionComponentType.
func NewPayload(j gson.JSON) (*Payload, error) {
	p := &Payload{sections: make(map[string][]gson.JSON), sharing: gson.New(nil)}
	walkObjects(j.Val(), p.visit)
	if len(p.sections) == 0 && p.sharing.Nil() {
		return nil, ErrNoStructuredData
	}
	return p, nil
}

func (p *Payload) visit(obj map[string]interface{}) {
	if kind, ok := obj["sectionComponentType"].(string); ok {
		if section, ok := obj["section"].(map[string]interface{}); ok {
			p.sections[kind] = append(p.sections[kind], gson.New(section))
		}
	}
	if sharing, ok := obj["sharingConfig"].(map[string]interface{}); ok && p.sharing.Nil() {
		p.sharing = gson.New(sharing)
	}
	if !p.coords {
		for _, keys := range [][2]string{{"lat", "lng"}, {"listingLat", "listingLng"}} {
			lat, okLat := number(obj[keys[0]])
			lng, okLng := number(obj[keys[1]])
			if okLat && okLng && (lat != 0 || lng != 0) {
				p.lat, p.lng, p.coords = lat, lng, true
				break
			}
		}
	}
}

// section returns the first section of the first kind present.
func (p *Payload) section(kinds ...string) (gson.JSON, bool) {
	for _, k := range kinds {
		if list := p.sections[k]; len(list) > 0 {
			return list[0], true
		}
	}
	return gson.New(nil), false
}

// MapPayload converts the payload into the shape extracted for step.
func MapPayload(step int, p *Payload) (any, error) {
	switch step {
	case StepBasicInfo:
		info := p.basicInfo()
		if info.Title == "" {
			return nil, fmt.Errorf("%w: title not present", ErrNoStructuredData)
		}
		return info, nil
	case StepPriceCapacity:
		return p.priceCapacity(), nil
	case StepAmenities:
		a := p.amenities()
		if len(a.Amenities) == 0 {
			return nil, fmt.Errorf("%w: amenities not present", ErrNoStructuredData)
		}
		return a, nil
	case StepPhotos:
		ph := p.photos()
		if len(ph.Photos) == 0 {
			return nil, fmt.Errorf("%w: photos not present", ErrNoStructuredData)
		}
		return ph, nil
	default:
		return nil, fmt.Errorf("%w: %d", ErrInvalidStep, step)
	}
}

func (p *Payload) basicInfo() BasicInfo {
	var info BasicInfo

	if s, ok := p.section("TITLE_DEFAULT", "PDP_TITLE"); ok {
		info.Title = str(s, "title")
	}
	if info.Title == "" {
		info.Title = str(p.sharing, "title")
	}

	if s, ok := p.section("DESCRIPTION_DEFAULT", "DESCRIPTION_MODALLESS"); ok {
		if html := str(s, "htmlDescription", "htmlText"); html != "" {
			info.Description = htmlToText(html)
		} else {
			info.Description = str(s, "description")
		}
	}

	if s, ok := p.section("LOCATION_DEFAULT", "LOCATION_PDP"); ok {
		info.Address = str(s, "subtitle")
	}
	if info.Address == "" {
		info.Address = str(p.sharing, "location")
	}

	info.Type = ClassifyType(str(p.sharing, "propertyType") + " " + info.Title + " " + info.Description)

	if p.coords {
		info.Geohash = geohash.EncodeWithPrecision(p.lat, p.lng, geohashPrecision)
	}
	return info
}

func (p *Payload) priceCapacity() PriceCapacity {
	var pc PriceCapacity

	if s, ok := p.section("BOOK_IT_SIDEBAR", "BOOK_IT_FLOATING_FOOTER", "BOOK_IT_NAV"); ok {
		for _, key := range []string{"discountedPrice", "price", "originalPrice"} {
			if v := ParsePrice(str(s, "structuredDisplayPrice", "primaryLine", key)); v > 0 {
				pc.Price = v
				break
			}
		}
	}

	var overview []string
	if s, ok := p.section("OVERVIEW_DEFAULT_V2", "OVERVIEW_DEFAULT"); ok {
		items, _ := s.Gets("overviewItems")
		for _, item := range items.Arr() {
			if t := str(item, "title"); t != "" {
				overview = append(overview, t)
			}
		}
	}
	pc.Rooms, pc.Bathrooms, pc.Beds, pc.Guests = ParseCapacity(strings.Join(overview, " · "))

	if capacity, ok := num(p.sharing, "personCapacity"); ok && capacity > 0 {
		pc.Guests = int(capacity)
	}
	return pc
}

func (p *Payload) amenities() Amenities {
	s, ok := p.section("AMENITIES_DEFAULT")
	if !ok {
		return buildAmenities(nil)
	}

	groups, _ := s.Gets("seeAllAmenitiesGroups")
	if len(groups.Arr()) == 0 {
		groups, _ = s.Gets("previewAmenitiesGroups")
	}

	var items []amenityItem
	for _, g := range groups.Arr() {
		list, _ := g.Gets("amenities")
		for _, a := range list.Arr() {
			if available, ok := a.Gets("available"); ok {
				if b, isBool := available.Val().(bool); isBool && !b {
					continue
				}
			}
			title := str(a, "title")
			if title == "" || containsAnyFold(title, amenityBoilerplate) {
				continue
			}
			items = append(items, amenityItem{text: title, icon: str(a, "icon") != ""})
		}
	}
	return buildAmenities(items)
}

func (p *Payload) photos() Photos {
	var urls []string
	for _, kinds := range [][]string{
		{"PHOTO_TOUR_SCROLLABLE", "PHOTO_TOUR_SCROLLABLE_MODAL"},
		{"HERO_DEFAULT"},
	} {
		s, ok := p.section(kinds...)
		if !ok {
			continue
		}
		for _, key := range []string{"mediaItems", "previewImages"} {
			list, _ := s.Gets(key)
			for _, m := range list.Arr() {
				if u := str(m, "baseUrl"); u != "" {
					urls = append(urls, u)
				}
			}
		}
		if len(urls) > 0 {
			break
		}
	}
	return Photos{Photos: FilterPhotos(urls)}
}

// htmlToText renders a description's HTML as plain markdown text.
func htmlToText(html string) string {
	converter := md.NewConverter("", true, nil)
	text, err := converter.ConvertString(html)
	if err != nil {
		return collapseSpace(html)
	}
	return strings.TrimSpace(text)
}

func collapseSpace(s string) string { return strings.Join(strings.Fields(s), " ") }

// str reads a string at path, empty when missing or not a string.
func str(j gson.JSON, path ...interface{}) string {
	v, ok := j.Gets(path...)
	if !ok {
		return ""
	}
	s, _ := v.Val().(string)
	return strings.TrimSpace(s)
}

func num(j gson.JSON, path ...interface{}) (float64, bool) {
	v, ok := j.Gets(path...)
	if !ok {
		return 0, false
	}
	return number(v.Val())
}

func number(v interface{}) (float64, bool) {
	switch n := v.(type) {
	case float64:
		return n, true
	case int:
		return float64(n), true
	case json.Number:
		f, err := n.Float64()
		return f, err == nil
	default:
		return 0, false
	}
}

// walkObjects calls visit for every JSON object nested in v.
func walkObjects(v interface{}, visit func(map[string]interface{})) {
	switch t := v.(type) {
	case map[string]interface{}:
		visit(t)
		for _, child := range t {
			walkObjects(child, visit)
		}
	case []interface{}:
		for _, child := range t {
			walkObjects(child, visit)
		}
	}
}
