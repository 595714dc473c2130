package inspect

import (
	"reflect"
	"strings"

	"github.com/viant/parsly"
)

const (
	// TagName is the struct tag carrying field metadata
	TagName = "meta"
)

// Entry is one metadata item parsed from a struct tag; bare words carry an
// empty value.
type Entry struct {
	Name  string
	Value string
}

// Tag holds per-field control attributes plus metadata entries extracted
// from the meta tag
type Tag struct {
	Name       string
	Required   bool
	hasRequire bool
	OmitEmpty  bool
	Ignore     bool
	Default    string
	HasDefault bool
	Entries    []Entry
}

func (t *Tag) update(key, value string) {
	if key == "" {
		// bare word attribute
		key, value = value, ""
	}
	switch strings.ToLower(key) {
	case "":
	case "name":
		t.Name = value
	case "required":
		t.Required = true
		t.hasRequire = true
	case "optional", "omitempty":
		t.OmitEmpty = true
		t.hasRequire = true
	case "ignore", "-", "transient":
		t.Ignore = true
	case "default":
		t.Default = value
		t.HasDefault = true
	default:
		t.Entries = append(t.Entries, Entry{Name: key, Value: value})
	}
}

// ParseTag parses the meta tag of a struct field. A key=value pair may be
// wrapped in a {} block to retain embedded commas.
func ParseTag(tag reflect.StructTag, names ...string) *Tag {
	ret := &Tag{}
	names = append([]string{TagName}, names...)
	for _, name := range names {
		encoded := tag.Get(name)
		if encoded == "" {
			continue
		}
		cursor := parsly.NewCursor("", []byte(encoded), 0)
		for cursor.Pos < len(cursor.Input) {
			key, value := matchPair(cursor)
			if key == "" && value == "" {
				break
			}
			ret.update(key, value)
		}
	}
	return ret
}

func matchPair(cursor *parsly.Cursor) (string, string) {
	key := ""
	value := ""
	match := cursor.MatchAny(scopeBlockMatcher, comaTerminatorMatcher)
	switch match.Code {
	case scopeBlockToken:
		value = match.Text(cursor)
		value = value[1 : len(value)-1]
		match = cursor.MatchAny(comaTerminatorMatcher)
	case comaTerminatorToken:
		value = match.Text(cursor)
		value = value[:len(value)-1] //exclude ,
	default:
		if cursor.Pos < len(cursor.Input) {
			value = string(cursor.Input[cursor.Pos:])
			cursor.Pos = len(cursor.Input)
		}
	}
	if index := strings.Index(value, "="); index != -1 {
		key = value[:index]
		value = value[index+1:]
	}
	return key, value
}

// MetadataItems returns tag entries as metadata items
func (t *Tag) MetadataItems() []interface{} {
	if len(t.Entries) == 0 {
		return nil
	}
	ret := make([]interface{}, 0, len(t.Entries))
	for _, entry := range t.Entries {
		ret = append(ret, entry)
	}
	return ret
}
