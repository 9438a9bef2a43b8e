// Package viewer resolves the locale conventions of the person looking at a
// page, so dates are shown the way their browser would show them.
package viewer

import (
	"net/http"
	"strings"
	"time"
	_ "time/tzdata"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// TimezoneCookie holds an IANA zone name chosen on the settings page.
const TimezoneCookie = "tz"

type layout struct {
	date     string
	dateTime string
}

var supported = []language.Tag{
	language.AmericanEnglish,
	language.BritishEnglish,
	language.German,
	language.French,
	language.Spanish,
	language.Russian,
	language.Japanese,
	language.Chinese,
}

var layouts = map[language.Tag]layout{
	language.AmericanEnglish: {date: "1/2/2006", dateTime: "1/2/2006, 3:04:05 PM"},
	language.BritishEnglish:  {date: "02/01/2006", dateTime: "02/01/2006, 15:04:05"},
	language.German:          {date: "2.1.2006", dateTime: "2.1.2006, 15:04:05"},
	language.French:          {date: "02/01/2006", dateTime: "02/01/2006 15:04:05"},
	language.Spanish:         {date: "2/1/2006", dateTime: "2/1/2006, 15:04:05"},
	language.Russian:         {date: "02.01.2006", dateTime: "02.01.2006, 15:04:05"},
	language.Japanese:        {date: "2006/1/2", dateTime: "2006/1/2 15:04:05"},
	language.Chinese:         {date: "2006/1/2", dateTime: "2006/1/2 15:04:05"},
}

var matcher = language.NewMatcher(supported)

// inputs are the timestamp shapes the asset API is known to send.
var inputs = []string{
	time.RFC3339Nano,
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05.999999-07",
	"2006-01-02 15:04:05",
}

const dateOnly = "2006-01-02"

// Viewer carries the locale and time zone used to format values.
type Viewer struct {
	Tag      language.Tag
	Location *time.Location
}

// Default is the en-US, UTC viewer.
func Default() Viewer {
	return Viewer{Tag: language.AmericanEnglish, Location: time.UTC}
}

// New matches acceptLanguage against the supported locales and loads zone.
// Unknown or empty inputs fall back to the defaults.
func New(acceptLanguage, zone string) Viewer {
	v := Default()
	if tags, _, err := language.ParseAcceptLanguage(acceptLanguage); err == nil && len(tags) > 0 {
		_, idx, conf := matcher.Match(tags...)
		if conf != language.No {
			v.Tag = supported[idx]
		}
	}
	if zone != "" {
		if loc, err := time.LoadLocation(zone); err == nil {
			v.Location = loc
		}
	}
	return v
}

// FromRequest builds the viewer of r from its Accept-Language header and tz cookie.
func FromRequest(r *http.Request) Viewer {
	zone := ""
	if c, err := r.Cookie(TimezoneCookie); err == nil {
		zone = c.Value
	}
	return New(r.Header.Get("Accept-Language"), zone)
}

func (v Viewer) layout() layout {
	if l, ok := layouts[v.Tag]; ok {
		return l
	}
	return layouts[language.AmericanEnglish]
}

func (v Viewer) location() *time.Location {
	if v.Location == nil {
		return time.UTC
	}
	return v.Location
}

// FormatDate renders a server timestamp as a local calendar date. Plain
// dates are shown as-is without a zone shift. Unparseable values are
// returned unchanged.
func (v Viewer) FormatDate(raw string) string {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return ""
	}
	if d, err := time.Parse(dateOnly, raw); err == nil {
		return d.Format(v.layout().date)
	}
	t, ok := parse(raw)
	if !ok {
		return raw
	}
	return t.In(v.location()).Format(v.layout().date)
}

// FormatDateTime renders a server timestamp as a local date and time.
func (v Viewer) FormatDateTime(raw string) string {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return ""
	}
	t, ok := parse(raw)
	if !ok {
		if d, err := time.Parse(dateOnly, raw); err == nil {
			t, ok = d, true
		}
	}
	if !ok {
		return raw
	}
	return t.In(v.location()).Format(v.layout().dateTime)
}

// Printer returns a message printer for locale-aware number grouping.
func (v Viewer) Printer() *message.Printer {
	return message.NewPrinter(v.Tag)
}

// Language returns the BCP 47 tag, used for the html lang attribute.
func (v Viewer) Language() string {
	return v.Tag.String()
}

func parse(raw string) (time.Time, bool) {
	for _, l := range inputs {
		if t, err := time.Parse(l, raw); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}
