package viewer

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"golang.org/x/text/language"
)

func TestNew_MatchesLocale(t *testing.T) {
	tests := []struct {
		header string
		want   language.Tag
	}{
		{header: "", want: language.AmericanEnglish},
		{header: "de-DE,de;q=0.9,en;q=0.8", want: language.German},
		{header: "en-GB", want: language.BritishEnglish},
		{header: "not a header;;", want: language.AmericanEnglish},
	}
	for _, tt := range tests {
		t.Run(tt.header, func(t *testing.T) {
			assert.Equal(t, tt.want, New(tt.header, "").Tag)
		})
	}
}

func TestFormatDate(t *testing.T) {
	us := Default()
	de := New("de", "")
	gb := New("en-GB", "")

	assert.Equal(t, "3/5/2024", us.FormatDate("2024-03-05"))
	assert.Equal(t, "5.3.2024", de.FormatDate("2024-03-05"))
	assert.Equal(t, "05/03/2024", gb.FormatDate("2024-03-05T23:10:00Z"))
	assert.Equal(t, "", us.FormatDate(""))
	assert.Equal(t, "yesterday", us.FormatDate("yesterday"))
}

func TestFormatDate_ShiftsToViewerZone(t *testing.T) {
	tokyo := New("ja", "Asia/Tokyo")
	assert.Equal(t, "2024/3/6", tokyo.FormatDate("2024-03-05T23:10:00Z"))
}

func TestFormatDateTime(t *testing.T) {
	us := Default()
	assert.Equal(t, "3/5/2024, 11:10:00 PM", us.FormatDateTime("2024-03-05T23:10:00Z"))
	assert.Equal(t, "3/5/2024, 12:00:00 AM", us.FormatDateTime("2024-03-05"))

	ru := New("ru", "Europe/Moscow")
	assert.Equal(t, "06.03.2024, 02:10:00", ru.FormatDateTime("2024-03-05T23:10:00.000Z"))
}

func TestFromRequest(t *testing.T) {
	req := httptest.NewRequest("GET", "/", nil)
	req.Header.Set("Accept-Language", "fr-FR")
	req.AddCookie(&http.Cookie{Name: TimezoneCookie, Value: "Europe/Paris"})

	v := FromRequest(req)

	assert.Equal(t, language.French, v.Tag)
	assert.Equal(t, "Europe/Paris", v.Location.String())
}

func TestPrinterGroupsNumbers(t *testing.T) {
	assert.Equal(t, "1,234,567", Default().Printer().Sprintf("%d", 1234567))
}
