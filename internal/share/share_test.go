package share

import (
	"bytes"
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLink(t *testing.T) {
	tests := []struct {
		name   string
		origin string
		menu   Menu
		want   string
	}{
		{
			name:   "name and unavailable",
			origin: "https://drinkingman.example",
			menu:   Menu{BarName: "Tiki Hut", Unavailable: []string{"Lime", "Mint"}},
			want:   "https://drinkingman.example?barName=Tiki+Hut&unavailable=Lime%2CMint#drinkingman",
		},
		{
			name:   "nothing unavailable",
			origin: "https://drinkingman.example/",
			menu:   Menu{BarName: "Tiki Hut", Unavailable: []string{" "}},
			want:   "https://drinkingman.example?barName=Tiki+Hut#drinkingman",
		},
		{
			name:   "origin with query and fragment",
			origin: "https://drinkingman.example/menu/?table=4#top",
			menu:   Menu{BarName: "Tiki Hut", Unavailable: []string{"Lime"}},
			want:   "https://drinkingman.example/menu?barName=Tiki+Hut&table=4&unavailable=Lime#drinkingman",
		},
		{
			name:   "empty menu",
			origin: "http://localhost:3000",
			menu:   Menu{},
			want:   "http://localhost:3000#drinkingman",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			link, err := Link(tt.origin, tt.menu)
			require.NoError(t, err)
			assert.Equal(t, tt.want, link)
		})
	}
}

func TestLinkInvalidOrigin(t *testing.T) {
	for _, origin := range []string{"", "drinkingman.example", "://bad"} {
		_, err := Link(origin, Menu{})
		assert.ErrorIs(t, err, ErrInvalidOrigin, origin)
	}
}

func TestLinkDecodeRoundTrip(t *testing.T) {
	menu := Menu{BarName: "Bar Ça Va", Unavailable: []string{"Tonic Water", "Angostura Bitters"}}
	link, err := Link("https://drinkingman.example", menu)
	require.NoError(t, err)

	u, err := url.Parse(link)
	require.NoError(t, err)
	assert.Equal(t, Fragment, u.Fragment)
	assert.Equal(t, menu, Decode(u.Query()))
}

func TestDecode(t *testing.T) {
	menu := Decode(url.Values{ParamUnavailable: {" Lime, ,Mint ,"}})
	assert.Equal(t, "", menu.BarName)
	assert.Equal(t, []string{"Lime", "Mint"}, menu.Unavailable)

	assert.Empty(t, Decode(url.Values{}).Unavailable)
}

func TestMerge(t *testing.T) {
	got := Merge([]string{"Lime", "Mint"}, []string{"mint", " Tonic Water "}, nil)
	assert.Equal(t, []string{"Lime", "Mint", "Tonic Water"}, got)
	assert.Equal(t, []string{}, Merge())
}

func TestQRCode(t *testing.T) {
	png, err := QRCode("https://drinkingman.example?barName=Tiki+Hut#drinkingman", 0)
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(png, []byte("\x89PNG")))
}
