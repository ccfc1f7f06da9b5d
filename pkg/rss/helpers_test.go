package rss

import (
	"encoding/xml"
	"net/url"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/require"
)

const (
	itunesNS = "http://www.itunes.com/dtds/podcast-1.0.dtd"
	atomNS   = "http://www.w3.org/2005/Atom"
)

func mustURL(t *testing.T, s string) *url.URL {
	t.Helper()
	u, err := url.Parse(s)
	require.NoError(t, err)
	return u
}

// fullChannel builds a channel with every field populated
func fullChannel(t *testing.T) Channel {
	t.Helper()
	ch, err := NewChannelBuilder().
		Title("The Linux Action Show! OGG").
		Link("http://www.jupiterbroadcasting.com").
		Description("Ogg Vorbis audio versions of The Linux Action Show! & friends <3").
		Language("en-us").
		Copyright("Copyright 2016 Jupiter Broadcasting").
		ManagingEditor("chris@jupiterbroadcasting.com (Chris Fisher)").
		WebMaster("webmaster@jupiterbroadcasting.com").
		PubDate("Sun, 13 Mar 2016 20:02:02 -0700").
		LastBuildDate("Mon, 14 Mar 2016 08:00:00 +0000").
		Categories(NewCategoryBuilder().Name("Podcast").Domain("http://www.jupiterbroadcasting.com/categories"),
			NewCategoryBuilder().Name("Technology")).
		Generator("Feeder 2.5.12").
		Docs("http://blogs.law.harvard.edu/tech/rss").
		Cloud(NewCloudBuilder().Domain("http://rpc.sys.com").Port(80).Path("/RPC2").RegisterProcedure("pingMe").Protocol("soap")).
		TTL(60).
		Image(NewImageBuilder().URL("http://jupiterbroadcasting.com/images/LAS-300-Badge.jpg").Title("LAS 300 Logo").
			Link("http://www.jupiterbroadcasting.com").Width(60).Height(60).Description("This is the LAS Logo")).
		Rating("PG-13").
		TextInput(NewTextInputBuilder().Title("Submit").Description("Search this site").Name("q").
			Link("http://www.jupiterbroadcasting.com/search")).
		SkipHours(0, 6, 23).
		SkipDays("Saturday", "Sunday").
		Items(
			NewItemBuilder().
				Title("Making Music with Linux | LAS 408").
				Link("http://www.jupiterbroadcasting.com/97561/making-music-with-linux-las-408/").
				Description("<p>It's a Linux audio special!</p>").
				Author("chris@jupiterbroadcasting.com (Chris Fisher)").
				Categories(NewCategoryBuilder().Name("Linux").Domain("http://www.jupiterbroadcasting.com/tags")).
				Comments("http://www.jupiterbroadcasting.com/97561/comments").
				Enclosure(NewEnclosureBuilder().URL("http://traffic.libsyn.com/jnite/las408.ogg").Length(41445080).MimeType("audio/ogg")).
				Guid(NewGuidBuilder().Value("http://www.jupiterbroadcasting.com/?p=97561").Permalink(false)).
				PubDate("Sun, 13 Mar 2016 20:02:02 -0700").
				Source(NewSourceBuilder().URL("http://www.jupiterbroadcasting.com/feeds/las.xml").Title("LAS")).
				Extensions(
					Extension{Name: xml.Name{Space: itunesNS, Local: "author"}, Text: "Jupiter Broadcasting"},
					Extension{Name: xml.Name{Space: itunesNS, Local: "image"},
						Attrs: []xml.Attr{{Name: xml.Name{Local: "href"}, Value: "http://example.com/408.jpg"}}},
				),
			NewItemBuilder().
				Title("Episode 409").
				Guid(NewGuidBuilder().Value("http://www.jupiterbroadcasting.com/?p=97600")),
		).
		Extensions(
			Extension{Name: xml.Name{Space: atomNS, Local: "link"}, Attrs: []xml.Attr{
				{Name: xml.Name{Local: "href"}, Value: "http://feeds.example.com/las.xml"},
				{Name: xml.Name{Local: "rel"}, Value: "self"},
			}},
			Extension{Name: xml.Name{Space: itunesNS, Local: "owner"}, Children: []Extension{
				{Name: xml.Name{Space: itunesNS, Local: "name"}, Text: "Jupiter Broadcasting"},
				{Name: xml.Name{Space: itunesNS, Local: "email"}, Text: "chris@jupiterbroadcasting.com"},
			}},
		).
		Namespace("itunes", itunesNS).
		Namespace("atom", atomNS).
		Finalize()
	require.NoError(t, err)
	return ch
}

func assertChannelsEqual(t *testing.T, want, got Channel) {
	t.Helper()
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("channel mismatch (-want +got):\n%s", diff)
	}
}
