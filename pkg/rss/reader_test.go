package rss

import (
	"encoding/xml"
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRead_File(t *testing.T) {
	f, err := os.Open("testdata/podcast.xml")
	require.NoError(t, err)
	defer f.Close()

	ch, err := Read(f)
	require.NoError(t, err)

	assert.Equal(t, "The Linux Action Show! OGG", ch.Title)
	assert.Equal(t, "http://www.jupiterbroadcasting.com", ch.Link.String())
	assert.Equal(t, "Ogg Vorbis audio versions of The Linux Action Show!", ch.Description)
	assert.Equal(t, "en-us", ch.Language)
	assert.Equal(t, "Copyright 2016 Jupiter Broadcasting", ch.Copyright)
	assert.Equal(t, "chris@jupiterbroadcasting.com (Chris Fisher)", ch.ManagingEditor)
	assert.Equal(t, "webmaster@jupiterbroadcasting.com", ch.WebMaster)
	require.NotNil(t, ch.PubDate)
	assert.True(t, time.Date(2016, 3, 14, 3, 2, 2, 0, time.UTC).Equal(*ch.PubDate))
	require.NotNil(t, ch.LastBuildDate)
	assert.True(t, time.Date(2016, 3, 13, 20, 2, 2, 0, time.UTC).Equal(*ch.LastBuildDate))
	require.Len(t, ch.Categories, 1)
	assert.Equal(t, "Podcast", ch.Categories[0].Name)
	assert.Equal(t, "http://www.jupiterbroadcasting.com/categories", ch.Categories[0].Domain.String())
	assert.Equal(t, "Feeder 2.5.12", ch.Generator)
	assert.Equal(t, "http://blogs.law.harvard.edu/tech/rss", ch.Docs.String())

	require.NotNil(t, ch.Cloud)
	assert.Equal(t, "http://rpc.sys.com", ch.Cloud.Domain.String())
	assert.Equal(t, int64(80), ch.Cloud.Port)
	assert.Equal(t, "/RPC2", ch.Cloud.Path)
	assert.Equal(t, "pingMe", ch.Cloud.RegisterProcedure)
	assert.Equal(t, CloudSOAP, ch.Cloud.Protocol)

	require.NotNil(t, ch.TTL)
	assert.Equal(t, int64(60), *ch.TTL)

	require.NotNil(t, ch.Image)
	assert.Equal(t, "http://jupiterbroadcasting.com/images/LAS-300-Badge.jpg", ch.Image.URL.String())
	assert.Equal(t, "LAS 300 Logo", ch.Image.Title)
	assert.Equal(t, int64(60), ch.Image.Width)
	assert.Equal(t, int64(60), ch.Image.Height)
	assert.Equal(t, "This is the LAS Logo", ch.Image.Description)

	assert.Equal(t, "PG-13", ch.Rating)
	require.NotNil(t, ch.TextInput)
	assert.Equal(t, "q", ch.TextInput.Name)
	assert.Equal(t, []int64{0, 23}, ch.SkipHours)
	assert.Equal(t, []time.Weekday{time.Saturday, time.Sunday}, ch.SkipDays)

	require.Len(t, ch.Items, 2)
	item := ch.Items[0]
	assert.Equal(t, "Making Music with Linux | LAS 408", item.Title)
	assert.Equal(t, "<p>It's a Linux audio special!</p>", item.Description)
	assert.Equal(t, "chris@jupiterbroadcasting.com (Chris Fisher)", item.Author)
	require.Len(t, item.Categories, 2)
	assert.Nil(t, item.Categories[0].Domain)
	assert.Equal(t, "Linux", item.Categories[1].Name)
	assert.Equal(t, "http://www.jupiterbroadcasting.com/97561/comments", item.Comments.String())
	require.NotNil(t, item.Enclosure)
	assert.Equal(t, int64(41445080), item.Enclosure.Length)
	assert.Equal(t, "audio/ogg", item.Enclosure.MimeType.String())
	require.NotNil(t, item.Guid)
	assert.False(t, item.Guid.Permalink)
	assert.Equal(t, "http://www.jupiterbroadcasting.com/?p=97561", item.Guid.Value)
	require.NotNil(t, item.Source)
	assert.Equal(t, "LAS", item.Source.Title)
	assert.Equal(t, "http://www.jupiterbroadcasting.com/feeds/las.xml", item.Source.URL.String())
	assert.Equal(t, []Extension{
		{Name: xml.Name{Space: itunesNS, Local: "author"}, Text: "Jupiter Broadcasting"},
		{Name: xml.Name{Space: itunesNS, Local: "explicit"}, Text: "no"},
	}, item.Extensions)

	assert.Empty(t, ch.Items[1].Title)
	assert.Equal(t, "Item without a title", ch.Items[1].Description)

	// unknown plain tags are skipped, namespaced ones are kept in order
	require.Len(t, ch.Extensions, 2)
	assert.Equal(t, xml.Name{Space: atomNS, Local: "link"}, ch.Extensions[0].Name)
	assert.Len(t, ch.Extensions[0].Attrs, 3)
	assert.Equal(t, xml.Name{Space: itunesNS, Local: "owner"}, ch.Extensions[1].Name)
	require.Len(t, ch.Extensions[1].Children, 2)
	assert.Equal(t, "chris@jupiterbroadcasting.com", ch.Extensions[1].Children[1].Text)
	assert.Empty(t, ch.Extensions[1].Text)

	assert.Equal(t, map[string]string{"itunes": itunesNS, "atom": atomNS}, ch.Namespaces)
}

func TestRead_Minimal(t *testing.T) {
	ch, err := ReadString(`<rss version="2.0"><channel>
		<title> Title </title><link>http://example.com</link><description>Desc</description>
	</channel></rss>`)
	require.NoError(t, err)
	assert.Equal(t, "Title", ch.Title, "text is trimmed")
	assert.Nil(t, ch.Image)
	assert.Nil(t, ch.Cloud)
	assert.Nil(t, ch.TTL)
	assert.Empty(t, ch.Items)
	assert.Empty(t, ch.Extensions)
	assert.Empty(t, ch.Namespaces)
}

func TestRead_Errors(t *testing.T) {
	const head = `<rss version="2.0"><channel><title>t</title><link>http://example.com</link><description>d</description>`
	const tail = `</channel></rss>`

	t.Run("item without title and description", func(t *testing.T) {
		_, err := ReadString(head + `<item><link>http://example.com/1</link></item>` + tail)
		var reqErr *RequiredFieldError
		require.ErrorAs(t, err, &reqErr)
		assert.Equal(t, "item", reqErr.Entity)
		assert.Equal(t, "items[0]", FieldPath(err))
	})

	t.Run("missing channel title", func(t *testing.T) {
		_, err := ReadString(`<rss><channel><link>http://example.com</link><description>d</description></channel></rss>`)
		var reqErr *RequiredFieldError
		require.ErrorAs(t, err, &reqErr)
		assert.Equal(t, "title is required", reqErr.Rule)
	})

	t.Run("bad ttl", func(t *testing.T) {
		_, err := ReadString(head + `<ttl>sixty</ttl>` + tail)
		assert.ErrorIs(t, err, ErrInvalidInteger)
	})

	t.Run("negative ttl", func(t *testing.T) {
		_, err := ReadString(head + `<ttl>-5</ttl>` + tail)
		var negErr *NegativeValueError
		assert.ErrorAs(t, err, &negErr)
	})

	t.Run("bad skip hour", func(t *testing.T) {
		_, err := ReadString(head + `<skipHours><hour>24</hour></skipHours>` + tail)
		var rangeErr *RangeError
		assert.ErrorAs(t, err, &rangeErr)
	})

	t.Run("bad enclosure length", func(t *testing.T) {
		_, err := ReadString(head + `<item><title>x</title><enclosure url="http://example.com/a.mp3" length="big" type="audio/mpeg"/></item>` + tail)
		assert.ErrorIs(t, err, ErrInvalidInteger)
		assert.Equal(t, "items[0].enclosure.length", FieldPath(err))
	})

	t.Run("negative enclosure length", func(t *testing.T) {
		_, err := ReadString(head + `<item><title>x</title><enclosure url="http://example.com/a.mp3" length="-1" type="audio/mpeg"/></item>` + tail)
		var negErr *NegativeValueError
		assert.ErrorAs(t, err, &negErr)
	})

	t.Run("bad guid permalink", func(t *testing.T) {
		_, err := ReadString(head + `<item><title>x</title><guid isPermaLink="yes">1</guid></item>` + tail)
		assert.ErrorIs(t, err, ErrInvalidBoolean)
	})

	t.Run("bad cloud protocol", func(t *testing.T) {
		_, err := ReadString(head + `<cloud domain="http://rpc.sys.com" port="80" path="/RPC2" registerProcedure="p" protocol="ftp"/>` + tail)
		assert.ErrorIs(t, err, ErrInvalidProtocol)
		assert.Equal(t, "cloud.protocol", FieldPath(err))
	})

	t.Run("bad image width", func(t *testing.T) {
		_, err := ReadString(head + `<image><width>wide</width></image>` + tail)
		assert.ErrorIs(t, err, ErrInvalidInteger)
		assert.Equal(t, "image.width", FieldPath(err))
	})

	t.Run("bad pubDate", func(t *testing.T) {
		_, err := ReadString(head + `<item><title>x</title><pubDate>2016-03-13</pubDate></item>` + tail)
		assert.ErrorIs(t, err, ErrInvalidTimestamp)
	})

	t.Run("invalid utf-8", func(t *testing.T) {
		_, err := ReadString(head + "<item><title>bad \xff\xfe</title></item>" + tail)
		var utfErr *Utf8DecodeError
		require.ErrorAs(t, err, &utfErr)
		assert.Equal(t, 1, utfErr.Line)
	})

	t.Run("not rss", func(t *testing.T) {
		_, err := ReadString(`<feed xmlns="http://www.w3.org/2005/Atom"><title>atom</title></feed>`)
		var xmlErr *XMLError
		require.ErrorAs(t, err, &xmlErr)
		assert.Contains(t, xmlErr.Error(), "expected <rss>")
	})

	t.Run("no channel", func(t *testing.T) {
		_, err := ReadString(`<rss version="2.0"></rss>`)
		var xmlErr *XMLError
		require.ErrorAs(t, err, &xmlErr)
	})

	t.Run("malformed", func(t *testing.T) {
		_, err := ReadString(head + `<item><title>x</item>` + tail)
		var xmlErr *XMLError
		require.ErrorAs(t, err, &xmlErr)
		assert.Equal(t, 1, xmlErr.Line)
	})

	t.Run("empty", func(t *testing.T) {
		_, err := ReadString("")
		var xmlErr *XMLError
		require.ErrorAs(t, err, &xmlErr)
	})
}

func TestRead_Charset(t *testing.T) {
	doc := "<?xml version=\"1.0\" encoding=\"ISO-8859-1\"?>\n" +
		"<rss version=\"2.0\"><channel><title>Caf\xe9</title><link>http://example.com</link>" +
		"<description>d</description></channel></rss>"
	ch, err := ReadBytes([]byte(doc))
	require.NoError(t, err)
	assert.Equal(t, "Café", ch.Title)
}

func TestRead_HTMLEntities(t *testing.T) {
	ch, err := ReadString(`<rss><channel><title>Tom&nbsp;&amp;&nbsp;Jerry</title>` +
		`<link>http://example.com</link><description>d</description></channel></rss>`)
	require.NoError(t, err)
	assert.Equal(t, "Tom\u00a0&\u00a0Jerry", ch.Title)
}

func TestRead_LowercaseTextInput(t *testing.T) {
	ch, err := ReadString(`<rss><channel><title>t</title><link>http://example.com</link><description>d</description>
		<textinput><title>Go</title><description>Search</description><name>q</name><link>http://example.com/s</link></textinput>
		</channel></rss>`)
	require.NoError(t, err)
	require.NotNil(t, ch.TextInput)
	assert.Equal(t, "Go", ch.TextInput.Title)
}

func TestRead_Concurrent(t *testing.T) {
	data, err := os.ReadFile("testdata/podcast.xml")
	require.NoError(t, err)

	done := make(chan error, 8)
	for range 8 {
		go func() {
			_, err := ReadBytes(data)
			done <- err
		}()
	}
	for range 8 {
		assert.NoError(t, <-done)
	}
}
