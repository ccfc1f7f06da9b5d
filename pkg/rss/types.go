package rss

import "encoding/xml"

// rssXML is the root rss 2.0 element as written
type rssXML struct {
	XMLName    xml.Name   `xml:"rss"`
	Version    string     `xml:"version,attr"`
	Namespaces []xml.Attr `xml:",any,attr"`
	Channel    channelXML `xml:"channel"`
}

// channelXML lists channel fields in canonical order
type channelXML struct {
	Title          string         `xml:"title"`
	Link           string         `xml:"link"`
	Description    string         `xml:"description"`
	Language       string         `xml:"language,omitempty"`
	Copyright      string         `xml:"copyright,omitempty"`
	ManagingEditor string         `xml:"managingEditor,omitempty"`
	WebMaster      string         `xml:"webMaster,omitempty"`
	PubDate        string         `xml:"pubDate,omitempty"`
	LastBuildDate  string         `xml:"lastBuildDate,omitempty"`
	Categories     []categoryXML  `xml:"category"`
	Generator      string         `xml:"generator,omitempty"`
	Docs           string         `xml:"docs,omitempty"`
	Cloud          *cloudXML      `xml:"cloud"`
	TTL            *int64         `xml:"ttl"`
	Image          *imageXML      `xml:"image"`
	Rating         string         `xml:"rating,omitempty"`
	TextInput      *textInputXML  `xml:"textInput"`
	SkipHours      *skipHoursXML  `xml:"skipHours"`
	SkipDays       *skipDaysXML   `xml:"skipDays"`
	Items          []itemXML      `xml:"item"`
	Extensions     []extensionXML `xml:",any"`
}

// itemXML lists item fields in canonical order
type itemXML struct {
	Title       string         `xml:"title,omitempty"`
	Link        string         `xml:"link,omitempty"`
	Description string         `xml:"description,omitempty"`
	Author      string         `xml:"author,omitempty"`
	Categories  []categoryXML  `xml:"category"`
	Comments    string         `xml:"comments,omitempty"`
	Enclosure   *enclosureXML  `xml:"enclosure"`
	GUID        *guidXML       `xml:"guid"`
	PubDate     string         `xml:"pubDate,omitempty"`
	Source      *sourceXML     `xml:"source"`
	Extensions  []extensionXML `xml:",any"`
}

type categoryXML struct {
	Domain string `xml:"domain,attr,omitempty"`
	Name   string `xml:",chardata"`
}

type cloudXML struct {
	Domain            string `xml:"domain,attr,omitempty"`
	Port              int64  `xml:"port,attr"`
	Path              string `xml:"path,attr"`
	RegisterProcedure string `xml:"registerProcedure,attr"`
	Protocol          string `xml:"protocol,attr"`
}

type imageXML struct {
	URL         string `xml:"url,omitempty"`
	Title       string `xml:"title,omitempty"`
	Link        string `xml:"link,omitempty"`
	Width       int64  `xml:"width"`
	Height      int64  `xml:"height"`
	Description string `xml:"description,omitempty"`
}

type textInputXML struct {
	Title       string `xml:"title"`
	Description string `xml:"description"`
	Name        string `xml:"name"`
	Link        string `xml:"link"`
}

type skipHoursXML struct {
	Hours []int64 `xml:"hour"`
}

type skipDaysXML struct {
	Days []string `xml:"day"`
}

type enclosureXML struct {
	URL    string `xml:"url,attr,omitempty"`
	Length int64  `xml:"length,attr"`
	Type   string `xml:"type,attr,omitempty"`
}

type guidXML struct {
	IsPermaLink string `xml:"isPermaLink,attr"`
	Value       string `xml:",chardata"`
}

type sourceXML struct {
	URL   string `xml:"url,attr,omitempty"`
	Title string `xml:",chardata"`
}

// extensionXML is an extension element with names already qualified by prefix
type extensionXML struct {
	XMLName  xml.Name
	Attrs    []xml.Attr     `xml:",any,attr"`
	Text     string         `xml:",chardata"`
	Children []extensionXML `xml:",any"`
}
