// Copyright (c) 2025 ManuGH
// Licensed under the PolyForm Noncommercial License 1.0.0

package dls

import (
	"strconv"
	"strings"

	"github.com/ManuGH/padmeta/internal/content"
)

// DL Plus content types (ETSI TS 102 980, table 2).
const (
	TagItemTitle       = 1
	TagItemArtist      = 4
	TagStationNameLong = 32
	TagProgrammeNow    = 33
)

const (
	headerOpen  = "##### parameters { #####"
	headerClose = "##### parameters } #####"
	separator   = " - "
)

// Tag marks a byte range of the display text with a DL Plus content type.
type Tag struct {
	ID     int
	Start  int
	Length int
}

// Label is the structured form of a rendered DLS message.
type Label struct {
	Text    string
	Tags    []Tag
	Toggle  bool
	Running bool
}

// Build derives the display text and tags for a. Offsets and lengths are
// byte counts of the UTF-8 text.
func Build(a content.Active, toggle bool) Label {
	l := Label{Toggle: toggle}
	switch a.Kind {
	case content.KindTrack:
		l.Running = true
		if a.Artist != "" {
			l.Text = a.Artist + separator + a.Title
			l.Tags = []Tag{
				{ID: TagItemArtist, Start: 0, Length: len(a.Artist)},
				{ID: TagItemTitle, Start: len(a.Artist) + len(separator), Length: len(a.Title)},
			}
		} else {
			l.Text = a.Title
			l.Tags = []Tag{{ID: TagItemTitle, Start: 0, Length: len(a.Title)}}
		}
	case content.KindProgram:
		l.Text = a.Name
		l.Tags = []Tag{{ID: TagProgrammeNow, Start: 0, Length: len(a.Name)}}
	default:
		l.Text = a.Name
		l.Tags = []Tag{{ID: TagStationNameLong, Start: 0, Length: len(a.Name)}}
	}
	return l
}

// String renders the label in the ODR-PadEnc parameter-block format.
func (l Label) String() string {
	var b strings.Builder
	b.WriteString(headerOpen)
	b.WriteString("\nDL_PLUS=1\n")
	b.WriteString("DL_PLUS_ITEM_TOGGLE=")
	b.WriteString(bit(l.Toggle))
	b.WriteString("\nDL_PLUS_ITEM_RUNNING=")
	b.WriteString(bit(l.Running))
	b.WriteByte('\n')
	for _, t := range l.Tags {
		b.WriteString("DL_PLUS_TAG=")
		b.WriteString(strconv.Itoa(t.ID))
		b.WriteByte(' ')
		b.WriteString(strconv.Itoa(t.Start))
		b.WriteByte(' ')
		b.WriteString(strconv.Itoa(t.Length))
		b.WriteByte('\n')
	}
	b.WriteString(headerClose)
	b.WriteByte('\n')
	b.WriteString(l.Text)
	return b.String()
}

// Render is Build followed by String.
func Render(a content.Active, toggle bool) string {
	return Build(a, toggle).String()
}

func bit(v bool) string {
	if v {
		return "1"
	}
	return "0"
}
