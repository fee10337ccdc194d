package notify

import (
	"strings"

	"golang.org/x/text/language"
)

// Key names a message template.
type Key int

const (
	CreditsNoTechReceive Key = iota
	CreditsNoTechSend
	CreditsTransferred

	MinefieldLaid
	MinefieldLaidWeb
	MinefieldSweptHeader
	MinefieldSweptHeaderWeb
	MinefieldSweptBeams
	MinefieldSweptFighters
	MinefieldScoopedHeader
	MinefieldScoopedHeaderWeb
	MinefieldScooped

	LoadNotPermitted
	LoadNoParts
	LoadConflict
	LoadNoSpace
	LoadSuccess
	UnloadNoParts
	UnloadSuccess
	TrimmedComponents
	TrimmedCargo
	TransportReport
	TransportReportContinued

	ConfigReport
	ConfigReportContinued

	ContinuedOnNextPage

	numKeys
)

type catalog struct {
	tag       language.Tag
	templates [numKeys]string
}

var supportedTags = []language.Tag{
	language.English,
	language.German,
}

var tagMatcher = language.NewMatcher(supportedTags)

var catalogs = []*catalog{&english, &german}

// catalogFor returns the catalog best matching a BCP 47 tag. Unknown or
// empty tags get English.
func catalogFor(tag string) *catalog {
	tag = strings.TrimSpace(tag)
	if tag == "" {
		return &english
	}
	parsed, err := language.Parse(tag)
	if err != nil {
		return &english
	}
	_, index, conf := tagMatcher.Match(parsed)
	if conf == language.No || index < 0 || index >= len(catalogs) {
		return &english
	}
	return catalogs[index]
}

// Template returns the text of key in the language named by tag.
func Template(tag string, key Key) string {
	return catalogFor(tag).templates[key]
}

// LanguageOf returns the supported language a BCP 47 tag resolves to.
func LanguageOf(tag string) language.Tag {
	return catalogFor(tag).tag
}
