package guide

import (
	"fmt"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// Platform is the product a step is performed in.
type Platform string

const (
	PlatformHubSpot    Platform = "hubspot"
	PlatformSana       Platform = "sana"
	PlatformTerminal   Platform = "terminal"
	PlatformZendesk    Platform = "zendesk"
	PlatformNotion     Platform = "notion"
	PlatformSharePoint Platform = "sharepoint"
	PlatformOutlook    Platform = "outlook"
	PlatformAirtable   Platform = "airtable"
	PlatformGoogle     Platform = "google"
)

// Platforms returns every known platform.
func Platforms() []Platform {
	return []Platform{
		PlatformHubSpot,
		PlatformSana,
		PlatformTerminal,
		PlatformZendesk,
		PlatformNotion,
		PlatformSharePoint,
		PlatformOutlook,
		PlatformAirtable,
		PlatformGoogle,
	}
}

// ParsePlatform converts a catalog tag into a Platform.
func ParsePlatform(s string) (Platform, error) {
	p := Platform(strings.ToLower(strings.TrimSpace(s)))
	if !p.Valid() {
		return "", fmt.Errorf("unknown platform %q", s)
	}
	return p, nil
}

// Valid reports whether p is a known platform.
func (p Platform) Valid() bool {
	for _, known := range Platforms() {
		if p == known {
			return true
		}
	}
	return false
}

// Label returns the product name as it is written.
func (p Platform) Label() string {
	switch p {
	case PlatformHubSpot:
		return "HubSpot"
	case PlatformSharePoint:
		return "SharePoint"
	default:
		return cases.Title(language.English).String(string(p))
	}
}

// String returns the catalog tag.
func (p Platform) String() string {
	return string(p)
}
