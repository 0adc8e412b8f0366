// Package i18n provides the display strings of every view in English and Uzbek.
package i18n

import (
	"errors"
	"strconv"
	"strings"

	"github.com/robalyx/modlog/internal/expiry"
	"github.com/robalyx/modlog/internal/fetcher"
	"github.com/robalyx/modlog/internal/types"
	"golang.org/x/text/language"
)

// unitName holds the singular and plural form of a duration unit.
type unitName struct {
	one   string
	other string
}

// Labels is the set of display strings for one language.
type Labels struct {
	Tag language.Tag

	Titles      map[types.Kind]string
	Badges      map[types.Kind]string
	SearchTitle string
	StatusTitle string

	Loading           string
	NoResults         string
	ErrorPrefix       string
	KindPlaceholder   string
	SearchPlaceholder string
	SearchHint        string
	RefreshHint       string

	Reason        string
	Issuer        string
	RemainingTime string
	Term          string
	Created       string
	Evidence      string
	Permanent     string
	Expired       string
	UnknownIssuer string
	None          string

	GenericError    string
	ConnectionError string
	ConnectionHint  string

	Host          string
	Online        string
	RecentPlayers string
	TotalSeen     string

	units [4]unitName
}

var english = Labels{
	Tag: language.English,
	Titles: map[types.Kind]string{
		types.KindBan:  "Bans",
		types.KindMute: "Mutes",
		types.KindKick: "Kicks",
	},
	Badges: map[types.Kind]string{
		types.KindBan:  "BAN",
		types.KindMute: "MUTE",
		types.KindKick: "KICK",
	},
	SearchTitle: "Search",
	StatusTitle: "Server status",

	Loading:           "Loading...",
	NoResults:         "Nothing found",
	ErrorPrefix:       "Error: ",
	KindPlaceholder:   "Search: player or reason",
	SearchPlaceholder: "Type a player name",
	SearchHint:        "Searches bans, mutes and kicks.",
	RefreshHint:       "press r to refresh",

	Reason:        "Reason",
	Issuer:        "Issued by",
	RemainingTime: "Time left",
	Term:          "Term",
	Created:       "Created",
	Evidence:      "Evidence",
	Permanent:     "permanent",
	Expired:       "finished",
	UnknownIssuer: "unknown",
	None:          "—",

	GenericError:    "Failed to load data",
	ConnectionError: "Connection error.",
	ConnectionHint:  "set the backend URL with MODLOG_API_URL",

	Host:          "Host",
	Online:        "Online",
	RecentPlayers: "Recent players",
	TotalSeen:     "Players seen",

	units: [4]unitName{
		expiry.Days:    {"day", "days"},
		expiry.Hours:   {"hour", "hours"},
		expiry.Minutes: {"minute", "minutes"},
		expiry.Seconds: {"second", "seconds"},
	},
}

var uzbek = Labels{
	Tag: language.Uzbek,
	Titles: map[types.Kind]string{
		types.KindBan:  "Banlar",
		types.KindMute: "Mutelar",
		types.KindKick: "Kicklar",
	},
	Badges: map[types.Kind]string{
		types.KindBan:  "BAN",
		types.KindMute: "MUTE",
		types.KindKick: "KICK",
	},
	SearchTitle: "Qidiruv",
	StatusTitle: "Server holati",

	Loading:           "Yuklanmoqda...",
	NoResults:         "Hech narsa topilmadi",
	ErrorPrefix:       "Xatolik: ",
	KindPlaceholder:   "Qidirish: o'yinchi yoki sabab",
	SearchPlaceholder: "Qidirmoqchi bo'lgan nickni yozing",
	SearchHint:        "Ban, Mute va Kick ichidan izlaydi.",
	RefreshHint:       "yangilash uchun r",

	Reason:        "Sabab",
	Issuer:        "Kim tomonidan",
	RemainingTime: "Qolgan vaqt",
	Term:          "Muddat",
	Created:       "Sana",
	Evidence:      "Dalil",
	Permanent:     "Doimiy",
	Expired:       "Tugadi",
	UnknownIssuer: "Noma'lum",
	None:          "—",

	GenericError:    "Ma'lumotni yuklashda xatolik",
	ConnectionError: "Ulanish xatosi.",
	ConnectionHint:  "productionda backend URL kerak (MODLOG_API_URL)",

	Host:          "Host",
	Online:        "Online",
	RecentPlayers: "Oxirgi namunalar",
	TotalSeen:     "Jami ko'rilgan o'yinchilar",

	units: [4]unitName{
		expiry.Days:    {"kun", "kun"},
		expiry.Hours:   {"soat", "soat"},
		expiry.Minutes: {"daqiqa", "daqiqa"},
		expiry.Seconds: {"sekund", "sekund"},
	},
}

var (
	supported = []*Labels{&english, &uzbek}
	matcher   = language.NewMatcher([]language.Tag{english.Tag, uzbek.Tag})
)

// For returns the labels best matching the given language preferences,
// such as "uz", "uz-Latn-UZ" or an Accept-Language style list. English is the fallback.
func For(prefs ...string) *Labels {
	_, index := language.MatchStrings(matcher, prefs...)
	if index < 0 || index >= len(supported) {
		return &english
	}

	return supported[index]
}

// English returns the English labels.
func English() *Labels {
	return &english
}

// Uzbek returns the Uzbek labels.
func Uzbek() *Labels {
	return &uzbek
}

// Remaining renders an evaluated expiry as countdown text.
func (l *Labels) Remaining(res expiry.Result) string {
	switch res.State {
	case expiry.Permanent:
		return l.Permanent
	case expiry.Expired:
		return l.Expired
	}

	parts := res.Parts()
	words := make([]string, 0, len(parts))
	for _, part := range parts {
		name := l.units[part.Unit].other
		if part.Value == 1 {
			name = l.units[part.Unit].one
		}
		words = append(words, strconv.FormatInt(part.Value, 10)+" "+name)
	}

	return strings.Join(words, " ")
}

// IssuerName returns the issuer of a record or the unknown placeholder.
func (l *Labels) IssuerName(rec *types.Record) string {
	if rec.Issuer == nil {
		return l.UnknownIssuer
	}
	return *rec.Issuer
}

// Title returns the plural heading of a kind.
func (l *Labels) Title(kind types.Kind) string {
	return l.Titles[kind]
}

// Badge returns the short tag shown next to a record of a kind.
func (l *Labels) Badge(kind types.Kind) string {
	return l.Badges[kind]
}

// Error turns a fetch error into a single display string.
func (l *Labels) Error(err error) string {
	if err == nil {
		return ""
	}

	var connErr *fetcher.ConnectivityError
	if errors.As(err, &connErr) {
		msg := l.ConnectionError + " API: " + connErr.Base
		if !connErr.BuildOverride {
			msg += " " + l.None + " " + l.ConnectionHint
		}
		return msg
	}

	var dataErr *fetcher.DataError
	if errors.As(err, &dataErr) && dataErr.Message != "" {
		return dataErr.Message
	}

	return l.GenericError
}
