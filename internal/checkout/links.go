package checkout

import "net/url"

// Messenger identifies the channel the customer picked for the order.
type Messenger string

const (
	MessengerWhatsApp Messenger = "whatsapp"
	MessengerTelegram Messenger = "telegram"
)

// Navigation tells the client how to open a resolved deep link.
// Method is one of navigate (plain full-page navigation, the
// universal fallback), open_link (native external-link call of an
// in-app webview host) or open_telegram_link (the host's dedicated
// call for telegram-domain links).
type Navigation struct {
	Method string `json:"method"`
	URL    string `json:"url"`
}

// LinkOpener picks the opening mechanism for a given URL. The
// implementation is chosen once per request from the client's
// declared host environment instead of branching at call sites.
type LinkOpener interface {
	OpenExternal(link string) Navigation
	OpenMessengerLink(link string, kind Messenger) Navigation
}

// BrowserOpener serves plain browsers: everything is a full-page
// navigation.
type BrowserOpener struct{}

func (BrowserOpener) OpenExternal(link string) Navigation {
	return Navigation{Method: "navigate", URL: link}
}

func (BrowserOpener) OpenMessengerLink(link string, kind Messenger) Navigation {
	return Navigation{Method: "navigate", URL: link}
}

// WebAppOpener serves in-app webview hosts that expose native open
// calls, with a dedicated call for telegram-domain links.
type WebAppOpener struct{}

func (WebAppOpener) OpenExternal(link string) Navigation {
	return Navigation{Method: "open_link", URL: link}
}

func (WebAppOpener) OpenMessengerLink(link string, kind Messenger) Navigation {
	if kind == MessengerTelegram {
		return Navigation{Method: "open_telegram_link", URL: link}
	}
	return Navigation{Method: "open_link", URL: link}
}

// OpenerForHost maps the client's declared host environment to a
// LinkOpener. Unknown hosts fall back to plain navigation.
func OpenerForHost(host string) LinkOpener {
	if host == "telegram-webapp" {
		return WebAppOpener{}
	}
	return BrowserOpener{}
}

// WhatsAppLink builds a wa.me deep link with the summary prefilled.
func WhatsAppLink(number, text string) string {
	return "https://wa.me/" + number + "?text=" + url.QueryEscape(text)
}

// TelegramLink builds a t.me deep link with the summary prefilled.
func TelegramLink(handle, text string) string {
	return "https://t.me/" + handle + "?text=" + url.QueryEscape(text)
}
