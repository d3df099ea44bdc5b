package social

import (
	"net/url"
	"strings"

	"ensei.io/mission-engine/internal/catalog"
	"ensei.io/mission-engine/pkg/errors"
)

// Link is a parsed social-platform post or profile URL. Only the format is
// checked: the engine never calls a platform API to verify the post exists.
type Link struct {
	Platform catalog.Platform
	Handle   string
	PostID   string
}

var platformHosts = map[string]catalog.Platform{
	"twitter.com":   catalog.PlatformTwitter,
	"x.com":         catalog.PlatformTwitter,
	"instagram.com": catalog.PlatformInstagram,
	"tiktok.com":    catalog.PlatformTiktok,
	"facebook.com":  catalog.PlatformFacebook,
	"fb.com":        catalog.PlatformFacebook,
	"whatsapp.com":  catalog.PlatformWhatsapp,
	"wa.me":         catalog.PlatformWhatsapp,
	"snapchat.com":  catalog.PlatformSnapchat,
	"t.me":          catalog.PlatformTelegram,
	"telegram.me":   catalog.PlatformTelegram,
}

// ParseLink extracts the platform, handle and post id from a social post URL.
// Unrecognized hosts or paths fail with a reason suitable for direct display.
func ParseLink(raw string) (*Link, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil, errors.New("link is empty")
	}
	u, err := url.Parse(raw)
	if err != nil || u.Host == "" {
		return nil, errors.Errorf("%q is not a valid link", raw)
	}
	host := strings.TrimPrefix(strings.ToLower(u.Host), "www.")
	platform, ok := platformHosts[host]
	if !ok {
		return nil, errors.Errorf("%q is not a recognized social platform link", raw)
	}
	link := &Link{Platform: platform}

	segments := splitPath(u.Path)
	if len(segments) == 0 {
		return nil, errors.Errorf("link %q has no post or profile path", raw)
	}
	switch platform {
	case catalog.PlatformTwitter:
		// twitter.com/<handle>/status/<id>
		link.Handle = segments[0]
		if len(segments) >= 3 && (segments[1] == "status" || segments[1] == "statuses") {
			link.PostID = segments[2]
		}
	case catalog.PlatformInstagram:
		// instagram.com/p/<id>, instagram.com/reel/<id> or instagram.com/<handle>
		if len(segments) >= 2 && (segments[0] == "p" || segments[0] == "reel") {
			link.PostID = segments[1]
		} else {
			link.Handle = segments[0]
		}
	case catalog.PlatformTiktok:
		// tiktok.com/@<handle>/video/<id>
		link.Handle = strings.TrimPrefix(segments[0], "@")
		if len(segments) >= 3 && segments[1] == "video" {
			link.PostID = segments[2]
		}
	case catalog.PlatformFacebook:
		// facebook.com/<handle>/posts/<id> or facebook.com/<handle>
		link.Handle = segments[0]
		if len(segments) >= 3 && segments[1] == "posts" {
			link.PostID = segments[2]
		}
	case catalog.PlatformWhatsapp:
		// wa.me/<number> or whatsapp.com/channel/<id>
		if segments[0] == "channel" && len(segments) >= 2 {
			link.PostID = segments[1]
		} else {
			link.Handle = segments[0]
		}
	case catalog.PlatformSnapchat:
		// snapchat.com/add/<handle> or snapchat.com/t/<id>
		if len(segments) >= 2 && segments[0] == "add" {
			link.Handle = segments[1]
		} else if len(segments) >= 2 && segments[0] == "t" {
			link.PostID = segments[1]
		} else {
			link.Handle = segments[0]
		}
	case catalog.PlatformTelegram:
		// t.me/<channel>/<message_id>
		link.Handle = segments[0]
		if len(segments) >= 2 {
			link.PostID = segments[1]
		}
	}
	if link.Handle == "" && link.PostID == "" {
		return nil, errors.Errorf("link %q has no post or profile path", raw)
	}
	return link, nil
}

func splitPath(p string) []string {
	var segments []string
	for _, s := range strings.Split(p, "/") {
		if s != "" {
			segments = append(segments, s)
		}
	}
	return segments
}
