package social

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"ensei.io/mission-engine/internal/catalog"
)

func TestParseLinkTwitter(t *testing.T) {
	link, err := ParseLink("https://twitter.com/acme/status/1234567890")
	require.NoError(t, err)
	assert.Equal(t, catalog.PlatformTwitter, link.Platform)
	assert.Equal(t, "acme", link.Handle)
	assert.Equal(t, "1234567890", link.PostID)

	// x.com and www prefix resolve the same way
	link, err = ParseLink("https://www.x.com/acme/status/42")
	require.NoError(t, err)
	assert.Equal(t, catalog.PlatformTwitter, link.Platform)
	assert.Equal(t, "42", link.PostID)

	// profile link without a post id
	link, err = ParseLink("https://twitter.com/acme")
	require.NoError(t, err)
	assert.Equal(t, "acme", link.Handle)
	assert.Empty(t, link.PostID)
}

func TestParseLinkInstagram(t *testing.T) {
	link, err := ParseLink("https://instagram.com/p/Cxyz123")
	require.NoError(t, err)
	assert.Equal(t, catalog.PlatformInstagram, link.Platform)
	assert.Equal(t, "Cxyz123", link.PostID)

	link, err = ParseLink("https://www.instagram.com/reel/Rabc987/")
	require.NoError(t, err)
	assert.Equal(t, "Rabc987", link.PostID)

	link, err = ParseLink("https://instagram.com/acme")
	require.NoError(t, err)
	assert.Equal(t, "acme", link.Handle)
}

func TestParseLinkTiktok(t *testing.T) {
	link, err := ParseLink("https://www.tiktok.com/@acme/video/7012345")
	require.NoError(t, err)
	assert.Equal(t, catalog.PlatformTiktok, link.Platform)
	assert.Equal(t, "acme", link.Handle)
	assert.Equal(t, "7012345", link.PostID)
}

func TestParseLinkFacebook(t *testing.T) {
	link, err := ParseLink("https://facebook.com/acme/posts/555")
	require.NoError(t, err)
	assert.Equal(t, catalog.PlatformFacebook, link.Platform)
	assert.Equal(t, "acme", link.Handle)
	assert.Equal(t, "555", link.PostID)

	link, err = ParseLink("https://fb.com/acme")
	require.NoError(t, err)
	assert.Equal(t, catalog.PlatformFacebook, link.Platform)
}

func TestParseLinkWhatsapp(t *testing.T) {
	link, err := ParseLink("https://wa.me/15551234567")
	require.NoError(t, err)
	assert.Equal(t, catalog.PlatformWhatsapp, link.Platform)
	assert.Equal(t, "15551234567", link.Handle)

	link, err = ParseLink("https://whatsapp.com/channel/abc123")
	require.NoError(t, err)
	assert.Equal(t, "abc123", link.PostID)
}

func TestParseLinkSnapchat(t *testing.T) {
	link, err := ParseLink("https://snapchat.com/add/acme")
	require.NoError(t, err)
	assert.Equal(t, catalog.PlatformSnapchat, link.Platform)
	assert.Equal(t, "acme", link.Handle)

	link, err = ParseLink("https://snapchat.com/t/shared123")
	require.NoError(t, err)
	assert.Equal(t, "shared123", link.PostID)
}

func TestParseLinkTelegram(t *testing.T) {
	link, err := ParseLink("https://t.me/acme_channel/99")
	require.NoError(t, err)
	assert.Equal(t, catalog.PlatformTelegram, link.Platform)
	assert.Equal(t, "acme_channel", link.Handle)
	assert.Equal(t, "99", link.PostID)

	link, err = ParseLink("https://telegram.me/acme_channel")
	require.NoError(t, err)
	assert.Equal(t, catalog.PlatformTelegram, link.Platform)
}

func TestParseLinkRejects(t *testing.T) {
	for _, raw := range []string{
		"",
		"   ",
		"not a url",
		"https://example.com/post/1",
		"https://myspace.com/acme",
		"https://twitter.com/",
	} {
		_, err := ParseLink(raw)
		assert.Error(t, err, raw)
	}
}
