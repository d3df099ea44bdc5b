package reporter

import (
	"encoding/json"
	"io/ioutil"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSendTextPayload(t *testing.T) {
	var received textMessage
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		body, err := ioutil.ReadAll(r.Body)
		require.NoError(t, err)
		require.NoError(t, json.Unmarshal(body, &received))
		_, _ = w.Write([]byte(`{"errcode":0,"errmsg":"ok"}`))
	}))
	defer server.Close()

	robot := NewDingTalkRobot(server.URL)
	err := robot.SendText("engine alarm", []string{"13800000000"}, true)
	require.NoError(t, err)
	assert.Equal(t, msgTypeText, received.MsgType)
	assert.Equal(t, "engine alarm", received.Text.Content)
	assert.Equal(t, []string{"13800000000"}, received.At.AtMobiles)
	assert.True(t, received.At.IsAtAll)
}

func TestSendTextServerRejection(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"errcode":310000,"errmsg":"keywords not in content"}`))
	}))
	defer server.Close()

	robot := NewDingTalkRobot(server.URL)
	err := robot.SendText("engine alarm", nil, false)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "keywords not in content")
}

func TestSendMarkdownPayload(t *testing.T) {
	var received markdownMessage
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		body, err := ioutil.ReadAll(r.Body)
		require.NoError(t, err)
		require.NoError(t, json.Unmarshal(body, &received))
		_, _ = w.Write([]byte(`{"errcode":0,"errmsg":"ok"}`))
	}))
	defer server.Close()

	robot := NewDingTalkRobot(server.URL)
	err := robot.SendMarkdown("title", "**bold**", nil, false)
	require.NoError(t, err)
	assert.Equal(t, msgTypeMarkdown, received.MsgType)
	assert.Equal(t, "title", received.Markdown.Title)
	assert.Equal(t, "**bold**", received.Markdown.Text)
}
