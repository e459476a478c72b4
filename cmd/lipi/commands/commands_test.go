package commands

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func run(t *testing.T, stdin string, args ...string) string {
	t.Helper()
	root := NewRootCmd()
	var out bytes.Buffer
	root.SetOut(&out)
	root.SetErr(&out)
	root.SetIn(strings.NewReader(stdin))
	root.SetArgs(args)
	require.NoError(t, root.Execute())
	return out.String()
}

func fakeAksharamukha(t *testing.T) string {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		q := r.URL.Query()
		_, _ = w.Write([]byte("[" + q.Get("source") + ">" + q.Get("target") + "]" + q.Get("text")))
	}))
	t.Cleanup(server.Close)
	return server.URL
}

func TestClassify(t *testing.T) {
	assert.Equal(t, "Hindi/Devanagari\n", run(t, "", "classify", "नमस्ते"))
	assert.Equal(t, "English\n", run(t, "", "classify", "Hello", "World"))
	assert.Equal(t, "Tamil\n", run(t, "வணக்கம்", "classify"))

	out := run(t, "Hello\nবাংলা\n", "classify", "--lines")
	assert.Equal(t, "English\tHello\nBengali\tবাংলা\n", out)
}

func TestConvert(t *testing.T) {
	server := fakeAksharamukha(t)
	assert.Equal(t, "[Devanagari>ISO]नमस्ते\n", run(t, "", "--server", server, "convert", "नमस्ते"))
	assert.Equal(t, "[Devanagari>Tamil]नमस्ते\n", run(t, "", "--server", server, "convert", "-t", "Tamil", "नमस्ते"))
	assert.Equal(t, "Hello\n", run(t, "", "--server", server, "convert", "Hello"))
}

func TestLines(t *testing.T) {
	server := fakeAksharamukha(t)
	out := run(t, "Hello\n  नमस्ते \n\n", "--server", server, "lines")
	assert.Equal(t, "Hello\n[Devanagari>ISO]नमस्ते\n", out)

	out = run(t, "Hello\nनमस्ते", "--server", server, "lines", "--json", "-t", "Original")
	var res map[string]interface{}
	require.NoError(t, json.Unmarshal([]byte(out), &res))
	assert.Equal(t, "Hello\nनमस्ते", res["transliterated"])
	assert.Equal(t, []interface{}{"English", "Hindi/Devanagari"}, res["language_per_line"])
}

func TestScripts(t *testing.T) {
	out := run(t, "", "scripts")
	assert.Contains(t, out, "Writing systems:")
	assert.Contains(t, out, "Odia")
	assert.Contains(t, out, "Oriya")
	assert.Contains(t, out, "Original")
}
