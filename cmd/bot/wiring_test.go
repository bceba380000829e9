package main

import (
	"bytes"
	"testing"

	"grammar_reminder_bot/internal/domain/grammar"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWebhookEndpoint(t *testing.T) {
	cases := map[string]string{
		"https://bot.example.app":  "https://bot.example.app/webhook",
		"https://bot.example.app/": "https://bot.example.app/webhook",
		"bot.up.railway.app":       "https://bot.up.railway.app/webhook",
		" http://localhost:8000 ":  "http://localhost:8000/webhook",
	}
	for in, want := range cases {
		assert.Equal(t, want, webhookEndpoint(in), in)
	}
}

func TestWritePreview(t *testing.T) {
	patterns := []grammar.Pattern{
		{Label: "Past Simple"},
		{Label: "Future Simple"},
	}
	sentences := []string{"Вчера я ходил в кино с друзьями после работы.", "Завтра я позвоню."}

	var buf bytes.Buffer
	require.NoError(t, writePreview(&buf, patterns, sentences))

	out := buf.String()
	assert.Contains(t, out, "send_0")
	assert.Contains(t, out, "send_1")
	assert.Contains(t, out, "Вчера я ходил в кино с…")
	assert.Contains(t, out, "Future Simple")
	assert.Contains(t, out, sentences[0])
}

func TestCommandsRegistered(t *testing.T) {
	names := map[string]bool{}
	for _, c := range rootCmd.Commands() {
		names[c.Name()] = true
	}
	assert.True(t, names["serve"])
	assert.True(t, names["preview"])
	assert.True(t, names["remind"])
}
