package telegram

import (
	"strings"
	"testing"
	"time"

	"github.com/braincast-labs/braincast/internal/models"
	"github.com/braincast-labs/braincast/internal/report"
)

func TestEscapeMarkdownV2(t *testing.T) {
	tests := []struct {
		input    string
		expected string
	}{
		{"Hello World", "Hello World"},
		{"Hello_World", "Hello\\_World"},
		{"Test*bold*", "Test\\*bold\\*"},
		{"Price: $100.50", "Price: $100\\.50"},
		{"[link](url)", "\\[link\\]\\(url\\)"},
		{"~strikethrough~", "\\~strikethrough\\~"},
		{"`code`", "\\`code\\`"},
		{">blockquote", "\\>blockquote"},
		{"#header", "\\#header"},
		{"+plus-minus", "\\+plus\\-minus"},
		{"=equal|pipe", "\\=equal\\|pipe"},
		{"{brace}", "\\{brace\\}"},
		{"end!", "end\\!"},
		{"", ""},
		{"_*[]()~`>#+-=|{}.!", "\\_\\*\\[\\]\\(\\)\\~\\`\\>\\#\\+\\-\\=\\|\\{\\}\\.\\!"},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			result := escapeMarkdownV2(tt.input)
			if result != tt.expected {
				t.Errorf("escapeMarkdownV2(%q) = %q, want %q", tt.input, result, tt.expected)
			}
		})
	}
}

func TestFormatReport(t *testing.T) {
	snapshot := models.PriceSnapshot{Price: 113279, Change24h: -2.76}
	trade := models.TradeReport{
		Direction:   models.Short,
		EntryPrice:  70000,
		TargetPrice: 121500,
		StopPrice:   71000,
		Leverage:    30,
	}
	msg := formatReport(report.Session{
		State:    models.StateReport,
		Snapshot: &snapshot,
		Report:   &trade,
	})

	for _, want := range []string{
		"Braincast Scalp Report",
		"$113279",
		"\\-2\\.76%",
		"SHORT",
		"📉",
		"30x",
		"70000",
		"121500",
		"71000",
	} {
		if !strings.Contains(msg, want) {
			t.Errorf("formatReport() missing %q in:\n%s", want, msg)
		}
	}
}

func TestFormatReportEmptySession(t *testing.T) {
	msg := formatReport(report.Session{State: models.StateLanding})
	if !strings.Contains(msg, "No report yet") {
		t.Errorf("Expected empty-session message, got %q", msg)
	}
}

func TestNewClient_InvalidChatID(t *testing.T) {
	// NewClient with non-numeric chatID should return an error; the bot
	// token validation fails first for a bogus token, which is also an error.
	_, err := NewClient("", "not-a-number", 3, time.Second, nil)
	if err == nil {
		t.Error("Expected error for invalid client parameters, got nil")
	}
}
